package normalize

import (
	"bytes"
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tsawler/labscan/model"
)

// input is a cleaned answer, decoded once and shared by all strategies.
type input struct {
	text  string
	array string // JSON array substring, "" when absent
	items []any  // decoded array, nil when array is not valid JSON
}

func newInput(text string) *input {
	in := &input{text: text}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end <= start {
		return in
	}

	in.array = text[start : end+1]
	var items []any
	if err := json.Unmarshal([]byte(in.array), &items); err == nil {
		in.items = items
	}
	return in
}

// lines returns the candidate lines for line-oriented strategies. When the
// answer is a JSON array of strings its elements are used, otherwise the text
// lines.
func (in *input) lines() []string {
	var fromArray []string
	for _, item := range in.items {
		if s, ok := item.(string); ok {
			fromArray = append(fromArray, splitLines(s)...)
		}
	}
	if len(fromArray) > 0 {
		return fromArray
	}
	return splitLines(in.text)
}

type strategy struct {
	name   string
	decode func(n *Normalizer, in *input, p Profile) []model.Record
}

var strategies = []strategy{
	{name: "primary", decode: decodePrimary},
	{name: "alternate", decode: decodeAlternate},
	{name: "localized", decode: decodeLocalized},
	{name: "lines", decode: decodeLines},
	{name: "bullets", decode: decodeBullets},
}

func decodePrimary(n *Normalizer, in *input, p Profile) []model.Record {
	if in.items == nil || p.Primary.Name == "" {
		return nil
	}
	if err := validateArray(p.Primary, in.items); err != nil {
		n.logger.Debug().Err(err).Str("profile", p.Name).Msg("normalize.schema_mismatch")
		return nil
	}
	return decodeObjects(in.items, p.Primary)
}

func decodeAlternate(_ *Normalizer, in *input, p Profile) []model.Record {
	if in.items == nil || p.Alternate.Name == "" {
		return nil
	}
	return decodeObjects(in.items, p.Alternate)
}

func decodeLocalized(_ *Normalizer, in *input, p Profile) []model.Record {
	if in.items == nil {
		return nil
	}
	syn := p.synonyms()
	if len(syn.Name) == 0 {
		return nil
	}

	var out []model.Record
	for _, item := range in.items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		folded := foldKeys(obj)
		lookup := func(names []string) (any, bool) {
			for _, name := range foldAll(names) {
				if v, ok := folded[name]; ok {
					return v, true
				}
			}
			return nil, false
		}

		var rec model.Record
		if v, ok := lookup(syn.Name); ok {
			rec.Name = nameValue(v)
		}
		if v, ok := lookup(syn.Confidence); ok {
			rec.Confidence = ParseConfidence(v)
		}
		if v, ok := lookup(syn.Description); ok {
			rec.Description = stringValue(v)
		}
		if v, ok := lookup(syn.ReferenceRange); ok {
			rec.ReferenceRange = stringValue(v)
		}
		if v, ok := lookup(syn.Value); ok {
			rec.Value = stringValue(v)
		}
		if v, ok := lookup(syn.Remedy); ok {
			rec.Remedy = stringValue(v)
		}
		out = append(out, rec)
	}
	return out
}

func decodeLines(n *Normalizer, in *input, p Profile) []model.Record {
	var out []model.Record
	for _, raw := range in.lines() {
		line := prepareLine(raw)
		if line == "" {
			continue
		}
		for _, lp := range n.patterns {
			if rec, ok := lp.match(line, p); ok {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// bullet is a list marker followed by whitespace. Rules ("---") and bold
// text ("**Note**") do not match.
var bullet = regexp.MustCompile(`^[-*•–]\s+(.+)$`)

func decodeBullets(_ *Normalizer, in *input, _ Profile) []model.Record {
	var out []model.Record
	for _, raw := range splitLines(in.text) {
		m := bullet.FindStringSubmatch(strings.TrimSpace(raw))
		if m == nil {
			continue
		}
		name := trimName(emphasis.Replace(m[1]))
		if hasAlnum(name) {
			out = append(out, model.Record{Name: name})
		}
	}
	return out
}

func hasAlnum(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
}

// decodeObjects reads every object element of items with exact keys.
func decodeObjects(items []any, keys Keys) []model.Record {
	var out []model.Record
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		field := func(key string) string {
			if key == "" {
				return ""
			}
			return stringValue(obj[key])
		}
		rec := model.Record{
			Name:           nameValue(obj[keys.Name]),
			Description:    field(keys.Description),
			ReferenceRange: field(keys.ReferenceRange),
			Value:          field(keys.Value),
			Remedy:         field(keys.Remedy),
		}
		if keys.Confidence != "" {
			rec.Confidence = ParseConfidence(obj[keys.Confidence])
		}
		out = append(out, rec)
	}
	return out
}

// foldKeys indexes obj by folded key. Keys are visited in sorted order so
// the first of two colliding spellings always wins.
func foldKeys(obj map[string]any) map[string]any {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(obj))
	for _, k := range keys {
		f := Fold(k)
		if _, seen := out[f]; !seen {
			out[f] = obj[k]
		}
	}
	return out
}

// nameValue accepts only JSON strings; a numeric or boolean name is no name.
func nameValue(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// arraySchema builds a JSON Schema for a non-empty array of objects that
// carry a string name under keys.Name.
func arraySchema(keys Keys) map[string]any {
	props := map[string]any{
		keys.Name: map[string]any{"type": "string"},
	}
	if keys.Confidence != "" {
		props[keys.Confidence] = map[string]any{"type": []string{"number", "string", "null"}}
	}
	return map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type":       "object",
			"required":   []string{keys.Name},
			"properties": props,
		},
	}
}

func validateArray(keys Keys, items []any) error {
	b, err := json.Marshal(arraySchema(keys))
	if err != nil {
		return err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("profile.json", bytes.NewReader(b)); err != nil {
		return err
	}
	schema, err := compiler.Compile("profile.json")
	if err != nil {
		return err
	}
	return schema.Validate(items)
}
