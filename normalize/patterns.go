package normalize

import (
	"regexp"
	"strings"

	"github.com/tsawler/labscan/model"
)

// Role says what a LinePattern capture group holds.
type Role int

const (
	// RoleSkip ignores the group.
	RoleSkip Role = iota
	// RoleName is the entity name.
	RoleName
	// RoleConfidence is a percentage such as "78%" or "%78".
	RoleConfidence
	// RoleDescription is free text following the confidence.
	RoleDescription
	// RoleLabel must read as one of the profile's confidence labels for the
	// pattern to match.
	RoleLabel
)

// LinePattern is one line shape, with a role for every capture group.
type LinePattern struct {
	Name  string
	Expr  *regexp.Regexp
	Roles []Role
}

const (
	pct  = `(%\s*\d+(?:[.,]\d+)?|\d+(?:[.,]\d+)?\s*%)`
	dash = `\s*[-–—]\s*`
)

var defaultPatterns = []LinePattern{
	{
		Name:  "name_pct_description",
		Expr:  regexp.MustCompile(`^(.+?)` + dash + pct + `\s*[-–—:]\s*(.+)$`),
		Roles: []Role{RoleName, RoleConfidence, RoleDescription},
	},
	{
		Name:  "name_pct",
		Expr:  regexp.MustCompile(`^(.+?)` + dash + pct + `$`),
		Roles: []Role{RoleName, RoleConfidence},
	},
	{
		Name:  "name_paren_pct",
		Expr:  regexp.MustCompile(`^(.+?)\s*\(\s*` + pct + `\s*\)\s*(?:[-–—:]\s*(.*))?$`),
		Roles: []Role{RoleName, RoleConfidence, RoleDescription},
	},
	{
		Name:  "name_colon_pct",
		Expr:  regexp.MustCompile(`^(.+?)\s*:\s*` + pct + `$`),
		Roles: []Role{RoleName, RoleConfidence},
	},
	{
		Name:  "label_pct_name",
		Expr:  regexp.MustCompile(`^(.+?)\s*:\s*` + pct + dash + `(.+)$`),
		Roles: []Role{RoleLabel, RoleConfidence, RoleName},
	},
}

// DefaultPatterns returns the built-in line patterns in evaluation order.
func DefaultPatterns() []LinePattern {
	return append([]LinePattern(nil), defaultPatterns...)
}

var (
	listMarker = regexp.MustCompile(`^(?:[-*•–]\s+|\d{1,3}[.)]\s+)`)
	emphasis   = strings.NewReplacer("**", "", "__", "")
	nameSplit  = regexp.MustCompile(`[-–—:]`)
)

// prepareLine strips JSON string punctuation, list markers and markdown
// emphasis from a line before pattern matching.
func prepareLine(line string) string {
	s := strings.TrimSpace(line)
	s = strings.Trim(s, `[],"`)
	s = strings.TrimSpace(s)
	s = listMarker.ReplaceAllString(s, "")
	s = emphasis.Replace(s)
	return strings.TrimSpace(s)
}

// match applies the pattern to a prepared line. The name guard runs here: a
// name that reads like a confidence label is replaced by its trailing
// non-label dash or colon segment, else by that of the description, or the
// match fails.
func (lp LinePattern) match(line string, p Profile) (model.Record, bool) {
	groups := lp.Expr.FindStringSubmatch(line)
	if groups == nil {
		return model.Record{}, false
	}

	rec := model.Record{Strategy: "lines:" + lp.Name}
	for i, role := range lp.Roles {
		if i+1 >= len(groups) {
			break
		}
		text := strings.TrimSpace(groups[i+1])
		switch role {
		case RoleName:
			rec.Name = trimName(text)
		case RoleConfidence:
			rec.Confidence = ParseConfidence(text)
		case RoleDescription:
			rec.Description = text
		case RoleLabel:
			if !p.looksLikeLabel(text) {
				return model.Record{}, false
			}
		}
	}

	if p.looksLikeLabel(rec.Name) {
		if name, ok := resplitName(rec.Name, p); ok {
			rec.Name = name
		} else if name, ok := resplitName(rec.Description, p); ok {
			// "label - pct - name": the entity follows the confidence.
			rec.Name, rec.Description = name, ""
		} else {
			return model.Record{}, false
		}
	}

	return rec, rec.Name != ""
}

// resplitName returns the last segment of name that is not a label.
func resplitName(name string, p Profile) (string, bool) {
	parts := nameSplit.Split(name, -1)
	for i := len(parts) - 1; i >= 0; i-- {
		seg := trimName(parts[i])
		if seg != "" && !p.looksLikeLabel(seg) {
			return seg, true
		}
	}
	return "", false
}

func trimName(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"'*:`))
}
