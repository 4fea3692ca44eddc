package labreport

import (
	"strings"

	"github.com/tsawler/labscan/chat"
	"github.com/tsawler/labscan/model"
)

// Options controls prompt assembly.
type Options struct {
	// Language is the language the model should write notes in, as a
	// name ("Turkish") or tag ("tr"). Empty means English.
	Language string
}

var languageNames = map[string]string{
	"tr": "Turkish",
	"en": "English",
	"de": "German",
	"fr": "French",
}

func (o Options) language() string {
	lang := strings.TrimSpace(o.Language)
	if lang == "" {
		return "English"
	}
	if name, ok := languageNames[strings.ToLower(lang)]; ok {
		return name
	}
	return lang
}

const systemPrompt = `You are a medical laboratory report assistant. You receive the rows of a lab report table, one row per line, with cells separated by tabs. Rows were reconstructed from a scanned page and may contain recognition errors.

Identify every result that lies outside its reference range.

Return ONLY a JSON array with no markdown formatting, no code fences and no explanation. Each element must be an object with these keys:
- "test": the test name as printed
- "value": the measured value with its unit
- "reference_range": the reference range as printed, or "" if none
- "confidence": how sure you are that the result is abnormal, as a number from 0 to 100
- "note": one short sentence explaining the deviation

Return [] if every result is within range or the table is unreadable.`

// BuildMessages assembles the system and user messages for one table.
func BuildMessages(table model.Table, opts Options) []chat.Message {
	system := systemPrompt + "\n\nWrite every \"note\" in " + opts.language() + "."

	var user strings.Builder
	user.WriteString("Lab report table:\n\n")
	user.WriteString(table.GetText())

	return []chat.Message{
		chat.System(system),
		chat.User(user.String()),
	}
}
