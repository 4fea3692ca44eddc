// Package normalize turns free-form chat-completion answers into records.
//
// Answers arrive in many shapes: a JSON array with the expected field names, the
// same array with different or localized field names, prose with one entry per
// line, or a plain bulleted list. A Normalizer tries a fixed sequence of
// strategies against the answer and returns the output of the first one that
// produces at least one record:
//
//  1. primary: the JSON array between the first '[' and the last ']', checked
//     against a JSON Schema built from the profile's primary keys
//  2. alternate: the same array decoded with the profile's alternate keys
//  3. localized: the same array with keys matched against localized synonyms
//     after case and diacritic folding
//  4. lines: each line matched against an ordered list of LinePattern values
//  5. bullets: lines starting with a bullet marker, confidence 0
//
// A strategy that fails is never an error; the next one runs. When all fail the
// result is an empty slice.
//
// Every confidence passes through model.ClampConfidence and records with an
// empty name are dropped, so callers can rely on model.Record.Valid for every
// returned record.
//
// # Profiles
//
// A Profile names the fields a feature expects. Built-in profiles cover the
// department, disease, lab, home remedy and natural solution features; more can
// be loaded from YAML:
//
//	profiles:
//	  - name: allergy
//	    primary: {name: allergen, confidence: confidence}
//	    alternate: {name: name, confidence: score}
//	    localized:
//	      name: [alerjen]
//	      confidence: [güven]
//
// # Basic Usage
//
//	p, _ := normalize.BuiltinProfile("department")
//	records := normalize.New().Normalize(answer, p)
package normalize
