package normalize

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/labscan/model"
)

var leadingNumber = regexp.MustCompile(`^[-+]?\d+(?:[.,]\d+)?`)

// ParseConfidence converts a decoded JSON value into a confidence in
// [model.MinConfidence, model.MaxConfidence]. Numbers are clamped; strings such
// as "72%", "%72", " 72.5 % " or "72,5" are parsed by their leading number.
// Anything else, including a missing value, yields 0.
func ParseConfidence(v any) float64 {
	switch t := v.(type) {
	case float64:
		return model.ClampConfidence(t)
	case float32:
		return model.ClampConfidence(float64(t))
	case int:
		return model.ClampConfidence(float64(t))
	case int64:
		return model.ClampConfidence(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return model.MinConfidence
		}
		return model.ClampConfidence(f)
	case string:
		return model.ClampConfidence(parsePercent(t))
	default:
		return model.MinConfidence
	}
}

// parsePercent extracts the number in a percentage string. A leading '%'
// (Turkish "%72") and a trailing '%' or unit suffix are both accepted.
func parsePercent(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimPrefix(s, "%"))

	m := leadingNumber.FindString(s)
	if m == "" {
		return 0
	}

	f, err := strconv.ParseFloat(strings.Replace(m, ",", ".", 1), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return f
}
