package model

import (
	"math"
	"strings"
)

// Confidence bounds for normalized records.
const (
	MinConfidence = 0.0
	MaxConfidence = 100.0
)

// Record is one entry decoded from a chat-completion answer.
//
// Name is non-empty and Confidence lies within [MinConfidence, MaxConfidence]
// for every record handed out by the normalizer. Which optional fields are set
// depends on the feature that requested the record.
type Record struct {
	Name           string  `json:"name"`
	Confidence     float64 `json:"confidence"`
	Description    string  `json:"description,omitempty"`
	ReferenceRange string  `json:"reference_range,omitempty"`
	Value          string  `json:"value,omitempty"`
	Remedy         string  `json:"remedy,omitempty"`

	// Strategy names the decoding step that produced the record.
	Strategy string `json:"-"`
}

// Valid reports whether the record satisfies the name and confidence invariants.
func (r Record) Valid() bool {
	return strings.TrimSpace(r.Name) != "" &&
		!math.IsNaN(r.Confidence) &&
		r.Confidence >= MinConfidence && r.Confidence <= MaxConfidence
}

// ClampConfidence pins v into [MinConfidence, MaxConfidence].
// NaN maps to MinConfidence. Values already in range are returned unchanged.
func ClampConfidence(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return MinConfidence
	case v < MinConfidence:
		return MinConfidence
	case v > MaxConfidence:
		return MaxConfidence
	default:
		return v
	}
}
