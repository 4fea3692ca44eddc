// Package mapper copies normalized records into the types each feature
// persists. Results are sorted by descending confidence; ties keep the order
// in which the model listed them.
package mapper

import (
	"sort"

	"github.com/tsawler/labscan/model"
	"github.com/tsawler/labscan/normalize"
)

// DepartmentSuggestion is a hospital department recommended for a complaint.
type DepartmentSuggestion struct {
	Department string  `json:"department"`
	Confidence float64 `json:"confidence"`
}

// DiseasePrediction is a candidate condition. Probability is a percentage in
// [0, 100], not a fraction.
type DiseasePrediction struct {
	Disease     string  `json:"disease"`
	Probability float64 `json:"probability"`
	Description string  `json:"description,omitempty"`
}

// LabFinding is an abnormal lab result.
type LabFinding struct {
	Test           string  `json:"test"`
	Value          string  `json:"value,omitempty"`
	ReferenceRange string  `json:"reference_range,omitempty"`
	Confidence     float64 `json:"confidence"`
	Note           string  `json:"note,omitempty"`
}

// HomeRemedy is a home care suggestion.
type HomeRemedy struct {
	Title      string  `json:"title"`
	Detail     string  `json:"detail,omitempty"`
	Confidence float64 `json:"confidence"`
}

// NaturalSolution is a herbal or lifestyle suggestion.
type NaturalSolution struct {
	Title      string  `json:"title"`
	Detail     string  `json:"detail,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Mapper binds a Normalizer to a set of profiles.
type Mapper struct {
	normalizer *normalize.Normalizer
	profiles   normalize.Profiles
}

// New creates a Mapper. A nil normalizer selects normalize.New(); a nil
// profile set selects the built-in profiles.
func New(n *normalize.Normalizer, profiles normalize.Profiles) *Mapper {
	if n == nil {
		n = normalize.New()
	}
	if profiles == nil {
		profiles = normalize.Profiles{}
	}
	return &Mapper{normalizer: n, profiles: profiles}
}

func (m *Mapper) records(raw, profile string) []model.Record {
	p, err := m.profiles.Get(profile)
	if err != nil {
		return []model.Record{}
	}
	recs := m.normalizer.Normalize(raw, p)
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})
	return recs
}

// Departments maps an answer to department suggestions.
func (m *Mapper) Departments(raw string) []DepartmentSuggestion {
	recs := m.records(raw, "department")
	out := make([]DepartmentSuggestion, 0, len(recs))
	for _, r := range recs {
		out = append(out, DepartmentSuggestion{Department: r.Name, Confidence: r.Confidence})
	}
	return out
}

// Diseases maps an answer to disease predictions.
func (m *Mapper) Diseases(raw string) []DiseasePrediction {
	recs := m.records(raw, "disease")
	out := make([]DiseasePrediction, 0, len(recs))
	for _, r := range recs {
		out = append(out, DiseasePrediction{
			Disease:     r.Name,
			Probability: r.Confidence,
			Description: r.Description,
		})
	}
	return out
}

// LabFindings maps an answer to lab findings.
func (m *Mapper) LabFindings(raw string) []LabFinding {
	recs := m.records(raw, "lab")
	out := make([]LabFinding, 0, len(recs))
	for _, r := range recs {
		out = append(out, LabFinding{
			Test:           r.Name,
			Value:          r.Value,
			ReferenceRange: r.ReferenceRange,
			Confidence:     r.Confidence,
			Note:           r.Description,
		})
	}
	return out
}

// HomeRemedies maps an answer to home remedies. Detail prefers the remedy
// text and falls back to the description.
func (m *Mapper) HomeRemedies(raw string) []HomeRemedy {
	recs := m.records(raw, "home_remedy")
	out := make([]HomeRemedy, 0, len(recs))
	for _, r := range recs {
		out = append(out, HomeRemedy{Title: r.Name, Detail: detail(r), Confidence: r.Confidence})
	}
	return out
}

// NaturalSolutions maps an answer to natural solutions.
func (m *Mapper) NaturalSolutions(raw string) []NaturalSolution {
	recs := m.records(raw, "natural_solution")
	out := make([]NaturalSolution, 0, len(recs))
	for _, r := range recs {
		out = append(out, NaturalSolution{Title: r.Name, Detail: detail(r), Confidence: r.Confidence})
	}
	return out
}

func detail(r model.Record) string {
	if r.Remedy != "" {
		return r.Remedy
	}
	return r.Description
}

var defaultMapper = New(nil, nil)

// Departments maps an answer with the default Mapper.
func Departments(raw string) []DepartmentSuggestion { return defaultMapper.Departments(raw) }

// Diseases maps an answer with the default Mapper.
func Diseases(raw string) []DiseasePrediction { return defaultMapper.Diseases(raw) }

// LabFindings maps an answer with the default Mapper.
func LabFindings(raw string) []LabFinding { return defaultMapper.LabFindings(raw) }

// HomeRemedies maps an answer with the default Mapper.
func HomeRemedies(raw string) []HomeRemedy { return defaultMapper.HomeRemedies(raw) }

// NaturalSolutions maps an answer with the default Mapper.
func NaturalSolutions(raw string) []NaturalSolution { return defaultMapper.NaturalSolutions(raw) }
