package normalize

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownProfile is returned when a profile name has no definition.
	ErrUnknownProfile = errors.New("normalize: unknown profile")

	// ErrInvalidProfile is returned by Profile.Validate.
	ErrInvalidProfile = errors.New("normalize: invalid profile")
)

// Keys maps record fields to the JSON object keys that carry them.
// An empty key means the field is not read.
type Keys struct {
	Name           string `yaml:"name"`
	Confidence     string `yaml:"confidence"`
	Description    string `yaml:"description"`
	ReferenceRange string `yaml:"reference_range"`
	Value          string `yaml:"value"`
	Remedy         string `yaml:"remedy"`
}

// Synonyms lists the accepted spellings of each record field. Entries are
// compared after Fold, so case and diacritic variants need not be listed.
type Synonyms struct {
	Name           []string `yaml:"name"`
	Confidence     []string `yaml:"confidence"`
	Description    []string `yaml:"description"`
	ReferenceRange []string `yaml:"reference_range"`
	Value          []string `yaml:"value"`
	Remedy         []string `yaml:"remedy"`
}

// Profile describes the record shape one feature expects from the model.
type Profile struct {
	Name      string   `yaml:"name"`
	Primary   Keys     `yaml:"primary"`
	Alternate Keys     `yaml:"alternate"`
	Localized Synonyms `yaml:"localized"`

	// ConfidenceLabels are the phrases that introduce a confidence value in
	// prose ("Güven: %72 - Kardiyoloji"). A captured name that reads like one
	// of them is rejected by the line strategy.
	ConfidenceLabels []string `yaml:"confidence_labels"`
}

// Validate checks that the profile has a name and a primary name key.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidProfile)
	}
	if strings.TrimSpace(p.Primary.Name) == "" {
		return fmt.Errorf("%w: profile %q has no primary name key", ErrInvalidProfile, p.Name)
	}
	return nil
}

// synonyms returns the localized synonyms extended with the primary and
// alternate keys, so a localized answer that mixes spellings still decodes.
func (p Profile) synonyms() Synonyms {
	merge := func(list []string, keys ...string) []string {
		out := append([]string(nil), list...)
		for _, k := range keys {
			if k != "" {
				out = append(out, k)
			}
		}
		return out
	}
	return Synonyms{
		Name:           merge(p.Localized.Name, p.Primary.Name, p.Alternate.Name),
		Confidence:     merge(p.Localized.Confidence, p.Primary.Confidence, p.Alternate.Confidence),
		Description:    merge(p.Localized.Description, p.Primary.Description, p.Alternate.Description),
		ReferenceRange: merge(p.Localized.ReferenceRange, p.Primary.ReferenceRange, p.Alternate.ReferenceRange),
		Value:          merge(p.Localized.Value, p.Primary.Value, p.Alternate.Value),
		Remedy:         merge(p.Localized.Remedy, p.Primary.Remedy, p.Alternate.Remedy),
	}
}

// looksLikeLabel reports whether s reads as a confidence label phrase, alone
// or at either end of s.
func (p Profile) looksLikeLabel(s string) bool {
	f := Fold(s)
	if f == "" {
		return false
	}
	for _, label := range foldAll(p.labels()) {
		if f == label || strings.HasPrefix(f, label+" ") || strings.HasSuffix(f, " "+label) {
			return true
		}
	}
	return false
}

func (p Profile) labels() []string {
	if len(p.ConfidenceLabels) > 0 {
		return p.ConfidenceLabels
	}
	return defaultConfidenceLabels
}

// Profiles is a set of profiles keyed by name.
type Profiles map[string]Profile

// Get returns the named profile, falling back to the built-in one.
func (ps Profiles) Get(name string) (Profile, error) {
	if p, ok := ps[name]; ok {
		return p, nil
	}
	return BuiltinProfile(name)
}

type profileFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// LoadProfiles reads profiles from YAML. Every profile is validated and a
// duplicate name is an error.
func LoadProfiles(r io.Reader) (Profiles, error) {
	var f profileFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Profiles{}, nil
		}
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	out := make(Profiles, len(f.Profiles))
	for i, p := range f.Profiles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile %d: %w", i, err)
		}
		if _, dup := out[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate profile %q", ErrInvalidProfile, p.Name)
		}
		out[p.Name] = p
	}
	return out, nil
}

// LoadProfilesFile reads profiles from a YAML file.
func LoadProfilesFile(path string) (Profiles, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profiles: %w", err)
	}
	defer f.Close()

	return LoadProfiles(f)
}
