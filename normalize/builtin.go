package normalize

import (
	"fmt"
	"sort"
)

var defaultConfidenceLabels = []string{
	"confidence",
	"confidence level",
	"confidence percentage",
	"probability",
	"likelihood",
	"güven",
	"güven yüzdesi",
	"güven oranı",
	"güven düzeyi",
	"olasılık",
	"ihtimal",
	"yüzde",
	"oran",
	"uygunluk",
}

var confidenceSynonyms = []string{
	"güven",
	"güven yüzdesi",
	"güven oranı",
	"güven düzeyi",
	"olasılık",
	"ihtimal",
	"oran",
	"yüzde",
	"uygunluk",
	"confidence percentage",
	"confidence level",
	"probability",
	"score",
}

var builtinProfiles = map[string]Profile{
	"department": {
		Name:      "department",
		Primary:   Keys{Name: "department", Confidence: "confidence"},
		Alternate: Keys{Name: "name", Confidence: "confidence"},
		Localized: Synonyms{
			Name:       []string{"bölüm", "bölüm adı", "departman", "poliklinik", "klinik", "uzmanlık"},
			Confidence: confidenceSynonyms,
		},
	},
	"disease": {
		Name:      "disease",
		Primary:   Keys{Name: "disease", Confidence: "confidence", Description: "description"},
		Alternate: Keys{Name: "name", Confidence: "probability", Description: "description"},
		Localized: Synonyms{
			Name:        []string{"hastalık", "hastalık adı", "tanı", "teşhis", "olası hastalık"},
			Confidence:  confidenceSynonyms,
			Description: []string{"açıklama", "detay", "bilgi"},
		},
	},
	"lab": {
		Name: "lab",
		Primary: Keys{
			Name:           "test",
			Confidence:     "confidence",
			Description:    "note",
			ReferenceRange: "reference_range",
			Value:          "value",
		},
		Alternate: Keys{
			Name:           "name",
			Confidence:     "confidence",
			Description:    "description",
			ReferenceRange: "range",
			Value:          "result",
		},
		Localized: Synonyms{
			Name:           []string{"tetkik", "test adı", "parametre", "analiz"},
			Confidence:     confidenceSynonyms,
			Description:    []string{"yorum", "not", "açıklama"},
			ReferenceRange: []string{"referans aralığı", "referans", "normal aralık", "referans değer"},
			Value:          []string{"sonuç", "değer"},
		},
	},
	"home_remedy": {
		Name:      "home_remedy",
		Primary:   Keys{Name: "title", Confidence: "confidence", Description: "description", Remedy: "remedy"},
		Alternate: Keys{Name: "name", Confidence: "confidence", Description: "detail", Remedy: "instructions"},
		Localized: Synonyms{
			Name:        []string{"başlık", "öneri", "yöntem", "ev çaresi"},
			Confidence:  confidenceSynonyms,
			Description: []string{"açıklama", "detay"},
			Remedy:      []string{"tarif", "uygulama", "hazırlanışı"},
		},
	},
	"natural_solution": {
		Name:      "natural_solution",
		Primary:   Keys{Name: "solution", Confidence: "confidence", Description: "description"},
		Alternate: Keys{Name: "title", Confidence: "confidence", Description: "detail"},
		Localized: Synonyms{
			Name:        []string{"çözüm", "doğal çözüm", "bitki", "başlık"},
			Confidence:  confidenceSynonyms,
			Description: []string{"açıklama", "detay", "kullanım"},
		},
	},
	"generic": {
		Name:      "generic",
		Primary:   Keys{Name: "name", Confidence: "confidence", Description: "description"},
		Alternate: Keys{Name: "label", Confidence: "score", Description: "details"},
		Localized: Synonyms{
			Name:        []string{"ad", "isim", "başlık"},
			Confidence:  confidenceSynonyms,
			Description: []string{"açıklama", "detay"},
		},
	},
}

// BuiltinProfile returns the named built-in profile.
func BuiltinProfile(name string) (Profile, error) {
	p, ok := builtinProfiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return p, nil
}

// BuiltinProfiles returns the names of all built-in profiles, sorted.
func BuiltinProfiles() []string {
	names := make([]string, 0, len(builtinProfiles))
	for name := range builtinProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
