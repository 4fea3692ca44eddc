package mapper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/labscan/normalize"
)

func TestDepartments_SortedByConfidence(t *testing.T) {
	raw := `[{"department":"Dahiliye","confidence":40},{"department":"Kardiyoloji","confidence":78},{"department":"KBB","confidence":40}]`
	got := Departments(raw)
	assert.Equal(t, []DepartmentSuggestion{
		{Department: "Kardiyoloji", Confidence: 78},
		{Department: "Dahiliye", Confidence: 40},
		{Department: "KBB", Confidence: 40},
	}, got)
}

func TestDiseases(t *testing.T) {
	raw := "Migren - 60% - Tek taraflı zonklayıcı ağrı\nSinüzit (25%)"
	got := Diseases(raw)
	require.Len(t, got, 2)
	assert.Equal(t, DiseasePrediction{Disease: "Migren", Probability: 60, Description: "Tek taraflı zonklayıcı ağrı"}, got[0])
	assert.Equal(t, "Sinüzit", got[1].Disease)
	assert.Equal(t, 25.0, got[1].Probability)
}

func TestLabFindings(t *testing.T) {
	raw := `[{"Tetkik":"Ferritin","Sonuç":"8 ng/mL","Referans Aralığı":"15-150","Güven":"%85","Yorum":"Düşük"}]`
	got := LabFindings(raw)
	require.Len(t, got, 1)
	assert.Equal(t, LabFinding{
		Test:           "Ferritin",
		Value:          "8 ng/mL",
		ReferenceRange: "15-150",
		Confidence:     85,
		Note:           "Düşük",
	}, got[0])
}

func TestHomeRemedies_DetailFallback(t *testing.T) {
	raw := `[
		{"title":"Zencefil çayı","remedy":"Günde iki kez","description":"Bulantıya iyi gelir","confidence":70},
		{"title":"Dinlenme","description":"Bol uyku","confidence":90}
	]`
	got := HomeRemedies(raw)
	require.Len(t, got, 2)
	assert.Equal(t, HomeRemedy{Title: "Dinlenme", Detail: "Bol uyku", Confidence: 90}, got[0])
	assert.Equal(t, HomeRemedy{Title: "Zencefil çayı", Detail: "Günde iki kez", Confidence: 70}, got[1])
}

func TestNaturalSolutions_Bullets(t *testing.T) {
	got := NaturalSolutions("- Papatya çayı\n- Lavanta yağı")
	require.Len(t, got, 2)
	assert.Equal(t, "Papatya çayı", got[0].Title)
	assert.Zero(t, got[0].Confidence)
	assert.Equal(t, "Lavanta yağı", got[1].Title)
}

func TestMapper_EmptyAnswer(t *testing.T) {
	assert.Empty(t, Departments(""))
	assert.NotNil(t, Diseases("anlaşılmadı"))
}

func TestMapper_CustomProfiles(t *testing.T) {
	ps, err := normalize.LoadProfiles(strings.NewReader(`
profiles:
  - name: department
    primary: {name: clinic, confidence: score}
`))
	require.NoError(t, err)

	m := New(normalize.New(), ps)
	got := m.Departments(`[{"clinic":"Ortopedi","score":55}]`)
	require.Len(t, got, 1)
	assert.Equal(t, DepartmentSuggestion{Department: "Ortopedi", Confidence: 55}, got[0])
}
