package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Güven_Yüzdesi", "guven yuzdesi"},
		{"GÜVEN YÜZDESİ", "guven yuzdesi"},
		{"güven-yüzdesi", "guven yuzdesi"},
		{"CONFIDENCE", "confidence"},
		{"Olasılık", "olasilik"},
		{"  Referans   Aralığı: ", "referans araligi"},
		{"Açıklama", "aciklama"},
		{"", ""},
		{"***", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestParseConfidence(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float", 72.5, 72.5},
		{"int", 40, 40},
		{"over range", 130.0, 100},
		{"negative", -2.0, 0},
		{"json number", json.Number("55"), 55},
		{"bad json number", json.Number("x"), 0},
		{"percent suffix", "72%", 72},
		{"percent prefix", "%72", 72},
		{"padded", "  72.5 % ", 72.5},
		{"comma decimal", "72,5%", 72.5},
		{"unit suffix", "80 percent", 80},
		{"string over range", "%300", 100},
		{"no number", "high", 0},
		{"empty", "", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseConfidence(tt.in))
		})
	}
}

func TestClean(t *testing.T) {
	assert.Equal(t, `[{"a":1}]`, clean("```json\n[{\"a\":1}]\n```"))
	assert.Equal(t, "plain text", clean("  plain text \n"))
	assert.Equal(t, "LDL <130 mg/dL", clean("LDL <130 mg/dL"))

	got := clean("<p>Kardiyoloji - 78%</p><script>x()</script><p>Nöroloji<br>12%</p>")
	assert.Equal(t, "Kardiyoloji - 78%\nNöroloji\n12%", got)
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", ""}, splitLines("a\r\nb\rc\n"))
}
