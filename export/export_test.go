package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tsawler/labscan/mapper"
	"github.com/tsawler/labscan/model"
)

var sample = model.Table{Rows: []model.Row{
	{"Kolesterol", "210", "mg/dL"},
	{"Ferritin, serum", "8"},
}}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample))
	assert.Equal(t, "Kolesterol,210,mg/dL\n\"Ferritin, serum\",8\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sample, ""))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DefaultSheet}, f.GetSheetList())

	rows, err := f.GetRows(DefaultSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Kolesterol", "210", "mg/dL"}, {"Ferritin, serum", "8"}}, rows)

	typ, err := f.GetCellType(DefaultSheet, "B1")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ)
}

func TestWriteXLSX_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, model.NewTable(), "Lab"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Lab"}, f.GetSheetList())
}

func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.xlsx")
	require.NoError(t, SaveXLSX(path, sample, "Sonuçlar"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Sonuçlar", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Ferritin, serum", v)

	assert.Error(t, SaveXLSX(filepath.Join(t.TempDir(), "missing", "x.xlsx"), sample, ""))
}

func TestWriteFindingsXLSX(t *testing.T) {
	findings := []mapper.LabFinding{
		{Test: "LDL", Value: "162 mg/dL", ReferenceRange: "<130", Confidence: 92, Note: "Yüksek"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteFindingsXLSX(&buf, findings))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Findings")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, findingHeaders, rows[0])
	assert.Equal(t, []string{"LDL", "162 mg/dL", "<130", "92", "Yüksek"}, rows[1])
}
