package ocr

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/labscan/model"
	"github.com/tsawler/labscan/tables"
)

const sampleTSV = "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n" +
	"1\t1\t0\t0\t0\t0\t0\t0\t1000\t2000\t-1\t\n" +
	"2\t1\t1\t0\t0\t0\t100\t200\t800\t40\t-1\t\n" +
	"5\t1\t1\t1\t1\t1\t100\t200\t200\t40\t96.5\tKolesterol\n" +
	"5\t1\t1\t1\t1\t2\t500\t200\t100\t40\t91\t210\n" +
	"5\t1\t1\t1\t1\t3\t610\t200\t190\t40\t89.2\tmg/dL\n" +
	"5\t1\t1\t1\t1\t4\t850\t200\t10\t40\t95\t \n" +
	"5\t1\t1\t1\t2\t1\t100\t300\t50\t40\t12\tx\n"

func TestParseTSV(t *testing.T) {
	pages, err := ParseTSV(strings.NewReader(sampleTSV), 30)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	page := pages[0]
	assert.Equal(t, 1, page.Number)
	require.Len(t, page.Tokens, 3)

	tok := page.Tokens[0]
	assert.Equal(t, "Kolesterol", tok.Text)
	assert.InDelta(t, 0.1, tok.XStart, 1e-9)
	assert.InDelta(t, 0.3, tok.XEnd, 1e-9)
	assert.InDelta(t, 0.11, tok.YCenter, 1e-9)
}

func TestParseTSV_MinConfidence(t *testing.T) {
	pages, err := ParseTSV(strings.NewReader(sampleTSV), 0)
	require.NoError(t, err)
	require.Len(t, pages[0].Tokens, 4)
	assert.Equal(t, "x", pages[0].Tokens[3].Text)
}

func TestParseTSV_FeedsReconstructor(t *testing.T) {
	pages, err := ParseTSV(strings.NewReader(sampleTSV), 30)
	require.NoError(t, err)

	table, err := tables.ReconstructPages(context.Background(), nil, pages)
	require.NoError(t, err)
	assert.Equal(t, []model.Row{{"Kolesterol", "210 mg/dL"}}, table.Rows)
}

func TestParseTSV_MissingPageRow(t *testing.T) {
	doc := "5\t1\t1\t1\t1\t1\t0\t0\t50\t10\t90\tNa\n" +
		"5\t1\t1\t1\t1\t2\t150\t0\t50\t10\t90\t140\n"
	pages, err := ParseTSV(strings.NewReader(doc), 0)
	require.NoError(t, err)
	require.Len(t, pages[0].Tokens, 2)

	// Normalized by the word extent (200x10).
	assert.InDelta(t, 0.75, pages[0].Tokens[1].XStart, 1e-9)
	assert.InDelta(t, 1.0, pages[0].Tokens[1].XEnd, 1e-9)
	assert.InDelta(t, 0.5, pages[0].Tokens[1].YCenter, 1e-9)
}

func TestParseTSV_MultiplePages(t *testing.T) {
	doc := "1\t1\t0\t0\t0\t0\t0\t0\t100\t100\t-1\t\n" +
		"5\t1\t1\t1\t1\t1\t0\t0\t10\t10\t90\tA\n" +
		"1\t2\t0\t0\t0\t0\t0\t0\t200\t200\t-1\t\n" +
		"5\t2\t1\t1\t1\t1\t0\t0\t10\t10\t90\tB\n"
	pages, err := ParseTSV(strings.NewReader(doc), 0)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, 2, pages[1].Number)
	assert.Equal(t, "B", pages[1].Tokens[0].Text)
	assert.InDelta(t, 0.05, pages[1].Tokens[0].XEnd, 1e-9)
}

func TestParseTSV_Errors(t *testing.T) {
	tests := map[string]string{
		"short row":  "5\t1\t1\n",
		"bad number": "5\t1\t1\t1\t1\t1\tx\t0\t10\t10\t90\tA\n",
		"bad conf":   "5\t1\t1\t1\t1\t1\t0\t0\t10\t10\thigh\tA\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseTSV(strings.NewReader(doc), 0)
			assert.Error(t, err)
		})
	}
}

func TestParseTSV_Empty(t *testing.T) {
	pages, err := ParseTSV(strings.NewReader(""), 0)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

type fakeRunner struct {
	name    string
	args    []string
	imageOK bool
	stdout  []byte
	stderr  []byte
	err     error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.name = name
	f.args = args
	if len(args) > 0 {
		if data, err := os.ReadFile(args[0]); err == nil && len(data) > 0 {
			f.imageOK = true
		}
	}
	return f.stdout, f.stderr, f.err
}

func TestTSVRecognizer_Recognize(t *testing.T) {
	runner := &fakeRunner{stdout: []byte(sampleTSV)}
	r := NewTSVRecognizer(TSVConfig{
		Language:      "eng+tur",
		PSM:           PSM_SINGLE_BLOCK,
		TessdataDir:   "/opt/tessdata",
		MinConfidence: 30,
	}, WithRunner(runner))

	tokens, err := r.Recognize(context.Background(), []byte("fake image"))
	require.NoError(t, err)
	assert.Len(t, tokens, 3)

	assert.Equal(t, "tesseract", runner.name)
	assert.True(t, runner.imageOK, "image must be written before tesseract runs")
	require.NotEmpty(t, runner.args)
	assert.Equal(t, []string{"stdout", "-l", "eng+tur", "--psm", "6", "--tessdata-dir", "/opt/tessdata", "tsv"}, runner.args[1:])

	_, err = os.Stat(runner.args[0])
	assert.True(t, os.IsNotExist(err), "temporary image must be removed")
}

func TestTSVRecognizer_Defaults(t *testing.T) {
	runner := &fakeRunner{}
	r := NewTSVRecognizer(TSVConfig{}, WithRunner(runner))

	tokens, err := r.Recognize(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.NotNil(t, tokens)
	assert.Empty(t, tokens)
	assert.Equal(t, []string{"stdout", "-l", "eng", "tsv"}, runner.args[1:])
}

func TestTSVRecognizer_Errors(t *testing.T) {
	r := NewTSVRecognizer(TSVConfig{}, WithRunner(&fakeRunner{}))
	_, err := r.Recognize(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyImage)

	boom := errors.New("exit status 1")
	r = NewTSVRecognizer(TSVConfig{}, WithRunner(&fakeRunner{err: boom, stderr: []byte("Failed loading language 'tur'")}))
	_, err = r.Recognize(context.Background(), []byte("img"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Failed loading language")
}
