package labreport

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/labscan/chat"
	"github.com/tsawler/labscan/model"
)

// pageRecognizer returns canned tokens per image, keyed by image content.
type pageRecognizer map[string][]model.Token

func (p pageRecognizer) Recognize(_ context.Context, img []byte) ([]model.Token, error) {
	tokens, ok := p[string(img)]
	if !ok {
		return nil, errors.New("unreadable image")
	}
	return tokens, nil
}

type fakeCompleter struct {
	answer    string
	err       error
	messages  []chat.Message
	requestID string
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	f.messages = messages
	f.requestID = chat.RequestID(ctx)
	return f.answer, f.err
}

func labPages() pageRecognizer {
	return pageRecognizer{
		"page1": {
			model.NewToken("LDL", 0.0, 0.1, 0.2),
			model.NewToken("162", 0.4, 0.45, 0.2),
			model.NewToken("mg/dL", 0.46, 0.55, 0.2),
			model.NewToken("<130", 0.7, 0.8, 0.2),
		},
		"page2": {
			model.NewToken("Ferritin", 0.0, 0.15, 0.3),
			model.NewToken("8", 0.4, 0.42, 0.3),
		},
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	completer := &fakeCompleter{answer: "```json\n" +
		`[{"test":"Ferritin","value":"8","reference_range":"15-150","confidence":70,"note":"Düşük"},` +
		`{"test":"LDL","value":"162 mg/dL","reference_range":"<130","confidence":92,"note":"Yüksek"}]` +
		"\n```"}

	a := New(labPages(), completer, WithOptions(Options{Language: "tr"}))
	res, err := a.Analyze(context.Background(), [][]byte{[]byte("page1"), []byte("page2")})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, []model.Row{{"LDL", "162 mg/dL", "<130"}, {"Ferritin", "8"}}, res.Table.Rows)
	assert.NotEmpty(t, res.RequestID)
	assert.Equal(t, res.RequestID, completer.requestID)

	require.Len(t, res.Findings, 2)
	assert.Equal(t, "LDL", res.Findings[0].Test)
	assert.Equal(t, "Ferritin", res.Findings[1].Test)

	require.Len(t, completer.messages, 2)
	assert.Equal(t, chat.RoleSystem, completer.messages[0].Role)
	assert.Contains(t, completer.messages[0].Content, "in Turkish")
	assert.Contains(t, completer.messages[1].Content, "LDL\t162 mg/dL\t<130\nFerritin\t8\n")
}

func TestAnalyzer_Analyze_KeepsCallerRequestID(t *testing.T) {
	completer := &fakeCompleter{answer: "[]"}
	a := New(labPages(), completer)

	ctx := chat.WithRequestID(context.Background(), "abc")
	res, err := a.Analyze(ctx, [][]byte{[]byte("page1")})
	require.NoError(t, err)
	assert.Equal(t, "abc", res.RequestID)
	assert.Equal(t, "abc", completer.requestID)
	assert.NotNil(t, res.Findings)
	assert.Empty(t, res.Findings)
}

func TestAnalyzer_Analyze_EmptyTableStillAsks(t *testing.T) {
	var logs bytes.Buffer
	completer := &fakeCompleter{answer: "Tablo okunamadı."}
	recognizer := pageRecognizer{"blank": nil}

	a := New(recognizer, completer, WithLogger(zerolog.New(&logs)))
	res, err := a.Analyze(context.Background(), [][]byte{[]byte("blank")})
	require.NoError(t, err)

	assert.True(t, res.Table.IsEmpty())
	assert.Empty(t, res.Findings)
	require.Len(t, completer.messages, 2)
	assert.True(t, strings.HasSuffix(completer.messages[1].Content, "Lab report table:\n\n"))
	assert.Contains(t, logs.String(), "labreport.empty_table")
}

func TestAnalyzer_Analyze_Errors(t *testing.T) {
	a := New(labPages(), &fakeCompleter{})
	_, err := a.Analyze(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoImages)

	_, err = a.Analyze(context.Background(), [][]byte{[]byte("page1"), []byte("smudge")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recognize: page 2")

	boom := &chat.StatusError{StatusCode: 500, Body: "down"}
	a = New(labPages(), &fakeCompleter{err: boom})
	_, err = a.Analyze(context.Background(), [][]byte{[]byte("page1")})
	var statusErr *chat.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 500, statusErr.StatusCode)
}

func TestAnalyzer_AnalyzePages(t *testing.T) {
	completer := &fakeCompleter{answer: "LDL - 88% - Yüksek"}
	a := New(nil, completer)

	page := model.NewPage(1)
	page.Tokens = labPages()["page1"]
	res, err := a.AnalyzePages(context.Background(), []model.Page{page})
	require.NoError(t, err)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "LDL", res.Findings[0].Test)
	assert.Equal(t, 88.0, res.Findings[0].Confidence)
	assert.Equal(t, "Yüksek", res.Findings[0].Note)
}

func TestBuildMessages_Language(t *testing.T) {
	table := model.Table{Rows: []model.Row{{"Hb", "11.2"}}}

	msgs := BuildMessages(table, Options{})
	assert.Contains(t, msgs[0].Content, "in English.")

	msgs = BuildMessages(table, Options{Language: "German"})
	assert.Contains(t, msgs[0].Content, "in German.")

	msgs = BuildMessages(table, Options{Language: "TR"})
	assert.Contains(t, msgs[0].Content, "in Turkish.")
	assert.Equal(t, chat.RoleUser, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "Hb\t11.2")
}
