//go:build ocr

package ocr

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, createTestImage(100, 50)))
	return buf.Bytes()
}

func TestNew(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	assert.NotNil(t, client)
}

func TestClient_Recognize(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	// The image may not contain recognizable text; only check the contract.
	tokens, err := client.Recognize(context.Background(), testPNG(t))
	require.NoError(t, err)
	for _, tok := range tokens {
		assert.NotEmpty(t, tok.Text)
		assert.GreaterOrEqual(t, tok.XStart, 0.0)
		assert.LessOrEqual(t, tok.XEnd, 1.0)
		assert.GreaterOrEqual(t, tok.YCenter, 0.0)
		assert.LessOrEqual(t, tok.YCenter, 1.0)
	}
}

func TestClient_RecognizeEmpty(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	_, err = client.Recognize(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestClient_Settings(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	assert.NoError(t, client.SetLanguage("eng"))
	assert.NoError(t, client.SetPageSegMode(PSM_SINGLE_BLOCK))
	client.SetMinConfidence(50)
}

func TestClient_Text(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	_, err = client.Text(testPNG(t))
	assert.NoError(t, err)
}
