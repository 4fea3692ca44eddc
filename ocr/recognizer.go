// Package ocr turns page images into positioned word tokens.
//
// Two engines are provided. Client binds libtesseract through gosseract and is
// compiled only with the "ocr" build tag:
//
//	go build -tags ocr
//
// TSVRecognizer runs the tesseract command line tool and parses its TSV
// output, so it needs the binary on PATH but no cgo. On macOS:
//
//	brew install tesseract tesseract-lang
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-tur
//
// Both return tokens with coordinates normalized to [0,1] and the vertical
// axis pointing down (0 is the top edge), the convention package tables
// expects.
package ocr

import (
	"context"
	"errors"
	"fmt"

	"github.com/tsawler/labscan/model"
)

// ErrOCRNotEnabled is returned by New when gosseract support was not compiled
// in. Rebuild with -tags ocr or use TSVRecognizer.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Recognizer extracts word tokens from one page image.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) ([]model.Token, error)
}

// PageSegMode represents page segmentation modes for OCR.
// These control how Tesseract analyzes the page layout.
type PageSegMode int

// Page segmentation modes, numbered as tesseract's --psm flag.
const (
	PSM_OSD_ONLY               PageSegMode = 0  // Orientation and script detection only
	PSM_AUTO_OSD               PageSegMode = 1  // Automatic with OSD
	PSM_AUTO_ONLY              PageSegMode = 2  // Automatic, no OSD or OCR
	PSM_AUTO                   PageSegMode = 3  // Fully automatic (default)
	PSM_SINGLE_COLUMN          PageSegMode = 4  // Single column of variable sizes
	PSM_SINGLE_BLOCK_VERT_TEXT PageSegMode = 5  // Single uniform block of vertically aligned text
	PSM_SINGLE_BLOCK           PageSegMode = 6  // Single uniform block of text
	PSM_SINGLE_LINE            PageSegMode = 7  // Single text line
	PSM_SINGLE_WORD            PageSegMode = 8  // Single word
	PSM_CIRCLE_WORD            PageSegMode = 9  // Single word in a circle
	PSM_SINGLE_CHAR            PageSegMode = 10 // Single character
	PSM_SPARSE_TEXT            PageSegMode = 11 // Find as much text as possible
	PSM_SPARSE_TEXT_OSD        PageSegMode = 12 // Sparse text with OSD
	PSM_RAW_LINE               PageSegMode = 13 // Treat image as single text line
)

// RecognizeDocument recognizes images in order, one page per image, numbered
// from 1. Pages are processed sequentially because a gosseract client holds a
// single engine instance. The first failure aborts with the page number in
// the error.
func RecognizeDocument(ctx context.Context, r Recognizer, images [][]byte) ([]model.Page, error) {
	pages := make([]model.Page, 0, len(images))
	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tokens, err := r.Recognize(ctx, img)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}

		page := model.NewPage(i + 1)
		page.Tokens = tokens
		pages = append(pages, page)
	}
	return pages, nil
}
