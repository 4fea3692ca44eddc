package model

import (
	"fmt"
	"strings"
)

// Token is one recognized text fragment on a page.
// Coordinates are normalized to [0, 1] with a top-down vertical axis.
type Token struct {
	Text    string
	XStart  float64 // Left edge
	XEnd    float64 // Right edge
	YCenter float64 // Vertical center, 0 = top of page
}

// NewToken creates a token from normalized coordinates.
func NewToken(text string, xStart, xEnd, yCenter float64) Token {
	return Token{Text: text, XStart: xStart, XEnd: xEnd, YCenter: yCenter}
}

// NewTokenFromPixels creates a token from a pixel bounding box (x0, y0) to
// (x1, y1) with a top-left origin on a page of the given size.
func NewTokenFromPixels(text string, x0, y0, x1, y1, pageWidth, pageHeight float64) Token {
	xs, xe := NormalizeSpan(x0, x1, pageWidth)
	ys, ye := NormalizeSpan(y0, y1, pageHeight)
	return Token{
		Text:    text,
		XStart:  xs,
		XEnd:    xe,
		YCenter: (ys + ye) / 2,
	}
}

// Width returns the horizontal extent of the token.
func (t Token) Width() float64 {
	return t.XEnd - t.XStart
}

// Gap returns the horizontal distance from the end of t to the start of next.
// The value is negative when the two tokens overlap.
func (t Token) Gap(next Token) float64 {
	return next.XStart - t.XEnd
}

// IsBlank reports whether the token carries no visible text.
func (t Token) IsBlank() bool {
	return strings.TrimSpace(t.Text) == ""
}

// Flipped returns a copy with the vertical axis inverted.
func (t Token) Flipped() Token {
	t.YCenter = FlipVertical(t.YCenter)
	return t
}

// Clamp returns a copy with every coordinate pinned into [0, 1] and
// XStart <= XEnd.
func (t Token) Clamp() Token {
	t.XStart = Clamp01(t.XStart)
	t.XEnd = Clamp01(t.XEnd)
	if t.XEnd < t.XStart {
		t.XStart, t.XEnd = t.XEnd, t.XStart
	}
	t.YCenter = Clamp01(t.YCenter)
	return t
}

func (t Token) String() string {
	return fmt.Sprintf("%q [%.3f-%.3f @%.3f]", t.Text, t.XStart, t.XEnd, t.YCenter)
}
