package model

import "strings"

// Page holds the recognized tokens of a single document page.
type Page struct {
	Number int     // 1-indexed page number
	Tokens []Token // Recognition order; not sorted
}

// NewPage creates an empty page with the given number.
func NewPage(number int) Page {
	return Page{Number: number, Tokens: make([]Token, 0)}
}

// AddToken appends a token to the page.
func (p *Page) AddToken(t Token) {
	p.Tokens = append(p.Tokens, t)
}

// IsEmpty reports whether the page has no non-blank tokens.
func (p Page) IsEmpty() bool {
	for _, t := range p.Tokens {
		if !t.IsBlank() {
			return false
		}
	}
	return true
}

// Text joins the non-blank token texts with single spaces in recognition order.
func (p Page) Text() string {
	parts := make([]string, 0, len(p.Tokens))
	for _, t := range p.Tokens {
		if s := strings.TrimSpace(t.Text); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Document is an ordered list of recognized pages.
type Document struct {
	Pages []Page
}

// AddPage appends a page and assigns it the next page number.
func (d *Document) AddPage(page Page) {
	page.Number = len(d.Pages) + 1
	d.Pages = append(d.Pages, page)
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// GetPage returns a page by number (1-indexed), or nil if out of range.
func (d *Document) GetPage(number int) *Page {
	if number < 1 || number > len(d.Pages) {
		return nil
	}
	return &d.Pages[number-1]
}
