// Package labscan provides a fluent API for turning recognized lab-report
// pages into tables and chat-completion answers into typed records.
//
// Basic usage:
//
//	table, err := labscan.FromPages(pages...).Table()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Print(table.ToMarkdown())
//
// With options:
//
//	table, err := labscan.FromPages(pages...).
//	    Pages(1, 2).
//	    CellGapThreshold(0.03).
//	    Context(ctx).
//	    Table()
//
// Answers from a chat model are decoded with Normalize:
//
//	records, err := labscan.Normalize(answer, "department")
//
// For advanced use cases, the tables, normalize, ocr and labreport packages
// are also available.
package labscan

import (
	"github.com/tsawler/labscan/model"
	"github.com/tsawler/labscan/normalize"
)

// FromPages returns a Builder over recognized pages. Page numbers are
// assigned from position (1-indexed) when a page has none.
func FromPages(pages ...model.Page) *Builder {
	b := &Builder{options: defaultOptions()}
	b.pages = make([]model.Page, len(pages))
	for i, p := range pages {
		if p.Number <= 0 {
			p.Number = i + 1
		}
		b.pages[i] = p
	}
	return b
}

// FromTokens returns a Builder over a single page of tokens.
//
// Example:
//
//	table := labscan.Must(labscan.FromTokens(tokens...).Table())
func FromTokens(tokens ...model.Token) *Builder {
	page := model.NewPage(1)
	page.Tokens = append(page.Tokens, tokens...)
	return FromPages(page)
}

// Normalize decodes raw with the named built-in profile.
// Unknown names return normalize.ErrUnknownProfile.
func Normalize(raw, profile string) ([]model.Record, error) {
	p, err := normalize.BuiltinProfile(profile)
	if err != nil {
		return nil, err
	}
	return normalize.Normalize(raw, p), nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	records := labscan.Must(labscan.Normalize(answer, "lab"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
