package labscan

import (
	"context"
	"fmt"
	"sort"

	"github.com/tsawler/labscan/model"
	"github.com/tsawler/labscan/tables"
)

// Builder provides a fluent interface for reconstructing a table from
// recognized pages. Each configuration method returns a new Builder, so a
// partially configured Builder can be shared and reused.
type Builder struct {
	pages   []model.Page
	ctx     context.Context
	options buildOptions
}

// clone creates a shallow copy of the Builder with a deep copy of options.
// Pages are never mutated, so the slice is shared.
func (b *Builder) clone() *Builder {
	return &Builder{
		pages:   b.pages,
		ctx:     b.ctx,
		options: b.options.clone(),
	}
}

// Pages restricts reconstruction to the given page numbers (1-indexed).
// Calls accumulate; duplicates are ignored.
//
// Example:
//
//	table, err := labscan.FromPages(pages...).Pages(1, 3).Table()
func (b *Builder) Pages(numbers ...int) *Builder {
	nb := b.clone()
	nb.options.pages = append(nb.options.pages, numbers...)
	return nb
}

// RowThreshold sets the maximum vertical distance, as a fraction of page
// height, between a token and the first token of its row.
func (b *Builder) RowThreshold(f float64) *Builder {
	nb := b.clone()
	nb.options.config.RowThreshold = f
	return nb
}

// CellGapThreshold sets the horizontal gap, as a fraction of page width,
// above which a new cell starts.
func (b *Builder) CellGapThreshold(f float64) *Builder {
	nb := b.clone()
	nb.options.config.CellGapThreshold = f
	return nb
}

// MinCells sets the minimum number of cells a row needs to be kept.
func (b *Builder) MinCells(n int) *Builder {
	nb := b.clone()
	nb.options.config.MinCells = n
	return nb
}

// Context sets the context used by Table.
func (b *Builder) Context(ctx context.Context) *Builder {
	nb := b.clone()
	nb.ctx = ctx
	return nb
}

// Table reconstructs the selected pages into one table, in page order.
// It fails on an invalid configuration, an unknown page number, or when the
// context ends first.
func (b *Builder) Table() (model.Table, error) {
	r, err := tables.NewGeometricReconstructorWithConfig(b.options.config)
	if err != nil {
		return model.NewTable(), err
	}

	selected, err := b.resolvePages()
	if err != nil {
		return model.NewTable(), err
	}

	ctx := b.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return tables.ReconstructPages(ctx, r, selected)
}

// resolvePages returns the selected pages in ascending page order.
func (b *Builder) resolvePages() ([]model.Page, error) {
	if len(b.options.pages) == 0 {
		return b.pages, nil
	}

	byNumber := make(map[int]model.Page, len(b.pages))
	for _, p := range b.pages {
		byNumber[p.Number] = p
	}

	seen := make(map[int]bool)
	var numbers []int
	for _, n := range b.options.pages {
		if _, ok := byNumber[n]; !ok {
			return nil, fmt.Errorf("page %d not found (have %d pages)", n, len(b.pages))
		}
		if !seen[n] {
			seen[n] = true
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)

	out := make([]model.Page, len(numbers))
	for i, n := range numbers {
		out[i] = byNumber[n]
	}
	return out, nil
}
