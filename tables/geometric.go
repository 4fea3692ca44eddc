package tables

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/labscan/model"
)

// GeometricReconstructor implements table reconstruction using geometric
// heuristics. Rows come from vertical proximity and cells from horizontal
// gaps between consecutive tokens.
//
// Configure must not be called concurrently with Reconstruct.
type GeometricReconstructor struct {
	config Config
}

// NewGeometricReconstructor creates a new geometric reconstructor with default configuration.
func NewGeometricReconstructor() *GeometricReconstructor {
	return &GeometricReconstructor{
		config: DefaultConfig(),
	}
}

// NewGeometricReconstructorWithConfig creates a geometric reconstructor with
// custom configuration.
func NewGeometricReconstructorWithConfig(config Config) (*GeometricReconstructor, error) {
	g := NewGeometricReconstructor()
	if err := g.Configure(config); err != nil {
		return nil, err
	}
	return g, nil
}

// Name returns the reconstructor's identifier ("geometric").
func (g *GeometricReconstructor) Name() string {
	return "geometric"
}

// Configure sets the reconstructor configuration. An invalid configuration is
// rejected and the previous one stays in effect.
func (g *GeometricReconstructor) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	g.config = config
	return nil
}

// Config returns the active configuration.
func (g *GeometricReconstructor) Config() Config {
	return g.config
}

// Reconstruct rebuilds the table rows of one page. Rows are emitted top to
// bottom; rows with fewer than MinCells cells are dropped. The input slice is
// not modified.
func (g *GeometricReconstructor) Reconstruct(tokens []model.Token) model.Table {
	table := model.NewTable()
	if len(tokens) == 0 {
		return table
	}

	for _, row := range g.groupRows(tokens) {
		cells := g.splitCells(row)
		if len(cells) >= g.config.MinCells {
			table.Append(cells)
		}
	}

	return table
}

// groupRows sorts tokens top to bottom and walks them once. A token joins the
// open row when it lies within RowThreshold of the row's first token;
// otherwise it opens a new row.
func (g *GeometricReconstructor) groupRows(tokens []model.Token) [][]model.Token {
	sorted := make([]model.Token, len(tokens))
	copy(sorted, tokens)

	// Sort by Y position (top to bottom)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].YCenter < sorted[j].YCenter
	})

	var rows [][]model.Token
	current := []model.Token{sorted[0]}

	for i := 1; i < len(sorted); i++ {
		anchor := current[0]
		if math.Abs(sorted[i].YCenter-anchor.YCenter) <= g.config.RowThreshold {
			current = append(current, sorted[i])
			continue
		}
		rows = append(rows, current)
		current = []model.Token{sorted[i]}
	}

	return append(rows, current)
}

// splitCells sorts a row left to right and concatenates consecutive tokens
// into cells, starting a new cell whenever the gap from the previous token's
// right edge exceeds CellGapThreshold. Blank tokens contribute no text but
// still take part in the gap computation. Empty cells are dropped.
func (g *GeometricReconstructor) splitCells(row []model.Token) model.Row {
	sorted := make([]model.Token, len(row))
	copy(sorted, row)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].XStart < sorted[j].XStart
	})

	cells := make(model.Row, 0, len(sorted))
	var words []string

	flush := func() {
		if text := strings.Join(words, " "); text != "" {
			cells = append(cells, text)
		}
		words = words[:0]
	}

	for i, tok := range sorted {
		if i > 0 && sorted[i-1].Gap(tok) > g.config.CellGapThreshold {
			flush()
		}
		if !tok.IsBlank() {
			words = append(words, strings.Join(strings.Fields(tok.Text), " "))
		}
	}
	flush()

	return cells
}
