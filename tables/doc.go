// Package tables reconstructs tabular rows from positional text-recognition
// output.
//
// Scanned lab reports rarely come with a native table primitive: the
// recognizer returns words with bounding boxes and nothing else. This package
// recovers rows and cells from that geometry alone.
//
// # Reconstructors
//
// Reconstruction is performed by types implementing the [Reconstructor]
// interface. The package provides:
//
//   - [GeometricReconstructor] - vertical proximity for rows, horizontal gaps for cells
//
// Reconstructors are registered globally and can be retrieved by name:
//
//	r := tables.GetReconstructor("geometric")
//	table := r.Reconstruct(page.Tokens)
//
// # Geometric Reconstruction
//
// The [GeometricReconstructor] runs three passes over one page:
//
//  1. Row grouping: tokens sorted top to bottom join the open row while their
//     vertical distance from the row's first token is within RowThreshold
//  2. Cell splitting: a row's tokens sorted left to right start a new cell
//     whenever the horizontal gap exceeds CellGapThreshold
//  3. Row filtering: rows with fewer than MinCells non-empty cells are dropped
//
// Grouping is a single greedy pass, not general clustering. Reports with
// tightly packed multi-line cells will under-split, and layouts whose word
// gaps rival their column gaps will over-merge; tune the thresholds for the
// recognizer and scan resolution in use.
//
// # Configuration
//
// Reconstructor behavior is controlled by [Config]:
//
//	config := tables.DefaultConfig()
//	config.RowThreshold = 0.01
//	r.Configure(config)
//
// # Multiple Pages
//
// [ReconstructPages] reconstructs pages concurrently and concatenates the
// results in page order.
//
// # Failure Semantics
//
// Reconstruction never fails. An empty or degenerate token list produces an
// empty [model.Table]; callers decide what an empty table means.
package tables
