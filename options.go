package labscan

import (
	"github.com/tsawler/labscan/tables"
)

// buildOptions holds configuration for table reconstruction.
type buildOptions struct {
	// Page selection (1-indexed, as given by the caller)
	pages []int

	// Geometry
	config tables.Config
}

// defaultOptions returns the default build options.
func defaultOptions() buildOptions {
	return buildOptions{
		pages:  nil, // nil means all pages
		config: tables.DefaultConfig(),
	}
}

// clone creates a deep copy of buildOptions.
func (o buildOptions) clone() buildOptions {
	newOpts := buildOptions{config: o.config}
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	return newOpts
}
