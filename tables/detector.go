package tables

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/tsawler/labscan/model"
)

// ErrInvalidConfig is returned by Configure when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid reconstructor config")

// Reconstructor is the interface for table reconstruction algorithms
type Reconstructor interface {
	// Reconstruct rebuilds the rows of one page
	Reconstruct(tokens []model.Token) model.Table

	// Name returns the reconstructor name
	Name() string

	// Configure sets reconstructor parameters
	Configure(config Config) error
}

// Config holds reconstructor configuration
type Config struct {
	// Maximum vertical distance from a row's first token for another token
	// to join that row (normalized page height)
	RowThreshold float64

	// Horizontal gap above which the next token starts a new cell
	// (normalized page width)
	CellGapThreshold float64

	// Minimum non-empty cells for a row to be kept
	MinCells int
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		RowThreshold:     0.015,
		CellGapThreshold: 0.02,
		MinCells:         2,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.RowThreshold < 0 {
		return fmt.Errorf("%w: row threshold %v is negative", ErrInvalidConfig, c.RowThreshold)
	}
	if c.CellGapThreshold < 0 {
		return fmt.Errorf("%w: cell gap threshold %v is negative", ErrInvalidConfig, c.CellGapThreshold)
	}
	if c.MinCells < 1 {
		return fmt.Errorf("%w: min cells %d is below 1", ErrInvalidConfig, c.MinCells)
	}
	return nil
}

// ReconstructorRegistry holds registered reconstructors
type ReconstructorRegistry struct {
	mu             sync.RWMutex
	reconstructors map[string]Reconstructor
}

// NewRegistry creates a new reconstructor registry
func NewRegistry() *ReconstructorRegistry {
	return &ReconstructorRegistry{
		reconstructors: make(map[string]Reconstructor),
	}
}

// Register registers a reconstructor
func (r *ReconstructorRegistry) Register(rc Reconstructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reconstructors[rc.Name()] = rc
}

// Get retrieves a reconstructor by name
func (r *ReconstructorRegistry) Get(name string) Reconstructor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reconstructors[name]
}

// List returns all registered reconstructor names, sorted
func (r *ReconstructorRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.reconstructors))
	for name := range r.reconstructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Global registry
var globalRegistry = NewRegistry()

// RegisterReconstructor registers a reconstructor globally
func RegisterReconstructor(rc Reconstructor) {
	globalRegistry.Register(rc)
}

// GetReconstructor retrieves a reconstructor by name
func GetReconstructor(name string) Reconstructor {
	return globalRegistry.Get(name)
}

// ListReconstructors returns all registered reconstructor names
func ListReconstructors() []string {
	return globalRegistry.List()
}

func init() {
	// Register default reconstructors
	RegisterReconstructor(NewGeometricReconstructor())
}
