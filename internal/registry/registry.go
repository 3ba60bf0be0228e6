// Package registry provides a global registry for brick layout factories.
// Layouts register themselves in init() functions, allowing sessions and the
// CLI to discover them by name without hardcoded dependencies.
package registry

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
)

// Params describes the grid a layout fills.
type Params struct {
	Cols, Rows int
	Stages     int      // Number of durability stages; valid stages are [0, Stages)
	Density    float64  // Keep probability for randomized layouts
	Map        []string // ASCII rows for map-driven layouts
}

// Placement is one brick produced by a layout.
type Placement struct {
	Col, Row int
	Stage    int
}

// Layout decides which grid cells hold bricks and at which stage.
// Layouts are pure: the same Params and RNG state give the same placements.
type Layout interface {
	// ID returns a unique identifier used by config and CLI (e.g. "random").
	ID() string

	// Title returns a human-readable name for listings.
	Title() string

	// Place returns the bricks in creation order, column by column from the
	// left, top to bottom within a column.
	// Placements outside the grid or with a stage outside [0, Stages) are errors.
	Place(p Params, rng *rand.Rand) ([]Placement, error)
}

// LayoutInfo contains metadata about a registered layout.
type LayoutInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a layout.
type Factory func() Layout

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a layout factory to the registry.
// Typically called from an init() function.
// Panics if a layout with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: layout %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered layouts, sorted by ID.
func List() []LayoutInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LayoutInfo, 0, len(factories))
	for id := range factories {
		result = append(result, LayoutInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a layout by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Layout, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown layout %q", id)
	}

	return f(), nil
}

// Exists checks if a layout with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Check validates placements against the grid described by p.
func Check(p Params, placements []Placement) error {
	seen := make(map[[2]int]bool, len(placements))
	for _, pl := range placements {
		if pl.Col < 0 || pl.Col >= p.Cols || pl.Row < 0 || pl.Row >= p.Rows {
			return fmt.Errorf("registry: placement (%d,%d) outside %dx%d grid", pl.Col, pl.Row, p.Cols, p.Rows)
		}
		if pl.Stage < 0 || pl.Stage >= p.Stages {
			return fmt.Errorf("registry: placement (%d,%d) has stage %d, want [0,%d)", pl.Col, pl.Row, pl.Stage, p.Stages)
		}
		cell := [2]int{pl.Col, pl.Row}
		if seen[cell] {
			return fmt.Errorf("registry: cell (%d,%d) placed twice", pl.Col, pl.Row)
		}
		seen[cell] = true
	}
	return nil
}
