package bricks

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/vovakirdan/tui-bricks/internal/registry"
)

// Register all layouts on package load.
func init() {
	registry.Register("random", func() registry.Layout { return randomLayout{} })
	registry.Register("striped", func() registry.Layout { return stripedLayout{} })
	registry.Register("full", func() registry.Layout { return fullLayout{} })
	registry.Register("map", func() registry.Layout { return mapLayout{id: "map", title: "Map (from config)"} })

	for _, m := range builtinMaps {
		registry.Register(m.id, func() registry.Layout { return m })
	}
}

// randomLayout keeps each cell with probability Density, at the weakest stage.
type randomLayout struct{}

func (randomLayout) ID() string    { return "random" }
func (randomLayout) Title() string { return "Random" }

func (randomLayout) Place(p registry.Params, rng *rand.Rand) ([]registry.Placement, error) {
	var out []registry.Placement
	for col := range p.Cols {
		for row := range p.Rows {
			if rng.Float64() >= p.Density {
				continue
			}
			out = append(out, registry.Placement{Col: col, Row: row})
		}
	}
	return out, nil
}

// stripedLayout fills every cell, cycling stages along the diagonals.
type stripedLayout struct{}

func (stripedLayout) ID() string    { return "striped" }
func (stripedLayout) Title() string { return "Striped" }

func (stripedLayout) Place(p registry.Params, _ *rand.Rand) ([]registry.Placement, error) {
	out := make([]registry.Placement, 0, p.Cols*p.Rows)
	for col := range p.Cols {
		for row := range p.Rows {
			out = append(out, registry.Placement{Col: col, Row: row, Stage: (col + row) % p.Stages})
		}
	}
	return out, nil
}

// fullLayout fills every cell at the strongest stage.
type fullLayout struct{}

func (fullLayout) ID() string    { return "full" }
func (fullLayout) Title() string { return "Full" }

func (fullLayout) Place(p registry.Params, _ *rand.Rand) ([]registry.Placement, error) {
	out := make([]registry.Placement, 0, p.Cols*p.Rows)
	for col := range p.Cols {
		for row := range p.Rows {
			out = append(out, registry.Placement{Col: col, Row: row, Stage: p.Stages - 1})
		}
	}
	return out, nil
}

// mapLayout places bricks from ASCII rows. With no rows of its own it reads
// Params.Map.
type mapLayout struct {
	id    string
	title string
	rows  []string
}

func (m mapLayout) ID() string    { return m.id }
func (m mapLayout) Title() string { return m.title }

func (m mapLayout) Place(p registry.Params, _ *rand.Rand) ([]registry.Placement, error) {
	rows := m.rows
	if rows == nil {
		rows = p.Map
	}
	if len(rows) == 0 {
		return nil, errors.New("map layout needs bricks.map rows")
	}
	return ParseMap(rows, p.Stages)
}

// ParseMap converts ASCII rows into placements.
// Characters:
//
//	'.' or ' ' = empty
//	'#' = weakest stage
//	'H' = strongest stage
//	'1'-'9' = stage digit-1
func ParseMap(rows []string, stages int) ([]registry.Placement, error) {
	width := 0
	for _, line := range rows {
		width = max(width, len(line))
	}

	var out []registry.Placement
	for col := range width {
		for row, line := range rows {
			if col >= len(line) {
				continue
			}
			ch := line[col]

			var stage int
			switch {
			case ch == '.' || ch == ' ':
				continue
			case ch == '#':
				stage = 0
			case ch == 'H' || ch == 'h':
				stage = stages - 1
			case ch >= '1' && ch <= '9':
				stage = int(ch - '1')
				if stage >= stages {
					return nil, fmt.Errorf("map (%d,%d): stage %c but only %d stages configured", col, row, ch, stages)
				}
			default:
				return nil, fmt.Errorf("map (%d,%d): unknown cell %q", col, row, ch)
			}
			out = append(out, registry.Placement{Col: col, Row: row, Stage: stage})
		}
	}
	return out, nil
}

// builtinMaps are fixed layouts sized for the default 20x10 grid.
var builtinMaps = []mapLayout{
	{id: "pyramid", title: "Pyramid", rows: []string{
		"........HH..........",
		"......3333..........",
		"....22222222........",
		"..############......",
		"####################",
	}},
	{id: "checker", title: "Checkerboard", rows: []string{
		"#.#.#.#.#.#.#.#.#.#.",
		".#.#.#.#.#.#.#.#.#.#",
		"#.#.#.#.#.#.#.#.#.#.",
		".#.#.#.#.#.#.#.#.#.#",
		"#.#.#.#.#.#.#.#.#.#.",
		".#.#.#.#.#.#.#.#.#.#",
	}},
	{id: "diamond", title: "Diamond", rows: []string{
		".........HH.........",
		"........2222........",
		".......######.......",
		"......########......",
		".....##########.....",
		"......########......",
		".......######.......",
		"........2222........",
		".........HH.........",
	}},
	{id: "fortress", title: "Fortress", rows: []string{
		"HHHHHHHHHHHHHHHHHHHH",
		"H..................H",
		"H.################.H",
		"H.################.H",
		"H.################.H",
		"H..................H",
		"HHHHHHHHHHHHHHHHHHHH",
	}},
	{id: "heart", title: "Heart", rows: []string{
		"...##....##.........",
		"..####..####........",
		".##############.....",
		".##############.....",
		"..############......",
		"...##########.......",
		"....########........",
		".....######.........",
		"......####..........",
		".......##...........",
	}},
}
