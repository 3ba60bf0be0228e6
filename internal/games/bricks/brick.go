package bricks

import (
	"fmt"

	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/core"
	"github.com/vovakirdan/tui-bricks/internal/render"
)

// Stage is a brick's degradation state. Stage 0 is the weakest.
type Stage int

// stageInfo is one durability step and its colors.
type stageInfo struct {
	name   string
	fill   core.Color
	border core.Color
}

// StageTable is the brick transition table. Built from an ordered list, every
// stage steps down to the one before it and stage 0 steps to removal, so the
// table is total and acyclic.
type StageTable struct {
	stages []stageInfo
}

// NewStageTable builds a table from stages ordered weakest first.
func NewStageTable(stages []config.StageConfig) (StageTable, error) {
	if len(stages) == 0 {
		return StageTable{}, fmt.Errorf("bricks: no brick stages configured")
	}
	t := StageTable{stages: make([]stageInfo, len(stages))}
	for i, st := range stages {
		t.stages[i] = stageInfo{name: st.Name, fill: st.Fill, border: st.Border}
	}
	return t, nil
}

// Len returns the number of stages.
func (t StageTable) Len() int { return len(t.stages) }

// Valid reports whether s is a stage of this table.
func (t StageTable) Valid(s Stage) bool { return s >= 0 && int(s) < len(t.stages) }

// Next returns the successor of s. remove is true when s is the last stage
// before removal.
func (t StageTable) Next(s Stage) (next Stage, remove bool) {
	if s <= 0 {
		return 0, true
	}
	return s - 1, false
}

// Colors returns the fill and border color of s.
func (t StageTable) Colors(s Stage) (fill, border core.Color) {
	st := t.stages[s]
	return st.fill, st.border
}

// Name returns the configured name of s.
func (t StageTable) Name(s Stage) string {
	return t.stages[s].name
}

// HitsToRemove returns how many hits a brick at s survives before removal.
func (t StageTable) HitsToRemove(s Stage) int {
	return int(s) + 1
}

// Strongest returns the highest stage.
func (t StageTable) Strongest() Stage {
	return Stage(len(t.stages) - 1)
}

// Brick is one live brick.
type Brick struct {
	ID     string // "brick_<Index>"
	Index  int
	Bounds core.Bounds
	Sprite render.Handle
	Stage  Stage
	Col    int
	Row    int
}

// sprite returns the bordered sprite for a brick at the given stage.
func (t StageTable) sprite(b core.Bounds, s Stage) render.BorderedSprite {
	fill, border := t.Colors(s)
	return render.BorderedSprite{
		Box:    render.Box{Bounds: b},
		Fill:   fill,
		Border: border,
	}
}

// hitBrick applies one hit to a brick: it either recolors the brick to its
// next stage in place or removes it from the renderer and both registries.
func (s *Session) hitBrick(id string) error {
	b, ok := s.bricks[id]
	if !ok {
		return fmt.Errorf("bricks: hit on unknown brick %q", id)
	}

	next, remove := s.stages.Next(b.Stage)
	if remove {
		if _, err := s.renderer.Delete(b.Sprite); err != nil {
			return fmt.Errorf("bricks: delete sprite of %s: %w", id, err)
		}
		delete(s.bricks, id)
		s.statics.remove(id)
		s.log.Debug("brick removed", "id", id, "left", len(s.bricks))
		return nil
	}

	b.Stage = next
	s.bricks[id] = b
	fill, border := s.stages.Colors(next)
	err := render.Mutate(s.renderer, b.Sprite, func(sp render.BorderedSprite) render.BorderedSprite {
		sp.Fill = fill
		sp.Border = border
		return sp
	})
	if err != nil {
		return fmt.Errorf("bricks: recolor %s: %w", id, err)
	}
	s.log.Debug("brick degraded", "id", id, "stage", s.stages.Name(next))
	return nil
}
