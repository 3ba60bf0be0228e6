package bricks

import (
	"cmp"
	"slices"

	"github.com/vovakirdan/tui-bricks/internal/core"
)

// staticBody is a collidable that never moves during a step.
type staticBody struct {
	id    string
	seq   uint64 // Insertion order; fixes candidate and tie order
	pos   core.PhysicsRect
	onHit func() error
}

// staticSet is the static physics registry.
type staticSet struct {
	byID    map[string]staticBody
	nextSeq uint64
}

func newStaticSet() *staticSet {
	return &staticSet{byID: make(map[string]staticBody)}
}

func (ss *staticSet) add(id string, pos core.PhysicsRect, onHit func() error) {
	ss.byID[id] = staticBody{id: id, seq: ss.nextSeq, pos: pos, onHit: onHit}
	ss.nextSeq++
}

func (ss *staticSet) remove(id string) {
	delete(ss.byID, id)
}

func (ss *staticSet) has(id string) bool {
	_, ok := ss.byID[id]
	return ok
}

func (ss *staticSet) len() int {
	return len(ss.byID)
}

// overlapping returns every body overlapping r, in insertion order.
func (ss *staticSet) overlapping(r core.PhysicsRect) []staticBody {
	var out []staticBody
	for _, b := range ss.byID {
		if b.pos.Overlaps(r) {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b staticBody) int {
		return cmp.Compare(a.seq, b.seq)
	})
	return out
}
