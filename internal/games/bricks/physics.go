// Package bricks implements the brick-breaking simulation: a swept AABB
// collision step, brick degradation, paddle deflection and the frame loop
// that drives them against a render.Renderer.
package bricks

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-bricks/internal/core"
)

// ErrPhysicsInvariant signals corrupted physics state. A session that hits it
// stops; there is no recovery.
var ErrPhysicsInvariant = errors.New("bricks: physics invariant violated")

// DefaultTieEpsilon orders a tied corner hit after an edge hit.
const DefaultTieEpsilon = 1e-4

// HitResult describes a swept contact against one static body.
type HitResult struct {
	F     float64 // Fraction of the step travelled before contact, in [0, 1]
	EF    float64 // F with the tie-break applied; compare candidates on this
	FlipX bool
	FlipY bool
}

// ResolveHit computes where along step the moving body first touched static,
// given next, the already-penetrating position at the end of the step.
//
// The overlap on each axis is converted into the fraction of the step that
// happened after contact; the smaller one wins. A stationary axis never wins.
// Reflection axes come from the overlap left over after backing out that
// fraction: the shallower axis is the one crossed last. Equal leftovers mean
// a corner and flip both. When FlipX equals FlipY, EF is F+eps.
func ResolveHit(next, static core.PhysicsRect, step core.Vec2, eps float64) (HitResult, error) {
	ol := next.OverlapDepth(static)
	asx := math.Abs(step.X)
	asy := math.Abs(step.Y)

	minf := math.Min(axisFraction(ol.X, asx), axisFraction(ol.Y, asy))
	if minf > 1 || math.IsNaN(minf) {
		return HitResult{}, fmt.Errorf("%w: overlap %v needs %v of step %v", ErrPhysicsInvariant, ol, minf, step)
	}

	adj := core.Vec2{
		X: ol.X - minf*asx,
		Y: ol.Y - minf*asy,
	}
	res := HitResult{
		F:     1 - minf,
		FlipX: adj.X <= adj.Y,
		FlipY: adj.X >= adj.Y,
	}
	res.EF = res.F
	if res.FlipX == res.FlipY {
		res.EF += eps
	}
	return res, nil
}

// axisFraction is overlap/travel with a stationary axis treated as +Inf.
func axisFraction(overlap, travel float64) float64 {
	if travel == 0 {
		return math.Inf(1)
	}
	return overlap / travel
}
