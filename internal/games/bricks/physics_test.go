package bricks

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tui-bricks/internal/core"
)

func rect(cx, cy, hw, hh float64) core.PhysicsRect {
	return core.PhysicsRect{CX: cx, CY: cy, HW: hw, HH: hh}
}

func TestResolveHit(t *testing.T) {
	const eps = DefaultTieEpsilon
	tests := []struct {
		name         string
		next, static core.PhysicsRect
		step         core.Vec2
		wantF        float64
		wantX, wantY bool
		tied         bool
	}{
		{
			// Next overlaps (2,2) with step (4,4): both axes crossed together
			name:   "corner",
			next:   rect(7, 7, 5, 5),
			static: rect(20, 20, 10, 10),
			step:   core.Vec2{X: 4, Y: 4},
			wantF:  0.5,
			wantX:  true,
			wantY:  true,
			tied:   true,
		},
		{
			// Overlap (2,1): the y edge was crossed last
			name:   "top edge",
			next:   rect(7, 6, 5, 5),
			static: rect(20, 20, 10, 10),
			step:   core.Vec2{X: 4, Y: 4},
			wantF:  0.75,
			wantY:  true,
		},
		{
			name:   "side edge",
			next:   rect(6, 7, 5, 5),
			static: rect(20, 20, 10, 10),
			step:   core.Vec2{X: 4, Y: 4},
			wantF:  0.75,
			wantX:  true,
		},
		{
			name:   "vertical only",
			next:   rect(0, 12, 4, 4),
			static: rect(0, 20, 50, 6),
			step:   core.Vec2{X: 0, Y: 4},
			wantF:  0.5,
			wantY:  true,
		},
		{
			name:   "horizontal only",
			next:   rect(12, 0, 4, 4),
			static: rect(20, 0, 6, 50),
			step:   core.Vec2{X: 4, Y: 0},
			wantF:  0.5,
			wantX:  true,
		},
		{
			name:   "whole step after contact",
			next:   rect(0, 15.5, 4, 4),
			static: rect(0, 18.5, 50, 1),
			step:   core.Vec2{X: 0, Y: 2},
			wantF:  0,
			wantY:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveHit(tt.next, tt.static, tt.step, eps)
			if err != nil {
				t.Fatalf("ResolveHit: %v", err)
			}
			if got.F != tt.wantF {
				t.Errorf("F = %v, expected %v", got.F, tt.wantF)
			}
			if got.FlipX != tt.wantX || got.FlipY != tt.wantY {
				t.Errorf("flips = (%v,%v), expected (%v,%v)", got.FlipX, got.FlipY, tt.wantX, tt.wantY)
			}
			wantEF := tt.wantF
			if tt.tied {
				wantEF += eps
			}
			if got.EF != wantEF {
				t.Errorf("EF = %v, expected %v", got.EF, wantEF)
			}
			if got.F < 0 || got.F > 1 {
				t.Errorf("F = %v outside [0,1]", got.F)
			}
		})
	}
}

func TestResolveHitInvariant(t *testing.T) {
	tests := []struct {
		name string
		next core.PhysicsRect
		step core.Vec2
	}{
		{"overlap deeper than step", rect(10, 10, 5, 5), core.Vec2{X: 4, Y: 4}},
		{"no motion", rect(7, 7, 5, 5), core.Vec2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveHit(tt.next, rect(20, 20, 10, 10), tt.step, DefaultTieEpsilon)
			if !errors.Is(err, ErrPhysicsInvariant) {
				t.Errorf("error = %v, expected ErrPhysicsInvariant", err)
			}
		})
	}
}

func TestResolveHitNoNaN(t *testing.T) {
	got, err := ResolveHit(rect(0, 12, 4, 4), rect(0, 20, 50, 6), core.Vec2{Y: 4}, DefaultTieEpsilon)
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(got.F) || math.IsNaN(got.EF) {
		t.Errorf("stationary axis leaked NaN: %+v", got)
	}
}

func TestDeflectSpeed(t *testing.T) {
	const (
		speed = 500.0
		maxDX = speed / 2
		hw    = 75.0
	)
	velocities := []core.Vec2{
		{X: 0, Y: -100},
		{X: 100, Y: -100},
		{X: -300, Y: -40},
		{X: 1, Y: -2000},
		{X: 499, Y: -1},
	}
	offsets := []float64{-200, -87.5, -75, -40, -1, 0, 0.5, 30, 75, 87.5, 300}

	for _, v := range velocities {
		for _, off := range offsets {
			got, err := deflect(v, off, hw, speed, maxDX)
			if err != nil {
				t.Fatalf("deflect(%v, %v): %v", v, off, err)
			}
			if d := math.Abs(got.Len() - speed); d > 1e-9 {
				t.Errorf("deflect(%v, %v) speed = %v, expected %v", v, off, got.Len(), speed)
			}
			if got.Y >= 0 {
				t.Errorf("deflect(%v, %v) = %v, expected upward velocity", v, off, got)
			}
		}
	}
}

func TestDeflectShape(t *testing.T) {
	center, err := deflect(core.Vec2{X: 0, Y: -100}, 0, 75, 500, 250)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(center.X) > 1e-9 || math.Abs(center.Y+500) > 1e-9 {
		t.Errorf("center hit = %v, expected straight up", center)
	}

	right, _ := deflect(core.Vec2{X: 0, Y: -100}, 75, 75, 500, 250)
	left, _ := deflect(core.Vec2{X: 0, Y: -100}, -75, 75, 500, 250)
	if right.X <= 0 || left.X >= 0 {
		t.Errorf("edge hits should steer outward: left %v right %v", left, right)
	}

	// Past the edge clamps to the edge response
	beyond, _ := deflect(core.Vec2{X: 0, Y: -100}, 200, 75, 500, 250)
	if math.Abs(beyond.X-right.X) > 1e-9 || math.Abs(beyond.Y-right.Y) > 1e-9 {
		t.Errorf("offset past edge = %v, expected %v", beyond, right)
	}

	// Steering is sharper than linear near the edge
	half, _ := deflect(core.Vec2{X: 0, Y: -100}, 37.5, 75, 500, 250)
	if half.X >= right.X/2 {
		t.Errorf("half-offset kick %v should be under half the edge kick %v", half.X, right.X)
	}
}

func TestDeflectZeroVelocity(t *testing.T) {
	_, err := deflect(core.Vec2{}, 10, 75, 500, 250)
	if !errors.Is(err, ErrPhysicsInvariant) {
		t.Errorf("error = %v, expected ErrPhysicsInvariant", err)
	}
}
