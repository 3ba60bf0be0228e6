// Package core provides fundamental types and utilities for the brick game.
// It contains no external dependencies (especially no Bubble Tea) to keep the
// simulation pure and testable.
package core

import "math"

// Vec2 is a 2D displacement or velocity. Every operation returns a new value.
type Vec2 struct {
	X, Y float64
}

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Add returns the component-wise sum.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Len returns the Euclidean norm.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Norm rescales v to the given length.
// The result is NaN for a zero vector; check IsZero first.
func (v Vec2) Norm(length float64) Vec2 {
	m := v.Len()
	return Vec2{X: v.X * length / m, Y: v.Y * length / m}
}

// Bounds is a corner-origin rectangle, the representation the renderer uses.
type Bounds struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// PhysicsRect is an axis-aligned box stored as center and half-extents.
type PhysicsRect struct {
	CX, CY float64 // Center
	HW, HH float64 // Half width, half height (never negative)
}

// RectFromBounds converts a corner rectangle to center/half-extent form.
func RectFromBounds(b Bounds) PhysicsRect {
	return PhysicsRect{
		CX: b.X + b.W/2,
		CY: b.Y + b.H/2,
		HW: b.W / 2,
		HH: b.H / 2,
	}
}

// Bounds converts back to corner-origin form.
func (r PhysicsRect) Bounds() Bounds {
	return Bounds{
		X: r.CX - r.HW,
		Y: r.CY - r.HH,
		W: r.HW * 2,
		H: r.HH * 2,
	}
}

// Left returns the x-coordinate of the left edge.
func (r PhysicsRect) Left() float64 { return r.CX - r.HW }

// Right returns the x-coordinate of the right edge.
func (r PhysicsRect) Right() float64 { return r.CX + r.HW }

// Top returns the y-coordinate of the top edge.
func (r PhysicsRect) Top() float64 { return r.CY - r.HH }

// Bottom returns the y-coordinate of the bottom edge.
func (r PhysicsRect) Bottom() float64 { return r.CY + r.HH }

// Translate returns the rectangle moved by v.
func (r PhysicsRect) Translate(v Vec2) PhysicsRect {
	r.CX += v.X
	r.CY += v.Y
	return r
}

// Overlaps returns true if the two rectangles share interior area.
// Touching edges do not count.
func (r PhysicsRect) Overlaps(other PhysicsRect) bool {
	dx := math.Abs(r.CX - other.CX)
	dy := math.Abs(r.CY - other.CY)
	return dx < r.HW+other.HW && dy < r.HH+other.HH
}

// OverlapDepth returns the width (X) and height (Y) of the intersection.
// Only meaningful when Overlaps is true; otherwise components may be negative.
func (r PhysicsRect) OverlapDepth(other PhysicsRect) Vec2 {
	x0 := math.Max(r.Left(), other.Left())
	x1 := math.Min(r.Right(), other.Right())
	y0 := math.Max(r.Top(), other.Top())
	y1 := math.Min(r.Bottom(), other.Bottom())
	return Vec2{X: x1 - x0, Y: y1 - y0}
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
