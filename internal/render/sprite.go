// Package render defines the presentation contract the simulation talks to
// and an in-memory sprite store that implements it.
package render

import "github.com/vovakirdan/tui-bricks/internal/core"

// Kind names a sprite variant.
type Kind string

const (
	KindColor    Kind = "color"
	KindBordered Kind = "2color"
	KindImage    Kind = "img"
)

// Box is the placement shared by every sprite kind.
type Box struct {
	core.Bounds
	Z int // Draw order, higher on top
}

// Sprite is a drawable. The set of implementations is closed: ColorSprite,
// BorderedSprite and ImageSprite. Consumers switch on the concrete type.
type Sprite interface {
	Kind() Kind
	Placement() Box
	// WithPlacement returns a copy of the sprite moved to b.
	WithPlacement(b Box) Sprite

	sealed()
}

// ColorSprite is a flat-colored rectangle.
type ColorSprite struct {
	Box
	Color core.Color
}

// BorderedSprite is a rectangle with separate fill and border colors.
type BorderedSprite struct {
	Box
	Fill   core.Color
	Border core.Color
}

// ImageSprite draws an image registered with CreateImage.
type ImageSprite struct {
	Box
	Image Handle
}

func (s ColorSprite) Kind() Kind                 { return KindColor }
func (s ColorSprite) Placement() Box             { return s.Box }
func (s ColorSprite) WithPlacement(b Box) Sprite { s.Box = b; return s }
func (ColorSprite) sealed()                      {}

func (s BorderedSprite) Kind() Kind                 { return KindBordered }
func (s BorderedSprite) Placement() Box             { return s.Box }
func (s BorderedSprite) WithPlacement(b Box) Sprite { s.Box = b; return s }
func (BorderedSprite) sealed()                      {}

func (s ImageSprite) Kind() Kind                 { return KindImage }
func (s ImageSprite) Placement() Box             { return s.Box }
func (s ImageSprite) WithPlacement(b Box) Sprite { s.Box = b; return s }
func (ImageSprite) sealed()                      {}

// Move returns s with its bounds replaced, keeping kind, colors and z-order.
func Move(s Sprite, b core.Bounds) Sprite {
	box := s.Placement()
	box.Bounds = b
	return s.WithPlacement(box)
}
