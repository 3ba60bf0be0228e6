package render

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-bricks/internal/core"
)

// Handle is an opaque reference to a sprite or image owned by a Renderer.
type Handle string

var (
	// ErrUnknownHandle is returned when a handle does not name a live sprite.
	ErrUnknownHandle = errors.New("render: unknown handle")

	// ErrKindMismatch is returned when a sprite is mutated as the wrong kind.
	ErrKindMismatch = errors.New("render: sprite kind mismatch")
)

// Renderer is the presentation contract the simulation requires.
type Renderer interface {
	// Create allocates a drawable and returns a unique handle.
	Create(s Sprite) Handle

	// Update replaces a sprite with the result of fn.
	// Returns ErrUnknownHandle if h is not live, or fn's error.
	Update(h Handle, fn func(Sprite) (Sprite, error)) error

	// Delete removes a sprite and returns its last attributes.
	Delete(h Handle) (Sprite, error)

	// CreateImage registers an image source for use by ImageSprite.
	CreateImage(src string) Handle

	// SetBounds declares the arena's pixel dimensions.
	SetBounds(width, height float64)

	// RootBounds reports where the arena sits in pointer coordinates.
	// The second result is false while that is unknown.
	RootBounds() (core.Bounds, bool)
}

// Mutate updates the sprite at h, which must be of concrete type T.
// A sprite of any other kind fails with ErrKindMismatch and is left untouched.
func Mutate[T Sprite](r Renderer, h Handle, fn func(T) T) error {
	return r.Update(h, func(s Sprite) (Sprite, error) {
		t, ok := s.(T)
		if !ok {
			var want T
			return nil, fmt.Errorf("%w: %s is %s, want %s", ErrKindMismatch, h, s.Kind(), want.Kind())
		}
		return fn(t), nil
	})
}

// SetBoundsOf moves the sprite at h to b, whatever its kind.
func SetBoundsOf(r Renderer, h Handle, b core.Bounds) error {
	return r.Update(h, func(s Sprite) (Sprite, error) {
		return Move(s, b), nil
	})
}
