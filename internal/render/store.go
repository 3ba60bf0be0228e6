package render

import (
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-bricks/internal/core"
)

// Entry is a live sprite together with its handle.
type Entry struct {
	Handle Handle
	Sprite Sprite
	seq    uint64
}

// Store is an in-memory Renderer. A view reads it back with List and draws
// the result however it likes; the store itself never draws.
type Store struct {
	mu      sync.RWMutex
	nextID  uint64
	sprites map[Handle]Entry
	images  map[Handle]string

	width, height float64
	root          func() (core.Bounds, bool)
}

// NewStore creates an empty store with no root bounds provider.
func NewStore() *Store {
	return &Store{
		sprites: make(map[Handle]Entry),
		images:  make(map[Handle]string),
	}
}

func (s *Store) handle(prefix string) Handle {
	s.nextID++
	return Handle(fmt.Sprintf("%s%d", prefix, s.nextID))
}

// Create implements Renderer.
func (s *Store) Create(sp Sprite) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.handle("s")
	s.sprites[h] = Entry{Handle: h, Sprite: sp, seq: s.nextID}
	return h
}

// Update implements Renderer.
func (s *Store) Update(h Handle, fn func(Sprite) (Sprite, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sprites[h]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, h)
	}
	next, err := fn(e.Sprite)
	if err != nil {
		return err
	}
	e.Sprite = next
	s.sprites[h] = e
	return nil
}

// Delete implements Renderer.
func (s *Store) Delete(h Handle) (Sprite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sprites[h]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHandle, h)
	}
	delete(s.sprites, h)
	return e.Sprite, nil
}

// CreateImage implements Renderer.
func (s *Store) CreateImage(src string) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.handle("img")
	s.images[h] = src
	return h
}

// Image returns the source registered for an image handle.
func (s *Store) Image(h Handle) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src, ok := s.images[h]
	return src, ok
}

// SetBounds implements Renderer.
func (s *Store) SetBounds(width, height float64) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()
}

// Size returns the arena dimensions last declared with SetBounds.
func (s *Store) Size() (width, height float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

// SetRoot installs the function that reports where the arena sits in
// pointer coordinates. Passing nil makes RootBounds unavailable.
func (s *Store) SetRoot(fn func() (core.Bounds, bool)) {
	s.mu.Lock()
	s.root = fn
	s.mu.Unlock()
}

// RootBounds implements Renderer.
func (s *Store) RootBounds() (core.Bounds, bool) {
	s.mu.RLock()
	fn := s.root
	s.mu.RUnlock()

	if fn == nil {
		return core.Bounds{}, false
	}
	return fn()
}

// Get returns the sprite behind a handle.
func (s *Store) Get(h Handle) (Sprite, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sprites[h]
	return e.Sprite, ok
}

// Len returns the number of live sprites.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sprites)
}

// List returns every live sprite in draw order: ascending z, then creation order.
func (s *Store) List() []Entry {
	s.mu.RLock()
	out := make([]Entry, 0, len(s.sprites))
	for _, e := range s.sprites {
		out = append(out, e)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b Entry) int {
		if za, zb := a.Sprite.Placement().Z, b.Sprite.Placement().Z; za != zb {
			return za - zb
		}
		return int(a.seq) - int(b.seq)
	})
	return out
}

var _ Renderer = (*Store)(nil)
