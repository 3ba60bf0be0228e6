package core

import "sync"

// Action represents a semantic input action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A - nudge paddle left
	ActionRight          // Right arrow, D - nudge paddle right
	ActionRestart        // R - start a new session after game over
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// PointerEvent is a pointer move in client coordinates, i.e. the same space
// the renderer reports its root bounds in.
type PointerEvent struct {
	X, Y float64
}

// KeyEvent is a key press with its mapped action (ActionNone if unmapped).
type KeyEvent struct {
	Key    string
	Action Action
}

// Bus fans input events out to subscribed handlers.
// Subscriptions return an unsubscribe func; owners collect these and call
// them on teardown.
type Bus struct {
	mu      sync.Mutex
	nextID  int
	pointer map[int]func(PointerEvent)
	keys    map[int]func(KeyEvent)
}

// NewBus creates an empty input bus.
func NewBus() *Bus {
	return &Bus{
		pointer: make(map[int]func(PointerEvent)),
		keys:    make(map[int]func(KeyEvent)),
	}
}

// OnPointerMove registers a pointer-move handler.
func (b *Bus) OnPointerMove(fn func(PointerEvent)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.pointer[id] = fn

	return func() {
		b.mu.Lock()
		delete(b.pointer, id)
		b.mu.Unlock()
	}
}

// OnKey registers a key handler.
func (b *Bus) OnKey(fn func(KeyEvent)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.keys[id] = fn

	return func() {
		b.mu.Lock()
		delete(b.keys, id)
		b.mu.Unlock()
	}
}

// PublishPointer delivers a pointer event to every pointer handler.
func (b *Bus) PublishPointer(ev PointerEvent) {
	for _, fn := range b.pointerHandlers() {
		fn(ev)
	}
}

// PublishKey delivers a key event to every key handler.
func (b *Bus) PublishKey(ev KeyEvent) {
	for _, fn := range b.keyHandlers() {
		fn(ev)
	}
}

// Subscribers returns the number of live subscriptions.
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pointer) + len(b.keys)
}

// Handlers are copied out so they run without the lock held
// and may unsubscribe while being dispatched.
func (b *Bus) pointerHandlers() []func(PointerEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]func(PointerEvent), 0, len(b.pointer))
	for id := 0; id < b.nextID; id++ {
		if fn, ok := b.pointer[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func (b *Bus) keyHandlers() []func(KeyEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]func(KeyEvent), 0, len(b.keys))
	for id := 0; id < b.nextID; id++ {
		if fn, ok := b.keys[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}
