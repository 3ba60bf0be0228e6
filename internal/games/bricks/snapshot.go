package bricks

import (
	"math"
	"slices"
	"time"

	"github.com/vovakirdan/tui-bricks/internal/core"
)

// Snapshot contains the observable session state.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	Frame    uint64
	Substeps uint64

	BallX, BallY   float64 // Center
	BallVX, BallVY float64
	PaddleX        float64 // Center

	BricksTotal int
	BricksLeft  int

	// Stage per brick number (brick_<n>), -1 once removed
	BrickData []int

	GameOver bool
	Stopped  bool
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := make([]int, s.bricksTotal)
	for i := range data {
		data[i] = -1
	}
	for _, b := range s.bricks {
		data[b.Index] = int(b.Stage)
	}

	return Snapshot{
		Frame:       s.frames,
		Substeps:    s.substeps,
		BallX:       s.ball.pos.CX,
		BallY:       s.ball.pos.CY,
		BallVX:      s.ball.vel.X,
		BallVY:      s.ball.vel.Y,
		PaddleX:     s.paddle.CX,
		BricksTotal: s.bricksTotal,
		BricksLeft:  len(s.bricks),
		BrickData:   data,
		GameOver:    s.gameOver,
		Stopped:     s.stopped,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Frame
	h = h*31 + snap.Substeps
	h = h*31 + math.Float64bits(snap.BallX)
	h = h*31 + math.Float64bits(snap.BallY)
	h = h*31 + math.Float64bits(snap.BallVX)
	h = h*31 + math.Float64bits(snap.BallVY)
	h = h*31 + math.Float64bits(snap.PaddleX)
	h = h*31 + uint64(snap.BricksLeft) //#nosec G115 -- hash computation

	for _, v := range snap.BrickData {
		h = h*31 + uint64(v+1) //#nosec G115 -- hash computation
	}
	if snap.GameOver {
		h = h*31 + 1
	}
	if snap.Stopped {
		h = h*31 + 2
	}
	return h
}

// Outcome is how a session ended.
type Outcome string

const (
	OutcomeRunning  Outcome = "running"
	OutcomeGameOver Outcome = "game_over"
	OutcomeStopped  Outcome = "stopped"
	OutcomeFault    Outcome = "fault"
)

// Summary describes a session for the run journal.
type Summary struct {
	ID          string
	Layout      string
	Seed        int64
	Outcome     Outcome
	Frames      uint64
	Truncated   uint64 // Frames that hit the substep cap
	BricksTotal int
	BricksLeft  int
	Fault       string
	Started     time.Time
	Elapsed     time.Duration // Wall time between the first and last frame
}

// Recorder persists finished sessions.
type Recorder interface {
	RecordSummary(Summary) error
}

// Summary returns the session's outcome so far.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{
		ID:          s.id,
		Layout:      s.layout,
		Seed:        s.seed,
		Frames:      s.frames,
		Truncated:   s.truncated,
		BricksTotal: s.bricksTotal,
		BricksLeft:  len(s.bricks),
		Started:     s.started,
		Elapsed:     s.last.Sub(s.started),
	}
	switch {
	case s.fault != nil:
		sum.Outcome = OutcomeFault
		sum.Fault = s.fault.Error()
	case s.gameOver:
		sum.Outcome = OutcomeGameOver
	case s.stopped:
		sum.Outcome = OutcomeStopped
	default:
		sum.Outcome = OutcomeRunning
	}
	return sum
}

// Ball returns the ball's rectangle and velocity.
func (s *Session) Ball() (core.PhysicsRect, core.Vec2) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ball.pos, s.ball.vel
}

// Paddle returns the paddle's rectangle.
func (s *Session) Paddle() core.PhysicsRect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paddle
}

// Bricks returns a copy of the live bricks in creation order.
func (s *Session) Bricks() []Brick {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Brick, 0, len(s.bricks))
	for _, b := range s.bricks {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b Brick) int { return a.Index - b.Index })
	return out
}
