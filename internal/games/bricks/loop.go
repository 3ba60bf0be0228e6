package bricks

import (
	"context"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-bricks/internal/render"
)

// FrameClock paces the frame loop. Next blocks until the next display
// refresh and returns its timestamp.
type FrameClock interface {
	Now() time.Time
	Next(ctx context.Context) (time.Time, error)
}

// TickerClock is a FrameClock backed by a time.Ticker.
type TickerClock struct {
	ticker *time.Ticker
}

// NewTickerClock returns a clock ticking fps times per second.
func NewTickerClock(fps int) *TickerClock {
	if fps <= 0 {
		fps = 60
	}
	return &TickerClock{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

// Now returns the wall clock time.
func (c *TickerClock) Now() time.Time { return time.Now() }

// Next waits for the next tick or for ctx to be done.
func (c *TickerClock) Next(ctx context.Context) (time.Time, error) {
	select {
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	case t := <-c.ticker.C:
		return t, nil
	}
}

// Stop releases the ticker.
func (c *TickerClock) Stop() { c.ticker.Stop() }

// Start sets the reference time for the first frame's delta. Without it the
// first frame only records its timestamp and simulates nothing.
func (s *Session) Start(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started.IsZero() {
		s.started, s.last = now, now
	}
}

// Frame advances the simulation to now. The elapsed time is truncated to
// physics.max_step. It is a no-op once the session is stopped or over. Any
// error is a fault: the session stops and the error is returned.
func (s *Session) Frame(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || s.gameOver {
		return nil
	}
	if s.started.IsZero() {
		s.started, s.last = now, now
	}

	dt := min(s.cfg.Physics.MaxStep, now.Sub(s.last).Seconds())
	dt = max(dt, 0)
	s.last = now
	s.frames++

	if err := s.stepBall(dt); err != nil {
		return s.failLocked(err)
	}
	if err := render.SetBoundsOf(s.renderer, s.ballSprite, s.ball.pos.Bounds()); err != nil {
		return s.failLocked(fmt.Errorf("bricks: move ball sprite: %w", err))
	}
	return nil
}

// failLocked records a fault and stops the session.
func (s *Session) failLocked(err error) error {
	s.fault = err
	s.log.Error("session fault", "id", s.id, "frame", s.frames, "err", err)
	s.stopLocked()
	return err
}

// Run drives frames from clock until the session stops or the game is over.
// It returns nil in those cases, the fault if a frame failed, or ctx.Err().
func (s *Session) Run(ctx context.Context, clock FrameClock) error {
	s.Start(clock.Now())
	for !s.Done() {
		now, err := clock.Next(ctx)
		if err != nil {
			return err
		}
		if err := s.Frame(now); err != nil {
			return err
		}
	}
	return nil
}
