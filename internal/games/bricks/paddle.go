package bricks

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-bricks/internal/core"
	"github.com/vovakirdan/tui-bricks/internal/render"
)

// bouncePaddle moves the ball to its contact point with the paddle and
// replaces its velocity with the deflected one. It returns the fraction of
// step used up.
func (s *Session) bouncePaddle(next core.PhysicsRect, step core.Vec2) (float64, error) {
	hr, err := ResolveHit(next, s.paddle, step, s.cfg.Physics.TieEpsilon)
	if err != nil {
		return 0, fmt.Errorf("bricks: resolve against paddle: %w", err)
	}

	s.ball.pos = s.ball.pos.Translate(step.Scale(hr.F))
	s.ball.vel.Y = -s.ball.vel.Y

	vel, err := deflect(s.ball.vel, s.ball.pos.CX-s.paddle.CX, s.paddle.HW,
		s.cfg.Physics.BallSpeed, s.cfg.Physics.DeflectionDX())
	if err != nil {
		return 0, err
	}
	s.ball.vel = vel
	s.log.Debug("paddle bounce", "f", hr.F, "vx", vel.X, "vy", vel.Y)
	return hr.F, nil
}

// deflect steers an already reflected velocity by where the ball struck the
// paddle. offset is ball center minus paddle center. The result always has
// length speed.
func deflect(vel core.Vec2, offset, halfWidth, speed, maxDX float64) (core.Vec2, error) {
	if vel.IsZero() {
		return core.Vec2{}, fmt.Errorf("%w: paddle bounce with zero velocity", ErrPhysicsInvariant)
	}

	dx := core.ClampF(offset/halfWidth, -1, 1)
	dxm := math.Copysign(math.Pow(math.Abs(dx), 1.5), dx)

	base := vel.Norm(speed)
	adj := core.Vec2{
		X: dxm * maxDX,
		Y: -(1 - dxm) * maxDX / 4,
	}
	sum := base.Add(adj)
	if sum.IsZero() {
		return core.Vec2{}, fmt.Errorf("%w: deflection cancelled the ball velocity", ErrPhysicsInvariant)
	}
	return sum.Norm(speed), nil
}

// MovePaddle centers the paddle at x, in arena coordinates.
func (s *Session) MovePaddle(x float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.movePaddleLocked(x)
}

func (s *Session) movePaddleLocked(x float64) error {
	if s.stopped {
		return nil
	}
	s.paddle.CX = x
	return render.SetBoundsOf(s.renderer, s.paddleSprite, s.paddle.Bounds())
}

// onPointerMove follows the pointer. Root bounds are queried on every event
// since the arena may have moved since the last one.
func (s *Session) onPointerMove(ev core.PointerEvent) {
	root, ok := s.renderer.RootBounds()
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.movePaddleLocked(ev.X - root.X); err != nil {
		s.log.Warn("paddle update failed", "id", s.id, "err", err)
	}
}

// onKey nudges the paddle on left/right and logs everything else.
func (s *Session) onKey(ev core.KeyEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var dir float64
	switch ev.Action {
	case core.ActionLeft:
		dir = -1
	case core.ActionRight:
		dir = 1
	default:
		s.log.Debug("key", "key", ev.Key, "action", ev.Action)
		return
	}

	hw := s.paddle.HW
	x := core.ClampF(s.paddle.CX+dir*s.cfg.Paddle.Nudge, hw, s.cfg.Arena.Width-hw)
	if err := s.movePaddleLocked(x); err != nil {
		s.log.Warn("paddle update failed", "id", s.id, "err", err)
	}
}
