package bricks

import "fmt"

// stepBall advances the ball by dt seconds, resolving every collision on the
// way. Each pass either commits the rest of the step or consumes the part of
// it before the earliest contact and goes round again with what is left.
// The pass right after a paddle bounce skips the paddle; any static hit
// makes it collidable again.
func (s *Session) stepBall(dt float64) error {
	eps := s.cfg.Physics.TieEpsilon
	paddleHandled := false

	for n := 0; dt > 0; n++ {
		if n >= s.cfg.Physics.MaxSubsteps {
			s.truncated++
			s.log.Warn("substep cap reached, dropping rest of frame",
				"id", s.id, "frame", s.frames, "dt", dt)
			return nil
		}
		s.substeps++

		step := s.ball.vel.Scale(dt)
		next := s.ball.pos.Translate(step)

		// One-sided: the ball must start at or above the paddle's top edge.
		// eps absorbs rounding left by the previous contact.
		if !paddleHandled && next.Overlaps(s.paddle) && s.ball.pos.Bottom() <= s.paddle.Top()+eps {
			f, err := s.bouncePaddle(next, step)
			if err != nil {
				return err
			}
			paddleHandled = true
			dt *= 1 - f
			continue
		}

		hits := s.statics.overlapping(next)
		if len(hits) == 0 {
			s.ball.pos = next
			return nil
		}

		var (
			first staticBody
			res   HitResult
		)
		for i, b := range hits {
			hr, err := ResolveHit(next, b.pos, step, eps)
			if err != nil {
				return fmt.Errorf("bricks: resolve against %s: %w", b.id, err)
			}
			if i == 0 || hr.EF < res.EF {
				first, res = b, hr
			}
		}

		if res.FlipY {
			s.ball.vel.Y = -s.ball.vel.Y
		}
		if res.FlipX {
			s.ball.vel.X = -s.ball.vel.X
		}
		s.ball.pos = s.ball.pos.Translate(step.Scale(res.F))

		if first.onHit != nil {
			if err := first.onHit(); err != nil {
				return err
			}
		}
		paddleHandled = false
		dt *= 1 - res.F
	}
	return nil
}
