package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/games/bricks"
	"github.com/vovakirdan/tui-bricks/internal/render"
	"github.com/vovakirdan/tui-bricks/internal/storage"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newSimSession(t *testing.T, seed int64) (*bricks.Session, config.GameConfig) {
	t.Helper()
	cfg := config.DefaultConfig()
	s, err := bricks.New(render.NewStore(), cfg, bricks.WithSeed(seed), bricks.WithID("sim"))
	if err != nil {
		t.Fatal(err)
	}
	return s, cfg
}

func TestSimClockLimit(t *testing.T) {
	c := &simClock{now: t0, step: 10 * time.Millisecond, limit: 2}
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		now, err := c.Next(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if want := t0.Add(time.Duration(i) * 10 * time.Millisecond); !now.Equal(want) {
			t.Errorf("tick %d = %v, expected %v", i, now, want)
		}
	}
	if _, err := c.Next(ctx); !errors.Is(err, errFrameLimit) {
		t.Errorf("third tick: %v, expected frame limit", err)
	}
}

func TestSimClockCancelled(t *testing.T) {
	calls := 0
	c := &simClock{now: t0, step: time.Millisecond, before: func() error { calls++; return nil }}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Next() = %v, expected context.Canceled", err)
	}
	if calls != 0 {
		t.Error("autopilot ran after cancellation")
	}
}

func TestFollowKeepsPaddleInArena(t *testing.T) {
	tests := []struct {
		name  string
		ballX float64
		want  float64
	}{
		{"under the ball", 300, 300},
		{"left wall", 20, 75},
		{"right wall", 760, 725},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Ball.X = tt.ballX
			s, err := bricks.New(render.NewStore(), cfg)
			if err != nil {
				t.Fatal(err)
			}
			defer s.Stop()

			if err := follow(s, cfg.Arena.Width)(); err != nil {
				t.Fatal(err)
			}
			if got := s.Paddle().CX; got != tt.want {
				t.Errorf("paddle cx = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestSimulateStopsAtLimit(t *testing.T) {
	s, cfg := newSimSession(t, 42)
	clock := &simClock{now: t0, step: 20 * time.Millisecond, limit: 300}
	clock.before = follow(s, cfg.Arena.Width)

	if err := simulate(context.Background(), s, clock); err != nil {
		t.Fatalf("simulate() = %v", err)
	}
	sum := s.Summary()
	if sum.Outcome != bricks.OutcomeStopped {
		t.Errorf("outcome = %s, expected stopped (fault %q)", sum.Outcome, sum.Fault)
	}
	if sum.Frames != 300 {
		t.Errorf("frames = %d, expected 300", sum.Frames)
	}
	if sum.Elapsed != 6*time.Second {
		t.Errorf("elapsed = %v, expected 6s", sum.Elapsed)
	}
}

func TestSimulateIsReproducible(t *testing.T) {
	run := func() uint64 {
		s, cfg := newSimSession(t, 7)
		clock := &simClock{now: t0, step: time.Second / 60, limit: 400}
		clock.before = follow(s, cfg.Arena.Width)
		if err := simulate(context.Background(), s, clock); err != nil {
			t.Fatal(err)
		}
		snap := s.Snapshot()
		return snap.Hash()
	}
	if a, b := run(), run(); a != b {
		t.Errorf("hashes differ: %x vs %x", a, b)
	}
}

func TestDescribe(t *testing.T) {
	sum := bricks.Summary{
		Layout:      "random",
		Seed:        3,
		Outcome:     bricks.OutcomeFault,
		Frames:      12345,
		Truncated:   2,
		BricksTotal: 40,
		BricksLeft:  30,
		Fault:       "boom",
	}
	want := "random · seed 3 · fault · 10/40 bricks · 12,345 frames (2 truncated) · boom"
	if got := describe(sum); got != want {
		t.Errorf("describe() = %q\nexpected   %q", got, want)
	}
}

func TestPrintRuns(t *testing.T) {
	var buf bytes.Buffer
	printRuns(&buf, "", nil)
	if !strings.Contains(buf.String(), "No runs recorded yet.") {
		t.Errorf("empty listing = %q", buf.String())
	}

	buf.Reset()
	printRuns(&buf, "striped", []storage.Run{{
		Layout:      "striped",
		Seed:        9,
		Outcome:     "fault",
		Frames:      1500,
		BricksTotal: 20,
		BricksLeft:  5,
		Fault:       "physics invariant violated",
		Started:     time.Now().Add(-time.Hour),
	}})
	out := buf.String()
	for _, want := range []string{"Recent runs - striped", "15/20", "1,500", "fault: physics invariant violated"} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q:\n%s", want, out)
		}
	}
}
