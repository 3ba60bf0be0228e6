package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bricks/internal/core"
	"github.com/vovakirdan/tui-bricks/internal/games/bricks"
	"github.com/vovakirdan/tui-bricks/internal/render"
	"github.com/vovakirdan/tui-bricks/internal/storage"
)

var (
	flagMaxFrames int
	flagAutopilot bool
	flagRecord    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless session",
	Long: `Run a session without a terminal UI, as fast as the CPU allows.

Frames are spaced 1/fps apart on a synthetic clock, so equal seeds give
equal results. The autopilot keeps the paddle under the ball. The command
exits non-zero if the session faults.

Examples:
  bricks sim --seed 42
  bricks sim --seed 42 --fps 30 --max-frames 600
  bricks sim --autopilot=false --log-level debug
  bricks sim --record --layout striped`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagMaxFrames, "max-frames", 36000, "Stop after this many frames (0 = no limit)")
	simCmd.Flags().BoolVar(&flagAutopilot, "autopilot", true, "Move the paddle under the ball before each frame")
	simCmd.Flags().BoolVar(&flagRecord, "record", false, "Write the finished session to the run journal")
}

// errFrameLimit ends a simulation that reached --max-frames.
var errFrameLimit = errors.New("frame limit reached")

// simClock is a FrameClock that advances a fixed step per frame and lets
// the autopilot act before each one.
type simClock struct {
	now    time.Time
	step   time.Duration
	frames int
	limit  int
	before func() error
}

func (c *simClock) Now() time.Time { return c.now }

func (c *simClock) Next(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	if c.limit > 0 && c.frames >= c.limit {
		return time.Time{}, errFrameLimit
	}
	if c.before != nil {
		if err := c.before(); err != nil {
			return time.Time{}, err
		}
	}
	c.frames++
	c.now = c.now.Add(c.step)
	return c.now, nil
}

// follow returns an autopilot that centers the paddle under the ball,
// kept inside the arena.
func follow(s *bricks.Session, arenaW float64) func() error {
	return func() error {
		ball, _ := s.Ball()
		hw := s.Paddle().HW
		return s.MovePaddle(core.ClampF(ball.CX, hw, arenaW-hw))
	}
}

// simulate runs s to completion on clock and stops it.
func simulate(ctx context.Context, s *bricks.Session, clock *simClock) error {
	defer s.Stop()
	err := s.Run(ctx, clock)
	if errors.Is(err, errFrameLimit) {
		return nil
	}
	return err
}

func runSim(_ *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal("cannot load config", "err", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fps := flagFPS
	if fps <= 0 {
		fps = 60
	}

	store := render.NewStore()
	session, err := bricks.New(store, cfg,
		bricks.WithSeed(seed),
		bricks.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal("cannot start session", "err", err)
	}

	clock := &simClock{
		now:   time.Now(),
		step:  time.Second / time.Duration(fps),
		limit: flagMaxFrames,
	}
	if flagAutopilot {
		clock.before = follow(session, cfg.Arena.Width)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runErr := simulate(ctx, session, clock)
	sum := session.Summary()
	snap := session.Snapshot()

	if flagRecord {
		record(logger, sum)
	}

	fmt.Println(describe(sum))
	fmt.Printf("simulated %s · hash %016x\n", sum.Elapsed, snap.Hash())

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Error("simulation failed", "err", runErr)
		os.Exit(1)
	}
}

// record journals sum, logging instead of failing.
func record(logger *log.Logger, sum bricks.Summary) {
	db, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run journal", "err", err)
		return
	}
	defer db.Close()

	if err := db.RecordSummary(sum); err != nil {
		logger.Warn("could not journal run", "id", sum.ID, "err", err)
	}
}
