package bricks

import (
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/core"
	"github.com/vovakirdan/tui-bricks/internal/registry"
	"github.com/vovakirdan/tui-bricks/internal/render"
)

// Static body ids.
const (
	BorderTop    = "border-top"
	BorderLeft   = "border-left"
	BorderRight  = "border-right"
	BorderBottom = "border-bot"
)

// Z-order of debug overlays for static bodies.
const debugZ = 10000

// ball is the one moving body of a session.
type ball struct {
	pos core.PhysicsRect
	vel core.Vec2
}

// Session is one game: ball, paddle, bricks and the static registry, driven
// frame by frame against a renderer. Sessions share nothing.
type Session struct {
	mu sync.Mutex

	id       string
	cfg      config.GameConfig
	renderer render.Renderer
	log      *log.Logger
	bus      *core.Bus
	layout   string
	seed     int64

	stages  StageTable
	statics *staticSet
	bricks  map[string]Brick

	ball         ball
	ballSprite   render.Handle
	paddle       core.PhysicsRect
	paddleSprite render.Handle

	teardown []func()

	started     time.Time
	last        time.Time
	frames      uint64
	substeps    uint64
	truncated   uint64 // Frames that hit the substep cap
	bricksTotal int

	stopped  bool
	gameOver bool
	fault    error
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithInput subscribes the session to pointer and key events on bus.
func WithInput(bus *core.Bus) Option {
	return func(s *Session) { s.bus = bus }
}

// WithSeed seeds the layout RNG. The default is 0.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.seed = seed }
}

// WithLayout overrides the configured brick layout.
func WithLayout(id string) Option {
	return func(s *Session) { s.layout = id }
}

// WithID sets the session id. The default is a random UUID.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// New builds a session: it declares the arena bounds, creates the borders,
// bricks, ball and paddle sprites, and subscribes to input. Frames are driven
// by the caller through Frame or Run.
func New(r render.Renderer, cfg config.GameConfig, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("bricks: %w", err)
	}
	stages, err := NewStageTable(cfg.Bricks.Stages)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:      cfg,
		renderer: r,
		log:      log.New(io.Discard),
		layout:   cfg.Bricks.Layout,
		stages:   stages,
		statics:  newStaticSet(),
		bricks:   make(map[string]Brick),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}

	layout, err := registry.Create(s.layout)
	if err != nil {
		return nil, fmt.Errorf("bricks: %w", err)
	}

	w, h := cfg.Arena.Width, cfg.Arena.Height
	r.SetBounds(w, h)
	s.addBorders(w, h)

	if err := s.addBricks(layout); err != nil {
		return nil, err
	}

	s.ball = ball{
		pos: core.PhysicsRect{CX: cfg.Ball.X, CY: cfg.Ball.Y, HW: cfg.Ball.Size / 2, HH: cfg.Ball.Size / 2},
		vel: core.Vec2{X: cfg.Ball.VX, Y: cfg.Ball.VY},
	}
	s.ballSprite = r.Create(render.ColorSprite{
		Box:   render.Box{Bounds: s.ball.pos.Bounds()},
		Color: cfg.Ball.Color,
	})

	s.paddle = core.PhysicsRect{
		CX: w / 2,
		CY: h - cfg.Paddle.Height/2 - cfg.Paddle.BottomOffset,
		HW: cfg.Paddle.Width / 2,
		HH: cfg.Paddle.Height / 2,
	}
	s.paddleSprite = r.Create(render.ColorSprite{
		Box:   render.Box{Bounds: s.paddle.Bounds()},
		Color: cfg.Paddle.Color,
	})

	if s.bus != nil {
		s.teardown = append(s.teardown,
			s.bus.OnPointerMove(s.onPointerMove),
			s.bus.OnKey(s.onKey),
		)
	}

	s.log.Info("session started",
		"id", s.id,
		"layout", s.layout,
		"seed", s.seed,
		"bricks", s.bricksTotal,
	)
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

func (s *Session) addBorders(w, h float64) {
	b := s.cfg.Arena.Border
	s.addStatic(BorderTop, core.Bounds{X: -b, Y: -b, W: w + 2*b, H: b}, core.ColorRed, nil)
	s.addStatic(BorderLeft, core.Bounds{X: -b, Y: -b, W: b, H: h + 2*b}, core.ColorRed, nil)
	s.addStatic(BorderRight, core.Bounds{X: w, Y: -b, W: b, H: h + 2*b}, core.ColorRed, nil)
	s.addStatic(BorderBottom, core.Bounds{X: -b, Y: h, W: w + 2*b, H: b}, core.ColorRed, s.hitBottom)
}

// addStatic registers a collidable body, with a debug outline if enabled.
func (s *Session) addStatic(id string, b core.Bounds, debug core.Color, onHit func() error) {
	if s.cfg.Debug.RenderPhysics {
		s.renderer.Create(render.BorderedSprite{
			Box:    render.Box{Bounds: b, Z: debugZ},
			Fill:   core.ColorNone,
			Border: debug,
		})
	}
	s.statics.add(id, core.RectFromBounds(b), onHit)
}

func (s *Session) addBricks(layout registry.Layout) error {
	bc := s.cfg.Bricks
	params := registry.Params{
		Cols:    int(s.cfg.Arena.Width / bc.Width),
		Rows:    bc.Rows,
		Stages:  s.stages.Len(),
		Density: bc.Density,
		Map:     bc.Map,
	}
	seed := uint64(s.seed) //#nosec G115 -- seed bits are reinterpreted, not measured
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	placements, err := layout.Place(params, rng)
	if err != nil {
		return fmt.Errorf("bricks: layout %s: %w", layout.ID(), err)
	}
	if err := registry.Check(params, placements); err != nil {
		return fmt.Errorf("bricks: layout %s: %w", layout.ID(), err)
	}

	for i, pl := range placements {
		id := fmt.Sprintf("brick_%d", i)
		s.bricksTotal++

		bounds := core.Bounds{
			X: float64(pl.Col) * bc.Width,
			Y: float64(pl.Row) * bc.Height,
			W: bc.Width,
			H: bc.Height,
		}
		stage := Stage(pl.Stage)
		s.bricks[id] = Brick{
			ID:     id,
			Index:  i,
			Bounds: bounds,
			Sprite: s.renderer.Create(s.stages.sprite(bounds, stage)),
			Stage:  stage,
			Col:    pl.Col,
			Row:    pl.Row,
		}
		s.addStatic(id, bounds, core.ColorPurple, func() error { return s.hitBrick(id) })
	}
	return nil
}

// hitBottom ends the game and marks the ball.
func (s *Session) hitBottom() error {
	if s.gameOver {
		return nil
	}
	s.gameOver = true
	s.log.Info("game over", "id", s.id, "frames", s.frames, "bricks_left", len(s.bricks))

	color := s.cfg.Ball.GameOverColor
	return render.Mutate(s.renderer, s.ballSprite, func(sp render.ColorSprite) render.ColorSprite {
		sp.Color = color
		return sp
	})
}

// Stop ends the session and runs its teardown list. It is idempotent.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Session) stopLocked() {
	if s.stopped {
		return
	}
	s.stopped = true
	for _, fn := range s.teardown {
		fn()
	}
	s.teardown = nil
	s.log.Debug("session stopped", "id", s.id)
}

// GameOver reports whether the ball reached the bottom border.
func (s *Session) GameOver() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameOver
}

// Stopped reports whether Stop was called or the session faulted.
func (s *Session) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// Err returns the fault that stopped the session, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fault
}

// Done reports whether the frame loop should exit.
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped || s.gameOver
}
