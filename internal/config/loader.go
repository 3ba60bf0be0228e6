package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "bricks.yaml"

// Load loads the game configuration and validates it.
// Search order: customPath -> ~/.bricks/configs/bricks.yaml -> ./configs/bricks.yaml -> embedded default.
// Files are decoded over DefaultConfig, so they only need the keys they change.
func Load(customPath string) (GameConfig, error) {
	cfg, err := load(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", cfg.Source, err)
	}
	return cfg, nil
}

func load(customPath string) (GameConfig, error) {
	// Custom path must exist and parse
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		cfg.Source = customPath
		return cfg, nil
	}

	// Unreadable or broken user/local files fall through to the next candidate
	candidates := []string{userConfigPath(ConfigFile), filepath.Join("configs", ConfigFile)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			cfg.Source = path
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultBricksYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	cfg.Source = "embedded"
	return cfg, nil
}

// Parse decodes YAML over DefaultConfig.
func Parse(data []byte) (GameConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func Marshal(cfg GameConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// DataDir returns ~/.bricks, or an empty string if home is unavailable.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bricks")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// Validate reports every invalid field at once.
func (c GameConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("arena.width", c.Arena.Width)
	positive("arena.height", c.Arena.Height)
	positive("arena.border", c.Arena.Border)
	positive("ball.size", c.Ball.Size)
	positive("paddle.width", c.Paddle.Width)
	positive("paddle.height", c.Paddle.Height)
	positive("bricks.width", c.Bricks.Width)
	positive("bricks.height", c.Bricks.Height)
	positive("physics.max_step", c.Physics.MaxStep)
	positive("physics.ball_speed", c.Physics.BallSpeed)

	if c.Ball.VX == 0 && c.Ball.VY == 0 {
		errs = append(errs, errors.New("ball velocity must be non-zero"))
	}
	if c.Paddle.BottomOffset < 0 || c.Paddle.BottomOffset+c.Paddle.Height > c.Arena.Height {
		errs = append(errs, fmt.Errorf("paddle.bottom_offset %v does not fit the arena", c.Paddle.BottomOffset))
	}
	errs = append(errs, c.validateSpawn()...)
	if c.Bricks.Rows < 0 {
		errs = append(errs, fmt.Errorf("bricks.rows must not be negative, got %d", c.Bricks.Rows))
	}
	if c.Bricks.Density < 0 || c.Bricks.Density > 1 {
		errs = append(errs, fmt.Errorf("bricks.density must be within [0, 1], got %v", c.Bricks.Density))
	}
	if len(c.Bricks.Stages) == 0 {
		errs = append(errs, errors.New("bricks.stages must not be empty"))
	}
	if len(c.Bricks.Stages) > 9 {
		errs = append(errs, fmt.Errorf("bricks.stages supports at most 9 stages, got %d", len(c.Bricks.Stages)))
	}
	for i, st := range c.Bricks.Stages {
		if !isHexColor(string(st.Fill)) || !isHexColor(string(st.Border)) {
			errs = append(errs, fmt.Errorf("bricks.stages[%d]: colors must be #rgb or #rrggbb", i))
		}
	}
	if c.Physics.MaxSubsteps <= 0 {
		errs = append(errs, fmt.Errorf("physics.max_substeps must be positive, got %d", c.Physics.MaxSubsteps))
	}
	if c.Physics.TieEpsilon < 0 || c.Physics.MaxDX < 0 {
		errs = append(errs, errors.New("physics.tie_epsilon and physics.max_dx must not be negative"))
	}

	return errors.Join(errs...)
}

// validateSpawn checks that the ball starts clear of everything it can
// collide with. A ball that starts overlapping a body faults on the first frame.
func (c GameConfig) validateSpawn() []error {
	if c.Ball.Size <= 0 {
		return nil
	}
	var errs []error
	half := c.Ball.Size / 2
	left, right := c.Ball.X-half, c.Ball.X+half
	top, bottom := c.Ball.Y-half, c.Ball.Y+half

	if left < 0 || top < 0 || right > c.Arena.Width || bottom > c.Arena.Height {
		errs = append(errs, fmt.Errorf("ball at (%v, %v) does not fit the arena", c.Ball.X, c.Ball.Y))
	}
	if grid := float64(c.Bricks.Rows) * c.Bricks.Height; top < grid {
		errs = append(errs, fmt.Errorf("ball top %v is inside the brick rows, which end at %v", top, grid))
	}

	// The paddle starts centered
	pTop := c.Arena.Height - c.Paddle.BottomOffset - c.Paddle.Height
	pLeft := (c.Arena.Width - c.Paddle.Width) / 2
	if bottom > pTop && top < pTop+c.Paddle.Height && right > pLeft && left < pLeft+c.Paddle.Width {
		errs = append(errs, fmt.Errorf("ball at (%v, %v) overlaps the paddle", c.Ball.X, c.Ball.Y))
	}
	return errs
}

func isHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return false
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
