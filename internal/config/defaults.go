package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-bricks/internal/core"
)

//go:embed defaults/bricks.yaml
var defaultBricksYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		Arena: ArenaConfig{
			Width:  800,
			Height: 600,
			Border: 40,
		},
		Ball: BallConfig{
			X:             100,
			Y:             350,
			Size:          25,
			VX:            100,
			VY:            100,
			Color:         core.ColorWhite,
			GameOverColor: core.ColorRed,
		},
		Paddle: PaddleConfig{
			Width:        150,
			Height:       10,
			BottomOffset: 20,
			Color:        core.ColorWhite,
			Nudge:        40,
		},
		Bricks: BricksConfig{
			Width:   40,
			Height:  30,
			Rows:    10,
			Density: 0.8,
			Layout:  "random",
			Stages: []StageConfig{
				{Name: "LEFT1", Fill: "#99b6ff", Border: core.ColorBlack},
				{Name: "LEFT2", Fill: "#b3ff99", Border: core.ColorBlack},
				{Name: "LEFT3", Fill: "#ffa299", Border: core.ColorBlack},
			},
		},
		Physics: PhysicsConfig{
			MaxStep:     0.1,
			MaxSubsteps: 64,
			TieEpsilon:  1e-4,
			BallSpeed:   500,
		},
		Source: "builtin",
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBricksYAML
}
