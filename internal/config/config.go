// Package config provides YAML-based game configuration loading,
// validation and difficulty presets for the brick game.
package config

import "github.com/vovakirdan/tui-bricks/internal/core"

// GameConfig contains all tunables of a session.
type GameConfig struct {
	Arena   ArenaConfig   `yaml:"arena"`
	Ball    BallConfig    `yaml:"ball"`
	Paddle  PaddleConfig  `yaml:"paddle"`
	Bricks  BricksConfig  `yaml:"bricks"`
	Physics PhysicsConfig `yaml:"physics"`
	Debug   DebugConfig   `yaml:"debug"`

	// Source records where the config was loaded from.
	Source string `yaml:"-"`
}

// ArenaConfig defines the playfield in pixels.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Border float64 `yaml:"border"` // Thickness of the collision walls outside the arena
}

// BallConfig defines the ball's initial state.
type BallConfig struct {
	X             float64    `yaml:"x"` // Center
	Y             float64    `yaml:"y"`
	Size          float64    `yaml:"size"`
	VX            float64    `yaml:"vx"`
	VY            float64    `yaml:"vy"`
	Color         core.Color `yaml:"color"`
	GameOverColor core.Color `yaml:"game_over_color"`
}

// PaddleConfig defines the paddle.
type PaddleConfig struct {
	Width        float64    `yaml:"width"`
	Height       float64    `yaml:"height"`
	BottomOffset float64    `yaml:"bottom_offset"` // Gap between paddle bottom and arena bottom
	Color        core.Color `yaml:"color"`
	Nudge        float64    `yaml:"nudge"` // Pixels moved per left/right key press
}

// StageConfig is one durability stage of a brick.
type StageConfig struct {
	Name   string     `yaml:"name"`
	Fill   core.Color `yaml:"fill"`
	Border core.Color `yaml:"border"`
}

// BricksConfig defines the brick grid.
type BricksConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Rows    int     `yaml:"rows"`
	Density float64 `yaml:"density"` // Keep probability per cell for the random layout
	Layout  string  `yaml:"layout"`
	// Stages are ordered weakest first; a brick at stage 0 is removed on hit.
	Stages []StageConfig `yaml:"stages"`
	// Map rows for the "map" layout: '.' empty, '1'..'9' stage+1.
	Map []string `yaml:"map,omitempty"`
}

// PhysicsConfig defines the simulation step.
type PhysicsConfig struct {
	MaxStep     float64 `yaml:"max_step"` // Seconds; longer frames are truncated
	MaxSubsteps int     `yaml:"max_substeps"`
	TieEpsilon  float64 `yaml:"tie_epsilon"`
	BallSpeed   float64 `yaml:"ball_speed"` // Speed after a paddle bounce
	MaxDX       float64 `yaml:"max_dx"`     // Horizontal deflection at the paddle edge; 0 means ball_speed/2
}

// DebugConfig toggles diagnostics.
type DebugConfig struct {
	RenderPhysics bool `yaml:"render_physics"`
}

// DeflectionDX returns the effective maximum horizontal deflection.
func (p PhysicsConfig) DeflectionDX() float64 {
	if p.MaxDX > 0 {
		return p.MaxDX
	}
	return p.BallSpeed / 2
}
