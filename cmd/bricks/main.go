// bricks is a brick breaker for the terminal, built on swept AABB collisions.
//
// Usage:
//
//	bricks play              - Play interactively (pick a layout unless --layout is set)
//	bricks sim               - Run a headless session with an autopilot paddle
//	bricks runs [layout]     - Browse the run journal
//	bricks layouts           - List brick layouts
//	bricks config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set layout seed for reproducible sessions
//	--db <path>           - Set journal path (default: ~/.bricks/runs.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <name>   - Apply a preset: easy, normal, hard
//	--layout <id>         - Override the configured layout
//	--log-file <path>     - Log file for play (default: ~/.bricks/bricks.log)
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/registry"

	// Import layouts to register them
	_ "github.com/vovakirdan/tui-bricks/internal/games/bricks"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLayout     string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bricks",
	Short: "Bricks - a brick breaker in your terminal",
	Long: `Bricks is a brick breaker for the terminal. The ball moves in continuous
time and collides with bricks, walls and the paddle through swept
rectangle tests, so it never tunnels through anything at any frame rate.

Available commands:
  play     - Play interactively
  sim      - Headless session with an autopilot paddle
  runs     - Browse the run journal
  layouts  - Show all brick layouts
  config   - Print the effective configuration

Examples:
  bricks play
  bricks play --layout striped --difficulty hard
  bricks sim --seed 42
  bricks runs random
  bricks config --config ./my-bricks.yaml`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Layout seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bricks/runs.db", "Path to run journal database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLayout, "layout", "", "Brick layout (see 'bricks layouts')")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.bricks/bricks.log", "Log file for interactive play")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(layoutsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the config named by the global flags and applies the
// difficulty preset and layout override.
func loadConfig() (config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	if flagLayout != "" {
		cfg.Bricks.Layout = flagLayout
	}
	if !registry.Exists(cfg.Bricks.Layout) {
		return cfg, fmt.Errorf("unknown layout %q, run 'bricks layouts' to see available layouts", cfg.Bricks.Layout)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s with %s preset: %w", cfg.Source, preset, err)
	}
	return cfg, nil
}

// newLogger returns a logger writing to w at the --log-level level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "bricks",
		Level:           level,
	}), nil
}

// openLogFile opens path for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //#nosec G304 -- path comes from a flag
}
