package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bricks/internal/core"
	"github.com/vovakirdan/tui-bricks/internal/games/bricks"
	"github.com/vovakirdan/tui-bricks/internal/platform/tui"
	"github.com/vovakirdan/tui-bricks/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play interactively",
	Long: `Start an interactive session in the terminal.

Without --layout a picker with a live preview of every layout comes first.
Finished sessions are written to the run journal (--db).

Controls:
  Mouse        - Move the paddle
  Left/Right   - Nudge the paddle (also a/d, h/l)
  R            - Restart with the next seed
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower ball, wider paddle, fewer bricks
  normal - Values from the config file
  hard   - Faster ball, narrower paddle, more bricks

Examples:
  bricks play
  bricks play --layout full
  bricks play --difficulty hard --seed 7
  bricks play --config ./my-bricks.yaml --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Get terminal size early for the layout picker
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if flagLayout == "" {
		selected, selErr := tui.RunLayoutMenu(cfg, seed, width, height)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		// User pressed back or quit
		if selected == "" {
			return
		}
		cfg.Bricks.Layout = selected
	}

	// Logs go to a file so the alt screen stays clean
	var logOut io.Writer = io.Discard
	logFile, err := openLogFile(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
	} else {
		logOut = logFile
		defer logFile.Close()
	}
	logger, err := newLogger(logOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open run journal
	var recorder bricks.Recorder
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	} else {
		recorder = store
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
	sum, runErr := tui.Run(tui.Options{
		Game:     cfg,
		Runtime:  rt,
		Logger:   logger,
		Recorder: recorder,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	if sum.ID != "" {
		fmt.Println(describe(sum))
	}
}

// describe formats a summary as one line.
func describe(sum bricks.Summary) string {
	line := fmt.Sprintf("%s · seed %d · %s · %d/%d bricks · %s frames",
		sum.Layout, sum.Seed, sum.Outcome,
		sum.BricksTotal-sum.BricksLeft, sum.BricksTotal,
		humanize.Comma(int64(sum.Frames))) //#nosec G115 -- frame counts fit in int64
	if sum.Truncated > 0 {
		line += fmt.Sprintf(" (%d truncated)", sum.Truncated)
	}
	if sum.Fault != "" {
		line += " · " + sum.Fault
	}
	return line
}
