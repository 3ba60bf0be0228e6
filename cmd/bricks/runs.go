package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bricks/internal/platform/tui"
	"github.com/vovakirdan/tui-bricks/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [layout]",
	Short: "Browse the run journal",
	Long: `Show finished sessions from the run journal.

On a terminal this opens a browser with a layout sidebar. With --plain, or
when output is not a terminal, the most recent runs are printed instead,
optionally filtered by layout.

Examples:
  bricks runs
  bricks runs random --plain
  bricks runs --plain --limit 50 | less
  bricks runs --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print runs instead of opening the browser")
	runsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of runs to print with --plain")
	runsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every journaled run")
}

func runRuns(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run journal cleared.")
		return
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunRunsBrowser(store, width, height); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	layout := ""
	if len(args) == 1 {
		layout = args[0]
	}
	runs, err := store.RecentRuns(layout, flagLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	printRuns(os.Stdout, layout, runs)
}

// printRuns writes runs as an aligned table.
func printRuns(w io.Writer, layout string, runs []storage.Run) {
	title := "all layouts"
	if layout != "" {
		title = layout
	}
	fmt.Fprintf(w, "Recent runs - %s\n\n", title)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'bricks play' to fill the journal!")
		return
	}

	// Print header
	fmt.Fprintf(w, "  %-16s  %-10s  %-10s  %-9s  %-8s  %s\n", "When", "Layout", "Outcome", "Bricks", "Frames", "Seed")
	fmt.Fprintf(w, "  %-16s  %-10s  %-10s  %-9s  %-8s  %s\n", "----", "------", "-------", "------", "------", "----")

	// Print runs
	for _, r := range runs {
		fmt.Fprintf(w, "  %-16s  %-10s  %-10s  %-9s  %-8s  %d\n",
			humanize.Time(r.Started),
			r.Layout,
			r.Outcome,
			fmt.Sprintf("%d/%d", r.Broken(), r.BricksTotal),
			humanize.Comma(r.Frames),
			r.Seed,
		)
		if r.Fault != "" {
			fmt.Fprintf(w, "    fault: %s\n", r.Fault)
		}
	}
}
