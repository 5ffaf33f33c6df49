package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/orchard/internal/platform/tui"
	"github.com/vovakirdan/orchard/internal/registry"
	"github.com/vovakirdan/orchard/internal/storage"
)

var (
	flagRunsLimit   int
	flagRunsRecent  bool
	flagRunsBoard   bool
	flagRunsClear   bool
	flagRunsNoStats bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [game]",
	Short: "Show recorded runs",
	Long: `Display the fastest completed runs, or the latest runs with --recent.

Examples:
  orchard runs
  orchard runs --recent --limit 20
  orchard runs -i           # interactive board
  orchard runs --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsRecent, "recent", false, "Show the latest runs instead of the fastest")
	runsCmd.Flags().BoolVarP(&flagRunsBoard, "interactive", "i", false, "Open the interactive run board")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete all runs for the game")
	runsCmd.Flags().BoolVar(&flagRunsNoStats, "no-stats", false, "Hide the summary line")
}

func runRuns(cmd *cobra.Command, args []string) {
	gameID := gameArg(args)

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'orchard list' to see available games.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRunsBoard {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunBoard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running board: %v\n", err)
		}
		return
	}

	if flagRunsClear {
		if err := store.ClearRuns(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Cleared runs for %s.\n", gameID)
		return
	}

	var runs []storage.Run
	title := "Fastest runs"
	if flagRunsRecent {
		title = "Recent runs"
		runs, err = store.RecentRuns(gameID, flagRunsLimit)
	} else {
		runs, err = store.TopRuns(gameID, flagRunsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("%s - %s\n", title, gameID)
	fmt.Println()

	if len(runs) == 0 {
		if flagRunsRecent {
			fmt.Println("No runs recorded yet.")
			return
		}
		fmt.Println("No completed runs yet.")
		fmt.Println()
		fmt.Printf("Play 'orchard play %s' and collect every golden apple to set a time!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-12s  %-9s  %-5s  %-6s  %-4s  %s\n", "#", "Player", "Time", "Red", "Golden", "Done", "When")
	fmt.Printf("  %-4s  %-12s  %-9s  %-5s  %-6s  %-4s  %s\n", "-", "------", "----", "---", "------", "----", "----")
	for i, r := range runs {
		done := "no"
		if r.Completed {
			done = "yes"
		}
		fmt.Printf("  %-4d  %-12s  %-9s  %-5d  %-6d  %-4s  %s\n",
			i+1, orDash(r.Player), tui.FormatDuration(r.Ticks, r.TickRate), r.Regular, r.Bonus, done, humanize.Time(r.CreatedAt))
	}

	if flagRunsNoStats {
		return
	}
	stats, err := store.Stats(gameID)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("%s runs, %s completed", humanize.Comma(int64(stats.Runs)), humanize.Comma(int64(stats.Completed)))
	if best, err := store.BestRun(gameID); err == nil && best != nil {
		fmt.Printf(", best %s by %s", tui.FormatDuration(best.Ticks, best.TickRate), orDash(best.Player))
	}
	fmt.Printf(", %s golden apples in total\n", humanize.Comma(stats.TotalBonus))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
