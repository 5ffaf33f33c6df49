package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orchard/internal/core"
	"github.com/vovakirdan/orchard/internal/platform/window"
	"github.com/vovakirdan/orchard/internal/registry"
	"github.com/vovakirdan/orchard/internal/storage"
)

var (
	flagWidth  int
	flagHeight int
	flagScale  float64
)

var windowCmd = &cobra.Command{
	Use:   "window [game]",
	Short: "Play in a desktop window",
	Long: `Open a desktop window and play with real key press and release.

Controls:
  Arrows  - Move the cube (relative to the camera)
  Q / E   - Turn the camera left / right
  P       - Pause
  R       - Play again (after the level is complete)
  Esc     - Quit

Examples:
  orchard window
  orchard window --width 1280 --height 720
  orchard window --scale 2`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagWidth, "width", 960, "Logical window width in pixels")
	windowCmd.Flags().IntVar(&flagHeight, "height", 640, "Logical window height in pixels")
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window size multiplier")
}

func runWindow(cmd *cobra.Command, args []string) {
	gameID := gameArg(args)

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		os.Exit(1)
	}

	loadGameConfig()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  flagWidth,
		ScreenH:  flagHeight,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	runErr := window.Run(game, cfg, window.Options{
		Store:  store,
		Player: playerName(),
		Width:  flagWidth,
		Height: flagHeight,
		Scale:  flagScale,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
