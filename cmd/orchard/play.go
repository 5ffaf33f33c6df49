package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/orchard/internal/core"
	"github.com/vovakirdan/orchard/internal/platform/tui"
	"github.com/vovakirdan/orchard/internal/registry"
	"github.com/vovakirdan/orchard/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in the terminal",
	Long: `Start playing in the terminal.

Controls:
  Arrows     - Move the cube (relative to the camera)
  Q / E      - Turn the camera left / right
  P          - Pause
  R          - Play again (after the level is complete)
  Ctrl+S     - Save a text screenshot to ~/.orchard/screenshots
  Esc/Ctrl+C - Quit

Terminals do not report key release, so a key counts as held for a few
ticks after each press (input.hold_ticks in the config).

Examples:
  orchard play
  orchard play --seed 42
  orchard play --config ./my-orchard.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := gameArg(args)

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'orchard list' to see available games.")
		os.Exit(1)
	}

	gameCfg := loadGameConfig()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, cfg, tui.Options{
		Store:            store,
		Player:           playerName(),
		InitialHoldTicks: gameCfg.Input.InitialHoldTicks,
		HoldTicks:        gameCfg.Input.HoldTicks,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
