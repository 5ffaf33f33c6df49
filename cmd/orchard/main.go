// orchard is a 3D apple-collecting game for the terminal, a desktop window,
// or remote play over SSH.
//
// Usage:
//
//	orchard list             - List available games
//	orchard play             - Play in the terminal
//	orchard window           - Play in a desktop window
//	orchard serve            - Start SSH server for remote play
//	orchard runs             - Show recorded runs
//	orchard config           - Print the effective game config
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--db <path>      - Set database path (default: ~/.orchard/runs.db)
//	--config <path>  - Use a custom game config YAML
package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orchard/internal/config"
	"github.com/vovakirdan/orchard/internal/games/orchard"
)

const defaultGame = "orchard"

var (
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "orchard",
	Short: "Orchard - collect apples in a wireframe 3D field",
	Long: `Orchard is a small 3D game: steer a cube around a square field,
turn the camera, and pick up red and golden apples. Collect 30 golden
apples to complete the level.

Available commands:
  list     - Show all available games
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  runs     - View recorded runs
  config   - Print the effective game config

Examples:
  orchard play
  orchard play --seed 42
  orchard window --scale 1.5
  orchard serve --ssh :2222
  orchard runs --recent`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.orchard/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadGameConfig points the game at --config and returns the effective
// config, warning (not failing) when the file cannot be used.
func loadGameConfig() config.OrchardConfig {
	orchard.SetConfigPath(flagConfig)

	cfg, err := config.LoadOrchard(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	return cfg
}

// gameArg returns the game ID from args, defaulting to orchard.
func gameArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultGame
}

// playerName returns the local user name recorded with runs.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
