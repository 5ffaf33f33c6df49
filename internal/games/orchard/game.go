// Package orchard implements a 3D apple-collecting game.
// The player moves a cube around a square field with the arrow keys, turns
// the trailing camera with q and e, and picks up red apples and golden
// apples by walking into them. Collecting the golden target completes the
// level.
package orchard

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/orchard/internal/config"
	"github.com/vovakirdan/orchard/internal/core"
	"github.com/vovakirdan/orchard/internal/registry"
	"github.com/vovakirdan/orchard/internal/scene"
)

// Phase is the game loop state.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseCompleted
)

// String returns the phase name.
func (p Phase) String() string {
	if p == PhaseCompleted {
		return "completed"
	}
	return "running"
}

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path used by Reset.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements the orchard game logic.
type Game struct {
	cfg     config.OrchardConfig
	world   *World
	spawner *Spawner
	score   Score
	phase   Phase
	tick    uint64
	spawns  int // Spawner runs, including the initial placement

	streakBonus bool // The current bonus was forced by the streak
}

// New creates a game that must be Reset before use.
func New() *Game {
	return &Game{cfg: config.DefaultOrchardConfig()}
}

// NewGame creates a ready-to-step game with an explicit config and random
// source.
func NewGame(cfg config.OrchardConfig, rng RandSource) *Game {
	g := &Game{}
	g.start(cfg, rng)
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "orchard"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Orchard"
}

// Reset starts a new game. The config is loaded from the path set with
// SetConfigPath (or the default search order) and the spawner is seeded
// from cfg.Seed.
func (g *Game) Reset(rt core.RuntimeConfig) {
	cfg, err := config.LoadOrchard(configPath)
	if err != nil {
		cfg = config.DefaultOrchardConfig()
	}
	g.start(cfg, rand.New(rand.NewSource(rt.Seed)))
}

func (g *Game) start(cfg config.OrchardConfig, rng RandSource) {
	g.cfg = cfg
	g.world = NewWorld(cfg)
	g.spawner = NewSpawner(cfg, rng)
	g.score = NewScore(cfg.Goals)
	g.phase = PhaseRunning
	g.tick = 0
	g.spawns = 0
	g.streakBonus = false

	g.respawn()
	g.world.updateCamera()
}

// Step advances the game by one tick: yaw, movement, pickups, camera.
// Once the level is complete Step does nothing and reports Continue=false.
func (g *Game) Step(in core.KeyState) core.StepResult {
	if g.phase == PhaseCompleted {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	g.world.updateYaw(in)
	g.world.movePlayer(in)
	g.checkCollisions()
	g.world.updateCamera()

	return core.StepResult{
		State:    g.State(),
		Continue: g.phase == PhaseRunning,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Regular:   g.score.Regular,
		Bonus:     g.score.Bonus,
		Ticks:     g.tick,
		Completed: g.score.Completed(),
	}
}

// Phase returns the game loop state.
func (g *Game) Phase() Phase {
	return g.phase
}

// Score returns a copy of the score tracker.
func (g *Game) Score() Score {
	return g.score
}

// Config returns the config the game was started with.
func (g *Game) Config() config.OrchardConfig {
	return g.cfg
}

// Segments projects the scene for a viewport.
func (g *Game) Segments(vp scene.Viewport) []scene.Segment {
	return scene.Render(g.world.Scene, g.world.Camera, vp)
}

// HUD returns the score display lines, plus a note while a streak bonus is
// waiting on the field.
func (g *Game) HUD() []string {
	lines := g.score.Lines()
	if g.StreakBonus() {
		lines = append(lines, streakNote)
	}
	return lines
}

const streakNote = "Streak bonus!"

// StreakBonus reports whether the golden apple on the field was forced by
// the regular streak rather than the chance roll.
func (g *Game) StreakBonus() bool {
	return g.streakBonus && g.world.Bonus.Present
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	vp := scene.Viewport{
		Width:      float64(dst.Width()),
		Height:     float64(dst.Height()),
		CellAspect: 2,
	}
	scene.Draw(dst, g.Segments(vp))

	g.drawCounter(dst, 0, "Red Apples", g.score.Regular, g.score.RegularTarget, core.ColorRed)
	g.drawCounter(dst, 1, "Golden Apples", g.score.Bonus, g.score.BonusTarget, core.ColorBrightYellow)
	if g.StreakBonus() {
		dst.DrawText(dst.Width()-1-len(streakNote), 2, streakNote, core.ColorBrightYellow)
	}
	dst.DrawText(1, dst.Height()-1, "arrows: move  q/e: rotate", core.ColorGray)

	if g.phase == PhaseCompleted {
		g.drawCenteredMessage(dst, "Level Complete!",
			fmt.Sprintf("%d red  %d golden  |  Press R to play again", g.score.Regular, g.score.Bonus))
	}
}

// drawCounter draws "label: n/target" right-aligned, with n in color.
func (g *Game) drawCounter(dst *core.Screen, y int, label string, n, target int, c core.Color) {
	head := label + ": "
	count := fmt.Sprintf("%d", n)
	tail := fmt.Sprintf("/%d", target)

	x := dst.Width() - 1 - len(head) - len(count) - len(tail)
	dst.DrawText(x, y, head, core.ColorWhite)
	dst.DrawText(x+len(head), y, count, c)
	dst.DrawText(x+len(head)+len(count), y, tail, core.ColorWhite)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle, core.ColorWhite)
}

// Register the game with the registry
func init() {
	registry.Register("orchard", func() registry.Game {
		return New()
	})
}
