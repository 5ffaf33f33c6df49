// Package window hosts a scene game in a desktop window through Ebitengine.
// Unlike the terminal, the window reports real key releases, so held keys
// follow the keyboard exactly.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/orchard/internal/core"
	"github.com/vovakirdan/orchard/internal/registry"
	"github.com/vovakirdan/orchard/internal/scene"
	"github.com/vovakirdan/orchard/internal/storage"
)

// Debug font cell size.
const (
	glyphW = 6
	glyphH = 16
)

// SceneGame is a game that exposes its projected scene and HUD, which the
// window draws as vectors instead of terminal cells.
type SceneGame interface {
	registry.Game
	Segments(vp scene.Viewport) []scene.Segment
	HUD() []string
}

// Options configures the window host.
type Options struct {
	Store  *storage.Store
	Player string
	Width  int
	Height int
	Scale  float64 // window size multiplier
}

var bindings = map[ebiten.Key]core.Key{
	ebiten.KeyArrowUp:    core.KeyArrowUp,
	ebiten.KeyArrowDown:  core.KeyArrowDown,
	ebiten.KeyArrowLeft:  core.KeyArrowLeft,
	ebiten.KeyArrowRight: core.KeyArrowRight,
	ebiten.KeyQ:          core.KeyRotateLeft,
	ebiten.KeyE:          core.KeyRotateRight,
}

var palette = map[core.Color]color.RGBA{
	core.ColorDefault:      {R: 200, G: 200, B: 200, A: 255},
	core.ColorRed:          {R: 230, G: 40, B: 40, A: 255},
	core.ColorGreen:        {R: 40, G: 140, B: 60, A: 255},
	core.ColorYellow:       {R: 220, G: 200, B: 40, A: 255},
	core.ColorBlue:         {R: 60, G: 120, B: 255, A: 255},
	core.ColorWhite:        {R: 255, G: 255, B: 255, A: 255},
	core.ColorGray:         {R: 140, G: 140, B: 140, A: 255},
	core.ColorBrightGreen:  {R: 80, G: 220, B: 100, A: 255},
	core.ColorBrightYellow: {R: 255, G: 215, B: 0, A: 255},
}

var background = color.RGBA{R: 135, G: 206, B: 235, A: 255}

// Host implements ebiten.Game around a SceneGame.
type Host struct {
	game   SceneGame
	config core.RuntimeConfig
	opts   Options
	logger *log.Logger
	keys   core.KeyState
	state  core.GameState
	paused bool
	rec    *storage.Recorder
	note   string // time line under the completion banner
	width  int
	height int
}

// NewHost creates a window host and resets the game.
func NewHost(game SceneGame, cfg core.RuntimeConfig, opts Options) *Host {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 960, 640
	}

	h := &Host{
		game:   game,
		config: cfg,
		opts:   opts,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "orchard-window",
		}),
		keys:   core.NewKeyState(),
		rec:    storage.NewRecorder(opts.Store, game.ID(), opts.Player, cfg.TickRate),
		width:  opts.Width,
		height: opts.Height,
	}
	h.game.Reset(cfg)
	h.state = h.game.State()
	return h
}

// Update runs one tick. Ebitengine calls it TickRate times per second.
func (h *Host) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.finishRun()
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) && !h.state.Completed {
		h.paused = !h.paused
		h.keys.ReleaseAll()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && h.state.Completed {
		h.restart()
	}

	for ek, k := range bindings {
		if inpututil.IsKeyJustPressed(ek) {
			h.keys.KeyDown(k)
		}
		if inpututil.IsKeyJustReleased(ek) {
			h.keys.KeyUp(k)
		}
	}

	if h.paused || h.state.Completed {
		return nil
	}

	res := h.game.Step(h.keys.Snapshot())
	h.state = res.State
	h.rec.Observe(res.State)
	if !res.Continue {
		h.finishRun()
	}
	return nil
}

func (h *Host) restart() {
	if g, err := registry.Create(h.game.ID()); err == nil {
		if sg, ok := g.(SceneGame); ok {
			h.game = sg
		}
	}
	h.config.Seed = time.Now().UnixNano()
	h.game.Reset(h.config)
	h.state = h.game.State()
	h.keys.ReleaseAll()
	h.rec.Restart(h.game.ID())
	h.note = ""
}

// finishRun saves the session once, as abandoned if it is not complete.
func (h *Host) finishRun() {
	run, saved, err := h.rec.Finish()
	if err != nil {
		h.logger.Warn("could not record run", "error", err)
		return
	}
	if !saved {
		return
	}
	h.logger.Info("run recorded", "run", run.ID, "ticks", run.Ticks, "completed", run.Completed)

	if !run.Completed {
		return
	}
	st, err := h.rec.Standing(run.ID)
	if err != nil || st == nil {
		return
	}
	h.note = fmt.Sprintf("Time %s", formatDuration(st.Run.Duration()))
	switch {
	case st.NewBest:
		h.note += "  -  new best!"
	case st.Best != nil:
		h.note += fmt.Sprintf("  -  best %s", formatDuration(st.Best.Duration()))
	}
}

// formatDuration renders d as m:ss.t.
func formatDuration(d time.Duration) string {
	tenths := d / (100 * time.Millisecond)
	return fmt.Sprintf("%d:%02d.%d", tenths/600, tenths/10%60, tenths%10)
}

// Draw renders the scene as vector lines with the HUD on top.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	vp := scene.Viewport{
		Width:      float64(h.width),
		Height:     float64(h.height),
		CellAspect: 1,
	}
	for _, seg := range h.game.Segments(vp) {
		c, ok := palette[seg.Material.Color]
		if !ok {
			c = palette[core.ColorDefault]
		}
		vector.StrokeLine(screen,
			float32(seg.A.X), float32(seg.A.Y),
			float32(seg.B.X), float32(seg.B.Y),
			1.5, c, true)
	}

	for i, line := range h.game.HUD() {
		ebitenutil.DebugPrintAt(screen, line, h.width-len(line)*glyphW-12, 8+i*glyphH)
	}
	ebitenutil.DebugPrintAt(screen, "arrows: move  q/e: rotate  p: pause  esc: quit", 8, h.height-glyphH-8)

	switch {
	case h.state.Completed:
		h.drawBanner(screen, "Level Complete!",
			fmt.Sprintf("%d red  %d golden  |  Press R to play again", h.state.Regular, h.state.Bonus),
			h.note)
	case h.paused:
		h.drawBanner(screen, "PAUSED", "p to resume")
	}
}

// drawBanner draws a centered box with a title and one line per non-empty
// entry of lines.
func (h *Host) drawBanner(screen *ebiten.Image, title string, lines ...string) {
	widest := len(title)
	var body []string
	for _, l := range lines {
		if l != "" {
			body = append(body, l)
			widest = max(widest, len(l))
		}
	}

	w := float32((widest + 4) * glyphW)
	bh := float32((3 + len(body)) * glyphH)
	x := (float32(h.width) - w) / 2
	y := (float32(h.height) - bh) / 2

	vector.DrawFilledRect(screen, x, y, w, bh, color.RGBA{A: 200}, false)
	vector.StrokeRect(screen, x, y, w, bh, 2, palette[core.ColorBrightYellow], false)
	ebitenutil.DebugPrintAt(screen, title, int(x)+(int(w)-len(title)*glyphW)/2, int(y)+glyphH/2)
	for i, l := range body {
		ebitenutil.DebugPrintAt(screen, l, int(x)+(int(w)-len(l)*glyphW)/2, int(y)+(2+i)*glyphH)
	}
}

// Layout follows the window size so the viewport stays undistorted.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.width, h.height = max(outsideWidth, 1), max(outsideHeight, 1)
	return h.width, h.height
}

// Run opens the window and blocks until it is closed.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	sg, ok := game.(SceneGame)
	if !ok {
		return fmt.Errorf("window: game %q has no scene to draw", game.ID())
	}

	h := NewHost(sg, cfg, opts)
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	ebiten.SetWindowSize(int(float64(h.width)*scale), int(float64(h.height)*scale))
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(max(cfg.TickRate, 1))

	h.logger.Info("window opened", "game", game.ID(), "tps", ebiten.TPS())
	err := ebiten.RunGame(h)
	// Closing the window ends RunGame without passing through Update.
	h.finishRun()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
