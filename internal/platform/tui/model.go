package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/orchard/internal/core"
	"github.com/vovakirdan/orchard/internal/registry"
	"github.com/vovakirdan/orchard/internal/storage"
)

// Options configures a terminal host.
type Options struct {
	// Store records finished runs. Nil disables recording.
	Store *storage.Store

	// Player is stored with each run (local user or SSH user).
	Player string

	// InitialHoldTicks is how long a fresh key press counts as held. It
	// should outlast the keyboard repeat delay. Values below HoldTicks
	// use HoldTicks.
	InitialHoldTicks int

	// HoldTicks is how long a key counts as held after each auto-repeat.
	HoldTicks int

	// Logger reports recorded runs and storage errors. Nil is silent,
	// which suits the local alt-screen host.
	Logger *log.Logger
}

// Model is the Bubble Tea model that hosts one game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	opts      Options
	config    core.RuntimeConfig
	keymap    *KeyMapper
	hold      *HoldTracker
	gameState core.GameState
	gen       int // current tick loop
	paused    bool
	quitting  bool
	rec       *storage.Recorder
	note      string // shown under the completion message
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:   opts,
		config: cfg,
		keymap: NewKeyMapper(),
		hold:   NewHoldTracker(opts.InitialHoldTicks, opts.HoldTicks),
		rec:    storage.NewRecorder(opts.Store, game.ID(), opts.Player, cfg.TickRate),
	}
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keymap.MapCommand(msg) {
	case CommandQuit:
		m.quitting = true
		m.finishRun()
		return m, tea.Quit

	case CommandScreenshot:
		//nolint:errcheck // Best-effort save, game continues regardless
		m.saveScreenshot()
		return m, nil

	case CommandPause:
		if m.gameState.Completed {
			return m, nil
		}
		m.paused = !m.paused
		m.hold.ReleaseAll()
		if m.paused {
			return m, nil
		}
		return m, m.startLoop()

	case CommandRestart:
		if !m.gameState.Completed {
			return m, nil
		}
		m.restart()
		return m, m.startLoop()
	}

	if k, ok := m.keymap.MapKey(msg); ok && !m.paused {
		m.hold.Press(k)
	}
	return m, nil
}

// startLoop begins a new tick loop. Ticks from older loops are ignored.
func (m *Model) startLoop() tea.Cmd {
	m.gen++
	return tickCmd(m.config.TickRate, m.gen)
}

func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.paused || m.gameState.Completed {
		return m, nil
	}

	result := m.game.Step(m.hold.Keys())
	m.hold.Tick()
	m.gameState = result.State
	m.rec.Observe(result.State)

	if !result.Continue {
		m.finishRun()
		return m, nil
	}
	return m, tickCmd(m.config.TickRate, m.gen)
}

// restart replaces the completed game with a fresh instance and seed.
func (m *Model) restart() {
	if g, err := registry.Create(m.game.ID()); err == nil {
		m.game = g
	}
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.hold.ReleaseAll()
	m.paused = false
	m.rec.Restart(m.game.ID())
	m.note = ""
}

// finishRun saves the current session once: completed if the level was
// won, abandoned otherwise. A completed run also sets the time note.
func (m *Model) finishRun() {
	run, saved, err := m.rec.Finish()
	if err != nil {
		if m.opts.Logger != nil {
			m.opts.Logger.Warn("could not record run", "error", err)
		}
		return
	}
	if !saved {
		return
	}
	if m.opts.Logger != nil {
		m.opts.Logger.Info("run recorded",
			"run", run.ID,
			"player", run.Player,
			"ticks", run.Ticks,
			"completed", run.Completed,
		)
	}

	if !run.Completed {
		return
	}
	if st, err := m.rec.Standing(run.ID); err == nil && st != nil {
		m.note = completionNote(st)
	}
}

func completionNote(st *storage.Standing) string {
	t := FormatDuration(st.Run.Ticks, st.Run.TickRate)
	switch {
	case st.NewBest:
		return fmt.Sprintf("Time %s  -  new best!", t)
	case st.Best != nil:
		return fmt.Sprintf("Time %s  -  best %s", t, FormatDuration(st.Best.Ticks, st.Best.TickRate))
	}
	return "Time " + t
}

// saveScreenshot writes the current frame as plain text to
// ~/.orchard/screenshots and returns the file path.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".orchard", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	switch {
	case m.paused:
		drawBanner(m.screen, m.screen.Height()/2, "PAUSED  -  p to resume")
	case m.gameState.Completed && m.note != "":
		drawBanner(m.screen, m.screen.Height()/2+3, m.note)
	}
	return RenderScreen(m.screen)
}

// drawBanner writes a one-line centered message on row y.
func drawBanner(s *core.Screen, y int, text string) {
	x := (s.Width() - len(text)) / 2
	s.DrawText(x-1, y, " "+text+" ", core.ColorBrightYellow)
}

// State returns the state from the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Paused reports whether ticking is suspended by the player.
func (m Model) Paused() bool {
	return m.paused
}

// IsQuitting reports whether the player asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// LastRunID returns the ID of the most recently recorded run, if any.
func (m Model) LastRunID() string {
	return m.rec.LastRunID()
}

// Note returns the line shown under the completion message, if any.
func (m Model) Note() string {
	return m.note
}

// Recorder returns the recorder of the current session.
func (m Model) Recorder() *storage.Recorder {
	return m.rec
}

// Run starts the Bubble Tea program for a single game. A session that ends
// before completion is recorded as abandoned.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	m := NewModel(game, cfg, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err := p.Run()
	//nolint:errcheck // The program has already exited
	m.rec.Finish()
	return err
}
