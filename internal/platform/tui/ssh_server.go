package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/orchard/internal/core"
	"github.com/vovakirdan/orchard/internal/registry"
	"github.com/vovakirdan/orchard/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.orchard/host_key.
	HostKeyPath string

	// DBPath is the path to the run history database.
	DBPath string

	// GameID is the registered game every session plays.
	GameID string

	TickRate int

	// InitialHoldTicks and HoldTicks configure key hold emulation,
	// see Options.
	InitialHoldTicks int
	HoldTicks        int

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:          ":23234",
		DBPath:           "~/.orchard/runs.db",
		GameID:           "orchard",
		TickRate:         60,
		InitialHoldTicks: 36,
		HoldTicks:        9,
		IdleTimeout:      30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server that runs one game per session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "orchard-ssh",
	})

	if !registry.Exists(cfg.GameID) {
		return nil, fmt.Errorf("unknown game %q", cfg.GameID)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		// Sessions still play, runs are just not recorded.
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".orchard", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	game, err := registry.Create(s.config.GameID)
	if err != nil {
		s.logger.Error("cannot create game", "game", s.config.GameID, "error", err)
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(game, cfg, Options{
		Store:            s.store,
		Player:           sess.User(),
		InitialHoldTicks: s.config.InitialHoldTicks,
		HoldTicks:        s.config.HoldTicks,
		Logger:           s.logger,
	})
	sess.Context().SetValue(recorderKey{}, model.Recorder())
	s.logger.Info("session model created", "user", sess.User(), "session", model.SessionID())

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

type recorderKey struct{}

// loggingMiddleware logs SSH session events. When the session ends it
// also records the game as abandoned if the player left before finishing.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)

		if rec, ok := sess.Context().Value(recorderKey{}).(*storage.Recorder); ok {
			s.finishRun(rec, sess.User())
		}
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

func (s *SSHServer) finishRun(rec *storage.Recorder, user string) {
	run, saved, err := rec.Finish()
	switch {
	case err != nil:
		s.logger.Warn("could not record run", "user", user, "error", err)
	case saved:
		s.logger.Info("run recorded", "user", user, "run", run.ID, "ticks", run.Ticks, "completed", run.Completed)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "game", s.config.GameID)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel is the top-level model for an SSH session: the game, plus
// the run board on tab. Opening the board pauses a running game.
type SessionModel struct {
	sessionID      string
	game           Model
	board          RunsModel
	showBoard      bool
	pausedForBoard bool
	quitting       bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(game registry.Game, cfg core.RuntimeConfig, opts Options) SessionModel {
	return SessionModel{
		sessionID: uuid.NewString(),
		game:      NewModel(game, cfg, opts),
		board:     NewRunsModel(opts.Store, cfg.ScreenW, cfg.ScreenH),
	}
}

// SessionID returns the unique ID of this session.
func (m SessionModel) SessionID() string {
	return m.sessionID
}

// Recorder returns the run recorder shared with the game model.
func (m SessionModel) Recorder() *storage.Recorder {
	return m.game.Recorder()
}

// Init starts the game.
func (m SessionModel) Init() tea.Cmd {
	return m.game.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.game = m.updateGame(wsm)
		b, _ := m.board.Update(wsm)
		m.board = b.(RunsModel)
		return m, nil
	}

	if m.showBoard {
		return m.updateBoard(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok && m.game.keymap.MapCommand(km) == CommandBoard {
		m.board.Reload()
		m.showBoard = true
		if !m.game.paused && !m.game.gameState.Completed {
			m.game.paused = true
			m.game.hold.ReleaseAll()
			m.pausedForBoard = true
		}
		return m, nil
	}

	next, cmd := m.game.Update(msg)
	m.game = next.(Model)
	if m.game.IsQuitting() {
		m.quitting = true
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) Model {
	next, _ := m.game.Update(msg)
	return next.(Model)
}

func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Ticks still belong to the game; it drops them while paused.
	if tick, ok := msg.(TickMsg); ok {
		next, cmd := m.game.Update(tick)
		m.game = next.(Model)
		return m, cmd
	}

	next, cmd := m.board.Update(msg)
	m.board = next.(RunsModel)

	if m.board.IsQuitting() {
		m.quitting = true
		m.game.finishRun()
		return m, tea.Quit
	}

	if m.board.IsGoingBack() {
		m.board.goingBack = false
		m.showBoard = false
		if m.pausedForBoard {
			m.pausedForBoard = false
			m.game.paused = false
			return m, m.game.startLoop()
		}
		return m, nil
	}

	return m, cmd
}

// ShowingBoard reports whether the run board is on screen.
func (m SessionModel) ShowingBoard() bool {
	return m.showBoard
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.showBoard {
		return m.board.View()
	}
	return m.game.View()
}
