package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
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

	"github.com/vovakirdan/eastertap/internal/core"
	"github.com/vovakirdan/eastertap/internal/game"
	"github.com/vovakirdan/eastertap/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.eastertap/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the frame rate of each session.
	TickRate int

	Rules            game.Rules
	NoticeDuration   time.Duration
	FeedbackDuration time.Duration

	// Logger receives server and session events. Defaults to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:          ":23235",
		DBPath:           "~/.eastertap/eastertap.db",
		IdleTimeout:      30 * time.Minute,
		TickRate:         30,
		Rules:            game.DefaultRules(),
		NoticeDuration:   3500 * time.Millisecond,
		FeedbackDuration: 150 * time.Millisecond,
	}
}

// SSHServer serves the game over SSH, one independent session per connection.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "eastertap-ssh",
		})
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
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
			return nil, fmt.Errorf("tui: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".eastertap", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			persistMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a play model for each SSH session. The SSH user name
// is the player, so an unfinished session is picked up on reconnect.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	sessionID := uuid.NewString()
	logger := s.logger.With("session", sessionID, "user", sshSession.User())

	opts := Options{
		Runtime: core.RuntimeConfig{
			ScreenW:  pty.Window.Width,
			ScreenH:  pty.Window.Height,
			TickRate: s.config.TickRate,
			Seed:     time.Now().UnixNano(),
		},
		Rules:            s.config.Rules,
		NoticeDuration:   s.config.NoticeDuration,
		FeedbackDuration: s.config.FeedbackDuration,
		Player:           sshSession.User(),
		InAppPause:       true,
		Logger:           logger,
	}
	if s.store != nil {
		opts.Store = s.store
		opts.Resume = TakeSnapshot(s.store, sshSession.User(), logger)
	}

	model := NewModel(opts)
	sshSession.Context().SetValue(modelContextKey{}, model)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// SnapshotSource loads and clears saved sessions.
type SnapshotSource interface {
	LoadSnapshot(player string) (*storage.SnapshotEntry, error)
	DeleteSnapshot(player string) error
}

// TakeSnapshot loads the saved session of a player and removes it from the
// store. Returns nil if there is none or it cannot be read.
func TakeSnapshot(src SnapshotSource, player string, logger *log.Logger) *game.Snapshot {
	if player == "" {
		return nil
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	entry, err := src.LoadSnapshot(player)
	if err != nil {
		logger.Warn("could not load snapshot", "player", player, "error", err)
		return nil
	}
	if entry == nil {
		return nil
	}
	if err := src.DeleteSnapshot(player); err != nil {
		logger.Warn("could not clear snapshot", "player", player, "error", err)
	}
	logger.Info("resuming saved session", "player", player, "score", entry.Score, "time_left", entry.TimeLeft, "saved_at", entry.SavedAt)
	return &game.Snapshot{Score: entry.Score, TimeLeft: entry.TimeLeft}
}

type modelContextKey struct{}

// persistMiddleware keeps the unfinished round of a session once its
// program has stopped. A dropped connection quits the program without a
// key press, so the model cannot do it on its own.
func persistMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		next(sshSession)
		if model, ok := sshSession.Context().Value(modelContextKey{}).(Model); ok {
			model.Persist()
		}
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

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

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
