package tui

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/eastertap/internal/clock"
	"github.com/vovakirdan/eastertap/internal/core"
	"github.com/vovakirdan/eastertap/internal/game"
)

var _ game.Presenter = (*Display)(nil)

// SessionStore persists scores and unfinished sessions.
type SessionStore interface {
	game.ScoreRecorder
	SaveSnapshot(player string, score, timeLeft int) error
	DeleteSnapshot(player string) error
}

// Options configures a play Model.
type Options struct {
	Runtime          core.RuntimeConfig
	Rules            game.Rules
	NoticeDuration   time.Duration
	FeedbackDuration time.Duration

	// Store is optional. Without it scores and snapshots are not kept.
	Store  SessionStore
	Player string

	// Resume continues a saved session instead of showing a fresh one.
	Resume *game.Snapshot

	// InAppPause makes the suspend key pause inside the program instead of
	// suspending the process. Used for SSH sessions.
	InAppPause bool

	Logger *log.Logger
}

// Model is the Bubble Tea model for one player. It is the single event
// source of the game: keys, clicks, frame ticks and resume all arrive
// through Update on one goroutine.
type Model struct {
	controller *game.Controller
	clock      *clock.Scheduler
	display    *Display
	screen     *core.Screen
	keys       KeyMap
	help       help.Model

	store      SessionStore
	player     string
	config     core.RuntimeConfig
	inAppPause bool
	logger     *log.Logger

	snapshot    game.Snapshot
	lastTick    time.Time
	quitting    bool
	persistOnce *sync.Once
}

// NewModel creates a play model and shows either a fresh or a resumed
// session.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	defaults := core.DefaultConfig()
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		cfg.ScreenW, cfg.ScreenH = defaults.ScreenW, defaults.ScreenH
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = defaults.TickRate
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sched := clock.NewScheduler()
	display := NewDisplay(opts.NoticeDuration, opts.FeedbackDuration)

	ctrlOpts := []game.Option{game.WithLogger(logger)}
	if opts.Store != nil {
		ctrlOpts = append(ctrlOpts, game.WithScoreRecorder(opts.Store))
	}
	controller := game.NewController(opts.Rules, sched, display, rand.New(rand.NewSource(cfg.Seed)), ctrlOpts...)

	if opts.Resume != nil {
		controller.OnResume(*opts.Resume)
	} else {
		controller.OnFreshStart()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		controller:  controller,
		clock:       sched,
		display:     display,
		screen:      core.NewScreen(cfg.ScreenW, core.Max(cfg.ScreenH-1, 0)),
		keys:        DefaultKeyMap(),
		help:        h,
		store:       opts.Store,
		player:      opts.Player,
		config:      cfg,
		inAppPause:  opts.InAppPause,
		logger:      logger,
		persistOnce: &sync.Once{},
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, core.Max(msg.Height-1, 0))
		m.help.Width = msg.Width
		return m, nil

	case tea.ResumeMsg:
		m.resume()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.Persist()
		m.quitting = true
		return m, tea.Quit

	case core.ActionTap:
		if m.inAppPause && m.controller.Suspended() {
			m.resume()
			return m, nil
		}
		m.controller.OnTap()

	case core.ActionSuspend:
		if m.inAppPause {
			if m.controller.Suspended() {
				m.resume()
			} else {
				m.snapshot = m.controller.OnSuspend()
			}
			return m, nil
		}
		m.snapshot = m.controller.OnSuspend()
		return m, tea.Suspend

	case core.ActionScreenshot:
		m.saveScreenshot()

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleMouse treats a left click on the button as a tap.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.controller.Suspended() {
		return m, nil
	}
	if m.display.ButtonRect().Contains(msg.X, msg.Y) {
		m.controller.OnTap()
	}
	return m, nil
}

// handleTick advances the game clock by the real time since the last frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if !m.lastTick.IsZero() {
		if elapsed := now.Sub(m.lastTick); elapsed > 0 {
			m.clock.Advance(elapsed)
			m.display.Advance(elapsed)
		}
	}
	m.lastTick = now
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) resume() {
	if !m.controller.Suspended() {
		return
	}
	m.controller.OnResume(m.snapshot)
	m.snapshot = game.Snapshot{}
	// Time spent suspended does not count.
	m.lastTick = time.Time{}
}

// Persist keeps an unfinished round for the next start, or clears the
// stale one. It runs once per model; later calls on any copy do nothing.
func (m Model) Persist() {
	m.persistOnce.Do(m.persist)
}

func (m *Model) persist() {
	if m.store == nil || m.player == "" {
		return
	}
	playing := m.controller.Session().Phase == game.PhasePlaying
	snap := m.controller.OnSuspend()

	if !playing {
		if err := m.store.DeleteSnapshot(m.player); err != nil {
			m.logger.Warn("could not clear snapshot", "player", m.player, "error", err)
		}
		return
	}
	if err := m.store.SaveSnapshot(m.player, snap.Score, snap.TimeLeft); err != nil {
		m.logger.Warn("could not save snapshot", "player", m.player, "error", err)
		return
	}
	m.logger.Debug("snapshot saved", "player", m.player, "score", snap.Score, "time_left", snap.TimeLeft)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.display.Draw(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".eastertap", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", game.GameID, time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// Controller returns the session controller.
func (m Model) Controller() *game.Controller {
	return m.controller
}

// Display returns the presenter the controller draws through.
func (m Model) Display() *Display {
	return m.display
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.display.Draw(m.screen)
	if m.controller.Suspended() && m.screen.Height() > 1 {
		m.display.drawStatus(m.screen, "PAUSED - ctrl+z or space to continue", core.ColorBlack, core.ColorYellow)
	}

	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program with the given options. The
// unfinished round is kept however the program stops, including a
// cancelled context or a killed program.
func Run(opts Options, programOpts ...tea.ProgramOption) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		append([]tea.ProgramOption{
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		}, programOpts...)...,
	)

	_, err := p.Run()
	model.Persist()
	return err
}
