// Package config provides YAML-based game configuration loading and
// environment overrides for the game host.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/eastertap/internal/core"
)

// GameConfig contains all tunables of the tap game.
type GameConfig struct {
	Timing    TimingConfig   `yaml:"timing"`
	Palette   []string       `yaml:"palette"`
	EndColors EndColors      `yaml:"end_colors"`
	Bias      BiasConfig     `yaml:"bias"`
	Notice    NoticeConfig   `yaml:"notice"`
	Feedback  FeedbackConfig `yaml:"feedback"`
}

// TimingConfig defines the two countdowns. Values are milliseconds.
type TimingConfig struct {
	InitialCountdownMs int `yaml:"initial_countdown_ms" env:"EASTERTAP_INITIAL_COUNTDOWN_MS"`
	EndWaitMs          int `yaml:"end_wait_ms"          env:"EASTERTAP_END_WAIT_MS"`
	IntervalMs         int `yaml:"interval_ms"          env:"EASTERTAP_INTERVAL_MS"`
}

// EndColors are the fixed colors shown while the cooldown runs.
type EndColors struct {
	Background string `yaml:"background"`
	Button     string `yaml:"button"`
}

// BiasConfig bounds the target placement candidates, in percent.
type BiasConfig struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// NoticeConfig controls the end-of-session notice.
type NoticeConfig struct {
	DurationMs int `yaml:"duration_ms"`
}

// FeedbackConfig controls the tap flash.
type FeedbackConfig struct {
	DurationMs int `yaml:"duration_ms"`
}

// InitialCountdown returns the session length.
func (c GameConfig) InitialCountdown() time.Duration {
	return time.Duration(c.Timing.InitialCountdownMs) * time.Millisecond
}

// InitialSeconds returns the session length in whole seconds.
func (c GameConfig) InitialSeconds() int {
	return c.Timing.InitialCountdownMs / 1000
}

// EndWait returns the cooldown length.
func (c GameConfig) EndWait() time.Duration {
	return time.Duration(c.Timing.EndWaitMs) * time.Millisecond
}

// Interval returns the tick interval shared by both countdowns.
func (c GameConfig) Interval() time.Duration {
	return time.Duration(c.Timing.IntervalMs) * time.Millisecond
}

// NoticeDuration returns how long the end notice stays visible.
func (c GameConfig) NoticeDuration() time.Duration {
	return time.Duration(c.Notice.DurationMs) * time.Millisecond
}

// FeedbackDuration returns how long the tap flash lasts.
func (c GameConfig) FeedbackDuration() time.Duration {
	return time.Duration(c.Feedback.DurationMs) * time.Millisecond
}

// Colors resolves the palette names.
func (c GameConfig) Colors() (core.Palette, error) {
	p := make(core.Palette, 0, len(c.Palette))
	for _, name := range c.Palette {
		col, err := core.ParseColor(name)
		if err != nil {
			return nil, fmt.Errorf("config: palette: %w", err)
		}
		p = append(p, col)
	}
	return p, nil
}

// EndBackground resolves the cooldown background color.
func (c GameConfig) EndBackground() (core.Color, error) {
	col, err := core.ParseColor(c.EndColors.Background)
	if err != nil {
		return core.ColorDefault, fmt.Errorf("config: end_colors.background: %w", err)
	}
	return col, nil
}

// EndButton resolves the cooldown button color.
func (c GameConfig) EndButton() (core.Color, error) {
	col, err := core.ParseColor(c.EndColors.Button)
	if err != nil {
		return core.ColorDefault, fmt.Errorf("config: end_colors.button: %w", err)
	}
	return col, nil
}

// BiasCandidates returns every placement candidate from Min to Max
// inclusive, scaled by 1/100.
func (c GameConfig) BiasCandidates() []float64 {
	out := make([]float64, 0, c.Bias.Max-c.Bias.Min+1)
	for v := c.Bias.Min; v <= c.Bias.Max; v++ {
		out = append(out, float64(v)/100)
	}
	return out
}

// Validate checks that the configuration can drive a session.
func (c GameConfig) Validate() error {
	if c.Timing.InitialCountdownMs < 1000 {
		return fmt.Errorf("config: timing.initial_countdown_ms must be at least 1000, got %d", c.Timing.InitialCountdownMs)
	}
	// The time label and saved snapshots count whole seconds.
	if c.Timing.InitialCountdownMs%1000 != 0 {
		return fmt.Errorf("config: timing.initial_countdown_ms must be a whole number of seconds, got %d", c.Timing.InitialCountdownMs)
	}
	if c.Timing.EndWaitMs <= 0 {
		return fmt.Errorf("config: timing.end_wait_ms must be positive, got %d", c.Timing.EndWaitMs)
	}
	if c.Timing.IntervalMs <= 0 {
		return fmt.Errorf("config: timing.interval_ms must be positive, got %d", c.Timing.IntervalMs)
	}
	if len(c.Palette) == 0 {
		return fmt.Errorf("config: palette must not be empty")
	}
	if _, err := c.Colors(); err != nil {
		return err
	}
	if _, err := c.EndBackground(); err != nil {
		return err
	}
	if _, err := c.EndButton(); err != nil {
		return err
	}
	if c.Bias.Min < 0 || c.Bias.Max > 100 || c.Bias.Min > c.Bias.Max {
		return fmt.Errorf("config: bias must satisfy 0 <= min <= max <= 100, got %d..%d", c.Bias.Min, c.Bias.Max)
	}
	if c.Notice.DurationMs < 0 || c.Feedback.DurationMs < 0 {
		return fmt.Errorf("config: notice and feedback durations must not be negative")
	}
	return nil
}
