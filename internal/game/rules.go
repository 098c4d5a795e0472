package game

import (
	"time"

	"github.com/vovakirdan/eastertap/internal/config"
	"github.com/vovakirdan/eastertap/internal/core"
)

// Rules are the resolved tunables of a session.
type Rules struct {
	InitialCountdown time.Duration
	EndWait          time.Duration
	Interval         time.Duration
	Palette          core.Palette
	EndBackground    core.Color
	EndButton        core.Color
	BiasCandidates   []float64
}

// RulesFromConfig resolves a validated game configuration.
func RulesFromConfig(cfg config.GameConfig) (Rules, error) {
	if err := cfg.Validate(); err != nil {
		return Rules{}, err
	}
	palette, err := cfg.Colors()
	if err != nil {
		return Rules{}, err
	}
	endBG, err := cfg.EndBackground()
	if err != nil {
		return Rules{}, err
	}
	endBtn, err := cfg.EndButton()
	if err != nil {
		return Rules{}, err
	}
	return Rules{
		InitialCountdown: cfg.InitialCountdown(),
		EndWait:          cfg.EndWait(),
		Interval:         cfg.Interval(),
		Palette:          palette,
		EndBackground:    endBG,
		EndButton:        endBtn,
		BiasCandidates:   cfg.BiasCandidates(),
	}, nil
}

// DefaultRules returns the rules of the built-in configuration.
func DefaultRules() Rules {
	r, err := RulesFromConfig(config.DefaultGameConfig())
	if err != nil {
		panic("game: default config is invalid: " + err.Error())
	}
	return r
}

// InitialSeconds returns the session length in whole seconds.
func (r Rules) InitialSeconds() int {
	return int(r.InitialCountdown / time.Second)
}
