package config

import (
	_ "embed"
)

//go:embed defaults/eastertap.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the built-in configuration: a 10 second session,
// a 6 second cooldown and the seven-color palette.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Timing: TimingConfig{
			InitialCountdownMs: 10000,
			EndWaitMs:          6000,
			IntervalMs:         1000,
		},
		Palette: []string{"red", "orange", "yellow", "green", "blue", "purple", "pink"},
		EndColors: EndColors{
			Background: "blue",
			Button:     "purple",
		},
		Bias: BiasConfig{
			Min: 10,
			Max: 90,
		},
		Notice: NoticeConfig{
			DurationMs: 3500, // long toast
		},
		Feedback: FeedbackConfig{
			DurationMs: 150,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultGameYAML
}
