package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings are host-level options read from the environment. CLI flags
// default to these values.
type Settings struct {
	DBPath   string `env:"EASTERTAP_DB"        envDefault:"~/.eastertap/eastertap.db"`
	LogLevel string `env:"EASTERTAP_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"EASTERTAP_LOG_FILE"  envDefault:"~/.eastertap/eastertap.log"`
	SSHAddr  string `env:"EASTERTAP_SSH_ADDR"  envDefault:":23235"`
	Player   string `env:"EASTERTAP_PLAYER"`
}

// LoadSettings parses Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("config: parse env: %w", err)
	}
	return s, nil
}

// ApplyEnv overrides timing values with EASTERTAP_* variables when set.
func ApplyEnv(cfg *GameConfig) error {
	if err := env.Parse(&cfg.Timing); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}
