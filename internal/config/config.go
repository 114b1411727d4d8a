package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Defaults applied when neither flags, environment, nor the config file
// provide a value.
const (
	DefaultHost              = "https://openrouter.ai/api/v1"
	DefaultMaxToolIterations = 20
	DefaultBashTimeoutSecs   = 30
)

// Config holds the resolved settings for one session. Precedence is
// flags > HOMECODE_* environment > config file > defaults; viper does
// the layering, Load only reads the result.
type Config struct {
	Host              string
	APIKey            string
	Model             string
	WorkingDir        string
	MaxToolIterations int
	BashTimeoutSecs   int
	ShowThinking      bool
	NoSpinner         bool
	HistoryFile       string
}

// Load reads the resolved viper state into a Config and normalizes it.
func Load() (*Config, error) {
	cfg := &Config{
		Host:              viper.GetString("host"),
		APIKey:            viper.GetString("key"),
		Model:             viper.GetString("model"),
		WorkingDir:        viper.GetString("workdir"),
		MaxToolIterations: viper.GetInt("max_iter"),
		BashTimeoutSecs:   viper.GetInt("bash_timeout"),
		ShowThinking:      viper.GetBool("thinking"),
		NoSpinner:         viper.GetBool("no_spinner"),
	}

	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.MaxToolIterations <= 0 {
		cfg.MaxToolIterations = DefaultMaxToolIterations
	}
	if cfg.BashTimeoutSecs <= 0 {
		cfg.BashTimeoutSecs = DefaultBashTimeoutSecs
	}

	if cfg.WorkingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		cfg.WorkingDir = wd
	}
	if abs, err := filepath.Abs(cfg.WorkingDir); err == nil {
		cfg.WorkingDir = abs
	}

	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, ".homecode_history")
	}

	return cfg, nil
}
