// Package config holds the runtime settings of the tooni customizer, read
// from TOONI_* environment variables.
package config

import (
	"errors"
	"fmt"
)

// Config is the full set of customizer settings.
type Config struct {
	// AssetsDir is the directory that contains images/. Ignored when
	// AssetsURL is set.
	AssetsDir string `env:"TOONI_ASSETS_DIR" envDefault:"assets"`
	// AssetsURL serves images/ over HTTP instead of the local directory.
	AssetsURL string `env:"TOONI_ASSETS_URL"`

	Title  string `env:"TOONI_TITLE" envDefault:"tooni"`
	Width  int    `env:"TOONI_WIDTH" envDefault:"568"`
	Height int    `env:"TOONI_HEIGHT" envDefault:"720"`

	BackgroundColor string `env:"TOONI_BACKGROUND_COLOR" envDefault:"#ffffff"`
	// BackgroundFile is an optional photo installed as background at start.
	BackgroundFile string `env:"TOONI_BACKGROUND_FILE"`

	ExportDir string `env:"TOONI_EXPORT_DIR" envDefault:"."`
	// FontPath points at a TTF/OTF face for the HUD. The built-in face has
	// no Hangul, so item file names are shown when it is empty.
	FontPath string `env:"TOONI_FONT"`
	// FadeIn is the overlay fade-in duration in seconds. Zero disables it.
	FadeIn float64 `env:"TOONI_FADE_IN" envDefault:"0.15"`

	Sound  bool   `env:"TOONI_SOUND" envDefault:"false"`
	Debug  bool   `env:"TOONI_DEBUG" envDefault:"false"`
	Script string `env:"TOONI_SCRIPT"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Width, c.Height)
	}
	if c.AssetsDir == "" && c.AssetsURL == "" {
		return errors.New("config: one of TOONI_ASSETS_DIR or TOONI_ASSETS_URL is required")
	}
	if c.FadeIn < 0 {
		return fmt.Errorf("config: fade-in %v must not be negative", c.FadeIn)
	}
	return nil
}
