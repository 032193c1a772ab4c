// Package config loads the runtime configuration: logging, asset checks,
// loop rates, audio and terminal options.
package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Config is the runtime configuration.
type Config struct {
	Debug    bool           `yaml:"debug" env:"MILLENNIUM_DEBUG"`
	Log      LogConfig      `yaml:"log"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logic    LoopConfig     `yaml:"logic" env-prefix:"MILLENNIUM_LOGIC_"`
	Render   LoopConfig     `yaml:"render" env-prefix:"MILLENNIUM_RENDER_"`
	Audio    AudioConfig    `yaml:"audio"`
	Platform PlatformConfig `yaml:"platform"`
}

// LogConfig selects the log level and destination. An empty file means
// ~/.millennium/millennium.log while the terminal UI runs.
type LogConfig struct {
	Level string `yaml:"level" env:"MILLENNIUM_LOG_LEVEL"`
	File  string `yaml:"file" env:"MILLENNIUM_LOG_FILE"`
}

// AssetsConfig controls the asset directory. Root overrides the directory
// next to the executable.
type AssetsConfig struct {
	Root   string `yaml:"root" env:"MILLENNIUM_ASSETS"`
	Verify bool   `yaml:"verify" env:"MILLENNIUM_ASSETS_VERIFY"`
	Watch  bool   `yaml:"watch" env:"MILLENNIUM_ASSETS_WATCH"`
}

// LoopConfig is the frame cap of one loop. Zero means uncapped.
type LoopConfig struct {
	FPS int `yaml:"fps" env:"FPS"`
}

// AudioConfig controls the output device.
type AudioConfig struct {
	Enabled    bool `yaml:"enabled" env:"MILLENNIUM_AUDIO"`
	SampleRate int  `yaml:"sample_rate" env:"MILLENNIUM_AUDIO_SAMPLE_RATE"`
}

// PlatformConfig controls the terminal front end.
type PlatformConfig struct {
	Mouse     bool `yaml:"mouse" env:"MILLENNIUM_MOUSE"`
	AltScreen bool `yaml:"alt_screen" env:"MILLENNIUM_ALT_SCREEN"`
	TickRate  int  `yaml:"tick_rate" env:"MILLENNIUM_TICK_RATE"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Level returns the parsed log level.
func (c Config) Level() log.Level {
	l, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return l
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	if c.Logic.FPS < 0 || c.Logic.FPS > 1000 {
		return fmt.Errorf("%w: logic.fps %d out of range 0..1000", ErrInvalid, c.Logic.FPS)
	}
	if c.Render.FPS < 1 || c.Render.FPS > 1000 {
		return fmt.Errorf("%w: render.fps %d out of range 1..1000", ErrInvalid, c.Render.FPS)
	}
	if c.Audio.SampleRate < 8000 || c.Audio.SampleRate > 192000 {
		return fmt.Errorf("%w: audio.sample_rate %d out of range 8000..192000", ErrInvalid, c.Audio.SampleRate)
	}
	if c.Platform.TickRate < 1 || c.Platform.TickRate > 240 {
		return fmt.Errorf("%w: platform.tick_rate %d out of range 1..240", ErrInvalid, c.Platform.TickRate)
	}
	return nil
}
