package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// FileName is the config file name looked up in the search directories.
const FileName = "config.yaml"

// Embedded is the source reported when no file was found.
const Embedded = "embedded"

// Dir returns ~/.millennium, or "" when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".millennium")
}

// Load reads the configuration and reports where it came from.
// Search order: customPath -> ~/.millennium/config.yaml -> ./configs/config.yaml -> embedded default.
// Values missing from a file keep their embedded defaults; environment
// variables override both.
func Load(customPath string) (Config, string, error) {
	cfg := Default()

	if customPath != "" {
		if err := cleanenv.ReadConfig(customPath, &cfg); err != nil {
			return cfg, customPath, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return cfg, customPath, cfg.Validate()
	}

	var candidates []string
	if dir := Dir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, FileName))
	}
	candidates = append(candidates, filepath.Join("configs", FileName))

	for _, p := range candidates {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return cfg, p, fmt.Errorf("failed to read config %s: %w", p, err)
		}
		return cfg, p, cfg.Validate()
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, Embedded, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, Embedded, cfg.Validate()
}

// Usage describes the environment variables understood by Load.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}
