package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/config.yaml
var defaultYAML []byte

// Default returns the embedded default configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic("config: embedded default: " + err.Error())
	}
	return cfg
}

// DefaultYAML returns the embedded default file, for writing a starter
// config.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultYAML...)
}
