// millennium is a terminal rendition of the Millennium Run client: a
// first-run language setup, the intro with a character voice, the title
// menu and the stage board.
//
// Usage:
//
//	millennium                   - Start the game
//	millennium assets list       - Show the asset manifest
//	millennium assets verify     - Check asset files against their keys
//	millennium assets digest     - Print a key file for the asset directory
//	millennium assets browse     - Browse the asset manifest interactively
//	millennium settings show     - Print the user settings
//	millennium settings reset    - Restore default user settings
//	millennium scenes            - List the scenes that -s accepts
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.millennium/config.yaml)
//	--assets <dir>      - Asset directory (default: next to the executable)
//	--log-level <level> - Log level: debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/millennium-run/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagAssets   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "millennium",
	Short: "Millennium Run in your terminal",
	Long: `Millennium Run starts with a language setup on the first run, plays the
intro with one of four character voices and opens the title menu.

Examples:
  millennium
  millennium -l KOR
  millennium -s title
  millennium assets verify`,
	Args:    cobra.NoArgs,
	PreRunE: checkGameFlags,
	Run:     runGame,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Asset directory")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(scenesCmd)
}

// loadConfig reads the config file and applies the global flags.
func loadConfig() (config.Config, string, error) {
	cfg, src, err := config.Load(flagConfig)
	if err != nil {
		return cfg, src, err
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagAssets != "" {
		cfg.Assets.Root = flagAssets
	}
	return cfg, src, cfg.Validate()
}
