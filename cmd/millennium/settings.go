package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/millennium-run/internal/assets"
	"github.com/vovakirdan/millennium-run/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or reset the user settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the user settings",
	Args:  cobra.NoArgs,
	Run:   runSettingsShow,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default user settings",
	Long:  `Overwrites the settings file with defaults. The language is asked again on the next start.`,
	Args:  cobra.NoArgs,
	Run:   runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsResetCmd)
}

// settingsHandle opens user.setting through an asset cache.
func settingsHandle() *assets.Handle {
	root, m := openAssets()
	cache := assets.NewCache(root, m, cliLogger())
	h, err := cache.Handle(settings.AssetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return h
}

func runSettingsShow(cmd *cobra.Command, args []string) {
	h := settingsHandle()
	defer h.Close()

	u, err := assets.Read[settings.UserSettings](h, settings.Codec{})
	if errors.Is(err, assets.ErrEmptyOptional) {
		fmt.Println("# No settings file yet, showing defaults.")
		u, err = settings.Default(), nil
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	data, err := settings.Codec{}.Encode(&u)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}

func runSettingsReset(cmd *cobra.Command, args []string) {
	h := settingsHandle()
	defer h.Close()

	u := settings.Default()
	if err := assets.Write(h, settings.Codec{}, &u); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Settings restored to defaults.")
}
