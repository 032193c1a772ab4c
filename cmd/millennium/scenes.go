package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/millennium-run/internal/registry"
)

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List the scenes the game can start with",
	Args:  cobra.NoArgs,
	Run:   runScenes,
}

func runScenes(cmd *cobra.Command, args []string) {
	scenes := registry.List()
	if len(scenes) == 0 {
		fmt.Println("No scenes available.")
		return
	}

	fmt.Println("Available scenes:")
	fmt.Println()

	maxLen := 4 // "Name" header
	for _, s := range scenes {
		maxLen = max(maxLen, len(s.Name))
	}
	fmt.Printf("  %-*s  %s\n", maxLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxLen, "----", "-----------")
	for _, s := range scenes {
		fmt.Printf("  %-*s  %s\n", maxLen, s.Name, s.Description)
	}

	fmt.Println()
	fmt.Println("Run 'millennium -s <name>' to start with a scene.")
}
