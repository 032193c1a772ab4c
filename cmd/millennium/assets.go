package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/millennium-run/internal/assets"
	"github.com/vovakirdan/millennium-run/internal/platform/tui"
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Inspect the asset directory",
}

var assetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the asset manifest",
	Long:  `Lists every asset of the manifest with its class and whether the file exists.`,
	Args:  cobra.NoArgs,
	Run:   runAssetsList,
}

var assetsVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check asset files against their keys",
	Args:  cobra.NoArgs,
	Run:   runAssetsVerify,
}

var assetsDigestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Print a key file for the asset directory",
	Long: `Computes the BLAKE2b-256 key of every Static asset and prints them in the
format of the bundled key file.`,
	Args: cobra.NoArgs,
	Run:  runAssetsDigest,
}

var assetsBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the asset manifest interactively",
	Args:  cobra.NoArgs,
	Run:   runAssetsBrowse,
}

func init() {
	assetsCmd.AddCommand(assetsListCmd, assetsVerifyCmd, assetsDigestCmd, assetsBrowseCmd)
}

var (
	classColors = map[assets.Class]*color.Color{
		assets.Static:   color.New(color.FgCyan),
		assets.Dynamic:  color.New(color.FgYellow),
		assets.Optional: color.New(color.FgGreen),
	}
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
)

// openAssets resolves the asset directory and loads the manifest, exiting
// on failure.
func openAssets() (assets.Root, *assets.Manifest) {
	cfg, _, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	var root assets.Root
	if cfg.Assets.Root != "" {
		root, err = assets.OpenRoot(cfg.Assets.Root)
	} else {
		root, err = assets.ResolveRoot()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	m, err := assets.DefaultManifest()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return root, m
}

// stat returns the size of p, or -1 when it does not exist.
func stat(root assets.Root, p string) (int64, error) {
	full, err := root.Join(p)
	if err != nil {
		return -1, err
	}
	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	return info.Size(), nil
}

func runAssetsList(cmd *cobra.Command, args []string) {
	root, m := openAssets()

	fmt.Printf("Assets in %s:\n\n", root.Dir())
	maxLen := 4 // "Path" header
	for _, p := range m.Paths() {
		maxLen = max(maxLen, len(p))
	}
	fmt.Printf("  %-*s  %-8s  %s\n", maxLen, "Path", "Class", "File")
	fmt.Printf("  %-*s  %-8s  %s\n", maxLen, "----", "-----", "----")

	for _, p := range m.Paths() {
		class, _ := m.Lookup(p)
		size, err := stat(root, p)
		var state string
		switch {
		case err != nil:
			state = failColor.Sprint(err)
		case size < 0 && class.Creatable():
			state = dimColor.Sprint("not created yet")
		case size < 0:
			state = failColor.Sprint("missing")
		default:
			state = fmt.Sprintf("%d bytes", size)
		}
		fmt.Printf("  %-*s  %s  %s\n", maxLen, p, classColors[class].Sprintf("%-8s", class), state)
	}
	fmt.Println()
	fmt.Printf("%d assets. Run 'millennium assets verify' to check them.\n", m.Len())
}

func runAssetsVerify(cmd *cobra.Command, args []string) {
	root, m := openAssets()
	keys, err := assets.DefaultKeys()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := assets.Verify(context.Background(), root, m, keys); err != nil {
		failColor.Fprint(os.Stderr, "FAIL ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	okColor.Print("OK ")
	fmt.Printf("%d assets in %s\n", m.Len(), root.Dir())
}

func runAssetsDigest(cmd *cobra.Command, args []string) {
	root, m := openAssets()
	text, err := assets.FormatKeys(root, m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(text)
}

func runAssetsBrowse(cmd *cobra.Command, args []string) {
	if err := tui.CheckTerminal(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	root, m := openAssets()
	keys, err := assets.DefaultKeys()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rows := assetRows(root, m, keys)
	width, height := 80, 24
	if w, h, ok := tui.TerminalSize(); ok {
		width, height = w, h
	}
	if err := tui.RunBrowser(rows, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// assetRows checks each asset on its own so the browser can show a status
// per file.
func assetRows(root assets.Root, m *assets.Manifest, keys assets.Keys) []tui.AssetRow {
	rows := make([]tui.AssetRow, 0, m.Len())
	for p, class := range m.All() {
		size, err := stat(root, p)
		status := "ok"
		switch {
		case err != nil:
			status = "error"
		case size < 0 && class.Creatable():
			status = "absent"
		default:
			var verr *assets.VerifyError
			if err := assets.VerifyOne(root, p, class, keys); errors.As(err, &verr) {
				status = verr.Reason
			} else if err != nil {
				status = "error"
			}
		}
		rows = append(rows, tui.AssetRow{Path: p, Class: class.String(), Size: size, Status: status})
	}
	return rows
}
