package assets

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var errEmptyPath = errors.New("assets: empty path")

// NormalizePath turns a manifest or lookup path into its canonical form:
// NFC, forward slashes, cleaned, relative, and inside the root.
// Two paths are equivalent iff their normalized forms are equal.
func NormalizePath(p string) (string, error) {
	p = norm.NFC.String(strings.TrimSpace(p))
	if p == "" {
		return "", errEmptyPath
	}
	p = strings.ReplaceAll(p, `\`, "/")
	if strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%w: %q is absolute", ErrAssetPathEscape, p)
	}
	clean := path.Clean(p)
	if clean == "." {
		return "", errEmptyPath
	}
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %q", ErrAssetPathEscape, p)
	}
	return clean, nil
}
