package assets

import (
	_ "embed"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

// AssetListsFile is the name of the embedded asset list.
const AssetListsFile = "AssetLists.txt"

//go:embed AssetLists.txt
var assetLists string

// Manifest maps asset paths to their integrity class. It is immutable once
// built.
type Manifest struct {
	entries map[string]Class
}

// DefaultManifest parses the asset list embedded in the binary.
func DefaultManifest() (*Manifest, error) {
	return ParseManifest(assetLists)
}

// ParseManifest parses the line-oriented asset list format:
//
//	<path> <class> [# comment]
//
// A '#' anywhere ends the line. Blank and comment-only lines are skipped.
// Any error identifies the 1-based line that caused it.
func ParseManifest(text string) (*Manifest, error) {
	m := &Manifest{entries: make(map[string]Class)}

	for i, line := range strings.Split(text, "\n") {
		num := i + 1
		tokens := lineTokens(strings.TrimSuffix(line, "\r"))

		switch len(tokens) {
		case 0:
			continue
		case 2:
		default:
			return nil, &ManifestError{Line: num, Kind: ManifestSyntax}
		}

		p, err := NormalizePath(tokens[0])
		if err != nil {
			return nil, &ManifestError{Line: num, Kind: ManifestPath, Text: tokens[0], Err: err}
		}
		class, err := ParseClass(tokens[1])
		if err != nil {
			return nil, &ManifestError{Line: num, Kind: ManifestClass, Text: tokens[1]}
		}
		if _, dup := m.entries[p]; dup {
			return nil, &ManifestError{Line: num, Kind: ManifestDuplicate, Text: p}
		}
		m.entries[p] = class
	}

	return m, nil
}

// lineTokens splits a line on whitespace and stops at the first '#'.
func lineTokens(line string) []string {
	var tokens []string
	for _, field := range strings.Fields(line) {
		if i := strings.IndexByte(field, '#'); i >= 0 {
			if i > 0 {
				tokens = append(tokens, field[:i])
			}
			break
		}
		tokens = append(tokens, field)
	}
	return tokens
}

// Lookup returns the class of a path. The path is normalized first.
func (m *Manifest) Lookup(p string) (Class, bool) {
	clean, err := NormalizePath(p)
	if err != nil {
		return 0, false
	}
	c, ok := m.entries[clean]
	return c, ok
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Paths returns every path in sorted order.
func (m *Manifest) Paths() []string {
	return slices.Sorted(maps.Keys(m.entries))
}

// All iterates over the entries in sorted path order.
func (m *Manifest) All() iter.Seq2[string, Class] {
	return func(yield func(string, Class) bool) {
		for _, p := range m.Paths() {
			if !yield(p, m.entries[p]) {
				return
			}
		}
	}
}

// Canonical renders the manifest in the asset list format, one entry per
// line in path order. Parsing the result yields the same mapping.
func (m *Manifest) Canonical() string {
	var sb strings.Builder
	for p, c := range m.All() {
		fmt.Fprintf(&sb, "%s %s\n", p, c)
	}
	return sb.String()
}
