package assets

import (
	"fmt"
	"maps"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestManifestCanonicalRoundTrip checks that parsing the canonical form of a
// parsed manifest yields the same mapping.
func TestManifestCanonicalRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("parse(canonical(m)) == m", prop.ForAll(
		func(names []string, classes []int) bool {
			var sb strings.Builder
			seen := make(map[string]bool)
			for i, name := range names {
				if i >= len(classes) {
					break
				}
				p := "dir/" + name
				if seen[p] {
					continue
				}
				seen[p] = true
				fmt.Fprintf(&sb, "  %s\t%s # generated\n", p, Class(classes[i]))
			}

			m, err := ParseManifest(sb.String())
			if err != nil {
				return false
			}
			again, err := ParseManifest(m.Canonical())
			if err != nil {
				return false
			}
			return maps.Equal(m.entries, again.entries) && m.Canonical() == again.Canonical()
		},
		gen.SliceOf(gen.Identifier()),
		gen.SliceOf(gen.IntRange(0, 2)),
	))

	properties.TestingRun(t)
}
