package assets

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest(`
# comment only
user.setting Optional
  shader.wgsl   Static   # trailing comment
save.dat Dynamic#glued comment

`)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())

	tests := []struct {
		path  string
		class Class
	}{
		{"user.setting", Optional},
		{"shader.wgsl", Static},
		{"save.dat", Dynamic},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			c, ok := m.Lookup(tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.class, c)
		})
	}
}

func TestParseManifestOnlyCommentsAndBlanks(t *testing.T) {
	m, err := ParseManifest("\n# a\n   \n\t# b\n")
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Paths())
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
		kind ManifestKind
	}{
		{"three tokens", "a Static\nb Static extra\n", 2, ManifestSyntax},
		{"one token", "lonely\n", 1, ManifestSyntax},
		{"hash cuts second token", "a#Static\n", 1, ManifestSyntax},
		{"bad class", "\n\na Mutable\n", 3, ManifestClass},
		{"duplicate cites second line", "a Static\nb Dynamic\na Optional\n", 3, ManifestDuplicate},
		{"duplicate after normalization", "dir/a Static\n./dir//a Static\n", 2, ManifestDuplicate},
		{"escaping path", "../secret Static\n", 1, ManifestPath},
		{"absolute path", "/etc/passwd Static\n", 1, ManifestPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest(tt.text)
			require.Error(t, err)

			var me *ManifestError
			require.True(t, errors.As(err, &me), "expected *ManifestError, got %T", err)
			assert.Equal(t, tt.line, me.Line)
			assert.Equal(t, tt.kind, me.Kind)
		})
	}
}

func TestParseManifestCRLF(t *testing.T) {
	m, err := ParseManifest("a Static\r\nb Optional\r\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, m.Paths())
}

func TestManifestLookupNormalizes(t *testing.T) {
	// "é" as e + combining acute must match the precomposed form.
	m, err := ParseManifest("cafe\u0301.txt Static\n")
	require.NoError(t, err)

	_, ok := m.Lookup("caf\u00e9.txt")
	assert.True(t, ok)
	_, ok = m.Lookup("./cafe\u0301.txt")
	assert.True(t, ok)
	_, ok = m.Lookup("missing.txt")
	assert.False(t, ok)
}

func TestManifestCanonical(t *testing.T) {
	m, err := ParseManifest("b Dynamic # x\na Static\n")
	require.NoError(t, err)
	assert.Equal(t, "a Static\nb Dynamic\n", m.Canonical())

	again, err := ParseManifest(m.Canonical())
	require.NoError(t, err)
	assert.Equal(t, m.entries, again.entries)
}

func TestDefaultManifest(t *testing.T) {
	m, err := DefaultManifest()
	require.NoError(t, err)

	c, ok := m.Lookup("user.setting")
	require.True(t, ok)
	assert.Equal(t, Optional, c)

	for _, p := range []string{
		"sounds/aris_title.wav",
		"sounds/momoi_title.wav",
		"sounds/midori_title.wav",
		"sounds/yuzu_title.wav",
	} {
		c, ok := m.Lookup(p)
		require.True(t, ok, p)
		assert.Equal(t, Static, c, p)
	}
}

func TestClassCapabilities(t *testing.T) {
	tests := []struct {
		class                   Class
		read, write, createable bool
	}{
		{Static, true, false, false},
		{Dynamic, true, true, false},
		{Optional, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			assert.Equal(t, tt.read, tt.class.Readable())
			assert.Equal(t, tt.write, tt.class.Writable())
			assert.Equal(t, tt.createable, tt.class.Creatable())

			parsed, err := ParseClass(tt.class.String())
			require.NoError(t, err)
			assert.Equal(t, tt.class, parsed)
		})
	}
}
