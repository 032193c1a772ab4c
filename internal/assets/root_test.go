package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRoot(t *testing.T) {
	dir := t.TempDir()

	root, err := OpenRoot(dir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(root.Dir()))

	_, err = OpenRoot(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, ErrAssetRootNotFound)

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = OpenRoot(file)
	assert.ErrorIs(t, err, ErrAssetRootNotFound)
}

func TestRootJoin(t *testing.T) {
	root, err := OpenRoot(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		name    string
		rel     string
		want    string
		escapes bool
	}{
		{"plain", "a.txt", "a.txt", false},
		{"nested", "sounds/a.wav", filepath.Join("sounds", "a.wav"), false},
		{"dot segments", "./sounds/../a.txt", "a.txt", false},
		{"backslashes", `sounds\a.wav`, filepath.Join("sounds", "a.wav"), false},
		{"parent", "../a.txt", "", true},
		{"deep parent", "sounds/../../a.txt", "", true},
		{"absolute", "/a.txt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := root.Join(tt.rel)
			if tt.escapes {
				assert.ErrorIs(t, err, ErrAssetPathEscape)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(root.Dir(), tt.want), got)
		})
	}
}

func TestRootRel(t *testing.T) {
	root, err := OpenRoot(t.TempDir())
	require.NoError(t, err)

	rel, err := root.Rel(filepath.Join(root.Dir(), "sounds", "a.wav"))
	require.NoError(t, err)
	assert.Equal(t, "sounds/a.wav", rel)

	_, err = root.Rel(filepath.Dir(root.Dir()))
	assert.ErrorIs(t, err, ErrAssetPathEscape)
}
