package save

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/millennium-run/internal/assets"
)

func TestEncodeLayout(t *testing.T) {
	d := Data{StageAris: 1, StageMomoi: 0x0203, StageMidori: 64, StageYuzu: 0, Beginner: true}
	data, err := Codec{}.Encode(&d)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 3, 2, 64, 0, 0, 0, 1}, data)
}

func TestDecodeRejectsCorruption(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short", []byte{0, 0, 0}},
		{"long", make([]byte, RecordSize+1)},
		{"stage over limit", []byte{65, 0, 0, 0, 0, 0, 0, 0, 1}},
		{"yuzu over limit", []byte{0, 0, 0, 0, 0, 0, 0, 1, 0}},
		{"beginner byte", []byte{0, 0, 0, 0, 0, 0, 0, 0, 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Codec{}.Decode(tc.data)
			var ce *CorruptError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "Failed to load asset file", ce.Summary())
		})
	}
}

func TestStageAccessors(t *testing.T) {
	d := Default()
	assert.True(t, d.Beginner)

	d.SetStage(Midori, 70)
	assert.Equal(t, uint16(NumTiles), d.Stage(Midori))
	assert.True(t, d.Cleared(Midori))

	d.SetStage(Yuzu, -3)
	assert.Equal(t, uint16(0), d.StageYuzu)
	assert.Equal(t, "momoi", Momoi.String())
}

// Scenario: write a record through a Dynamic asset, then an external tool
// corrupts it.
func TestDynamicSaveWriteThenExternalCorruption(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "score.bin")
	require.NoError(t, os.WriteFile(file, []byte{0, 0, 0, 0, 0, 0, 0, 0, 1}, 0o644))

	root, err := assets.OpenRoot(dir)
	require.NoError(t, err)
	m, err := assets.ParseManifest("score.bin Dynamic\n")
	require.NoError(t, err)
	cache := assets.NewCache(root, m, nil)

	h, err := cache.Handle("score.bin")
	require.NoError(t, err)
	defer h.Close()

	initial, err := assets.Read[Data](h, Codec{})
	require.NoError(t, err)
	assert.Equal(t, Default(), initial)

	next := Data{StageAris: 1, Beginner: false}
	require.NoError(t, assets.Write(h, Codec{}, &next))
	got, err := assets.Read[Data](h, Codec{})
	require.NoError(t, err)
	assert.Equal(t, next, got)

	require.NoError(t, os.WriteFile(file, []byte{99, 0, 0, 0, 0, 0, 0, 0, 0}, 0o644))
	cache.Invalidate("score.bin")

	_, err = assets.Read[Data](h, Codec{})
	var de *assets.DecodeError
	require.ErrorAs(t, err, &de)
	var ce *CorruptError
	assert.ErrorAs(t, err, &ce)
}
