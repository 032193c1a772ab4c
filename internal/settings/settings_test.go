package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/millennium-run/internal/assets"
	"github.com/vovakirdan/millennium-run/internal/core"
)

func TestDefaults(t *testing.T) {
	d := Default()
	assert.Equal(t, Unknown, d.Locale)
	assert.Equal(t, W1280H720, d.Resolution)
	assert.Equal(t, Windowed, d.ScreenMode)
	assert.Equal(t, Controls{Up: core.KeyW, Down: core.KeyS, Left: core.KeyA, Right: core.KeyD}, d.Controls)
	assert.Equal(t, Volumes{Background: 80, Effect: 70, Voice: 70}, d.Volumes)
	assert.NoError(t, d.Validate())
}

func TestEncodeIsReadable(t *testing.T) {
	d := Default()
	d.Locale = Korean
	data, err := Codec{}.Encode(&d)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "# Millennium Run user settings")
	assert.Contains(t, text, "locale: KOR")
	assert.Contains(t, text, "resolution: W1280H720")
	assert.Contains(t, text, "screen_mode: Windowed")
	assert.Contains(t, text, "  up: KeyW")
	assert.Contains(t, text, "  background: 80")
}

func TestDecodeKeepsDefaultsForMissingFields(t *testing.T) {
	u, err := Codec{}.Decode([]byte("locale: KOR\nvolumes:\n  voice: 10\n"))
	require.NoError(t, err)

	want := Default()
	want.Locale = Korean
	want.Volumes.Voice = 10
	assert.Equal(t, want, u)
}

func TestDecodeErrorsCarryPosition(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		pos  string
	}{
		{"bad locale", "locale: KOR\nresolution: W1x1\n", "line 2, column 13"},
		{"bad key", "controls:\n  up: KeyW\n  down: Jump\n", "line 3, column 9"},
		{"ui key bound", "controls:\n  down: Enter\n", "line 2, column 3"},
		{"volume range", "volumes:\n  effect: 101\n", "line 2, column 11"},
		{"unknown field", "locale: KOR\nfullscreen: true\n", "line 2"},
		{"syntax", "locale: [KOR\n", "line"},
		{"duplicate binding", "controls:\n  up: KeyS\n", "line 2, column 3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Codec{}.Decode([]byte(tc.doc))
			require.Error(t, err)

			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Contains(t, se.Position(), tc.pos)
		})
	}
}

func TestEncodeRejectsInvalid(t *testing.T) {
	u := Default()
	u.Controls.Up = core.KeyEnter
	_, err := Codec{}.Encode(&u)
	assert.Error(t, err)
}

func TestDowngrade(t *testing.T) {
	r, ok := W1920H1080.Downgrade()
	assert.True(t, ok)
	assert.Equal(t, W1600H900, r)

	r, ok = W640H360.Downgrade()
	assert.False(t, ok)
	assert.Equal(t, W640H360, r)
}

func TestUpgrade(t *testing.T) {
	r, ok := W640H360.Upgrade()
	assert.True(t, ok)
	assert.Equal(t, W960H540, r)

	r, ok = W1920H1080.Upgrade()
	assert.False(t, ok)
	assert.Equal(t, W1920H1080, r)
}

func TestVolumeAdd(t *testing.T) {
	assert.Equal(t, Volume(90), Volume(80).Add(10))
	assert.Equal(t, Volume(MaxVolume), Volume(95).Add(10))
	assert.Equal(t, Volume(0), Volume(5).Add(-10))
}

func TestFitResolution(t *testing.T) {
	// 1280x720 is 160x45 cells.
	assert.Equal(t, W1280H720, FitResolution(W1280H720, 200, 60))
	assert.Equal(t, W960H540, FitResolution(W1280H720, 159, 45))
	assert.Equal(t, W640H360, FitResolution(W1920H1080, 80, 24))
	assert.Equal(t, W640H360, FitResolution(W1280H720, 10, 10))
}

func TestParseHelpers(t *testing.T) {
	l, err := ParseLocale("Korean")
	require.NoError(t, err)
	assert.Equal(t, Korean, l)
	assert.Equal(t, "ko", l.Tag().String())

	r, err := ParseResolution("1600x900")
	require.NoError(t, err)
	assert.Equal(t, W1600H900, r)

	_, err = ParseScreenMode("Tiled")
	assert.Error(t, err)
	assert.InDelta(t, 0.7, Volume(70).Norm(), 1e-9)
	assert.Equal(t, Volume(100), NewVolume(250))
}

// Scenario: first run with no settings file.
func TestReadOrDefaultCreatesSettingsFile(t *testing.T) {
	dir := t.TempDir()
	root, err := assets.OpenRoot(dir)
	require.NoError(t, err)
	m, err := assets.ParseManifest("user.setting Optional\n# test\n")
	require.NoError(t, err)
	cache := assets.NewCache(root, m, nil)

	h, err := cache.Handle(AssetPath)
	require.NoError(t, err)
	defer h.Close()

	u, err := assets.ReadOrDefault(h, Codec{}, Codec{}, Default)
	require.NoError(t, err)
	assert.Equal(t, Default(), u)

	data, err := os.ReadFile(filepath.Join(dir, AssetPath))
	require.NoError(t, err)
	back, err := Codec{}.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, Default(), back)
}

func TestInvalidSettingsFileIsDecodeError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, AssetPath), []byte("locale: Klingon\n"), 0o644))
	root, err := assets.OpenRoot(dir)
	require.NoError(t, err)
	m, err := assets.ParseManifest("user.setting Optional\n")
	require.NoError(t, err)

	h, err := assets.NewCache(root, m, nil).Handle(AssetPath)
	require.NoError(t, err)
	defer h.Close()

	_, err = assets.ReadOrDefault(h, Codec{}, Codec{}, Default)
	var de *assets.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "line 1, column 9", de.Position)
	assert.Equal(t, "Failed to load asset file", de.Summary())
}
