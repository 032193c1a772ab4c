package nodes

import (
	"io"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/millennium-run/internal/assets"
	"github.com/vovakirdan/millennium-run/internal/audio"
	"github.com/vovakirdan/millennium-run/internal/core"
	"github.com/vovakirdan/millennium-run/internal/event"
	"github.com/vovakirdan/millennium-run/internal/registry"
	"github.com/vovakirdan/millennium-run/internal/render"
	"github.com/vovakirdan/millennium-run/internal/scene"
	"github.com/vovakirdan/millennium-run/internal/settings"
	"github.com/vovakirdan/millennium-run/internal/shared"
)

// fixture is a shared store wired like the runtime does it, on a copy of
// the bundled asset directory.
type fixture struct {
	store  *shared.Store
	cache  *assets.Cache
	queue  *render.Queue
	bus    *event.Bus
	player *audio.NullPlayer
	disp   *scene.Dispatcher
}

func copyAssets(t *testing.T) string {
	t.Helper()
	src := filepath.Join("..", "..", "assets")
	dst := t.TempDir()
	err := filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
	require.NoError(t, err)
	return dst
}

func newFixture(t *testing.T, user settings.UserSettings) *fixture {
	t.Helper()

	root, err := assets.OpenRoot(copyAssets(t))
	require.NoError(t, err)
	m, err := assets.DefaultManifest()
	require.NoError(t, err)

	f := &fixture{
		store:  shared.New(),
		cache:  assets.NewCache(root, m, nil),
		queue:  render.NewQueue(80, 24),
		bus:    event.NewBus(64),
		player: &audio.NullPlayer{},
	}
	shared.Push(f.store, f.cache)
	shared.Push(f.store, f.queue)
	shared.Push(f.store, f.bus)
	shared.Push[audio.Player](f.store, f.player)
	shared.Push(f.store, log.New(io.Discard))
	shared.Push(f.store, rand.New(rand.NewSource(1)))
	shared.Push(f.store, user)
	f.disp = scene.NewDispatcher(f.store, nil)
	return f
}

func (f *fixture) start(t *testing.T, s scene.Scene) {
	t.Helper()
	require.NoError(t, f.disp.Start(s))
}

// frame runs one logic iteration with the given elapsed time.
func (f *fixture) frame(t *testing.T, elapsed float64, events ...event.Logic) {
	t.Helper()
	for _, e := range events {
		require.NoError(t, f.disp.HandleEvent(e))
	}
	require.NoError(t, f.disp.Update(0, elapsed))
	require.NoError(t, f.disp.Draw())
	require.NoError(t, f.disp.Apply())
}

// until runs frames until cond holds. Background loads need wall time, so
// frames are spaced out a little.
func (f *fixture) until(t *testing.T, elapsed float64, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached")
		}
		f.frame(t, elapsed)
		time.Sleep(time.Millisecond)
	}
}

func (f *fixture) screen(t *testing.T) *core.Screen {
	t.Helper()
	fr, ok := f.queue.Take()
	require.True(t, ok, "no frame submitted")
	return fr.Screen
}

func (f *fixture) user() *settings.UserSettings {
	u, _ := shared.GetMut[settings.UserSettings](f.store)
	return u
}

func key(k core.Key) event.KeyPressed { return event.KeyPressed{Key: k} }

func korean() settings.UserSettings {
	u := settings.Default()
	u.Locale = settings.Korean
	return u
}

func TestScenesAreRegistered(t *testing.T) {
	for _, name := range []string{SetupName, IntroName, TitleName, InGameName} {
		s, err := registry.Create(name)
		require.NoError(t, err, name)
		assert.NotNil(t, s)
	}
	s, _ := registry.Create("intro")
	assert.Equal(t, "IntroLoading", scene.Name(s))
}

func TestLookupRequiresCacheAndQueue(t *testing.T) {
	_, err := lookup(shared.New())
	assert.Error(t, err)

	f := newFixture(t, settings.Default())
	shared.Pop[settings.UserSettings](f.store)
	e, err := lookup(f.store)
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), *e.user, "missing settings are installed as defaults")
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"one two", "three"}, wrap("one two three", 7))
	assert.Equal(t, []string{"밀레니엄", "런"}, wrap("밀레니엄 런", 8))
	assert.Nil(t, wrap("x", 0))
	assert.Equal(t, []string{"verylongword"}, wrap("verylongword", 4))
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitLines("a\r\nb\n"))
	assert.Equal(t, []string{"a", "", "b"}, splitLines("a\n\nb"))
}

func TestMenuStep(t *testing.T) {
	c := settings.Default().Controls
	assert.Equal(t, -1, menuStep(c, c.Up))
	assert.Equal(t, -1, menuStep(c, core.ArrowUp))
	assert.Equal(t, 1, menuStep(c, c.Down))
	assert.Equal(t, 0, menuStep(c, core.KeyEnter))
}
