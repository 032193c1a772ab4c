package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/millennium-run/internal/core"
	"github.com/vovakirdan/millennium-run/internal/fatal"
)

func TestDrainIsFIFOAndNonBlocking(t *testing.T) {
	b := NewBus(8)

	assert.Empty(t, b.DrainLogic(nil))

	b.SendLogic(KeyPressed{Key: core.KeyW})
	b.SendLogic(KeyReleased{Key: core.KeyW})
	b.SendLogic(WindowResized{Width: 80, Height: 24})

	got := b.DrainLogic(nil)
	assert.Equal(t, []Logic{
		KeyPressed{Key: core.KeyW},
		KeyReleased{Key: core.KeyW},
		WindowResized{Width: 80, Height: 24},
	}, got)
	assert.Empty(t, b.DrainLogic(nil))
}

func TestFullChannelDropsOldest(t *testing.T) {
	b := NewBus(2)

	assert.True(t, b.SendRender(WindowResized{Width: 1}))
	assert.True(t, b.SendRender(WindowResized{Width: 2}))
	assert.False(t, b.SendRender(WindowResized{Width: 3}))

	got := b.DrainRender(nil)
	assert.Equal(t, []Render{WindowResized{Width: 2}, WindowResized{Width: 3}}, got)

	_, render := b.Dropped()
	assert.Equal(t, uint64(1), render)
}

func TestCommandsAreNeverDropped(t *testing.T) {
	b := NewBus(1)

	const n = 100
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.SendCommand(Terminate{})
		}()
	}
	wg.Wait()

	assert.Len(t, b.DrainCommands(nil), n)
	assert.Empty(t, b.DrainCommands(nil))
}

func TestNotifyPanicWakesOSGoroutine(t *testing.T) {
	b := NewBus(0)
	e := fatal.New("Boom", "bad")

	b.NotifyPanic(e)

	select {
	case <-b.CommandReady():
	default:
		t.Fatal("CommandReady was not signalled")
	}
	cmds := b.DrainCommands(nil)
	require.Len(t, cmds, 1)
	pe, ok := cmds[0].(PanicError)
	require.True(t, ok)
	assert.Same(t, e, pe.Err)
}

func TestSharedEventsSatisfyBothChannels(t *testing.T) {
	var _ Logic = WindowResized{}
	var _ Render = WindowResized{}
	var _ Logic = ApplicationTerminate{}
	var _ Render = ApplicationTerminate{}
}
