package settings

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/vovakirdan/millennium-run/internal/core"
)

func genControls() gopter.Gen {
	// Draw four distinct bindable keys.
	return gen.SliceOfN(4, gen.IntRange(int(core.KeyA), int(core.Numpad9))).
		SuchThat(func(ks []int) bool {
			seen := map[int]bool{}
			for _, k := range ks {
				if seen[k] {
					return false
				}
				seen[k] = true
			}
			return true
		}).
		Map(func(ks []int) Controls {
			return Controls{Up: core.Key(ks[0]), Down: core.Key(ks[1]), Left: core.Key(ks[2]), Right: core.Key(ks[3])}
		})
}

func genSettings() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(int(Unknown), int(Korean)),
		gen.IntRange(int(W640H360), int(W1920H1080)),
		gen.IntRange(int(Windowed), int(FullScreen)),
		genControls(),
		gen.IntRange(0, MaxVolume),
		gen.IntRange(0, MaxVolume),
		gen.IntRange(0, MaxVolume),
	).Map(func(v []any) UserSettings {
		return UserSettings{
			Locale:     Locale(v[0].(int)),
			Resolution: Resolution(v[1].(int)),
			ScreenMode: ScreenMode(v[2].(int)),
			Controls:   v[3].(Controls),
			Volumes: Volumes{
				Background: Volume(v[4].(int)),
				Effect:     Volume(v[5].(int)),
				Voice:      Volume(v[6].(int)),
			},
		}
	})
}

func TestSettingsRoundTripProperty(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("decode(encode(u)) == u", prop.ForAll(
		func(u UserSettings) bool {
			data, err := Codec{}.Encode(&u)
			if err != nil {
				return false
			}
			back, err := Codec{}.Decode(data)
			return err == nil && reflect.DeepEqual(u, back)
		},
		genSettings(),
	))

	properties.TestingRun(t)
}
