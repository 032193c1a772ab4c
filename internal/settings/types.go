// Package settings defines the user preferences stored in the Optional asset
// user.setting and their YAML codec.
package settings

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/vovakirdan/millennium-run/internal/core"
)

// AssetPath is the manifest path of the settings file.
const AssetPath = "user.setting"

// Locale is the interface language. Unknown means the player has not picked
// one yet and the first-time setup scene runs.
type Locale uint8

const (
	Unknown Locale = iota
	Korean
)

var localeNames = map[Locale]string{Unknown: "Unknown", Korean: "KOR"}

func (l Locale) String() string {
	if s, ok := localeNames[l]; ok {
		return s
	}
	return fmt.Sprintf("Locale(%d)", uint8(l))
}

// Tag returns the language tag used by the message catalog.
func (l Locale) Tag() language.Tag {
	if l == Korean {
		return language.Korean
	}
	return language.Und
}

// ParseLocale accepts the serialized name ("KOR") and a few spellings used
// on the command line ("Korean", "ko").
func ParseLocale(s string) (Locale, error) {
	switch s {
	case "Unknown":
		return Unknown, nil
	case "KOR", "Korean", "korean", "ko", "ko-KR":
		return Korean, nil
	}
	return Unknown, fmt.Errorf("settings: unknown locale %q", s)
}

// Resolution is a logical window size in pixels.
type Resolution uint8

const (
	W640H360 Resolution = iota
	W960H540
	W1280H720
	W1440H810
	W1600H900
	W1920H1080
)

// Resolutions lists every size, smallest first.
var Resolutions = []Resolution{W640H360, W960H540, W1280H720, W1440H810, W1600H900, W1920H1080}

var resolutionSizes = map[Resolution][2]int{
	W640H360:   {640, 360},
	W960H540:   {960, 540},
	W1280H720:  {1280, 720},
	W1440H810:  {1440, 810},
	W1600H900:  {1600, 900},
	W1920H1080: {1920, 1080},
}

// Cell size used to map pixels onto a terminal grid.
const (
	CellWidth  = 8
	CellHeight = 16
)

func (r Resolution) String() string {
	if s, ok := resolutionSizes[r]; ok {
		return fmt.Sprintf("W%dH%d", s[0], s[1])
	}
	return fmt.Sprintf("Resolution(%d)", uint8(r))
}

// Valid reports whether r is one of Resolutions.
func (r Resolution) Valid() bool {
	_, ok := resolutionSizes[r]
	return ok
}

// Size returns the width and height in pixels.
func (r Resolution) Size() (int, int) {
	s := resolutionSizes[r]
	return s[0], s[1]
}

// Cells returns the size in terminal cells.
func (r Resolution) Cells() (int, int) {
	w, h := r.Size()
	return w / CellWidth, h / CellHeight
}

// Downgrade returns the next smaller resolution. It reports false for the
// smallest one.
func (r Resolution) Downgrade() (Resolution, bool) {
	if r == W640H360 || !r.Valid() {
		return r, false
	}
	return r - 1, true
}

// Upgrade returns the next larger resolution. It reports false for the
// largest one.
func (r Resolution) Upgrade() (Resolution, bool) {
	if r >= W1920H1080 {
		return r, false
	}
	return r + 1, true
}

// ParseResolution accepts "W1280H720" or "1280x720".
func ParseResolution(s string) (Resolution, error) {
	for _, r := range Resolutions {
		w, h := r.Size()
		if s == r.String() || s == fmt.Sprintf("%dx%d", w, h) {
			return r, nil
		}
	}
	return W1280H720, fmt.Errorf("settings: unknown resolution %q", s)
}

// FitResolution steps r down until it fits in cols×rows terminal cells.
// The smallest resolution is returned when nothing fits.
func FitResolution(r Resolution, cols, rows int) Resolution {
	if !r.Valid() {
		r = W1280H720
	}
	for {
		w, h := r.Cells()
		if w <= cols && h <= rows {
			return r
		}
		smaller, ok := r.Downgrade()
		if !ok {
			return r
		}
		r = smaller
	}
}

// ScreenMode selects how the game occupies the display.
type ScreenMode uint8

const (
	Windowed ScreenMode = iota
	Borderless
	FullScreen
)

// ScreenModes lists every mode in menu order.
var ScreenModes = []ScreenMode{Windowed, Borderless, FullScreen}

var screenModeNames = map[ScreenMode]string{Windowed: "Windowed", Borderless: "Borderless", FullScreen: "FullScreen"}

func (m ScreenMode) String() string {
	if s, ok := screenModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("ScreenMode(%d)", uint8(m))
}

// ParseScreenMode looks a mode up by name.
func ParseScreenMode(s string) (ScreenMode, error) {
	for m, name := range screenModeNames {
		if name == s {
			return m, nil
		}
	}
	return Windowed, fmt.Errorf("settings: unknown screen mode %q", s)
}

// MaxVolume is the loudest Volume.
const MaxVolume = 100

// Volume is a loudness in [0, MaxVolume].
type Volume uint8

// NewVolume clamps v into range.
func NewVolume(v int) Volume {
	return Volume(core.Clamp(v, 0, MaxVolume))
}

// Add returns v moved by d, clamped into range.
func (v Volume) Add(d int) Volume {
	return NewVolume(int(v) + d)
}

// Norm returns the volume in [0, 1].
func (v Volume) Norm() float64 {
	return float64(min(v, MaxVolume)) / MaxVolume
}

// Volumes holds the three mixer channels.
type Volumes struct {
	Background Volume `yaml:"background"`
	Effect     Volume `yaml:"effect"`
	Voice      Volume `yaml:"voice"`
}

// Controls maps game directions to keys.
type Controls struct {
	Up    core.Key `yaml:"up"`
	Down  core.Key `yaml:"down"`
	Left  core.Key `yaml:"left"`
	Right core.Key `yaml:"right"`
}

// Keys returns the bindings in up, down, left, right order.
func (c Controls) Keys() [4]core.Key {
	return [4]core.Key{c.Up, c.Down, c.Left, c.Right}
}

// Validate checks every binding is bindable and distinct.
func (c Controls) Validate() error {
	seen := make(map[core.Key]bool, 4)
	for _, k := range c.Keys() {
		if !k.Bindable() {
			return fmt.Errorf("settings: key %s cannot be bound to a control", k)
		}
		if seen[k] {
			return fmt.Errorf("settings: key %s is bound twice", k)
		}
		seen[k] = true
	}
	return nil
}

// UserSettings is the persisted preference record.
type UserSettings struct {
	Locale     Locale     `yaml:"locale"`
	Resolution Resolution `yaml:"resolution"`
	ScreenMode ScreenMode `yaml:"screen_mode"`
	Controls   Controls   `yaml:"controls"`
	Volumes    Volumes    `yaml:"volumes"`
}

// Default returns the settings written on first run.
func Default() UserSettings {
	return UserSettings{
		Locale:     Unknown,
		Resolution: W1280H720,
		ScreenMode: Windowed,
		Controls: Controls{
			Up:    core.KeyW,
			Down:  core.KeyS,
			Left:  core.KeyA,
			Right: core.KeyD,
		},
		Volumes: Volumes{Background: 80, Effect: 70, Voice: 70},
	}
}

// Validate checks every field is in range.
func (u UserSettings) Validate() error {
	if _, ok := localeNames[u.Locale]; !ok {
		return fmt.Errorf("settings: invalid locale %d", u.Locale)
	}
	if !u.Resolution.Valid() {
		return fmt.Errorf("settings: invalid resolution %d", u.Resolution)
	}
	if _, ok := screenModeNames[u.ScreenMode]; !ok {
		return fmt.Errorf("settings: invalid screen mode %d", u.ScreenMode)
	}
	for _, v := range []Volume{u.Volumes.Background, u.Volumes.Effect, u.Volumes.Voice} {
		if v > MaxVolume {
			return fmt.Errorf("settings: volume %d out of range", v)
		}
	}
	return u.Controls.Validate()
}
