package core

import (
	"fmt"
	"strings"
)

// Key is a symbolic keyboard key. The values KeyA through Numpad9 can be
// bound to game controls; the rest are fixed UI keys.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	ArrowDown
	ArrowLeft
	ArrowRight
	ArrowUp
	Numpad0
	Numpad1
	Numpad2
	Numpad3
	Numpad4
	Numpad5
	Numpad6
	Numpad7
	Numpad8
	Numpad9
	KeyEnter
	KeyEscape
	KeySpace
	KeyBackspace
	KeyTab
	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown:   "Unknown",
	ArrowDown:    "ArrowDown",
	ArrowLeft:    "ArrowLeft",
	ArrowRight:   "ArrowRight",
	ArrowUp:      "ArrowUp",
	KeyEnter:     "Enter",
	KeyEscape:    "Escape",
	KeySpace:     "Space",
	KeyBackspace: "Backspace",
	KeyTab:       "Tab",
}

func init() {
	for k := KeyA; k <= KeyZ; k++ {
		keyNames[k] = "Key" + string(rune('A'+k-KeyA))
	}
	for k := Numpad0; k <= Numpad9; k++ {
		keyNames[k] = "Numpad" + string(rune('0'+k-Numpad0))
	}
}

func (k Key) String() string {
	if k >= keyCount {
		return "Unknown"
	}
	return keyNames[k]
}

// Bindable reports whether k may be assigned to a game control.
func (k Key) Bindable() bool {
	return k >= KeyA && k <= Numpad9
}

// Rune returns the character a terminal reports for k, or 0 for keys that
// arrive as named key events.
func (k Key) Rune() rune {
	switch {
	case k >= KeyA && k <= KeyZ:
		return rune('a' + k - KeyA)
	case k >= Numpad0 && k <= Numpad9:
		return rune('0' + k - Numpad0)
	case k == KeySpace:
		return ' '
	}
	return 0
}

// ParseKey looks a key up by its String name.
func ParseKey(name string) (Key, error) {
	for k := KeyUnknown + 1; k < keyCount; k++ {
		if keyNames[k] == name {
			return k, nil
		}
	}
	return KeyUnknown, fmt.Errorf("core: unknown key %q", name)
}

// KeyFromRune maps a typed character to its key. Letters are case
// insensitive.
func KeyFromRune(r rune) Key {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A')
	case r >= '0' && r <= '9':
		return Numpad0 + Key(r-'0')
	case r == ' ':
		return KeySpace
	}
	return KeyUnknown
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	if k == KeyUnknown || k >= keyCount {
		return nil, fmt.Errorf("core: cannot encode key %d", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	v, err := ParseKey(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Button is a mouse button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonMiddle:
		return "Middle"
	case ButtonRight:
		return "Right"
	default:
		return "None"
	}
}
