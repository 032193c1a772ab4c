package assets

import "fmt"

// Class is the integrity class of an asset. It decides whether the file
// may be written or created at runtime.
type Class uint8

const (
	// Static assets never change while the game runs.
	Static Class = iota
	// Dynamic assets must exist and may be rewritten.
	Dynamic
	// Optional assets may be missing and are created on first write.
	Optional
)

// ParseClass parses the class name used in the asset list.
func ParseClass(s string) (Class, error) {
	switch s {
	case "Static":
		return Static, nil
	case "Dynamic":
		return Dynamic, nil
	case "Optional":
		return Optional, nil
	}
	return 0, fmt.Errorf("assets: unknown integrity class %q", s)
}

// String returns the class name as written in the asset list.
func (c Class) String() string {
	switch c {
	case Static:
		return "Static"
	case Dynamic:
		return "Dynamic"
	case Optional:
		return "Optional"
	default:
		return fmt.Sprintf("Class(%d)", uint8(c))
	}
}

// Readable reports whether the asset can be read. Every class is readable.
func (c Class) Readable() bool { return true }

// Writable reports whether the asset can be rewritten.
func (c Class) Writable() bool { return c == Dynamic || c == Optional }

// Creatable reports whether the asset may be absent and created later.
func (c Class) Creatable() bool { return c == Optional }
