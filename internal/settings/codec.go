package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/millennium-run/internal/core"
)

const header = "Millennium Run user settings"

// SyntaxError is a decode failure with the place it happened.
type SyntaxError struct {
	Line   int
	Column int
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("settings: %s: %v", e.Position(), e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Position formats the location for the fatal dialog.
func (e *SyntaxError) Position() string {
	if e.Column > 0 {
		return fmt.Sprintf("line %d, column %d", e.Line, e.Column)
	}
	return fmt.Sprintf("line %d", e.Line)
}

func nodeError(n *yaml.Node, err error) error {
	return &SyntaxError{Line: n.Line, Column: n.Column, Err: err}
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

// positioned attaches the line number yaml embeds in its messages.
func positioned(err error) error {
	var se *SyntaxError
	if errors.As(err, &se) {
		return err
	}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		line, _ := strconv.Atoi(m[1])
		return &SyntaxError{Line: line, Err: err}
	}
	return err
}

func scalar(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", nodeError(n, errors.New("expected a scalar value"))
	}
	return n.Value, nil
}

func (l Locale) MarshalYAML() (any, error) { return l.String(), nil }

func (l *Locale) UnmarshalYAML(n *yaml.Node) error {
	s, err := scalar(n)
	if err != nil {
		return err
	}
	v, err := ParseLocale(s)
	if err != nil {
		return nodeError(n, err)
	}
	*l = v
	return nil
}

func (r Resolution) MarshalYAML() (any, error) { return r.String(), nil }

func (r *Resolution) UnmarshalYAML(n *yaml.Node) error {
	s, err := scalar(n)
	if err != nil {
		return err
	}
	v, err := ParseResolution(s)
	if err != nil {
		return nodeError(n, err)
	}
	*r = v
	return nil
}

func (m ScreenMode) MarshalYAML() (any, error) { return m.String(), nil }

func (m *ScreenMode) UnmarshalYAML(n *yaml.Node) error {
	s, err := scalar(n)
	if err != nil {
		return err
	}
	v, err := ParseScreenMode(s)
	if err != nil {
		return nodeError(n, err)
	}
	*m = v
	return nil
}

func (v *Volume) UnmarshalYAML(n *yaml.Node) error {
	var i int
	if err := n.Decode(&i); err != nil {
		return nodeError(n, err)
	}
	if i < 0 || i > MaxVolume {
		return nodeError(n, fmt.Errorf("volume %d out of range 0..%d", i, MaxVolume))
	}
	*v = Volume(i)
	return nil
}

// UnmarshalYAML decodes key names field by field so a bad key reports its
// own position.
func (c *Controls) UnmarshalYAML(n *yaml.Node) error {
	var raw struct {
		Up    yaml.Node `yaml:"up"`
		Down  yaml.Node `yaml:"down"`
		Left  yaml.Node `yaml:"left"`
		Right yaml.Node `yaml:"right"`
	}
	if err := n.Decode(&raw); err != nil {
		return nodeError(n, err)
	}
	fields := []struct {
		node *yaml.Node
		dst  *core.Key
	}{
		{&raw.Up, &c.Up},
		{&raw.Down, &c.Down},
		{&raw.Left, &c.Left},
		{&raw.Right, &c.Right},
	}
	for _, f := range fields {
		if f.node.Kind == 0 {
			continue
		}
		s, err := scalar(f.node)
		if err != nil {
			return err
		}
		k, err := core.ParseKey(s)
		if err != nil {
			return nodeError(f.node, err)
		}
		*f.dst = k
	}
	if err := c.Validate(); err != nil {
		return nodeError(n, err)
	}
	return nil
}

// Codec reads and writes UserSettings as YAML. Fields missing from the file
// keep their defaults; unknown fields are errors.
type Codec struct{}

// Decode parses data.
func (Codec) Decode(data []byte) (UserSettings, error) {
	u := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&u); err != nil {
		if errors.Is(err, io.EOF) {
			return UserSettings{}, &SyntaxError{Line: 1, Err: errors.New("empty document")}
		}
		return UserSettings{}, positioned(err)
	}
	if err := u.Validate(); err != nil {
		return UserSettings{}, err
	}
	return u, nil
}

// Encode renders v with a two-space indent and a header comment.
func (Codec) Encode(v *UserSettings) ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := doc.Encode(v); err != nil {
		return nil, fmt.Errorf("settings: encode: %w", err)
	}
	doc.HeadComment = header

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("settings: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("settings: encode: %w", err)
	}
	return buf.Bytes(), nil
}
