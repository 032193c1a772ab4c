// Package save holds the player's stage progress, stored as a fixed 9-byte
// little-endian record.
package save

import (
	"encoding/binary"
	"fmt"
)

// AssetPath is the manifest path of the save file.
const AssetPath = "save.dat"

// NumTiles is the number of tiles in a stage. A stage value counts owned
// tiles and never exceeds it.
const NumTiles = 64

// RecordSize is the encoded length of Data.
const RecordSize = 9

// Character selects one of the four playable stages.
type Character int

const (
	Aris Character = iota
	Momoi
	Midori
	Yuzu
)

// Characters lists every character in record order.
var Characters = []Character{Aris, Momoi, Midori, Yuzu}

func (c Character) String() string {
	switch c {
	case Aris:
		return "aris"
	case Momoi:
		return "momoi"
	case Midori:
		return "midori"
	case Yuzu:
		return "yuzu"
	default:
		return fmt.Sprintf("Character(%d)", int(c))
	}
}

// Data is the save record.
type Data struct {
	StageAris   uint16
	StageMomoi  uint16
	StageMidori uint16
	StageYuzu   uint16
	Beginner    bool
}

// Default is a fresh save for a new player.
func Default() Data {
	return Data{Beginner: true}
}

func (d *Data) stage(c Character) *uint16 {
	switch c {
	case Momoi:
		return &d.StageMomoi
	case Midori:
		return &d.StageMidori
	case Yuzu:
		return &d.StageYuzu
	default:
		return &d.StageAris
	}
}

// Stage returns the owned tile count for c.
func (d Data) Stage(c Character) uint16 { return *d.stage(c) }

// SetStage sets the owned tile count for c, clamped to NumTiles.
func (d *Data) SetStage(c Character, tiles int) {
	*d.stage(c) = uint16(min(max(tiles, 0), NumTiles))
}

// Cleared reports whether every tile of c's stage is owned.
func (d Data) Cleared(c Character) bool { return d.Stage(c) >= NumTiles }

// CorruptError reports a save record that cannot be trusted.
type CorruptError struct {
	Reason string
}

func (e *CorruptError) Error() string   { return "save: corrupted save data: " + e.Reason }
func (e *CorruptError) Summary() string { return "Failed to load asset file" }

// Validate checks every stage is within NumTiles.
func (d Data) Validate() error {
	for _, c := range Characters {
		if v := d.Stage(c); v > NumTiles {
			return &CorruptError{Reason: fmt.Sprintf("stage_%s is %d, max %d", c, v, NumTiles)}
		}
	}
	return nil
}

// wire is the on-disk layout.
type wire struct {
	Stages   [4]uint16
	Beginner uint8
}

// Codec reads and writes Data.
type Codec struct{}

// Decode parses a record. Short or long input, a stage above NumTiles and
// a beginner byte other than 0 or 1 are all rejected.
func (Codec) Decode(data []byte) (Data, error) {
	if len(data) != RecordSize {
		return Data{}, &CorruptError{Reason: fmt.Sprintf("record is %d bytes, want %d", len(data), RecordSize)}
	}
	var w wire
	if _, err := binary.Decode(data, binary.LittleEndian, &w); err != nil {
		return Data{}, &CorruptError{Reason: err.Error()}
	}
	if w.Beginner > 1 {
		return Data{}, &CorruptError{Reason: fmt.Sprintf("beginner flag is %d", w.Beginner)}
	}
	d := Data{
		StageAris:   w.Stages[Aris],
		StageMomoi:  w.Stages[Momoi],
		StageMidori: w.Stages[Midori],
		StageYuzu:   w.Stages[Yuzu],
		Beginner:    w.Beginner == 1,
	}
	if err := d.Validate(); err != nil {
		return Data{}, err
	}
	return d, nil
}

// Encode renders v as a record.
func (Codec) Encode(v *Data) ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	w := wire{Stages: [4]uint16{v.StageAris, v.StageMomoi, v.StageMidori, v.StageYuzu}}
	if v.Beginner {
		w.Beginner = 1
	}
	return binary.Append(make([]byte, 0, RecordSize), binary.LittleEndian, w)
}
