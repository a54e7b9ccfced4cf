// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compressed encodes tile layers compactly for debug clients.
package compressed

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/tuxcollide/tilemap"
	"github.com/SoftbearStudios/tuxcollide/world"
	"sync"
)

// Class is what a client needs to draw a tile.
type Class byte

const (
	Empty Class = iota
	Solid
	Unisolid
	Ice
	Hurts
	Water
	// Slope plus the triangle direction (SouthWest..NorthWest)
	Slope Class = 8
)

// ErrCorrupt is returned when a Snapshot decodes to the wrong size.
var ErrCorrupt = errors.New("corrupt snapshot")

// ClassOf returns the drawing class of a tile.
func ClassOf(tile tilemap.Tile) Class {
	switch {
	case tile.IsSlope():
		return Slope + Class(tile.Data&world.DirectionMask)
	case tile.Attributes&tilemap.Hurts != 0:
		return Hurts
	case tile.IsUnisolid():
		return Unisolid
	case tile.Attributes&tilemap.Ice != 0:
		return Ice
	case tile.IsSolid():
		return Solid
	case tile.Attributes&tilemap.Water != 0:
		return Water
	default:
		return Empty
	}
}

// Snapshot is a run length encoded tile layer.
type Snapshot struct {
	Offset world.Vec2f `json:"offset"`
	Data   []byte      `json:"data"`   // Data is the encoded classes, row major.
	Stride int         `json:"stride"` // Stride is width in tiles.
	Length int         `json:"length"` // Length is the number of tiles.
}

var bufferPool = sync.Pool{
	New: func() interface{} {
		return &Buffer{buf: make([]byte, 0, 1024)}
	},
}

// Encode snapshots m. Flipped layers are encoded as they are seen.
func Encode(m *tilemap.TileMap) *Snapshot {
	buffer := bufferPool.Get().(*Buffer)
	buffer.Reset(buffer.buf[:0])
	buffer.Grow(m.Width() * m.Height() / 8)

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			tile := m.Tile(x, y)
			if m.Flipped() && tile.IsSlope() {
				tile.Data = world.VerticalFlip(tile.Data)
			}
			buffer.WriteNibble(byte(ClassOf(tile)))
		}
	}

	snapshot := &Snapshot{
		Offset: m.Offset(),
		Data:   append([]byte(nil), buffer.Buffer()...),
		Stride: m.Width(),
		Length: m.Width() * m.Height(),
	}
	bufferPool.Put(buffer)
	return snapshot
}

// Decode returns the classes of a Snapshot, row major.
func (s *Snapshot) Decode() ([]Class, error) {
	var buffer Buffer
	buffer.Reset(s.Data)

	classes := make([]Class, s.Length)
	for i := range classes {
		n, err := buffer.ReadNibble()
		if err != nil {
			return nil, fmt.Errorf("%w: %d of %d tiles", ErrCorrupt, i, s.Length)
		}
		classes[i] = Class(n)
	}
	if len(buffer.Buffer()) != 0 {
		return nil, fmt.Errorf("%w: trailing data", ErrCorrupt)
	}
	return classes, nil
}
