// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tilemap

import (
	"github.com/SoftbearStudios/tuxcollide/world"
)

// Attributes of a tile, a bitset.
type Attributes uint32

const (
	Solid    = Attributes(0x0001)
	Unisolid = Attributes(0x0002) // only solid from above
	Brick    = Attributes(0x0004)
	Goal     = Attributes(0x0008)
	Slope    = Attributes(0x0010) // Tile.Data holds the slope direction
	Fullbox  = Attributes(0x0020)
	Coin     = Attributes(0x0040)

	Ice   = Attributes(0x0100)
	Water = Attributes(0x0200)
	Hurts = Attributes(0x0400)
	Fire  = Attributes(0x0800)

	// FirstInterestingFlag is the lowest attribute objects are told about.
	FirstInterestingFlag = Ice
)

// Size of a tile in pixels
const Size = 32

// Tile is one cell of a TileMap.
type Tile struct {
	Attributes Attributes `json:"attributes"`
	Data       int        `json:"data,omitempty"` // slope direction
}

func (t Tile) IsSolid() bool {
	return t.Attributes&Solid != 0
}

func (t Tile) IsUnisolid() bool {
	return t.Attributes&Unisolid != 0
}

func (t Tile) IsSlope() bool {
	return t.Attributes&Slope != 0
}

// IsSolidFor checks if a tile at bbox blocks an object at objBBox moving by
// movement (relative to the tile). Unisolid tiles only block objects that were
// above them before moving down.
func (t Tile) IsSolidFor(bbox, objBBox world.Rect, movement world.Vec2f) bool {
	if !t.IsSolid() {
		return false
	}
	if !t.IsUnisolid() {
		return true
	}
	if movement.Y < 0 {
		return false
	}

	top := bbox.Top()
	if t.IsSlope() {
		// Only the highest point of the slope counts
		switch t.Data & world.DeformMask {
		case world.DeformBottom:
			top += bbox.Height() / 2
		}
	}

	// Bottom of the object before it moved
	return objBBox.Bottom()-movement.Y <= top+collisionEpsilon
}

// IsCollisionful is true if touching the tile counts, solid or not.
func (t Tile) IsCollisionful(bbox, objBBox world.Rect, movement world.Vec2f) bool {
	if !t.IsUnisolid() {
		return true
	}
	return t.IsSolidFor(bbox, objBBox, movement)
}

// Triangle is the slope of a tile at bbox.
func (t Tile) Triangle(bbox world.Rect) world.AATriangle {
	return world.AATriangle{BBox: bbox, Dir: t.Data}
}

const collisionEpsilon = 0.002
