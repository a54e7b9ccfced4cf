// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tilemap stores the tile layers objects collide with.
package tilemap

import (
	"fmt"
	"github.com/SoftbearStudios/tuxcollide/world"
	"math"
)

// TileMap is a dense Layer of width x height tiles.
type TileMap struct {
	width, height int
	tiles         []Tile
	offset        world.Vec2f // position of tile (0, 0)
	movement      world.Vec2f
	flip          bool // vertical flip
}

// New creates an empty TileMap.
func New(width, height int) *TileMap {
	if width < 0 || height < 0 {
		panic("size out of range")
	}
	return &TileMap{
		width:  width,
		height: height,
		tiles:  make([]Tile, width*height),
	}
}

func (m *TileMap) Width() int  { return m.width }
func (m *TileMap) Height() int { return m.height }

// Bounds is the area covered by tiles.
func (m *TileMap) Bounds() world.Rect {
	return world.RectSized(m.offset, float32(m.width*Size), float32(m.height*Size))
}

func (m *TileMap) Offset() world.Vec2f { return m.offset }

func (m *TileMap) SetOffset(offset world.Vec2f) { m.offset = offset }

func (m *TileMap) Movement() world.Vec2f { return m.movement }

// SetMovement sets the movement of the layer for this frame.
func (m *TileMap) SetMovement(movement world.Vec2f) { m.movement = movement }

// Flip mirrors the layer upside down.
func (m *TileMap) Flip() {
	m.flip = !m.flip
}

func (m *TileMap) Flipped() bool { return m.flip }

// Tile returns the tile at tile coordinates, the empty tile if out of range.
func (m *TileMap) Tile(x, y int) Tile {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return Tile{}
	}
	if m.flip {
		y = m.height - 1 - y
	}
	return m.tiles[x+y*m.width]
}

// Set sets the tile at tile coordinates.
func (m *TileMap) Set(x, y int, tile Tile) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		panic(fmt.Sprintf("tile (%d, %d) out of range", x, y))
	}
	if m.flip {
		y = m.height - 1 - y
	}
	m.tiles[x+y*m.width] = tile
}

// Fill sets a rectangle of tiles, in tile coordinates.
func (m *TileMap) Fill(x, y, width, height int, tile Tile) {
	for j := y; j < y+height; j++ {
		for i := x; i < x+width; i++ {
			m.Set(i, j, tile)
		}
	}
}

// TileBBox is the bounding box of a tile.
func (m *TileMap) TileBBox(x, y int) world.Rect {
	return world.RectSized(world.Vec2f{X: float32(x * Size), Y: float32(y * Size)}.Add(m.offset), Size, Size)
}

// TilesOverlapping returns the tile range [left, right) x [top, bottom) r covers.
func (m *TileMap) TilesOverlapping(r world.Rect) (left, top, right, bottom int) {
	r = r.Moved(m.offset.Neg())
	left = clampInt(int(math.Floor(float64(r.Left())/Size)), 0, m.width)
	top = clampInt(int(math.Floor(float64(r.Top())/Size)), 0, m.height)
	right = clampInt(int(math.Ceil(float64(r.Right())/Size)), 0, m.width)
	bottom = clampInt(int(math.Ceil(float64(r.Bottom())/Size)), 0, m.height)
	return
}

// ForTilesOverlapping implements Layer.ForTilesOverlapping.
func (m *TileMap) ForTilesOverlapping(r world.Rect, callback func(tile Tile, bbox world.Rect) (stop bool)) bool {
	left, top, right, bottom := m.TilesOverlapping(r)
	for x := left; x < right; x++ {
		for y := top; y < bottom; y++ {
			tile := m.Tile(x, y)
			if tile.Attributes == 0 {
				continue
			}
			if m.flip && tile.IsSlope() {
				tile.Data = world.VerticalFlip(tile.Data)
			}
			if callback(tile, m.TileBBox(x, y)) {
				return true
			}
		}
	}
	return false
}

// IsOutsideBounds is true if p isn't on any tile.
func (m *TileMap) IsOutsideBounds(p world.Vec2f) bool {
	p = p.Sub(m.offset)
	return p.X < 0 || p.Y < 0 || p.X >= float32(m.width*Size) || p.Y >= float32(m.height*Size)
}

// TileAt implements Layer.TileAt.
func (m *TileMap) TileAt(p world.Vec2f) (Tile, world.Rect, bool) {
	if m.IsOutsideBounds(p) {
		return Tile{}, world.Rect{}, false
	}
	x := int((p.X - m.offset.X) / Size)
	y := int((p.Y - m.offset.Y) / Size)
	tile := m.Tile(x, y)
	if m.flip && tile.IsSlope() {
		tile.Data = world.VerticalFlip(tile.Data)
	}
	return tile, m.TileBBox(x, y), true
}

// Debug output
func (m *TileMap) Debug() {
	solid := 0
	for _, t := range m.tiles {
		if t.IsSolid() {
			solid++
		}
	}
	fmt.Printf("tilemap: %dx%d, solid: %d, offset: %v\n", m.width, m.height, solid, m.offset)
}

func clampInt(v, minimum, maximum int) int {
	if v < minimum {
		return minimum
	}
	if v > maximum {
		return maximum
	}
	return v
}
