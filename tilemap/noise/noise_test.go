// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"github.com/SoftbearStudios/tuxcollide/tilemap"
	"github.com/SoftbearStudios/tuxcollide/world"
	"testing"
)

func TestGenerator_Heights(t *testing.T) {
	const width, height = 200, 30
	heights := NewDefault().Heights(width, height)

	for i, h := range heights {
		if h < 2 || h >= height {
			t.Fatalf("column %d height %d out of range", i, h)
		}
		if i > 0 && (h-heights[i-1] > 1 || heights[i-1]-h > 1) {
			t.Fatalf("column %d steps from %d to %d", i, heights[i-1], h)
		}
	}
}

func TestGenerator_Generate(t *testing.T) {
	const width, height = 100, 30
	g := New(1)
	m := g.Generate(width, height)
	heights := g.Heights(width, height)

	if m.Width() != width || m.Height() != height {
		t.Fatalf("unexpected size %dx%d", m.Width(), m.Height())
	}

	for x := 1; x < width-1; x++ {
		if !m.Tile(x, height-1).IsSolid() {
			t.Errorf("column %d bottom is not solid", x)
		}
		if !m.Tile(x, heights[x]).IsSolid() {
			t.Errorf("column %d ground is not solid", x)
		}
		if m.Tile(x, 0).IsSolid() && !m.Tile(x, 0).IsUnisolid() {
			t.Errorf("column %d sky is solid", x)
		}
	}

	for y := 0; y < height; y++ {
		if !m.Tile(0, y).IsSolid() || !m.Tile(width-1, y).IsSolid() {
			t.Fatalf("row %d has no walls", y)
		}
	}

	// Same seed, same level
	other := New(1).Generate(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if m.Tile(x, y) != other.Tile(x, y) {
				t.Fatalf("tile %d,%d differs", x, y)
			}
		}
	}
}

func TestGenerator_Spawn(t *testing.T) {
	g := NewDefault()
	heights := g.Heights(50, 20)
	m := g.Generate(50, 20)
	size := world.Vec2f{X: 31.8, Y: 62.8}

	for x := 1; x < 49; x++ {
		p := g.Spawn(heights, x, size)
		bbox := world.RectSized(p, size.X, size.Y)
		m.ForTilesOverlapping(bbox, func(tile tilemap.Tile, _ world.Rect) bool {
			if tile.IsSolid() && !tile.IsUnisolid() && !tile.IsSlope() {
				t.Errorf("spawn at column %d overlaps solid tile", x)
				return true
			}
			return false
		})
	}
}
