// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tilemap

import (
	"github.com/SoftbearStudios/tuxcollide/world"
	"testing"
)

func TestTileMap_TilesOverlapping(t *testing.T) {
	m := New(10, 10)
	m.SetOffset(world.Vec2f{X: 16})

	tests := []struct {
		rect                     world.Rect
		left, top, right, bottom int
	}{
		{world.RectFrom(16, 0, 48, 32), 0, 0, 1, 1},
		{world.RectFrom(20, 5, 50, 40), 0, 0, 2, 2},
		{world.RectFrom(-100, -100, 1000, 1000), 0, 0, 10, 10},
		{world.RectFrom(-100, -100, -50, -50), 0, 0, 0, 0},
	}

	for _, test := range tests {
		left, top, right, bottom := m.TilesOverlapping(test.rect)
		if left != test.left || top != test.top || right != test.right || bottom != test.bottom {
			t.Errorf("TilesOverlapping(%v) expected (%d,%d,%d,%d) got (%d,%d,%d,%d)", test.rect,
				test.left, test.top, test.right, test.bottom, left, top, right, bottom)
		}
	}
}

func TestTileMap_ForTilesOverlapping(t *testing.T) {
	m := New(4, 4)
	m.Fill(0, 3, 4, 1, Tile{Attributes: Solid})
	m.Set(1, 2, Tile{Attributes: Solid | Slope, Data: world.SouthWest})

	count := 0
	m.ForTilesOverlapping(world.RectFrom(0, 0, 128, 128), func(tile Tile, bbox world.Rect) bool {
		count++
		if tile.IsSlope() && bbox != world.RectFrom(32, 64, 64, 96) {
			t.Errorf("unexpected slope bbox %v", bbox)
		}
		return false
	})
	if count != 5 {
		t.Errorf("expected 5 tiles got %d", count)
	}

	m.Flip()
	tile, bbox, ok := m.TileAt(world.Vec2f{X: 40, Y: 40})
	if !ok || !tile.IsSlope() || tile.Data != world.NorthWest || bbox != world.RectFrom(32, 32, 64, 64) {
		t.Errorf("expected flipped slope, got %+v at %v", tile, bbox)
	}
	if tile, _, _ := m.TileAt(world.Vec2f{X: 5, Y: 5}); !tile.IsSolid() {
		t.Errorf("expected flipped floor at the top")
	}
	if _, _, ok := m.TileAt(world.Vec2f{X: -1, Y: 5}); ok {
		t.Errorf("expected outside bounds")
	}
}

func TestTile_IsSolidFor(t *testing.T) {
	bbox := world.RectFrom(0, 32, 32, 64)
	unisolid := Tile{Attributes: Solid | Unisolid}

	tests := []struct {
		name     string
		obj      world.Rect
		movement world.Vec2f
		expected bool
	}{
		{"landing", world.RectFrom(0, 10, 10, 34), world.Vec2f{Y: 4}, true},
		{"jumping through", world.RectFrom(0, 30, 10, 50), world.Vec2f{Y: -4}, false},
		{"already inside", world.RectFrom(0, 20, 10, 40), world.Vec2f{Y: 4}, false},
	}

	for _, test := range tests {
		if actual := unisolid.IsSolidFor(bbox, test.obj, test.movement); actual != test.expected {
			t.Errorf("%s: expected %t got %t", test.name, test.expected, actual)
		}
	}

	if !(Tile{Attributes: Solid}).IsSolidFor(bbox, world.RectFrom(0, 30, 10, 50), world.Vec2f{Y: -4}) {
		t.Errorf("expected plain solid tile to always be solid")
	}
}
