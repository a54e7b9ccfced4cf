// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sector

import (
	"github.com/SoftbearStudios/tuxcollide/tilemap"
	"github.com/SoftbearStudios/tuxcollide/world"
	"github.com/chewxy/math32"
	"testing"
)

func querySector(t *testing.T) (*Sector, *world.Object, *world.Object, *world.Object) {
	m := tilemap.New(8, 8)
	m.Fill(0, 7, 8, 1, tilemap.Tile{Attributes: tilemap.Solid})
	m.Set(2, 6, tilemap.Tile{Attributes: tilemap.Solid | tilemap.Unisolid})
	m.Set(4, 6, tilemap.Tile{Attributes: tilemap.Solid | tilemap.Slope, Data: world.SouthWest})
	m.Set(6, 6, tilemap.Tile{Attributes: tilemap.Water})

	s := New(256, 256, Options{}, m)
	block := &world.Object{BBox: world.RectFrom(0, 0, 32, 32), Group: world.GroupStatic}
	platform := &world.Object{BBox: world.RectFrom(64, 0, 128, 16), Group: world.GroupMovingStatic}
	player := &world.Object{BBox: world.RectFrom(160, 0, 176, 32), Group: world.GroupMoving}
	mustAdd(t, s, block, platform, player)
	return s, block, platform, player
}

func TestSector_IsFreeOfTiles(t *testing.T) {
	s, _, _, _ := querySector(t)

	tests := []struct {
		name           string
		rect           world.Rect
		ignoreUnisolid bool
		attributes     tilemap.Attributes
		free           bool
	}{
		{name: "air", rect: world.RectFrom(0, 100, 30, 130), attributes: tilemap.Solid, free: true},
		{name: "ground", rect: world.RectFrom(0, 220, 30, 230), attributes: tilemap.Solid},
		{name: "unisolid", rect: world.RectFrom(66, 196, 90, 210), attributes: tilemap.Solid},
		{name: "ignored unisolid", rect: world.RectFrom(66, 196, 90, 210), ignoreUnisolid: true, attributes: tilemap.Solid, free: true},
		{name: "above slope", rect: world.RectFrom(150, 194, 158, 200), attributes: tilemap.Solid, free: true},
		{name: "in slope", rect: world.RectFrom(130, 215, 138, 222), attributes: tilemap.Solid},
		{name: "water", rect: world.RectFrom(200, 200, 210, 210), attributes: tilemap.Water},
		{name: "water isn't solid", rect: world.RectFrom(200, 200, 210, 210), attributes: tilemap.Solid, free: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if free := s.IsFreeOfTiles(test.rect, test.ignoreUnisolid, test.attributes); free != test.free {
				t.Errorf("expected %t got %t", test.free, free)
			}
		})
	}
}

func TestSector_IsFreeOfObjects(t *testing.T) {
	s, block, platform, player := querySector(t)

	if s.IsFreeOfStatics(world.RectFrom(10, 10, 20, 20), nil, false) {
		t.Errorf("expected block to be in the way")
	}
	if !s.IsFreeOfStatics(world.RectFrom(10, 10, 20, 20), block, false) {
		t.Errorf("expected ignored block not to be in the way")
	}
	if !s.IsFreeOfStatics(world.RectFrom(70, 2, 80, 10), nil, false) {
		t.Errorf("expected moving static not to count as static")
	}

	if s.IsFreeOfMovingStatics(world.RectFrom(70, 2, 80, 10), nil) {
		t.Errorf("expected platform to be in the way")
	}
	if s.IsFreeOfMovingStatics(world.RectFrom(165, 2, 170, 10), nil) {
		t.Errorf("expected player to be in the way")
	}
	if !s.IsFreeOfMovingStatics(world.RectFrom(165, 2, 170, 10), player) {
		t.Errorf("expected ignored player not to be in the way")
	}

	if s.IsFreeOfSpecificallyMovingStatics(world.RectFrom(70, 2, 80, 10), nil) {
		t.Errorf("expected platform to be in the way")
	}
	if !s.IsFreeOfSpecificallyMovingStatics(world.RectFrom(10, 10, 20, 20), platform) {
		t.Errorf("expected block not to count")
	}
}

func TestSector_FirstLineIntersection(t *testing.T) {
	s, block, _, player := querySector(t)

	result := s.FirstLineIntersection(world.Vec2f{X: 100, Y: 100}, world.Vec2f{X: 100, Y: 250}, false, nil)
	if !result.Valid || result.Object != nil || !result.Tile.IsSolid() || result.Box.Top() != 224 {
		t.Errorf("expected ground tile got %+v", result)
	}

	result = s.FirstLineIntersection(world.Vec2f{X: 140, Y: 8}, world.Vec2f{X: 10, Y: 8}, false, nil)
	if !result.Valid || result.Object == nil || result.Object == block {
		t.Errorf("expected platform first got %+v", result)
	}

	result = s.FirstLineIntersection(world.Vec2f{X: 140, Y: 20}, world.Vec2f{X: 190, Y: 20}, false, nil)
	if result.Object != player {
		t.Errorf("expected player got %+v", result)
	}
	if !s.FreeLineOfSight(world.Vec2f{X: 140, Y: 20}, world.Vec2f{X: 190, Y: 20}, true, nil) {
		t.Errorf("expected objects to be ignored")
	}
	if !s.FreeLineOfSight(world.Vec2f{X: 140, Y: 20}, world.Vec2f{X: 190, Y: 20}, false, player) {
		t.Errorf("expected player to be ignored")
	}
}

func TestSector_FirstLineIntersection_Far(t *testing.T) {
	s, _, _, _ := querySector(t)

	// Past 2^28 adding a few pixels to a float32 changes nothing
	for _, line := range [][2]world.Vec2f{
		{{X: 3e8, Y: 0}, {X: 3e8 + 64, Y: 10}},
		{{X: 10, Y: -4e8}, {X: 20, Y: -4e8 + 64}},
	} {
		if result := s.FirstLineIntersection(line[0], line[1], false, nil); result.Valid {
			t.Errorf("expected nothing along %v got %+v", line, result)
		}
	}

	if result := s.FirstLineIntersection(world.Vec2f{X: math32.Inf(-1)}, world.Vec2f{X: 10}, false, nil); result.Valid {
		t.Errorf("expected nothing along an infinite line got %+v", result)
	}
}

func TestSector_NearbyObjects(t *testing.T) {
	s, block, platform, player := querySector(t)

	nearby := s.NearbyObjects(world.Vec2f{X: 50, Y: 8}, 20)
	if len(nearby) != 2 || nearby[0] != block || nearby[1] != platform {
		t.Errorf("expected block and platform got %v", nearby)
	}

	nearby = s.NearbyObjects(world.Vec2f{X: 168, Y: 16}, 0)
	if len(nearby) != 1 || nearby[0] != player {
		t.Errorf("expected player got %v", nearby)
	}
}
