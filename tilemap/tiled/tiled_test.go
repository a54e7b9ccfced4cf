// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tiled

import (
	"github.com/SoftbearStudios/tuxcollide/tilemap"
	"github.com/SoftbearStudios/tuxcollide/world"
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	level, err := Load(os.DirFS("testdata"), "hill.tmx")
	if err != nil {
		t.Fatal(err)
	}

	if level.Name != "hill" || level.Width != 6*32 || level.Height != 4*32 {
		t.Errorf("unexpected level %s %gx%g", level.Name, level.Width, level.Height)
	}
	if len(level.Layers) != 1 {
		t.Fatalf("expected 1 solid layer got %d", len(level.Layers))
	}

	m := level.Layers[0]
	if tile := m.Tile(0, 3); tile.Attributes != tilemap.Solid {
		t.Errorf("expected plain solid got %+v", tile)
	}
	if tile := m.Tile(2, 2); !tile.IsSlope() || tile.Data != world.SouthWest {
		t.Errorf("expected slope got %+v", tile)
	}
	if tile := m.Tile(3, 3); tile.Attributes != tilemap.Solid|tilemap.Ice {
		t.Errorf("expected ice got %+v", tile)
	}
	if tile := m.Tile(0, 0); tile.Attributes != 0 {
		t.Errorf("expected empty got %+v", tile)
	}

	if len(level.Spawns) != 2 || level.Spawns[0].Kind != world.KindBadGuy || level.Spawns[1].Kind != world.KindPlayer {
		t.Errorf("unexpected spawns %+v", level.Spawns)
	}
	if len(level.Solids()) != 1 {
		t.Errorf("expected 1 layer")
	}
}

func TestLoadAll(t *testing.T) {
	levels, names, err := LoadAll(os.DirFS("."), "testdata")
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || levels["hill"] == nil {
		t.Errorf("unexpected levels %v", names)
	}

	if _, _, err := LoadAll(os.DirFS("."), "missing"); err == nil {
		t.Errorf("expected error for missing directory")
	}
}
