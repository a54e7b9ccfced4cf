// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/tuxcollide/tilemap"
	"github.com/SoftbearStudios/tuxcollide/tilemap/noise"
	"github.com/SoftbearStudios/tuxcollide/tilemap/tiled"
	"github.com/SoftbearStudios/tuxcollide/world"
	"os"
	"path/filepath"
)

// Size of generated levels in tiles
const (
	generatedWidth  = 160
	generatedHeight = 24
)

// LoadLevel loads a TMX file or, if path is empty, generates a level from seed.
func LoadLevel(path string, seed int64) (*tiled.Level, error) {
	if path == "" {
		return GenerateLevel(seed), nil
	}
	return tiled.Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// GenerateLevel makes a perlin noise level with coins, bad guys and rocks on the ground.
func GenerateLevel(seed int64) *tiled.Level {
	g := noise.New(seed)
	m := g.Generate(generatedWidth, generatedHeight)
	heights := g.Heights(generatedWidth, generatedHeight)

	level := &tiled.Level{
		Name:   "generated",
		Layers: []*tilemap.TileMap{m},
		Width:  generatedWidth * tilemap.Size,
		Height: generatedHeight * tilemap.Size,
	}

	spawn := func(kind world.Kind, x int) {
		data := kind.Data()
		level.Spawns = append(level.Spawns, tiled.Spawn{
			Kind:     kind,
			Position: g.Spawn(heights, x, world.Vec2f{X: data.Width, Y: data.Height}),
			Name:     kind.String(),
		})
	}
	for x := 4; x < generatedWidth-4; x += 4 {
		switch x % 24 {
		case 0:
			spawn(world.KindBadGuy, x)
		case 12:
			spawn(world.KindRock, x)
		default:
			spawn(world.KindCoin, x)
		}
	}

	// A moving platform every so often
	for x := 10; x < generatedWidth-10; x += 40 {
		level.Spawns = append(level.Spawns, tiled.Spawn{
			Kind:     world.KindPlatform,
			Position: world.Vec2f{X: float32(x * tilemap.Size), Y: 3 * tilemap.Size},
			Name:     "platform",
		})
	}
	return level
}
