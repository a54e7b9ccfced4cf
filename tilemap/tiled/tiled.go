// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tiled loads levels made with the Tiled map editor.
package tiled

import (
	"fmt"
	"github.com/SoftbearStudios/tuxcollide/tilemap"
	"github.com/SoftbearStudios/tuxcollide/world"
	"github.com/lafriks/go-tiled"
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"strings"
)

// Level is the collision relevant part of a TMX map.
type Level struct {
	Name   string
	Layers []*tilemap.TileMap
	Spawns []Spawn
	Width  float32 // pixels
	Height float32 // pixels
}

// Spawn is an object placed in the level.
type Spawn struct {
	Kind     world.Kind
	Position world.Vec2f
	Name     string
}

// Bounds is the size of the level.
func (level *Level) Bounds() world.Rect {
	return world.RectFrom(0, 0, level.Width, level.Height)
}

// Solids returns the layers as tilemap.Layers.
func (level *Level) Solids() tilemap.Layers {
	layers := make(tilemap.Layers, len(level.Layers))
	for i, l := range level.Layers {
		layers[i] = l
	}
	return layers
}

// Load parses a TMX file. Tile layers named "solid" or with a true "solid"
// property collide. Tileset tiles may set "attributes" and "slope" int
// properties, tiles without them are plain solid. Objects in groups are
// spawned by their "kind" property.
func Load(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth != tilemap.Size || levelMap.TileHeight != tilemap.Size {
		return nil, fmt.Errorf("load TMX %s: tiles must be %dx%d, got %dx%d", tmxPath, tilemap.Size, tilemap.Size, levelMap.TileWidth, levelMap.TileHeight)
	}

	level := &Level{
		Name:   strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Width:  float32(levelMap.Width * levelMap.TileWidth),
		Height: float32(levelMap.Height * levelMap.TileHeight),
	}

	for _, layer := range levelMap.Layers {
		if layer.Name != "solid" && !layer.Properties.GetBool("solid") {
			continue
		}

		m := tilemap.New(levelMap.Width, levelMap.Height)
		m.SetOffset(world.Vec2f{X: float32(layer.OffsetX), Y: float32(layer.OffsetY)})

		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}
				m.Set(x, y, convertTile(tile))
			}
		}
		level.Layers = append(level.Layers, m)
	}

	for _, og := range levelMap.ObjectGroups {
		for _, o := range og.Objects {
			name := o.Properties.GetString("kind")
			if name == "" {
				continue
			}
			kind, err := world.ParseKind(name)
			if err != nil {
				log.Printf("%s: skipping object %q: %v", tmxPath, o.Name, err)
				continue
			}
			level.Spawns = append(level.Spawns, Spawn{
				Kind:     kind,
				Position: world.Vec2f{X: float32(o.X), Y: float32(o.Y)},
				Name:     o.Name,
			})
		}
	}

	// Sort spawns left-to-right for consistent ids
	sort.SliceStable(level.Spawns, func(i, j int) bool {
		return level.Spawns[i].Position.X < level.Spawns[j].Position.X
	})

	return level, nil
}

func convertTile(tile *tiled.LayerTile) tilemap.Tile {
	out := tilemap.Tile{Attributes: tilemap.Solid}

	tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID)
	if err != nil {
		return out
	}

	if attributes := tilesetTile.Properties.GetInt("attributes"); attributes != 0 {
		out.Attributes = tilemap.Attributes(attributes)
	}
	if out.IsSlope() {
		out.Data = tilesetTile.Properties.GetInt("slope")
		if tile.VerticalFlip {
			out.Data = world.VerticalFlip(out.Data)
		}
	}
	return out
}

// LoadAll loads every .tmx file in dir, keyed by name.
func LoadAll(fsys fs.FS, dir string) (map[string]*Level, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	levels := make(map[string]*Level, len(matches))
	names := make([]string, 0, len(matches))
	for _, path := range matches {
		level, err := Load(fsys, path)
		if err != nil {
			return nil, nil, err
		}
		levels[level.Name] = level
		names = append(names, level.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}
