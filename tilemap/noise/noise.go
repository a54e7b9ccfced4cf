// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"github.com/SoftbearStudios/tuxcollide/tilemap"
	"github.com/SoftbearStudios/tuxcollide/world"
	"github.com/aquilax/go-perlin"
)

const (
	frequency         = 0.08
	platformFrequency = 0.21
	iceFrequency      = 0.05

	// Seed is the default seed.
	Seed = int64(56)
)

// Generator generates side view levels using perlin noise.
type Generator struct {
	ground    *perlin.Perlin // ground height per column
	platforms *perlin.Perlin // floating unisolid platforms
	ice       *perlin.Perlin // icy stretches of ground
}

func NewDefault() *Generator {
	return New(Seed)
}

// New creates a new Generator with a seed.
func New(seed int64) *Generator {
	return &Generator{
		ground:    perlin.NewPerlin(1.5, 2.0, 4, seed),
		platforms: perlin.NewPerlin(2.5, 3.0, 3, seed+1),
		ice:       perlin.NewPerlin(2, 3.0, 3, seed+2),
	}
}

// Heights returns the row of the ground surface for each column. Neighboring
// columns differ by at most one row so every step can be a slope.
func (g *Generator) Heights(width, height int) []int {
	heights := make([]int, width)
	base := float64(height) * 0.7

	for i := range heights {
		h := g.ground.Noise2D(float64(i)*frequency, 0)*float64(height)*0.3 + base
		row := clampInt(int(h), 2, height-1)

		if i > 0 {
			row = clampInt(row, heights[i-1]-1, heights[i-1]+1)
		}
		heights[i] = row
	}

	return heights
}

// Generate fills a width by height TileMap. The edges are walls so nothing
// can leave the level sideways.
func (g *Generator) Generate(width, height int) *tilemap.TileMap {
	m := tilemap.New(width, height)
	heights := g.Heights(width, height)

	for x, top := range heights {
		ground := tilemap.Tile{Attributes: tilemap.Solid}
		if g.ice.Noise2D(float64(x)*iceFrequency, 0.5) > 0.2 {
			ground.Attributes |= tilemap.Ice
		}
		m.Fill(x, top, 1, height-top, ground)

		// Slopes fill the step up to a higher neighbor
		slope := tilemap.Tile{Attributes: tilemap.Solid | tilemap.Slope}
		switch {
		case x > 0 && heights[x-1] < top:
			slope.Data = world.SouthWest
			m.Set(x, top-1, slope)
		case x+1 < width && heights[x+1] < top:
			slope.Data = world.SouthEast
			m.Set(x, top-1, slope)
		}

		// Platforms float 4 tiles above ground
		if row := top - 4; row > 0 && g.platforms.Noise2D(float64(x)*platformFrequency, 1.5) > 0.25 {
			m.Set(x, row, tilemap.Tile{Attributes: tilemap.Solid | tilemap.Unisolid})
		}
	}

	wall := tilemap.Tile{Attributes: tilemap.Solid}
	m.Fill(0, 0, 1, height, wall)
	m.Fill(width-1, 0, 1, height, wall)

	return m
}

// Spawn is the top left position where an object of size can stand on the
// ground at column x.
func (g *Generator) Spawn(heights []int, x int, size world.Vec2f) world.Vec2f {
	top := heights[clampInt(x, 0, len(heights)-1)] - 1
	return world.Vec2f{
		X: float32(x * tilemap.Size),
		Y: float32(top*tilemap.Size) - size.Y - 1,
	}
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
