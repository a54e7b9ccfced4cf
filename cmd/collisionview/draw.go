// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"github.com/SoftbearStudios/tuxcollide/replay"
	"github.com/SoftbearStudios/tuxcollide/tilemap/compressed"
	"github.com/SoftbearStudios/tuxcollide/world"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"image/color"
)

var (
	solidColor    = color.RGBA{100, 100, 100, 255}
	iceColor      = color.RGBA{170, 220, 255, 255}
	hurtsColor    = color.RGBA{160, 40, 40, 255}
	waterColor    = color.RGBA{40, 80, 200, 160}
	unisolidColor = color.RGBA{255, 255, 0, 255}
	pairColor     = color.RGBA{255, 255, 255, 255}
	touchColor    = color.RGBA{255, 200, 0, 255}

	groupColors = map[world.Group]color.RGBA{
		world.GroupMovingStatic:     {160, 0, 255, 255}, // Violet
		world.GroupMoving:           {200, 0, 0, 255},   // Red
		world.GroupMovingOnlyStatic: {255, 64, 64, 255}, // Bright red
		world.GroupStatic:           {0, 255, 255, 255}, // Cyan
		world.GroupTouchable:        {255, 160, 0, 255}, // Orange
	}
	otherColor = color.RGBA{0, 255, 0, 255} // Green
)

func (v *Viewer) drawLayer(screen *ebiten.Image, layer layerView) {
	view := v.view()
	for i, class := range layer.classes {
		if class == compressed.Empty {
			continue
		}
		bbox := layer.tileBBox(i)
		if !view.Overlaps(bbox) {
			continue
		}
		x, y := bbox.Left()-v.camera.X, bbox.Top()-v.camera.Y

		switch class {
		case compressed.Solid:
			vector.FillRect(screen, x, y, bbox.Width(), bbox.Height(), solidColor, false)
		case compressed.Ice:
			vector.FillRect(screen, x, y, bbox.Width(), bbox.Height(), iceColor, false)
		case compressed.Hurts:
			vector.FillRect(screen, x, y, bbox.Width(), bbox.Height(), hurtsColor, false)
		case compressed.Water:
			vector.FillRect(screen, x, y, bbox.Width(), bbox.Height(), waterColor, false)
		case compressed.Unisolid:
			vector.FillRect(screen, x, y, bbox.Width(), 2, unisolidColor, false)
		default:
			if class >= compressed.Slope {
				tri := world.AATriangle{BBox: bbox.Moved(v.camera.Neg()), Dir: int(class - compressed.Slope)}
				p := tri.Vertices()
				for j := range p {
					a, b := p[j], p[(j+1)%len(p)]
					vector.StrokeLine(screen, a.X, a.Y, b.X, b.Y, 1, solidColor, true)
				}
			}
		}
	}
}

func (v *Viewer) drawObject(screen *ebiten.Image, obj *replay.ObjectState) {
	bbox := obj.BBox
	if !v.view().Intersects(bbox) {
		return
	}
	c, ok := groupColors[obj.Group]
	if !ok {
		c = otherColor
	}

	x, y := bbox.Left()-v.camera.X, bbox.Top()-v.camera.Y
	w, h := bbox.Width(), bbox.Height()
	vector.FillRect(screen, x, y, w, 1, c, false)     // Top
	vector.FillRect(screen, x, y+h-1, w, 1, c, false) // Bottom
	vector.FillRect(screen, x, y, 1, h, c, false)     // Left
	vector.FillRect(screen, x+w-1, y, 1, h, c, false) // Right

	if obj.Unisolid {
		vector.FillRect(screen, x, y, w, 2, unisolidColor, false)
	}
	if !obj.Pressure.IsZero() {
		// Squeezed objects get a cross
		vector.StrokeLine(screen, x, y, x+w, y+h, 1, c, false)
		vector.StrokeLine(screen, x+w, y, x, y+h, 1, c, false)
	}
}

// drawPair connects the middles of a colliding pair.
func (v *Viewer) drawPair(screen *ebiten.Image, pair *replay.PairState) {
	a, okA := v.boxes[pair.A]
	b, okB := v.boxes[pair.B]
	if !okA || !okB {
		return
	}
	c := pairColor
	if pair.Touch {
		c = touchColor
	}
	p1, p2 := a.Middle().Sub(v.camera), b.Middle().Sub(v.camera)
	vector.StrokeLine(screen, p1.X, p1.Y, p2.X, p2.Y, 1, c, true)
}
