// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"fmt"
)

// Slope directions name the corner of the tile that holds the right angle.
const (
	SouthWest = 0
	NorthEast = 1
	SouthEast = 2
	NorthWest = 3

	DirectionMask = 0x3
)

// Deforms squash the triangle into half of its tile.
const (
	DeformBottom = 0x10
	DeformTop    = 0x20
	DeformLeft   = 0x30
	DeformRight  = 0x40

	DeformMask = 0x70
)

// AATriangle is a right triangle whose legs are aligned to the axes of BBox.
type AATriangle struct {
	BBox Rect `json:"bbox"`
	Dir  int  `json:"dir"`
}

// VerticalFlip mirrors a slope direction upside down.
func VerticalFlip(dir int) int {
	direction := dir & DirectionMask
	deform := dir & DeformMask

	switch direction {
	case NorthEast:
		direction = SouthEast
	case SouthEast:
		direction = NorthEast
	case NorthWest:
		direction = SouthWest
	case SouthWest:
		direction = NorthWest
	}

	switch deform {
	case DeformTop:
		deform = DeformBottom
	case DeformBottom:
		deform = DeformTop
	}

	return direction | deform
}

// Area is the part of BBox that the deform leaves for the triangle.
func (t AATriangle) Area() Rect {
	b := t.BBox
	switch t.Dir & DeformMask {
	case DeformBottom:
		return Rect{P1: Vec2f{X: b.Left(), Y: b.Top() + b.Height()/2}, P2: b.P2}
	case DeformTop:
		return Rect{P1: b.P1, P2: Vec2f{X: b.Right(), Y: b.Top() + b.Height()/2}}
	case DeformLeft:
		return Rect{P1: b.P1, P2: Vec2f{X: b.Left() + b.Width()/2, Y: b.Bottom()}}
	case DeformRight:
		return Rect{P1: Vec2f{X: b.Left() + b.Width()/2, Y: b.Top()}, P2: b.P2}
	default:
		return b
	}
}

// Vertices of the triangle, the right angle first.
func (t AATriangle) Vertices() [3]Vec2f {
	a := t.Area()
	tl, tr := a.P1, Vec2f{X: a.Right(), Y: a.Top()}
	bl, br := Vec2f{X: a.Left(), Y: a.Bottom()}, a.P2

	switch t.Dir & DirectionMask {
	case NorthEast:
		return [3]Vec2f{tr, tl, br}
	case SouthEast:
		return [3]Vec2f{br, tr, bl}
	case NorthWest:
		return [3]Vec2f{tl, tr, bl}
	default:
		return [3]Vec2f{bl, tl, br}
	}
}

func (t AATriangle) String() string {
	return fmt.Sprintf("triangle%v dir=%#x", t.BBox, t.Dir)
}
