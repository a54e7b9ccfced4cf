// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"fmt"
)

// Rect is an axis aligned rectangle from P1 (top left) to P2 (bottom right).
// Inverted rects (P1 > P2 on some axis) are tolerated, see Normalized.
type Rect struct {
	P1 Vec2f `json:"p1"`
	P2 Vec2f `json:"p2"`
}

// RectFrom builds a Rect from its corners.
func RectFrom(x1, y1, x2, y2 float32) Rect {
	return Rect{P1: Vec2f{X: x1, Y: y1}, P2: Vec2f{X: x2, Y: y2}}
}

// RectSized builds a Rect from its top left corner and size.
func RectSized(pos Vec2f, width, height float32) Rect {
	return Rect{P1: pos, P2: Vec2f{X: pos.X + width, Y: pos.Y + height}}
}

func (r Rect) Left() float32   { return r.P1.X }
func (r Rect) Right() float32  { return r.P2.X }
func (r Rect) Top() float32    { return r.P1.Y }
func (r Rect) Bottom() float32 { return r.P2.Y }
func (r Rect) Width() float32  { return r.P2.X - r.P1.X }
func (r Rect) Height() float32 { return r.P2.Y - r.P1.Y }

func (r Rect) Size() Vec2f {
	return r.P2.Sub(r.P1)
}

func (r Rect) Middle() Vec2f {
	return r.P1.Add(r.P2).Mul(0.5)
}

// Moved returns r shifted by v.
func (r Rect) Moved(v Vec2f) Rect {
	r.P1 = r.P1.Add(v)
	r.P2 = r.P2.Add(v)
	return r
}

// Grown returns r expanded by border on all four sides. Negative borders shrink.
func (r Rect) Grown(border float32) Rect {
	r.P1.X -= border
	r.P1.Y -= border
	r.P2.X += border
	r.P2.Y += border
	return r
}

// Valid is true if P1 <= P2 on both axes.
func (r Rect) Valid() bool {
	return r.P1.X <= r.P2.X && r.P1.Y <= r.P2.Y
}

// Normalized swaps inverted coordinates so that P1 <= P2.
func (r Rect) Normalized() Rect {
	if r.P1.X > r.P2.X {
		r.P1.X, r.P2.X = r.P2.X, r.P1.X
	}
	if r.P1.Y > r.P2.Y {
		r.P1.Y, r.P2.Y = r.P2.Y, r.P1.Y
	}
	return r
}

// Overlaps a and b share interior area (touching edges don't count).
func (a Rect) Overlaps(b Rect) bool {
	return a.P2.X > b.P1.X && a.P1.X < b.P2.X && a.P2.Y > b.P1.Y && a.P1.Y < b.P2.Y
}

// Intersects a and b are intersecting or touching.
func (a Rect) Intersects(b Rect) bool {
	return a.P2.X >= b.P1.X && a.P1.X <= b.P2.X && a.P2.Y >= b.P1.Y && a.P1.Y <= b.P2.Y
}

// Contains a fully contains b
func (a Rect) Contains(b Rect) bool {
	return a.P1.X <= b.P1.X && a.P1.Y <= b.P1.Y && a.P2.X >= b.P2.X && a.P2.Y >= b.P2.Y
}

// ContainsPoint p is inside a or on its edge.
func (a Rect) ContainsPoint(p Vec2f) bool {
	return p.X >= a.P1.X && p.X <= a.P2.X && p.Y >= a.P1.Y && p.Y <= a.P2.Y
}

// Union is the smallest Rect containing both a and b.
func (a Rect) Union(b Rect) Rect {
	return Rect{
		P1: Vec2f{X: min(a.P1.X, b.P1.X), Y: min(a.P1.Y, b.P1.Y)},
		P2: Vec2f{X: max(a.P2.X, b.P2.X), Y: max(a.P2.Y, b.P2.Y)},
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g,%g,%g)", r.P1.X, r.P1.Y, r.P2.X, r.P2.Y)
}
