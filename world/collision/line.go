// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package collision

import (
	"github.com/SoftbearStudios/tuxcollide/world"
)

// LineIntersectsLine is true if segment a1-a2 crosses or touches segment b1-b2.
func LineIntersectsLine(a1, a2, b1, b2 world.Vec2f) bool {
	ax1, ay1, ax2, ay2 := a1.X, a1.Y, a2.X, a2.Y
	bx1, by1, bx2, by2 := b1.X, b1.Y, b2.X, b2.Y

	num := (ay2-ay1)*(bx2-bx1) - (ax2-ax1)*(by2-by1)
	den1 := (by2-ay2)*(bx1-bx2) + (ax2-bx2)*(by1-by2)
	den2 := (by2-ay2)*(ax1-ax2) + (ax2-bx2)*(ay1-ay2)

	if num < 0 {
		num = -num
		den1 = -den1
		den2 = -den2
	}

	if num == 0 {
		// Parallel, only collinear segments can touch
		if (ay1-ay2)*(bx1-ax2) != (ax1-ax2)*(by1-ay2) {
			return false
		}
		if ax1 == ax2 {
			// Vertical, compare on y instead
			ax1, ay1 = ay1, ax1
			ax2, ay2 = ay2, ax2
			bx1, by1 = by1, bx1
			bx2, by2 = by2, bx2
		}
		if ax1 > ax2 {
			ax1, ax2 = ax2, ax1
		}
		if bx1 > bx2 {
			bx1, bx2 = bx2, bx1
		}
		return ax1 <= bx2 && ax2 >= bx1
	}

	return den1 >= 0 && den1 <= num && den2 >= 0 && den2 <= num
}

// IntersectsLine is true if the segment start-end crosses an edge of r.
// A segment entirely inside r doesn't count.
func IntersectsLine(r world.Rect, start, end world.Vec2f) bool {
	p1 := r.P1
	p2 := world.Vec2f{X: r.Right(), Y: r.Top()}
	p3 := r.P2
	p4 := world.Vec2f{X: r.Left(), Y: r.Bottom()}
	return LineIntersectsLine(p1, p2, start, end) ||
		LineIntersectsLine(p2, p3, start, end) ||
		LineIntersectsLine(p3, p4, start, end) ||
		LineIntersectsLine(p4, p1, start, end)
}
