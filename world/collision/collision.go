// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package collision is the narrow phase: rectangle sweeps, slope triangles and
// the Constraints they produce.
package collision

import (
	"github.com/SoftbearStudios/tuxcollide/world"
	"github.com/chewxy/math32"
)

const (
	// Delta is the smallest movement per axis a sweep takes into account.
	Delta = 0.001

	// rDelta is how far outside of a slope's area a corner may be before the
	// slope is treated as a plain rectangle.
	rDelta = 3

	// slopeClearance is added to slope push outs.
	slopeClearance = 0.2
)

// Intersects is true if r1 and r2 overlap or touch.
func Intersects(r1, r2 world.Rect) bool {
	if r1.Right() < r2.Left() || r1.Left() > r2.Right() {
		return false
	}
	if r1.Bottom() < r2.Top() || r1.Top() > r2.Bottom() {
		return false
	}
	return true
}

// RectangleRectangle tests r1, which moved by movement relative to r2 to get
// where it is now, against r2. On collision hit gets the edge of r1 that was
// struck, a normal pointing from r2 towards r1, the penetration depth along it
// and the fraction of movement spent inside r2.
//
// When the movement is too small to tell where r1 came from, the axis of least
// penetration is used instead, so objects resting inside each other still separate.
func RectangleRectangle(hit *world.Hit, r1 world.Rect, movement world.Vec2f, r2 world.Rect) bool {
	if !Intersects(r1, r2) {
		return false
	}

	h := world.Hit{Time: math32.MaxFloat32}
	moved := false

	if movement.X > Delta {
		h.Depth = r1.Right() - r2.Left()
		h.Time = h.Depth / movement.X
		h.Normal = world.Vec2f{X: -1}
		moved = true
	} else if movement.X < -Delta {
		h.Depth = r2.Right() - r1.Left()
		h.Time = h.Depth / -movement.X
		h.Normal = world.Vec2f{X: 1}
		moved = true
	}

	if movement.Y > Delta {
		depth := r1.Bottom() - r2.Top()
		if t := depth / movement.Y; t < h.Time {
			h.Depth = depth
			h.Time = t
			h.Normal = world.Vec2f{Y: -1}
		}
		moved = true
	} else if movement.Y < -Delta {
		depth := r2.Bottom() - r1.Top()
		if t := depth / -movement.Y; t < h.Time {
			h.Depth = depth
			h.Time = t
			h.Normal = world.Vec2f{Y: 1}
		}
		moved = true
	}

	if !moved {
		if !r1.Overlaps(r2) {
			return false
		}
		h.Depth, h.Normal = minimumPenetration(r1, r2)
		h.Time = 0
	}

	switch {
	case h.Normal.X < 0:
		h.Right = true
	case h.Normal.X > 0:
		h.Left = true
	case h.Normal.Y < 0:
		h.Bottom = true
	case h.Normal.Y > 0:
		h.Top = true
	}

	*hit = h
	return true
}

// minimumPenetration finds the shortest way to push r1 out of r2.
func minimumPenetration(r1, r2 world.Rect) (float32, world.Vec2f) {
	itop := r1.Bottom() - r2.Top()
	ibottom := r2.Bottom() - r1.Top()
	ileft := r1.Right() - r2.Left()
	iright := r2.Right() - r1.Left()

	vert := math32.Min(itop, ibottom)
	horiz := math32.Min(ileft, iright)
	if vert < horiz {
		if itop < ibottom {
			return itop, world.Vec2f{Y: -1}
		}
		return ibottom, world.Vec2f{Y: 1}
	}
	if ileft < iright {
		return ileft, world.Vec2f{X: -1}
	}
	return iright, world.Vec2f{X: 1}
}

// SetRectangleRectangleConstraints constrains r1 to the side of r2 it
// penetrates least. A bottom hit carries groundMovement.
func SetRectangleRectangleConstraints(c *Constraints, r1, r2 world.Rect, groundMovement world.Vec2f) {
	itop := r1.Bottom() - r2.Top()
	ibottom := r2.Bottom() - r1.Top()
	ileft := r1.Right() - r2.Left()
	iright := r2.Right() - r1.Left()

	vert := math32.Min(itop, ibottom)
	horiz := math32.Min(ileft, iright)
	if vert < horiz {
		if itop < ibottom {
			c.ConstrainBottom(r2.Top())
			c.Hit.Bottom = true
			c.GroundMovement = c.GroundMovement.Add(groundMovement)
		} else {
			c.ConstrainTop(r2.Bottom())
			c.Hit.Top = true
		}
	} else {
		if ileft < iright {
			c.ConstrainRight(r2.Left())
			c.Hit.Right = true
		} else {
			c.ConstrainLeft(r2.Right())
			c.Hit.Left = true
		}
	}
}

// makePlane returns the unit normal n and offset c of the line through p1 and p2.
func makePlane(p1, p2 world.Vec2f) (n world.Vec2f, c float32) {
	n = world.Vec2f{X: p2.Y - p1.Y, Y: p1.X - p2.X}
	c = -p2.Dot(n)
	l := n.Length()
	return n.Div(l), c / l
}

// RectangleAATriangle constrains rect against a slope. It returns false if
// they don't touch. The returned hitsBottom is true if the slope is under rect.
func RectangleAATriangle(c *Constraints, rect world.Rect, triangle world.AATriangle, groundMovement world.Vec2f) (collided, hitsBottom bool) {
	if !Intersects(rect, triangle.BBox) {
		return false, false
	}

	area := triangle.Area()

	var (
		p1     world.Vec2f
		normal world.Vec2f
		offset float32
	)
	switch triangle.Dir & world.DirectionMask {
	case world.SouthWest:
		p1 = world.Vec2f{X: rect.Left(), Y: rect.Bottom()}
		normal, offset = makePlane(area.P1, area.P2)
	case world.NorthEast:
		p1 = world.Vec2f{X: rect.Right(), Y: rect.Top()}
		normal, offset = makePlane(area.P2, area.P1)
	case world.SouthEast:
		p1 = rect.P2
		normal, offset = makePlane(world.Vec2f{X: area.Left(), Y: area.Bottom()}, world.Vec2f{X: area.Right(), Y: area.Top()})
	case world.NorthWest:
		p1 = rect.P1
		normal, offset = makePlane(world.Vec2f{X: area.Right(), Y: area.Top()}, world.Vec2f{X: area.Left(), Y: area.Bottom()})
	}

	depth := -normal.Dot(p1) - offset
	if depth < 0 {
		return false, false
	}

	out := normal.Mul(depth + slopeClearance)

	if p1.X < area.Left()-rDelta || p1.X > area.Right()+rDelta ||
		p1.Y < area.Top()-rDelta || p1.Y > area.Bottom()+rDelta {
		// corner is nowhere near the slope, the flat sides of the tile are hit
		before := c.Hit.Bottom
		c.Hit.Bottom = false
		SetRectangleRectangleConstraints(c, rect, area, groundMovement)
		hitsBottom = c.Hit.Bottom
		c.Hit.Bottom = c.Hit.Bottom || before
		return true, hitsBottom
	}

	if out.X < 0 {
		c.ConstrainRight(rect.Right()+out.X)
		c.Hit.Right = true
	} else {
		c.ConstrainLeft(rect.Left()+out.X)
		c.Hit.Left = true
	}

	if out.Y < 0 {
		c.ConstrainBottom(rect.Bottom()+out.Y)
		c.Hit.Bottom = true
		c.GroundMovement = c.GroundMovement.Add(groundMovement)
		hitsBottom = true
	} else {
		c.ConstrainTop(rect.Top()+out.Y)
		c.Hit.Top = true
	}
	c.Hit.SlopeNormal = normal

	return true, hitsBottom
}
