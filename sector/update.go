// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sector

import (
	"github.com/SoftbearStudios/tuxcollide/tilemap"
	"github.com/SoftbearStudios/tuxcollide/world"
	"github.com/SoftbearStudios/tuxcollide/world/collision"
	"github.com/SoftbearStudios/tuxcollide/world/grid"
	"github.com/chewxy/math32"
	"log"
	"sort"
)

// crushPressure is how far an object must be squeezed to be crushed.
const crushPressure = 16

// Update resolves every object's Movement and commits it to BBox. Objects that
// don't touch active, or whose group is disabled, move without being tested.
func (s *Sector) Update(active world.Rect) (stats Stats) {
	s.updating = true
	stats.Frame = s.frame

	// Anything moved by the game since last frame
	s.grid.Sync()

	s.active = s.active[:0]
	s.grid.ForObjects(func(h grid.Handle, obj *world.Object) bool {
		stats.Objects++
		if obj.Removed {
			return false
		}

		obj.Movement = obj.Movement.ClampLength(s.options.MaxSpeed)
		obj.Pressure = world.Vec2f{}

		if obj.Group == world.GroupDisabled || !active.Intersects(obj.BBox) {
			stats.Passed++
			return false
		}

		s.mark(h)
		s.active = append(s.active, h)
		return false
	})
	stats.Active = len(s.active)

	// Part 1: movers against tiles and statics
	for _, h := range s.active {
		obj := s.grid.Object(h)
		if !obj.Removed && obj.Group.Moves() {
			if s.collisionStaticConstrains(obj) {
				stats.Crushed++
			}
		}
	}

	// Part 2: movers against tile attributes
	for _, h := range s.active {
		obj := s.grid.Object(h)
		if obj.Removed || !obj.Group.Moves() {
			continue
		}
		if attributes := s.collisionTileAttributes(obj.Dest(), obj.Movement); attributes >= tilemap.FirstInterestingFlag {
			obj.CollisionTile(uint32(attributes))
		}
	}

	// Part 3: movers against each other and touchables
	for _, h := range s.active {
		obj := s.grid.Object(h)
		if obj.Removed || !(obj.Group.Dynamic() || obj.Group == world.GroupTouchable) {
			continue
		}

		s.candidates = s.candidates[:0]
		s.grid.ForCandidates(h, func(other grid.Handle, _ *world.Object) bool {
			if s.marked(other) {
				s.candidates = append(s.candidates, other)
			}
			return false
		})
		sort.Slice(s.candidates, func(i, j int) bool {
			return s.grid.ID(s.candidates[i]) < s.grid.ID(s.candidates[j])
		})

		for _, other := range s.candidates {
			if obj.Removed {
				break
			}
			o := s.grid.Object(other)
			if o.Removed {
				continue
			}

			a := pairObject{obj: obj, id: s.grid.ID(h)}
			b := pairObject{obj: o, id: s.grid.ID(other)}
			switch {
			case obj.Group.Dynamic() && o.Group.Dynamic():
				if s.collisionObject(a, b) {
					stats.Pairs++
				}
			case obj.Group.Dynamic() && o.Group == world.GroupTouchable,
				obj.Group == world.GroupTouchable && o.Group.Dynamic():
				if s.collisionTouch(a, b) {
					stats.Touches++
				}
			}
		}
	}

	s.commit(&stats)

	if s.observer != nil {
		s.observer.Frame(s, stats)
	}
	return stats
}

// commit applies the resolved movement of every object and reindexes what moved.
func (s *Sector) commit(stats *Stats) {
	s.moved = s.moved[:0]
	s.removed = s.removed[:0]

	s.grid.ForObjects(func(h grid.Handle, obj *world.Object) bool {
		if obj.Removed {
			s.removed = append(s.removed, obj)
			return false
		}
		if !obj.Movement.IsZero() {
			obj.BBox = obj.BBox.Moved(obj.Movement)
			obj.Movement = world.Vec2f{}
			s.moved = append(s.moved, h)
		}
		return false
	})

	for _, h := range s.moved {
		s.grid.Move(h)
	}
	for _, obj := range s.removed {
		s.grid.Remove(obj)
	}
	stats.Moved = len(s.moved)
	stats.Removed = len(s.removed)

	s.updating = false
	s.frame++

	for _, obj := range s.buffered {
		if _, err := s.grid.Add(obj); err != nil {
			log.Printf("sector: add of buffered object: %v", err)
		}
	}
	s.buffered = s.buffered[:0]
}

// collisionStaticConstrains moves obj's destination out of tiles and static
// objects, first vertically and then horizontally. Returns true if obj was crushed.
func (s *Sector) collisionStaticConstrains(obj *world.Object) (crushed bool) {
	eps := s.options.Epsilon
	movement := obj.Movement
	size := obj.BBox.Size()
	dest := obj.Dest()
	var pressure world.Vec2f

	c := collision.NewConstraints()
	for i := 0; i < 2; i++ {
		s.collisionStatic(&c, world.Vec2f{Y: movement.Y}, dest, obj)
		if !c.HasConstraints() {
			break
		}

		if !math32.IsInf(c.Bottom(), 1) {
			if height := c.Height(); height < size.Y {
				// Crushed, or solved by the horizontal pass
				pressure.Y += size.Y - height
				obj.Pressure.Y = pressure.Y
			} else {
				dest.P2.Y = c.Bottom() - eps
				dest.P1.Y = dest.P2.Y - size.Y
			}
		} else if !math32.IsInf(c.Top(), -1) {
			dest.P1.Y = c.Top() + eps
			dest.P2.Y = dest.P1.Y + size.Y
		}
	}

	if c.HasConstraints() {
		if c.Hit.Bottom {
			// Carried along by the ground
			dest = dest.Moved(world.Vec2f{X: c.GroundMovement.X})
		}
		if c.Hit.Top || c.Hit.Bottom {
			c.Hit.Left = false
			c.Hit.Right = false
			obj.CollisionSolid(c.Hit)
		}
	}

	c = collision.NewConstraints()
	for i := 0; i < 2; i++ {
		s.collisionStatic(&c, movement, dest, obj)
		if !c.HasConstraints() {
			break
		}

		if width := c.Width(); !math32.IsInf(width, 1) {
			if width+s.options.ShiftDelta < size.X {
				// Crushed, or solved by the vertical pass
				pressure.X += size.X - width
				obj.Pressure.X = pressure.X
			} else {
				xmid := c.XMidpoint()
				dest.P1.X = xmid - size.X/2
				dest.P2.X = xmid + size.X/2
			}
		} else if !math32.IsInf(c.Right(), 1) {
			dest.P2.X = c.Right() - eps
			dest.P1.X = dest.P2.X - size.X
		} else if !math32.IsInf(c.Left(), -1) {
			dest.P1.X = c.Left() + eps
			dest.P2.X = dest.P1.X + size.X
		}
	}

	if c.HasConstraints() && (c.Hit.Any() || c.Hit.Crush) {
		obj.CollisionSolid(c.Hit)
	}

	// Make sure we're not crushed vertically
	if pressure.Y > 0 {
		c = collision.NewConstraints()
		s.collisionStatic(&c, movement, dest, obj)
		if !math32.IsInf(c.Bottom(), 1) && c.Height()+s.options.ShiftDelta < size.Y {
			hit := world.Hit{Top: true, Bottom: true, Crush: pressure.Y > crushPressure}
			crushed = crushed || hit.Crush
			obj.CollisionSolid(hit)
		}
	}

	// Make sure we're not crushed horizontally
	if pressure.X > 0 {
		c = collision.NewConstraints()
		s.collisionStatic(&c, movement, dest, obj)
		if !math32.IsInf(c.Right(), 1) && c.Width()+s.options.ShiftDelta < size.X {
			hit := world.Hit{Left: true, Right: true, Top: true, Bottom: true, Crush: pressure.X > crushPressure}
			crushed = crushed || hit.Crush
			obj.CollisionSolid(hit)
		}
	}

	obj.Movement = dest.P1.Sub(obj.BBox.P1)
	return
}

// collisionStatic folds the constraints of every tile and static object dest
// touches into c.
func (s *Sector) collisionStatic(c *collision.Constraints, movement world.Vec2f, dest world.Rect, obj *world.Object) {
	s.collisionTilemap(c, movement, dest, obj)

	area := obj.BBox.Width() * obj.BBox.Height()

	// Statics are indexed at their bboxes, which are at most MaxSpeed away from their destinations
	s.grid.Query(dest.Grown(s.options.MaxSpeed+s.options.Epsilon), func(_ grid.Handle, other *world.Object) bool {
		if other == obj || other.Removed || !other.Group.Obstacle() {
			return false
		}

		// Large moving statics push through smaller ones
		if obj.Group == world.GroupMovingStatic && other.Group == world.GroupMovingStatic &&
			area > other.BBox.Width()*other.BBox.Height()+s.options.Forgiveness {
			return false
		}

		constraints := s.checkCollisions(movement, dest, other.Dest(), obj, other, other.Movement)
		c.Merge(&constraints)
		return false
	})
}

// collisionTilemap folds the constraints of solid tiles into c.
func (s *Sector) collisionTilemap(c *collision.Constraints, movement world.Vec2f, dest world.Rect, obj *world.Object) {
	s.layers.ForTilesOverlapping(dest.Grown(s.options.Epsilon), func(layer tilemap.Layer, tile tilemap.Tile, bbox world.Rect) bool {
		if !tile.IsSolid() {
			return false
		}

		if tile.IsUnisolid() {
			relative := movement.Sub(layer.Movement())
			if !tile.IsSolidFor(bbox, obj.BBox, relative) {
				return false
			}
		}

		if tile.IsSlope() {
			constraints := collision.NewConstraints()
			if ok, _ := collision.RectangleAATriangle(&constraints, dest, tile.Triangle(bbox), layer.Movement()); ok {
				c.Merge(&constraints)
			}
			return false
		}

		constraints := s.checkCollisions(movement, dest, bbox, obj, nil, layer.Movement())
		c.Merge(&constraints)
		return false
	})
}

// checkCollisions constrains rect, which wants to move by movement, against a
// solid otherRect. other is nil for tiles.
func (s *Sector) checkCollisions(movement world.Vec2f, rect, otherRect world.Rect, obj, other *world.Object, otherMovement world.Vec2f) collision.Constraints {
	c := collision.NewConstraints()

	// Growing detects adjacent rects as well
	grown := otherRect.Grown(s.options.Epsilon)
	if !rect.Overlaps(grown) {
		return c
	}

	if other != nil {
		var dummy world.Hit
		if !other.Collides(obj, dummy) || !obj.Collides(other, dummy) {
			return c
		}
	}

	itop := rect.Bottom() - grown.Top()
	ibottom := grown.Bottom() - rect.Top()
	ileft := rect.Right() - grown.Left()
	iright := grown.Right() - rect.Left()

	unisolid := other != nil && other.Unisolid
	shiftDelta := s.options.ShiftDelta

	if !unisolid {
		if math32.Abs(movement.Y) > math32.Abs(movement.X) {
			if ileft < shiftDelta {
				c.ConstrainRight(otherRect.Left())
				c.Hit.Right = true
				return c
			} else if iright < shiftDelta {
				c.ConstrainLeft(otherRect.Right())
				c.Hit.Left = true
				return c
			}
		} else {
			if itop < shiftDelta {
				c.ConstrainBottom(otherRect.Top())
				c.Hit.Bottom = true
				c.GroundMovement = otherMovement
				return c
			} else if ibottom < shiftDelta {
				c.ConstrainTop(otherRect.Bottom())
				c.Hit.Top = true
				return c
			}
		}
	}

	if unisolid {
		// Only objects falling on top
		if rect.Bottom()-movement.Y <= grown.Top() {
			c.ConstrainBottom(otherRect.Top())
			c.Hit.Bottom = true
			c.GroundMovement = otherMovement
		}
	} else {
		vert := math32.Min(itop, ibottom)
		horiz := math32.Min(ileft, iright)
		if vert < horiz {
			if itop < ibottom {
				c.ConstrainBottom(otherRect.Top())
				c.Hit.Bottom = true
				c.GroundMovement = otherMovement
			} else {
				c.ConstrainTop(otherRect.Bottom())
				c.Hit.Top = true
			}
		} else {
			if ileft < iright {
				c.ConstrainRight(otherRect.Left())
				c.Hit.Right = true
			} else {
				c.ConstrainLeft(otherRect.Right())
				c.Hit.Left = true
			}
		}
	}

	if other != nil {
		obj.Collision(other, c.Hit)
		if other.Collision(obj, c.Hit.Flipped()) == world.AbortMove {
			return collision.NewConstraints()
		}
	}

	return c
}

// collisionTileAttributes ors the attributes of the tiles dest touches. Ice
// is also picked up from just below dest.
func (s *Sector) collisionTileAttributes(dest world.Rect, movement world.Vec2f) tilemap.Attributes {
	var result tilemap.Attributes

	feet := dest
	feet.P2.Y += s.options.ShiftDelta

	s.layers.ForTilesOverlapping(feet, func(_ tilemap.Layer, tile tilemap.Tile, bbox world.Rect) bool {
		if !tile.IsCollisionful(bbox, dest, movement) {
			return false
		}
		if bbox.Top() >= dest.Bottom() {
			result |= tile.Attributes & tilemap.Ice
		} else {
			result |= tile.Attributes
		}
		return false
	})

	return result
}

type pairObject struct {
	obj *world.Object
	id  uint32
}

// collisionObject resolves two dynamic objects. a was added before b.
func (s *Sector) collisionObject(a, b pairObject) bool {
	o1, o2 := a.obj, b.obj
	dest1, dest2 := o1.Dest(), o2.Dest()

	// Unisolid objects only collide with objects that come from above
	if o1.Unisolid && dest2.Bottom()-o2.Movement.Y > dest1.Top() {
		return false
	}
	if o2.Unisolid && dest1.Bottom()-o1.Movement.Y > dest2.Top() {
		return false
	}

	var hit world.Hit
	if !collision.RectangleRectangle(&hit, dest1, o1.Movement.Sub(o2.Movement), dest2) {
		return false
	}

	if !o1.Collides(o2, hit) || !o2.Collides(o1, hit.Flipped()) {
		return false
	}

	response1 := o1.Collision(o2, hit)
	flipped := hit.Flipped()
	response2 := o2.Collision(o1, flipped)

	// normal points from o1 to o2
	normal := flipped.Normal
	eps := s.options.Epsilon

	switch {
	case response1 != world.Continue:
		if response1 == world.AbortMove {
			o1.Movement = world.Vec2f{}
		}
		if response2 == world.Continue {
			o2.Movement = o2.Movement.AddScaled(normal, hit.Depth+eps)
		}
	case response2 != world.Continue:
		if response2 == world.AbortMove {
			o2.Movement = world.Vec2f{}
		}
		o1.Movement = o1.Movement.AddScaled(normal, -(hit.Depth + eps))
	default:
		half := hit.Depth/2 + eps
		o1.Movement = o1.Movement.AddScaled(normal, -half)
		o2.Movement = o2.Movement.AddScaled(normal, half)
	}

	if s.observer != nil {
		s.observer.Pair(Pair{A: o1, B: o2, AID: a.id, BID: b.id, Hit: hit, ResponseA: response1, ResponseB: response2})
	}
	return true
}

// collisionTouch tells a dynamic object and a touchable object they overlap.
// Neither is pushed.
func (s *Sector) collisionTouch(a, b pairObject) bool {
	o1, o2 := a.obj, b.obj
	dest1, dest2 := o1.Dest(), o2.Dest()
	if !dest1.Overlaps(dest2) {
		return false
	}

	var hit world.Hit
	if !collision.RectangleRectangle(&hit, dest1, world.Vec2f{}, dest2) {
		return false
	}

	if !o1.Collides(o2, hit) || !o2.Collides(o1, hit.Flipped()) {
		return false
	}

	response1 := o1.Collision(o2, hit)
	response2 := o2.Collision(o1, hit.Flipped())

	if s.observer != nil {
		s.observer.Pair(Pair{A: o1, B: o2, AID: a.id, BID: b.id, Hit: hit, ResponseA: response1, ResponseB: response2, Touch: true})
	}
	return true
}
