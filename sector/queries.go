// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sector

import (
	"github.com/SoftbearStudios/tuxcollide/tilemap"
	"github.com/SoftbearStudios/tuxcollide/world"
	"github.com/SoftbearStudios/tuxcollide/world/collision"
	"github.com/SoftbearStudios/tuxcollide/world/grid"
	"github.com/chewxy/math32"
	"sort"
)

// raycastStep is the distance between tile samples along a ray.
const raycastStep = 16

// RaycastResult is the first thing a line hits. Object is nil for tiles.
type RaycastResult struct {
	Valid  bool
	Tile   tilemap.Tile
	Object *world.Object
	Box    world.Rect
}

// IsFreeOfTiles is true if no tile with any of attributes overlaps rect.
// Slopes only count if rect touches the triangle.
func (s *Sector) IsFreeOfTiles(rect world.Rect, ignoreUnisolid bool, attributes tilemap.Attributes) bool {
	return !s.layers.ForTilesOverlapping(rect, func(_ tilemap.Layer, tile tilemap.Tile, bbox world.Rect) bool {
		if tile.Attributes&attributes == 0 {
			return false
		}
		if tile.IsUnisolid() && ignoreUnisolid {
			return false
		}
		if tile.IsSlope() {
			c := collision.NewConstraints()
			if ok, _ := collision.RectangleAATriangle(&c, rect, tile.Triangle(bbox), world.Vec2f{}); !ok {
				return false
			}
		}
		return true
	})
}

// IsFreeOfStatics is true if rect overlaps no solid tile and no static object but ignore.
func (s *Sector) IsFreeOfStatics(rect world.Rect, ignore *world.Object, ignoreUnisolid bool) bool {
	if !s.IsFreeOfTiles(rect, ignoreUnisolid, tilemap.Solid) {
		return false
	}
	return !s.anyOverlapping(rect, ignore, func(g world.Group) bool {
		return g == world.GroupStatic
	})
}

// IsFreeOfMovingStatics is true if rect overlaps no solid tile and no static,
// moving static or moving object but ignore.
func (s *Sector) IsFreeOfMovingStatics(rect world.Rect, ignore *world.Object) bool {
	if !s.IsFreeOfTiles(rect, false, tilemap.Solid) {
		return false
	}
	return !s.anyOverlapping(rect, ignore, func(g world.Group) bool {
		return g == world.GroupStatic || g == world.GroupMovingStatic || g == world.GroupMoving
	})
}

// IsFreeOfSpecificallyMovingStatics ignores tiles and everything but moving statics.
func (s *Sector) IsFreeOfSpecificallyMovingStatics(rect world.Rect, ignore *world.Object) bool {
	return !s.anyOverlapping(rect, ignore, func(g world.Group) bool {
		return g == world.GroupMovingStatic
	})
}

func (s *Sector) anyOverlapping(rect world.Rect, ignore *world.Object, groups func(world.Group) bool) bool {
	return s.grid.Query(rect, func(_ grid.Handle, obj *world.Object) bool {
		return obj != ignore && !obj.Removed && groups(obj.Group) && rect.Overlaps(obj.BBox)
	})
}

// FirstLineIntersection finds what the line from start to end hits first.
// Tiles are sampled every raycastStep pixels over the line's bounds, and are
// checked before objects.
func (s *Sector) FirstLineIntersection(start, end world.Vec2f, ignoreObjects bool, ignore *world.Object) (result RaycastResult) {
	lsx, lex := math32.Min(start.X, end.X), math32.Max(start.X, end.X)
	lsy, ley := math32.Min(start.Y, end.Y), math32.Max(start.Y, end.Y)

	if !finite(lsx) || !finite(lex) || !finite(lsy) || !finite(ley) {
		return
	}

	// Count steps, x += raycastStep stalls once |x| reaches 2^28
	stepsX := int((lex - lsx) / raycastStep)
	stepsY := int((ley - lsy) / raycastStep)
	for i := 0; i <= stepsX; i++ {
		x := lsx + float32(i)*raycastStep
		for j := 0; j <= stepsY; j++ {
			y := lsy + float32(j)*raycastStep
			for _, layer := range s.layers {
				tile, bbox, ok := layer.TileAt(world.Vec2f{X: x, Y: y})
				if !ok || !tile.IsSolid() {
					continue
				}
				return RaycastResult{Valid: true, Tile: tile, Box: bbox}
			}
		}
	}

	if ignoreObjects {
		return
	}

	bounds := world.RectFrom(lsx, lsy, lex, ley)
	var hits []*world.Object
	s.grid.Query(bounds, func(_ grid.Handle, obj *world.Object) bool {
		if obj == ignore || obj.Removed {
			return false
		}
		if g := obj.Group; g != world.GroupMoving && g != world.GroupMovingStatic && g != world.GroupStatic {
			return false
		}
		if collision.IntersectsLine(obj.BBox, start, end) {
			hits = append(hits, obj)
		}
		return false
	})

	if len(hits) == 0 {
		return
	}

	// Closest to start
	sort.SliceStable(hits, func(i, j int) bool {
		return start.Distance(hits[i].BBox.Middle()) < start.Distance(hits[j].BBox.Middle())
	})
	return RaycastResult{Valid: true, Object: hits[0], Box: hits[0].BBox}
}

// FreeLineOfSight is true if nothing is in the way from start to end.
func (s *Sector) FreeLineOfSight(start, end world.Vec2f, ignoreObjects bool, ignore *world.Object) bool {
	return !s.FirstLineIntersection(start, end, ignoreObjects, ignore).Valid
}

// NearbyObjects returns the objects whose bboxes are within maxDistance of
// center, in registration order.
func (s *Sector) NearbyObjects(center world.Vec2f, maxDistance float32) []*world.Object {
	var objects []*world.Object
	area := world.RectFrom(center.X, center.Y, center.X, center.Y).Grown(maxDistance)
	s.grid.Query(area, func(_ grid.Handle, obj *world.Object) bool {
		if !obj.Removed && rectDistance(obj.BBox, center) <= maxDistance {
			objects = append(objects, obj)
		}
		return false
	})

	sort.Slice(objects, func(i, j int) bool {
		a, _ := s.ID(objects[i])
		b, _ := s.ID(objects[j])
		return a < b
	})
	return objects
}

func finite(f float32) bool {
	return !math32.IsInf(f, 0) && !math32.IsNaN(f)
}

// rectDistance is the distance from p to the closest point of r.
func rectDistance(r world.Rect, p world.Vec2f) float32 {
	closest := world.Vec2f{
		X: world.Clamp(p.X, r.Left(), r.Right()),
		Y: world.Clamp(p.Y, r.Top(), r.Bottom()),
	}
	return closest.Distance(p)
}
