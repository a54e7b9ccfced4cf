// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tilemap

import (
	"github.com/SoftbearStudios/tuxcollide/world"
)

// Layer is a solid tile layer of a level, as far as collision is concerned.
type Layer interface {
	// ForTilesOverlapping calls back with every non empty tile that r overlaps
	// and its bounding box. Slope data is already flipped.
	ForTilesOverlapping(r world.Rect, callback func(tile Tile, bbox world.Rect) (stop bool)) bool
	// TileAt returns the tile at a point.
	TileAt(p world.Vec2f) (tile Tile, bbox world.Rect, ok bool)
	// Movement is how far the layer moves this frame.
	Movement() world.Vec2f
}

// Layers is a list of Layers.
type Layers []Layer

// ForTilesOverlapping calls back for every layer in order.
func (layers Layers) ForTilesOverlapping(r world.Rect, callback func(layer Layer, tile Tile, bbox world.Rect) (stop bool)) bool {
	for _, layer := range layers {
		l := layer
		if l.ForTilesOverlapping(r, func(tile Tile, bbox world.Rect) bool {
			return callback(l, tile, bbox)
		}) {
			return true
		}
	}
	return false
}
