// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package grid is the collision broad phase, a uniform grid of cells each
// listing the objects whose bounding box touches it.
package grid

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/tuxcollide/world"
	"log"
)

const (
	CellSize   = 128 // Pixels
	minCellCap = 4   // Capacity to start cells with
	debugGrid  = false
)

var (
	ErrRegistered = errors.New("grid: object already registered")
	ErrNilObject  = errors.New("grid: nil object")
)

// Handle is a stable reference to a registered object. Handles of removed objects are reused.
type Handle int32

const InvalidHandle = Handle(-1)

type (
	// Grid is a uniform grid of cells. Objects are indexed by the cells their
	// bounding box touched when they were last added or moved. Parts outside the
	// grid are indexed in the nearest border cells.
	Grid struct {
		cells      [][]Handle               // cells stores handles in spatial partitions
		cellsX     int                      // cellsX is the number of columns
		cellsY     int                      // cellsY is the number of rows
		wrappers   []wrapper                // wrappers is indexed by Handle
		free       []Handle                 // free handles to reuse
		handles    map[*world.Object]Handle // handles stores where to find the objects
		order      []Handle                 // order is live handles by ascending id
		nextID     uint32                   // nextID is the id of the next added object
		timestamp  uint32                   // timestamp of the current ForCandidates sweep
		queryStamp uint32                   // queryStamp of the current Query
		depth      int8                     // call depth
	}

	// wrapper is the grid's view of an object
	wrapper struct {
		object     *world.Object
		dest       world.Rect // bbox the cell membership was computed from
		id         uint32     // insertion order, pairs are only visited from the lower id
		timestamp  uint32     // ForCandidates sweep that last visited this wrapper
		queryStamp uint32     // Query that last visited this wrapper
	}
)

// New creates a Grid covering width x height pixels from the origin.
func New(width, height float32) *Grid {
	if width < 0 || height < 0 {
		panic("size out of range")
	}
	cellsX := int(width/CellSize) + 1
	cellsY := int(height/CellSize) + 1

	return &Grid{
		cells:   make([][]Handle, cellsX*cellsY),
		cellsX:  cellsX,
		cellsY:  cellsY,
		handles: make(map[*world.Object]Handle),
	}
}

// Count returns the number of registered objects.
func (g *Grid) Count() int {
	return len(g.order)
}

// Size returns the number of cells in each direction.
func (g *Grid) Size() (cellsX, cellsY int) {
	return g.cellsX, g.cellsY
}

// Debug output
func (g *Grid) Debug() {
	used, entries := 0, 0
	for _, c := range g.cells {
		if len(c) > 0 {
			used++
			entries += len(c)
		}
	}
	fmt.Printf("collision grid: cells: %dx%d, used: %d, entries: %d, objects: %d\n", g.cellsX, g.cellsY, used, entries, g.Count())
}

// Add registers an object at its current bounding box.
// Cannot add during iteration.
func (g *Grid) Add(obj *world.Object) (Handle, error) {
	if obj == nil {
		return InvalidHandle, ErrNilObject
	}
	if _, ok := g.handles[obj]; ok {
		return InvalidHandle, ErrRegistered
	}
	g.assertDepth(0)

	var h Handle
	if n := len(g.free); n > 0 {
		h = g.free[n-1]
		g.free = g.free[:n-1]
	} else {
		h = Handle(len(g.wrappers))
		g.wrappers = append(g.wrappers, wrapper{})
	}

	g.wrappers[h] = wrapper{object: obj, dest: obj.BBox, id: g.nextID}
	g.nextID++
	g.handles[obj] = h
	g.order = append(g.order, h)

	if cut := g.insert(h, obj.BBox); cut {
		log.Printf("grid: object %v extends past the grid, indexed in its border cells", obj.BBox)
	}
	return h, nil
}

// Remove unregisters an object using the cells it was last indexed in.
// Returns false (and logs) if it wasn't registered.
func (g *Grid) Remove(obj *world.Object) bool {
	h, ok := g.handles[obj]
	if !ok {
		log.Printf("grid: remove of unregistered object %p", obj)
		return false
	}
	g.assertDepth(0)

	w := &g.wrappers[h]
	g.erase(h, w.dest)

	delete(g.handles, obj)
	for i, other := range g.order {
		if other == h {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}

	*w = wrapper{}
	g.free = append(g.free, h)
	return true
}

// Move rebuilds the cell membership of h from its object's current bounding box.
func (g *Grid) Move(h Handle) {
	w := g.wrapper(h)
	if w == nil {
		log.Printf("grid: move of invalid handle %d", h)
		return
	}

	g.erase(h, w.dest)
	w.dest = w.object.BBox
	if cut := g.insert(h, w.dest); cut && debugGrid {
		log.Printf("grid: object %v extends past the grid, indexed in its border cells", w.dest)
	}
}

// Sync moves every object whose bounding box changed since it was indexed.
func (g *Grid) Sync() int {
	moved := 0
	for _, h := range g.order {
		w := &g.wrappers[h]
		if w.object.BBox != w.dest {
			g.Move(h)
			moved++
		}
	}
	return moved
}

// Handle returns the handle of a registered object.
func (g *Grid) Handle(obj *world.Object) (Handle, bool) {
	h, ok := g.handles[obj]
	return h, ok
}

// Object returns the object behind a handle, nil if the handle isn't live.
func (g *Grid) Object(h Handle) *world.Object {
	if w := g.wrapper(h); w != nil {
		return w.object
	}
	return nil
}

// ID returns the insertion order of h.
func (g *Grid) ID(h Handle) uint32 {
	if w := g.wrapper(h); w != nil {
		return w.id
	}
	return 0
}

// ForObjects iterates objects in insertion order. Objects cannot be added or removed by the callback.
func (g *Grid) ForObjects(callback func(h Handle, obj *world.Object) (stop bool)) bool {
	g.depth++
	defer func() { g.depth-- }()

	for _, h := range g.order {
		if callback(h, g.wrappers[h].object) {
			return true
		}
	}
	return false
}

// ForCandidates visits every object sharing a cell, or a neighboring cell, with h
// that was added after h. Each object is visited at most once per call, so
// iterating ForCandidates over all handles visits each close pair exactly once.
func (g *Grid) ForCandidates(h Handle, callback func(other Handle, obj *world.Object) (stop bool)) bool {
	w := g.wrapper(h)
	if w == nil {
		return false
	}

	g.depth++
	defer func() { g.depth-- }()

	g.timestamp++
	timestamp := g.timestamp
	w.timestamp = timestamp
	id := w.id

	cells, _ := rectCellRange(w.object.BBox).grown(1).clamped(g.cellsX, g.cellsY)
	for y := cells.min.y; y <= cells.max.y; y++ {
		for x := cells.min.x; x <= cells.max.x; x++ {
			for _, other := range g.cells[cellID{x: x, y: y}.sliceIndex(g.cellsX, g.cellsY)] {
				o := &g.wrappers[other]
				if o.timestamp == timestamp {
					continue
				}
				o.timestamp = timestamp
				if o.id <= id {
					continue
				}
				if callback(other, o.object) {
					return true
				}
			}
		}
	}
	return false
}

// Query visits every object indexed in a cell that r touches, once each.
func (g *Grid) Query(r world.Rect, callback func(h Handle, obj *world.Object) (stop bool)) bool {
	g.depth++
	defer func() { g.depth-- }()

	// Query can run inside ForCandidates so it has its own stamp
	g.queryStamp++
	stamp := g.queryStamp

	cells, _ := rectCellRange(r).clamped(g.cellsX, g.cellsY)
	for y := cells.min.y; y <= cells.max.y; y++ {
		for x := cells.min.x; x <= cells.max.x; x++ {
			for _, h := range g.cells[cellID{x: x, y: y}.sliceIndex(g.cellsX, g.cellsY)] {
				w := &g.wrappers[h]
				if w.queryStamp == stamp {
					continue
				}
				w.queryStamp = stamp
				if callback(h, w.object) {
					return true
				}
			}
		}
	}
	return false
}

func (g *Grid) wrapper(h Handle) *wrapper {
	if h < 0 || int(h) >= len(g.wrappers) || g.wrappers[h].object == nil {
		return nil
	}
	return &g.wrappers[h]
}

// insert adds h to every cell r touches, clamped to the grid, and reports if r
// reached outside of it.
func (g *Grid) insert(h Handle, r world.Rect) (cut bool) {
	cells, cut := rectCellRange(r).clamped(g.cellsX, g.cellsY)
	if cells.empty() {
		return cut
	}

	for y := cells.min.y; y <= cells.max.y; y++ {
		for x := cells.min.x; x <= cells.max.x; x++ {
			i := cellID{x: x, y: y}.sliceIndex(g.cellsX, g.cellsY)
			if g.cells[i] == nil {
				g.cells[i] = make([]Handle, 0, minCellCap)
			}
			g.cells[i] = append(g.cells[i], h)
		}
	}
	return cut
}

// erase removes h from the cells insert put it in for r.
func (g *Grid) erase(h Handle, r world.Rect) {
	cells, _ := rectCellRange(r).clamped(g.cellsX, g.cellsY)
	if cells.empty() {
		return
	}

	for y := cells.min.y; y <= cells.max.y; y++ {
		for x := cells.min.x; x <= cells.max.x; x++ {
			i := cellID{x: x, y: y}.sliceIndex(g.cellsX, g.cellsY)
			if !g.eraseFromCell(i, h) {
				log.Printf("grid: couldn't find object in cell %d", i)
			}
		}
	}
}

func (g *Grid) eraseFromCell(i int, h Handle) bool {
	c := g.cells[i]
	for j, other := range c {
		if other != h {
			continue
		}

		end := len(c) - 1
		c[j] = c[end]
		c = c[:end]

		if len(c) == 0 {
			// Delete slice if no more handles
			c = nil
		} else if half := cap(c) / 2; len(c)+minCellCap/2 < half {
			// Shrink to use less memory
			shrunk := make([]Handle, len(c), half)
			copy(shrunk, c)
			c = shrunk
		}

		g.cells[i] = c
		return true
	}
	return false
}

// assertDepth tests the Grid function call depth for debugging
func (g *Grid) assertDepth(depth int8) {
	if g.depth != depth {
		panic(fmt.Sprintf("cannot write at iteration depth %d", g.depth))
	}
}
