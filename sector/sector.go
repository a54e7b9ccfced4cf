// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sector resolves the movement of every object in a level once per frame.
package sector

import (
	"github.com/SoftbearStudios/tuxcollide/tilemap"
	"github.com/SoftbearStudios/tuxcollide/world"
	"github.com/SoftbearStudios/tuxcollide/world/grid"
	"github.com/chewxy/math32"
	"log"
)

type (
	// Options tune the resolution. The zero value means DefaultOptions.
	Options struct {
		MaxSpeed    float32 `json:"maxSpeed"`    // longest movement per frame
		Epsilon     float32 `json:"epsilon"`     // gap left between resolved objects
		ShiftDelta  float32 `json:"shiftDelta"`  // overlap that is shifted out sideways instead of blocking
		Forgiveness float32 `json:"forgiveness"` // area by which a moving static may exceed another before ignoring it
	}

	// Sector owns the broad phase of a level and its solid tile layers.
	Sector struct {
		grid     *grid.Grid
		layers   tilemap.Layers
		options  Options
		observer Observer
		bounds   world.Rect

		frame    uint32
		updating bool
		buffered []*world.Object // added during Update

		// Reused between frames
		active     []grid.Handle
		marks      []uint32 // frame an object was last marked active
		candidates []grid.Handle
		moved      []grid.Handle
		removed    []*world.Object
	}

	// Stats summarize one Update.
	Stats struct {
		Frame   uint32 `json:"frame"`
		Objects int    `json:"objects"` // registered
		Active  int    `json:"active"`  // tested this frame
		Passed  int    `json:"passed"`  // moved without tests
		Pairs   int    `json:"pairs"`   // dynamic pairs resolved
		Touches int    `json:"touches"` // touchable overlaps
		Crushed int    `json:"crushed"` // crush hits reported
		Moved   int    `json:"moved"`   // reindexed in the grid
		Removed int    `json:"removed"`
	}

	// Pair is a collision between two objects as seen by A, where A was
	// added before B.
	Pair struct {
		A, B      *world.Object
		AID, BID  uint32
		Hit       world.Hit
		ResponseA world.HitResponse
		ResponseB world.HitResponse
		Touch     bool // no push out, one of them is touchable
	}

	// Observer is told about every resolved pair and every finished frame.
	Observer interface {
		Pair(pair Pair)
		Frame(s *Sector, stats Stats)
	}
)

// Everywhere is an active region that includes every object.
var Everywhere = world.Rect{
	P1: world.Vec2f{X: -math32.MaxFloat32, Y: -math32.MaxFloat32},
	P2: world.Vec2f{X: math32.MaxFloat32, Y: math32.MaxFloat32},
}

// DefaultOptions are the values platformer physics is tuned to.
func DefaultOptions() Options {
	return Options{
		MaxSpeed:    16,
		Epsilon:     0.001,
		ShiftDelta:  7,
		Forgiveness: 256,
	}
}

// New creates a Sector covering width x height pixels. Objects may leave the
// area, past it they are indexed in the grid's border cells.
func New(width, height float32, options Options, layers ...tilemap.Layer) *Sector {
	if options == (Options{}) {
		options = DefaultOptions()
	}
	return &Sector{
		grid:    grid.New(width, height),
		layers:  layers,
		options: options,
		bounds:  world.RectFrom(0, 0, width, height),
	}
}

func (s *Sector) Options() Options {
	return s.options
}

func (s *Sector) Bounds() world.Rect {
	return s.bounds
}

func (s *Sector) Layers() tilemap.Layers {
	return s.layers
}

// AddLayer adds a solid tile layer.
func (s *Sector) AddLayer(layer tilemap.Layer) {
	s.layers = append(s.layers, layer)
}

// SetObserver sets the Observer, nil to remove it.
func (s *Sector) SetObserver(observer Observer) {
	s.observer = observer
}

// Frame is the number of completed Updates.
func (s *Sector) Frame() uint32 {
	return s.frame
}

// Count is the number of registered objects.
func (s *Sector) Count() int {
	return s.grid.Count() + len(s.buffered)
}

// Add registers an object. Objects added by collision callbacks during Update
// are registered once the frame is committed.
func (s *Sector) Add(obj *world.Object) error {
	if s.updating {
		if obj == nil {
			return grid.ErrNilObject
		}
		if _, ok := s.grid.Handle(obj); ok {
			return grid.ErrRegistered
		}
		for _, b := range s.buffered {
			if b == obj {
				return grid.ErrRegistered
			}
		}
		s.buffered = append(s.buffered, obj)
		return nil
	}
	_, err := s.grid.Add(obj)
	return err
}

// Remove unregisters an object. During Update the object is marked Removed,
// skipped for the rest of the frame and unregistered after the commit.
func (s *Sector) Remove(obj *world.Object) bool {
	if s.updating {
		if _, ok := s.grid.Handle(obj); !ok {
			for i, b := range s.buffered {
				if b == obj {
					s.buffered = append(s.buffered[:i], s.buffered[i+1:]...)
					return true
				}
			}
			log.Printf("sector: remove of unregistered object %p", obj)
			return false
		}
		obj.Removed = true
		return true
	}
	return s.grid.Remove(obj)
}

// ID returns the registration order of obj, which is also the order objects are resolved in.
func (s *Sector) ID(obj *world.Object) (uint32, bool) {
	h, ok := s.grid.Handle(obj)
	if !ok {
		return 0, false
	}
	return s.grid.ID(h), true
}

// ForObjects iterates registered objects in registration order.
func (s *Sector) ForObjects(callback func(id uint32, obj *world.Object) (stop bool)) bool {
	return s.grid.ForObjects(func(h grid.Handle, obj *world.Object) bool {
		return callback(s.grid.ID(h), obj)
	})
}

// Debug prints the state of the broad phase.
func (s *Sector) Debug() {
	s.grid.Debug()
}

func (s *Sector) mark(h grid.Handle) {
	for int(h) >= len(s.marks) {
		s.marks = append(s.marks, 0)
	}
	s.marks[h] = s.frame + 1
}

func (s *Sector) marked(h grid.Handle) bool {
	return int(h) < len(s.marks) && s.marks[h] == s.frame+1
}
