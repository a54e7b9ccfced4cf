// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package replay records resolved frames so runs can be streamed, stored and
// compared against each other.
package replay

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/tuxcollide/sector"
	"github.com/SoftbearStudios/tuxcollide/world"
	"github.com/google/uuid"
	"time"
)

// ErrDiverged is returned by Compare when two runs differ.
var ErrDiverged = errors.New("replay diverged")

type (
	// Header is the first line of a replay.
	Header struct {
		Session   uuid.UUID      `json:"session"`
		Level     string         `json:"level"`
		Created   time.Time      `json:"created"`
		Options   sector.Options `json:"options"`
		FrameRate int            `json:"frameRate"`
	}

	// Frame is the state of a sector after one Update.
	Frame struct {
		Number  uint32        `json:"number"`
		Objects []ObjectState `json:"objects"`
		Pairs   []PairState   `json:"pairs,omitempty"`
		Stats   sector.Stats  `json:"stats"`
	}

	// ObjectState is an object after a frame was committed.
	ObjectState struct {
		ID       uint32      `json:"id"`
		Kind     world.Kind  `json:"kind,omitempty"`
		Group    world.Group `json:"group"`
		BBox     world.Rect  `json:"bbox"`
		Pressure world.Vec2f `json:"pressure,omitempty"`
		Unisolid bool        `json:"unisolid,omitempty"`
	}

	// PairState is a collision resolved during a frame.
	PairState struct {
		A         uint32            `json:"a"`
		B         uint32            `json:"b"`
		Hit       world.Hit         `json:"hit"`
		ResponseA world.HitResponse `json:"responseA"`
		ResponseB world.HitResponse `json:"responseB"`
		Touch     bool              `json:"touch,omitempty"`
	}
)

// Capture copies the objects of s into a Frame.
func Capture(s *sector.Sector, stats sector.Stats) *Frame {
	frame := &Frame{
		Number:  stats.Frame,
		Objects: make([]ObjectState, 0, s.Count()),
		Stats:   stats,
	}
	s.ForObjects(func(id uint32, obj *world.Object) bool {
		frame.Objects = append(frame.Objects, ObjectState{
			ID:       id,
			Kind:     obj.Kind,
			Group:    obj.Group,
			BBox:     obj.BBox,
			Pressure: obj.Pressure,
			Unisolid: obj.Unisolid,
		})
		return false
	})
	return frame
}

// Compare returns an error wrapping ErrDiverged if the objects of two frames differ.
func Compare(expected, actual *Frame) error {
	if expected.Number != actual.Number {
		return fmt.Errorf("%w: frame %d vs %d", ErrDiverged, expected.Number, actual.Number)
	}
	if len(expected.Objects) != len(actual.Objects) {
		return fmt.Errorf("%w: frame %d has %d objects, expected %d", ErrDiverged, actual.Number, len(actual.Objects), len(expected.Objects))
	}
	for i := range expected.Objects {
		e, a := &expected.Objects[i], &actual.Objects[i]
		if *e != *a {
			return fmt.Errorf("%w: frame %d object %d is %v, expected %v", ErrDiverged, actual.Number, a.ID, a.BBox, e.BBox)
		}
	}
	return nil
}

// Step updates s by one frame and captures the result.
func Step(s *sector.Sector, active world.Rect) *Frame {
	return Capture(s, s.Update(active))
}
