// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/tuxcollide/world"
	"log"
)

// maxStep is the most frames a Step may ask for.
const maxStep = world.FramesPerSecond * 10

// Inbounds are registered in init.
type (
	// InvalidInbound stands in for a message of an unknown type. It is never
	// registered so clients can't send it by name.
	InvalidInbound struct {
		messageType messageType
	}

	// Pause stops or restarts the simulation.
	Pause struct {
		Paused bool `json:"paused"`
	}

	// Remove removes the object with an id.
	Remove struct {
		ID uint32 `json:"id"`
	}

	// Spawn adds an object of a kind at a position. Movers get an actor.
	Spawn struct {
		Kind     world.Kind  `json:"kind"`
		Position world.Vec2f `json:"position"`
	}

	// Step advances a paused simulation by a number of frames.
	Step struct {
		Frames int `json:"frames"`
	}
)

func init() {
	registerInbound(
		Pause{},
		Remove{},
		Spawn{},
		Step{},
	)
}

func (data InvalidInbound) Inbound(_ *Hub, _ Client) {
	log.Println("invalid inbound", data.messageType)
}

func (data Pause) Inbound(hub *Hub, _ Client) {
	hub.paused = data.Paused
}

func (data Remove) Inbound(hub *Hub, _ Client) {
	var found *world.Object
	hub.sector.ForObjects(func(id uint32, obj *world.Object) bool {
		if id == data.ID {
			found = obj
			return true
		}
		return false
	})
	if found != nil {
		hub.remove(found)
	}
}

func (data Spawn) Inbound(hub *Hub, _ Client) {
	if !hub.sector.Bounds().ContainsPoint(data.Position) {
		return
	}
	if _, err := hub.spawn(data.Kind, data.Position); err != nil {
		log.Println("spawn:", err)
	}
}

func (data Step) Inbound(hub *Hub, _ Client) {
	if !hub.paused {
		return
	}
	frames := data.Frames
	if frames < 1 {
		frames = 1
	} else if frames > maxStep {
		frames = maxStep
	}
	for i := 0; i < frames; i++ {
		hub.Update()
	}
}
