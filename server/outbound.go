// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/tuxcollide/replay"
	"github.com/SoftbearStudios/tuxcollide/sector"
	"github.com/SoftbearStudios/tuxcollide/tilemap/compressed"
	"github.com/SoftbearStudios/tuxcollide/world"
	"github.com/google/uuid"
)

type (
	// LevelUpdate is sent once when a client connects.
	LevelUpdate struct {
		Name    string                 `json:"name"`
		Bounds  world.Rect             `json:"bounds"`
		Layers  []*compressed.Snapshot `json:"layers"`
		Options sector.Options         `json:"options"`
		Session uuid.UUID              `json:"session"`
	}

	// FrameUpdate is sent every frame. The frame is shared by all clients.
	FrameUpdate struct {
		Frame  *replay.Frame `json:"frame"`
		Paused bool          `json:"paused,omitempty"`
	}
)

func init() {
	registerOutbound(
		&LevelUpdate{},
		FrameUpdate{},
	)
}

func (update *LevelUpdate) droppable() bool { return false }

func (update FrameUpdate) droppable() bool { return true }
