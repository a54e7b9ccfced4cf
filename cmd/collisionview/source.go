// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"github.com/SoftbearStudios/tuxcollide/replay"
	"github.com/SoftbearStudios/tuxcollide/server"
	"github.com/SoftbearStudios/tuxcollide/world"
	"io"
)

type (
	// FrameSource produces the frames to draw.
	FrameSource interface {
		// Next returns the next frame, nil if there is none yet or io.EOF at the end.
		Next() (*replay.Frame, error)
	}

	// Controller is a FrameSource that can be paused and changed.
	Controller interface {
		Pause(paused bool)
		Step()
		Spawn(kind world.Kind, position world.Vec2f)
	}
)

// hubSource is a hub running in another goroutine.
type hubSource struct {
	client *server.LocalClient
}

var _ Controller = hubSource{}

func newHubSource(hub *server.Hub) hubSource {
	client := server.NewLocalClient(hub)
	go hub.Run()
	return hubSource{client: client}
}

func (source hubSource) Next() (*replay.Frame, error) {
	select {
	case update, ok := <-source.client.Frames():
		if !ok {
			return nil, io.EOF
		}
		return update.Frame, nil
	default:
		return nil, nil
	}
}

func (source hubSource) Pause(paused bool) {
	source.client.Receive(server.Pause{Paused: paused})
}

func (source hubSource) Step() {
	source.client.Receive(server.Step{Frames: 1})
}

func (source hubSource) Spawn(kind world.Kind, position world.Vec2f) {
	source.client.Receive(server.Spawn{Kind: kind, Position: position})
}

// replaySource plays a recorded replay.
type replaySource struct {
	reader *replay.Reader
}

func (source replaySource) Next() (*replay.Frame, error) {
	return source.reader.Next()
}
