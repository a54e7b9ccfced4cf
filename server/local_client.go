// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"sync"
)

// localFrames is how many frames a LocalClient buffers before dropping the oldest.
const localFrames = 4

// LocalClient is a Client in the same process as the hub, such as a viewer.
type LocalClient struct {
	ClientData
	hub    *Hub
	frames chan FrameUpdate
	once   sync.Once
}

// NewLocalClient creates a LocalClient and registers it with hub.
func NewLocalClient(hub *Hub) *LocalClient {
	client := &LocalClient{
		hub:    hub,
		frames: make(chan FrameUpdate, localFrames),
	}
	hub.Register(client)
	return client
}

// Frames receives every frame, it is closed when the client is unregistered.
func (client *LocalClient) Frames() <-chan FrameUpdate {
	return client.frames
}

// Receive queues an inbound message (Pause, Remove, Spawn, Step) as if it came from a socket.
func (client *LocalClient) Receive(in interface{ Inbound(hub *Hub, client Client) }) {
	client.hub.inbound <- SignedInbound{Client: client, inbound: in}
}

func (client *LocalClient) Close() {
	close(client.frames)
}

func (client *LocalClient) Data() *ClientData {
	return &client.ClientData
}

func (client *LocalClient) Destroy() {
	client.once.Do(func() {
		go func() {
			client.hub.unregister <- client
		}()
	})
}

func (client *LocalClient) Init() {}

// Send never blocks the hub, old frames are dropped for new ones.
func (client *LocalClient) Send(out outbound) {
	update, ok := out.(FrameUpdate)
	if !ok {
		return
	}
	for {
		select {
		case client.frames <- update:
			return
		default:
			select {
			case <-client.frames:
			default:
			}
		}
	}
}
