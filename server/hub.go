// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server runs a level with demo actors and streams the resolved frames
// to debug viewers over websockets.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/SoftbearStudios/tuxcollide/replay"
	"github.com/SoftbearStudios/tuxcollide/sector"
	"github.com/SoftbearStudios/tuxcollide/tilemap"
	"github.com/SoftbearStudios/tuxcollide/tilemap/compressed"
	"github.com/SoftbearStudios/tuxcollide/tilemap/tiled"
	"github.com/SoftbearStudios/tuxcollide/world"
	"log"
	"math/rand"
	"sync/atomic"
	"time"
)

const (
	debugPeriod  = time.Second * 5
	uploadPeriod = time.Minute

	// freeSpotTries is how many random spots are tested before giving up.
	freeSpotTries = 32
)

var ErrNoLevel = errors.New("hub: no level")

// HubOptions configure a Hub.
type HubOptions struct {
	Level     *tiled.Level
	Sector    sector.Options
	TickRate  int          // frames per second, world.FramesPerSecond if zero
	Actors    int          // extra players spawned at random
	Store     replay.Store // where replays are uploaded, replay.Offline if nil
	StatsFile string       // CSV of frame stats, none if empty
	Seed      int64
}

// Hub owns the sector and maintains the set of connected clients.
type Hub struct {
	options HubOptions
	sector  *sector.Sector
	level   *LevelUpdate
	actors  []*Actor
	rand    *rand.Rand
	clients ClientList
	paused  bool

	// Stats of the last frame and things that are served atomically by HTTP.
	stats      sector.Stats
	collected  int
	statusJSON atomic.Value

	// Replay of the current upload period
	recorder  *replay.Recorder
	recording bytes.Buffer

	benches benchmarks

	// Inbound channels
	inbound    chan SignedInbound
	register   chan Client
	unregister chan Client

	// Timer based events
	updateTicker *time.Ticker
	debugTicker  *time.Ticker
	uploadTicker *time.Ticker
}

// NewHub loads the level into a sector and spawns its objects. Tickers start in Run.
func NewHub(options HubOptions) (*Hub, error) {
	level := options.Level
	if level == nil {
		return nil, ErrNoLevel
	}
	if options.TickRate <= 0 {
		options.TickRate = world.FramesPerSecond
	}
	if options.Store == nil {
		options.Store = replay.Offline{}
	}

	h := &Hub{
		options:    options,
		sector:     sector.New(level.Width, level.Height, options.Sector, level.Solids()...),
		rand:       rand.New(rand.NewSource(options.Seed)),
		inbound:    make(chan SignedInbound, 64),
		register:   make(chan Client, 8),
		unregister: make(chan Client, 16),
		benches:    make(benchmarks),
	}

	h.level = &LevelUpdate{
		Name:    level.Name,
		Bounds:  level.Bounds(),
		Options: h.sector.Options(),
	}
	for _, layer := range level.Layers {
		h.level.Layers = append(h.level.Layers, compressed.Encode(layer))
	}

	if err := h.startRecording(); err != nil {
		return nil, err
	}

	for _, spawn := range level.Spawns {
		if _, err := h.spawn(spawn.Kind, spawn.Position); err != nil {
			return nil, fmt.Errorf("spawn %s: %w", spawn.Name, err)
		}
	}
	for i := 0; i < options.Actors; i++ {
		size := world.KindPlayer.Data()
		if _, err := h.spawn(world.KindPlayer, h.freeSpot(world.Vec2f{X: size.Width, Y: size.Height})); err != nil {
			return nil, err
		}
	}

	h.updateStatus()
	return h, nil
}

// Level is what clients are sent when they connect.
func (h *Hub) Level() *LevelUpdate {
	return h.level
}

// Frame is the last frame, nil before the first Update.
func (h *Hub) Frame() *replay.Frame {
	return h.recorder.Last()
}

// Register adds a client, see ServeSocket.
func (h *Hub) Register(client Client) {
	h.register <- client
}

// Run is the hub goroutine, it never returns.
func (h *Hub) Run() {
	h.updateTicker = time.NewTicker(time.Second / time.Duration(h.options.TickRate))
	h.debugTicker = time.NewTicker(debugPeriod)
	h.uploadTicker = time.NewTicker(uploadPeriod)

	for {
		select {
		case client := <-h.register:
			h.clients.Add(client)
			client.Data().Hub = h
			client.Init()
			client.Send(h.level)
		case client := <-h.unregister:
			if client.Data().Hub != h {
				break
			}
			client.Close()
			client.Data().Hub = nil
			h.clients.Remove(client)
		case in := <-h.inbound:
			// Read all messages currently in the channel
			n := len(h.inbound)
			for {
				if in.Client.Data().Hub == h {
					in.Inbound(h, in.Client)
				}
				if n--; n < 0 {
					break
				}
				in = <-h.inbound
			}
		case <-h.updateTicker.C:
			if !h.paused {
				h.Update()
			}
		case <-h.debugTicker.C:
			h.Debug()
		case <-h.uploadTicker.C:
			h.Upload()
		}
	}
}

// Update runs one frame and broadcasts it.
func (h *Hub) Update() {
	start := time.Now()
	for _, actor := range h.actors {
		if !actor.Object.Removed {
			actor.Think(h.rand)
		}
	}
	h.benches.record("think", start)

	start = time.Now()
	h.stats = h.sector.Update(sector.Everywhere)
	h.benches.record("sector", start)

	// Objects removed by the frame
	actors := h.actors[:0]
	for _, actor := range h.actors {
		if !actor.Object.Removed {
			actors = append(actors, actor)
		}
	}
	for i := len(actors); i < len(h.actors); i++ {
		h.actors[i] = nil
	}
	h.actors = actors

	if err := h.recorder.Err(); err != nil {
		log.Println("recorder:", err)
	}
	h.clients.Broadcast(FrameUpdate{Frame: h.recorder.Last(), Paused: h.paused})
}

// Upload stores the replay recorded since the last upload and starts a new one.
func (h *Hub) Upload() {
	defer h.benches.record("upload", time.Now())

	name := replay.Name(h.recorder.Header())
	if err := h.options.Store.Upload(name, h.recording.Bytes()); err != nil {
		log.Println("upload replay:", err)
	}
	if err := h.startRecording(); err != nil {
		log.Println("restart recording:", err)
	}
}

func (h *Hub) startRecording() error {
	h.recording.Reset()
	recorder, err := replay.NewRecorder(h.level.Name, h.sector.Options(), &h.recording)
	if err != nil {
		return err
	}
	h.recorder = recorder
	h.level.Session = recorder.Header().Session
	h.sector.SetObserver(recorder)
	return nil
}

// spawn adds an object. Objects that move get an Actor.
func (h *Hub) spawn(kind world.Kind, position world.Vec2f) (*world.Object, error) {
	obj := world.NewObject(kind, position, nil)
	if obj.Group.Moves() {
		actor := newActor(h, obj, h.rand)
		obj.Handler = actor
		h.actors = append(h.actors, actor)
	} else {
		obj.Handler = world.KindResponse{}
	}

	if err := h.sector.Add(obj); err != nil {
		obj.Removed = true
		return nil, err
	}
	return obj, nil
}

// remove can be called from collision callbacks.
func (h *Hub) remove(obj *world.Object) {
	if obj.Removed {
		return
	}
	h.sector.Remove(obj)
	obj.Removed = true
}

func (h *Hub) collect(coin *world.Object) {
	if !coin.Removed {
		h.collected++
		h.remove(coin)
	}
}

// freeSpot finds a random spot of a size that isn't in a tile or static object.
func (h *Hub) freeSpot(size world.Vec2f) world.Vec2f {
	bounds := h.sector.Bounds()
	var position world.Vec2f
	for i := 0; i < freeSpotTries; i++ {
		position = world.Vec2f{
			X: bounds.Left() + h.rand.Float32()*max(bounds.Width()-size.X, 0),
			Y: bounds.Top() + h.rand.Float32()*max(bounds.Height()/2-size.Y, 0),
		}
		rect := world.RectSized(position, size.X, size.Y)
		if h.sector.IsFreeOfTiles(rect, false, tilemap.Solid) && h.sector.IsFreeOfStatics(rect, nil, false) {
			break
		}
	}
	return position
}
