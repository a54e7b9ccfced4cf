// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/tuxcollide/tilemap"
	"github.com/SoftbearStudios/tuxcollide/world"
	"math/rand"
)

// Speeds in pixels per second
const (
	gravity       = 1000
	fallSpeed     = 600
	walkSpeed     = 80
	iceWalkSpeed  = 160
	jumpSpeed     = 520
	bounceSpeed   = 300
	bulletSpeed   = 300
	platformSpeed = 64

	platformRange = 96 // pixels either side of the spawn
	jumpChance    = 0.02
	turnChance    = 0.002
	bulletLife    = world.Frames(world.FramesPerSecond * 3)
)

// Actor moves a demo object around so the hub has something to resolve.
type Actor struct {
	Object    *world.Object
	hub       *Hub
	velocity  world.Vec2f
	direction float32 // -1 left, 1 right
	origin    world.Vec2f
	age       world.Frames
	onGround  bool
	onIce     bool
	dead      bool // respawn on the next Think
}

var (
	_ world.SolidHandler = (*Actor)(nil)
	_ world.TileHandler  = (*Actor)(nil)
)

func newActor(hub *Hub, obj *world.Object, r *rand.Rand) *Actor {
	actor := &Actor{
		Object:    obj,
		hub:       hub,
		direction: 1,
		origin:    obj.BBox.P1,
	}
	if prob(r, 0.5) {
		actor.direction = -1
	}
	if obj.Kind == world.KindBullet {
		actor.velocity.X = actor.direction * bulletSpeed
	}
	return actor
}

// Think sets the movement of the actor's object for the next frame.
func (actor *Actor) Think(r *rand.Rand) {
	obj := actor.Object
	actor.age++

	if actor.dead || obj.BBox.Top() > actor.hub.sector.Bounds().Bottom() {
		actor.respawn()
		return
	}

	switch obj.Kind {
	case world.KindBullet:
		if actor.age > bulletLife {
			actor.hub.remove(obj)
			return
		}
	case world.KindPlatform:
		offset := obj.BBox.P1.X - actor.origin.X
		if (offset > platformRange && actor.direction > 0) || (offset < -platformRange && actor.direction < 0) {
			actor.direction = -actor.direction
		}
		actor.velocity.X = actor.direction * platformSpeed
	default:
		actor.velocity.Y = min(actor.velocity.Y+gravity/float32(world.FramesPerSecond), fallSpeed)

		if obj.Kind != world.KindRock {
			speed := float32(walkSpeed)
			if actor.onIce {
				speed = iceWalkSpeed
			}
			if prob(r, turnChance) {
				actor.direction = -actor.direction
			}
			actor.velocity.X = actor.direction * speed
		}

		if obj.Kind == world.KindPlayer && actor.onGround && prob(r, jumpChance) {
			actor.velocity.Y = -jumpSpeed
		}
	}

	obj.Movement = world.PerFrame(actor.velocity)
	actor.onGround = false
	actor.onIce = false
}

func (actor *Actor) Collision(self, other *world.Object, hit world.Hit) world.HitResponse {
	switch {
	case other.Kind == world.KindCoin && self.Kind == world.KindPlayer:
		actor.hub.collect(other)
	case other.Kind == world.KindBadGuy && self.Kind == world.KindPlayer && hit.Bottom:
		// Squish
		actor.hub.remove(other)
		actor.velocity.Y = -bounceSpeed
	case hit.Bottom && blocks(other):
		// Standing on a platform or another actor
		actor.onGround = true
		if actor.velocity.Y > 0 {
			actor.velocity.Y = 0
		}
	case hit.Top && blocks(other) && actor.velocity.Y < 0:
		actor.velocity.Y = 0
	}
	return self.Kind.Data().Response
}

// blocks is true if other answers collisions by pushing back.
func blocks(other *world.Object) bool {
	r := other.Kind.Data().Response
	return r == world.Continue || r == world.ForceMove
}

func (actor *Actor) CollisionSolid(self *world.Object, hit world.Hit) {
	if hit.Crush {
		actor.dead = true
		return
	}
	if self.Kind == world.KindBullet {
		if hit.Left || hit.Right {
			actor.hub.remove(self)
		}
		return
	}

	if hit.Bottom {
		actor.onGround = true
		if actor.velocity.Y > 0 {
			actor.velocity.Y = 0
		}
	}
	if hit.Top && actor.velocity.Y < 0 {
		actor.velocity.Y = 0
	}
	if (hit.Left && actor.direction < 0) || (hit.Right && actor.direction > 0) {
		actor.direction = -actor.direction
	}
}

func (actor *Actor) CollisionTile(self *world.Object, attributes uint32) {
	a := tilemap.Attributes(attributes)
	if a&tilemap.Ice != 0 {
		actor.onIce = true
	}
	if a&(tilemap.Hurts|tilemap.Fire) != 0 {
		actor.dead = true
	}
}

// respawn moves the object to a free spot of the level. Only call between frames.
func (actor *Actor) respawn() {
	obj := actor.Object
	obj.BBox = world.RectSized(actor.hub.freeSpot(obj.BBox.Size()), obj.BBox.Width(), obj.BBox.Height())
	obj.Movement = world.Vec2f{}
	actor.velocity = world.Vec2f{}
	actor.origin = obj.BBox.P1
	actor.age = 0
	actor.dead = false
}
