// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

type (
	// Object is the record the collision system works on. The game owns it, the
	// collision system only reads Group/Kind and writes BBox/Movement/Pressure.
	Object struct {
		BBox     Rect    // last committed bounding box
		Movement Vec2f   // wanted movement until next frame, replaced by the resolved movement
		Group    Group   // which phases the object takes part in
		Kind     Kind    // capability tag for handlers
		Unisolid bool    // only solid from above
		Removed  bool    // set to skip the object until it is removed
		Pressure Vec2f   // how much the object was squeezed last frame
		Handler  Handler // may be nil
	}

	// Handler receives collisions with other objects.
	Handler interface {
		Collision(self, other *Object, hit Hit) HitResponse
	}

	// SolidHandler is an optional Handler capability for collisions with tiles and statics.
	SolidHandler interface {
		CollisionSolid(self *Object, hit Hit)
	}

	// TileHandler is an optional Handler capability for interesting tile attributes.
	TileHandler interface {
		CollisionTile(self *Object, attributes uint32)
	}

	// Filter is an optional Handler capability that can veto a collision before it happens.
	Filter interface {
		Collides(self, other *Object, hit Hit) bool
	}

	// HandlerFunc adapts a function to Handler.
	HandlerFunc func(self, other *Object, hit Hit) HitResponse
)

func (f HandlerFunc) Collision(self, other *Object, hit Hit) HitResponse {
	return f(self, other, hit)
}

// NewObject creates an Object sized and grouped from its kind's data.
func NewObject(kind Kind, position Vec2f, handler Handler) *Object {
	data := kind.Data()
	return &Object{
		BBox:     RectSized(position, data.Width, data.Height),
		Group:    data.Group,
		Kind:     kind,
		Unisolid: data.Unisolid,
		Handler:  handler,
	}
}

// Dest is where the object ends up if its movement is applied.
func (o *Object) Dest() Rect {
	return o.BBox.Moved(o.Movement)
}

// Collision dispatches to the handler, objects without one always continue.
func (o *Object) Collision(other *Object, hit Hit) HitResponse {
	if o.Handler == nil {
		return Continue
	}
	return o.Handler.Collision(o, other, hit)
}

func (o *Object) CollisionSolid(hit Hit) {
	if h, ok := o.Handler.(SolidHandler); ok {
		h.CollisionSolid(o, hit)
	}
}

func (o *Object) CollisionTile(attributes uint32) {
	if h, ok := o.Handler.(TileHandler); ok {
		h.CollisionTile(o, attributes)
	}
}

// Collides is true unless the handler vetoes the collision.
func (o *Object) Collides(other *Object, hit Hit) bool {
	if f, ok := o.Handler.(Filter); ok {
		return f.Collides(o, other, hit)
	}
	return true
}

// KindResponse is a Handler that answers every collision with its kind's default response.
type KindResponse struct{}

func (KindResponse) Collision(self, _ *Object, _ Hit) HitResponse {
	return self.Kind.Data().Response
}
