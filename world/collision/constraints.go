// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package collision

import (
	"fmt"
	"github.com/SoftbearStudios/tuxcollide/world"
	"github.com/chewxy/math32"
)

// Constraints accumulates the tightest position bounds an object may move to
// during one frame. Bounds only ever get tighter.
type Constraints struct {
	Hit            world.Hit
	GroundMovement world.Vec2f

	positionLeft   float32
	positionRight  float32
	positionTop    float32
	positionBottom float32
}

// NewConstraints returns Constraints that don't constrain anything.
func NewConstraints() Constraints {
	return Constraints{
		positionLeft:   math32.Inf(-1),
		positionRight:  math32.Inf(1),
		positionTop:    math32.Inf(-1),
		positionBottom: math32.Inf(1),
	}
}

func (c *Constraints) HasConstraints() bool {
	return !math32.IsInf(c.positionLeft, -1) || !math32.IsInf(c.positionRight, 1) ||
		!math32.IsInf(c.positionTop, -1) || !math32.IsInf(c.positionBottom, 1)
}

func (c *Constraints) ConstrainLeft(position float32) {
	if position > c.positionLeft {
		c.positionLeft = position
	}
}

func (c *Constraints) ConstrainRight(position float32) {
	if position < c.positionRight {
		c.positionRight = position
	}
}

func (c *Constraints) ConstrainTop(position float32) {
	if position > c.positionTop {
		c.positionTop = position
	}
}

func (c *Constraints) ConstrainBottom(position float32) {
	if position < c.positionBottom {
		c.positionBottom = position
	}
}

func (c *Constraints) Left() float32   { return c.positionLeft }
func (c *Constraints) Right() float32  { return c.positionRight }
func (c *Constraints) Top() float32    { return c.positionTop }
func (c *Constraints) Bottom() float32 { return c.positionBottom }

// Width is the room left between the left and right bounds.
func (c *Constraints) Width() float32 {
	return c.positionRight - c.positionLeft
}

// Height is the room left between the top and bottom bounds.
func (c *Constraints) Height() float32 {
	return c.positionBottom - c.positionTop
}

func (c *Constraints) XMidpoint() float32 {
	return 0.5 * (c.positionLeft + c.positionRight)
}

// Merge folds other into c. Bounds take the tighter value and hit flags are or'd.
// Ground movement comes from whatever imposes the tightest bottom bound.
func (c *Constraints) Merge(other *Constraints) {
	if other.Hit.Bottom && other.positionBottom <= c.positionBottom {
		c.GroundMovement = other.GroundMovement
	}

	c.ConstrainLeft(other.positionLeft)
	c.ConstrainRight(other.positionRight)
	c.ConstrainTop(other.positionTop)
	c.ConstrainBottom(other.positionBottom)

	c.Hit.Left = c.Hit.Left || other.Hit.Left
	c.Hit.Right = c.Hit.Right || other.Hit.Right
	c.Hit.Top = c.Hit.Top || other.Hit.Top
	c.Hit.Bottom = c.Hit.Bottom || other.Hit.Bottom
	c.Hit.Crush = c.Hit.Crush || other.Hit.Crush
	if !other.Hit.SlopeNormal.IsZero() {
		c.Hit.SlopeNormal = other.Hit.SlopeNormal
	}
}

func (c Constraints) String() string {
	return fmt.Sprintf("constraints{l=%g r=%g t=%g b=%g %v}",
		c.positionLeft, c.positionRight, c.positionTop, c.positionBottom, c.Hit)
}
