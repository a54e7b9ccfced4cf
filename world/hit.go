// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"fmt"
)

// Hit describes one collision from the point of view of the object receiving it.
// The edge flags name the side of that object that was struck.
type Hit struct {
	Left   bool `json:"left,omitempty"`
	Right  bool `json:"right,omitempty"`
	Top    bool `json:"top,omitempty"`
	Bottom bool `json:"bottom,omitempty"`
	Crush  bool `json:"crush,omitempty"`

	// SlopeNormal is the surface normal of the last slope that limited movement.
	SlopeNormal Vec2f `json:"slopeNormal"`

	// Normal, Depth and Time are filled in by swept rectangle tests.
	Normal Vec2f   `json:"normal"`
	Depth  float32 `json:"depth"`
	Time   float32 `json:"time"`
}

// Flipped is the same collision seen from the other object.
func (hit Hit) Flipped() Hit {
	hit.Normal = hit.Normal.Neg()
	hit.Left, hit.Right = hit.Right, hit.Left
	hit.Top, hit.Bottom = hit.Bottom, hit.Top
	return hit
}

// Any is true if at least one edge was hit.
func (hit Hit) Any() bool {
	return hit.Left || hit.Right || hit.Top || hit.Bottom
}

func (hit Hit) String() string {
	return fmt.Sprintf("hit{l=%t r=%t t=%t b=%t crush=%t normal=%v depth=%g}",
		hit.Left, hit.Right, hit.Top, hit.Bottom, hit.Crush, hit.Normal, hit.Depth)
}

// HitResponse is how an object wants a collision with another object resolved.
type HitResponse uint8

const (
	// AbortMove cancels the object's movement for this frame.
	AbortMove = HitResponse(iota)
	// Continue asks for the default push out.
	Continue
	// ForceMove keeps the object's movement and lets the other object yield.
	ForceMove
	// PassMovement behaves like ForceMove.
	PassMovement

	hitResponseCount
)

var hitResponseNames = [...]string{"abort", "continue", "force", "pass"}

func (r HitResponse) String() string {
	if r >= hitResponseCount {
		return fmt.Sprintf("HitResponse(%d)", uint8(r))
	}
	return hitResponseNames[r]
}

// ParseHitResponse is the inverse of HitResponse.String.
func ParseHitResponse(s string) (HitResponse, error) {
	for i, name := range hitResponseNames {
		if name == s {
			return HitResponse(i), nil
		}
	}
	return 0, fmt.Errorf("invalid hit response %q", s)
}

func (r HitResponse) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *HitResponse) UnmarshalText(text []byte) error {
	parsed, err := ParseHitResponse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
