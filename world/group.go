// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"fmt"
)

// Group controls which collision phases an object takes part in.
type Group uint8

const (
	// GroupDisabled objects are not tested at all, their movement is applied as is.
	GroupDisabled = Group(iota)
	// GroupStatic objects don't move and block moving objects (e.g. walls you can walk on).
	GroupStatic
	// GroupMovingOnlyStatic objects are only tested against tiles and statics.
	GroupMovingOnlyStatic
	// GroupMovingStatic objects move and also block other moving objects (e.g. platforms).
	GroupMovingStatic
	// GroupMoving objects are tested against everything.
	GroupMoving
	// GroupTouchable objects only report overlaps with moving objects (e.g. coins).
	GroupTouchable

	groupCount
)

var groupNames = [...]string{"disabled", "static", "movingOnlyStatic", "movingStatic", "moving", "touchable"}

// Moves is true for groups that get a static pass.
func (g Group) Moves() bool {
	return g == GroupMoving || g == GroupMovingStatic || g == GroupMovingOnlyStatic
}

// Dynamic is true for groups that collide with each other.
func (g Group) Dynamic() bool {
	return g == GroupMoving || g == GroupMovingStatic
}

// Obstacle is true for groups that other movers are constrained by.
func (g Group) Obstacle() bool {
	return g == GroupStatic || g == GroupMovingStatic
}

func (g Group) String() string {
	if g >= groupCount {
		return fmt.Sprintf("Group(%d)", uint8(g))
	}
	return groupNames[g]
}

func ParseGroup(s string) (Group, error) {
	for i, name := range groupNames {
		if name == s {
			return Group(i), nil
		}
	}
	return 0, fmt.Errorf("invalid group %q", s)
}

func (g Group) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Group) UnmarshalText(text []byte) error {
	parsed, err := ParseGroup(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
