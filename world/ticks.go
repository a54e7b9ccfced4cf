// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"time"
)

const (
	FramesPerSecond = 64
	FramePeriod     = time.Second / FramesPerSecond
)

// Frames is a time measured in collision updates.
type Frames uint32

func ToFrames(seconds float32) Frames {
	return Frames(seconds * FramesPerSecond)
}

func (frames Frames) Float() float32 {
	return float32(frames) * (1.0 / FramesPerSecond)
}

// PerFrame converts a speed in pixels per second to a movement per frame.
func PerFrame(speed Vec2f) Vec2f {
	return speed.Mul(1.0 / FramesPerSecond)
}
