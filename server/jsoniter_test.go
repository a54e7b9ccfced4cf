// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"github.com/SoftbearStudios/tuxcollide/replay"
	"github.com/SoftbearStudios/tuxcollide/world"
	"reflect"
	"testing"
)

func TestEncodeOutbound(t *testing.T) {
	update := FrameUpdate{Frame: &replay.Frame{
		Number: 2,
		Objects: []replay.ObjectState{{
			ID:    1,
			Kind:  world.KindPlayer,
			Group: world.GroupMoving,
			BBox:  world.RectFrom(0, 0, 31.8, 62.8),
		}},
	}}

	const expected = `{"data":{"frame":{"number":2,"objects":[{"id":1,"kind":"player","group":"moving","bbox":[0,0,31.8,62.8]}],"stats":{"frame":0,"objects":0,"active":0,"passed":0,"pairs":0,"touches":0,"crushed":0,"moved":0,"removed":0}}},"type":"frameUpdate"}`

	buf, err := encodeOutbound(update)
	if err != nil {
		t.Fatal("error marshaling:", err)
	}
	if string(buf) != expected {
		t.Errorf("different output:\nexpected: %s\ngot:      %s", expected, buf)
	}

	if typ := outboundTypes[reflect.TypeOf(&LevelUpdate{})]; typ != "levelUpdate" {
		t.Errorf("expected levelUpdate got %q", typ)
	}
}

func TestDecodeInbound(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected interface{}
	}{
		{"type first", `{"type":"spawn","data":{"kind":"rock","position":[10,20.5]}}`, Spawn{Kind: world.KindRock, Position: world.Vec2f{X: 10, Y: 20.5}}},
		{"data first", `{"data":{"frames":3},"type":"step"}`, Step{Frames: 3}},
		{"no data", `{"type":"pause"}`, Pause{}},
		{"null data", `{"type":"remove","data":null}`, Remove{}},
		{"invalid", `{"type":"fire","data":{}}`, InvalidInbound{messageType: "fire"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			in, err := decodeInbound([]byte(test.message))
			if err != nil {
				t.Fatal("error unmarshaling:", err)
			}
			if interface{}(in) != test.expected {
				t.Errorf("expected %#v got %#v", test.expected, in)
			}
		})
	}

	if _, err := decodeInbound([]byte(`{"data":{}}`)); !errors.Is(err, errNoMessageType) {
		t.Errorf("expected errNoMessageType got %v", err)
	}
	if _, err := decodeInbound([]byte(`{"type":"step","data":{"frames":"many"}}`)); err == nil {
		t.Error("expected error for bad data")
	}
	if _, err := decodeInbound([]byte(`{"type":`)); err == nil {
		t.Error("expected error for truncated message")
	}
}
