// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"github.com/SoftbearStudios/tuxcollide/replay"
	"github.com/SoftbearStudios/tuxcollide/sector"
	"github.com/SoftbearStudios/tuxcollide/world"
	"strings"
	"testing"
)

func TestCondense(t *testing.T) {
	var buf bytes.Buffer
	recorder, err := replay.NewRecorder("empty", sector.DefaultOptions(), &buf)
	if err != nil {
		t.Fatal(err)
	}

	s := sector.New(256, 256, sector.Options{})
	s.SetObserver(recorder)
	obj := world.NewObject(world.KindRock, world.Vec2f{X: 10, Y: 10}, nil)
	if err := s.Add(obj); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		obj.Movement = world.Vec2f{X: 1}
		s.Update(sector.Everywhere)
	}

	var out bytes.Buffer
	if err := condense(&buf, &out, 2); err != nil {
		t.Fatal(err)
	}

	expected := "frame,objects,active,pairs,touches,crushed,moved,removed\n" +
		"0,1.00,1.00,0.00,0.00,0.00,1.00,0.00\n" +
		"2,1.00,1.00,0.00,0.00,0.00,1.00,0.00\n" +
		"4,1.00,1.00,0.00,0.00,0.00,1.00,0.00\n"
	if actual := out.String(); actual != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, actual)
	}
	if lines := strings.Count(out.String(), "\n"); lines != 4 {
		t.Errorf("expected 4 lines got %d", lines)
	}
}
