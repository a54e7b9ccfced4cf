// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import (
	"bytes"
	"errors"
	"github.com/SoftbearStudios/tuxcollide/tilemap"
	"github.com/SoftbearStudios/tuxcollide/world"
	"math/rand"
	"testing"
)

func TestBuffer_Write(t *testing.T) {
	const n = 1024
	var buffer Buffer

	_, _ = buffer.Write(make([]byte, n))

	if buf := buffer.Buffer(); len(buf) != n/16 {
		t.Error("Buffer.Write(make([]byte, 1024) expected", n/16, "got", len(buf))
		t.Error(buf)
	}
}

func TestBuffer_Read(t *testing.T) {
	const n = 1024
	var buffer Buffer

	input := make([]byte, n)
	for i := range input {
		// Long runs and noise
		if i%100 < 50 {
			input[i] = byte(i / 100 % 16)
		} else {
			input[i] = byte(rand.Intn(16))
		}
	}

	_, _ = buffer.Write(input)

	output := make([]byte, n*2)
	r, _ := buffer.Read(output)
	output = output[:r]

	if !bytes.Equal(input, output) {
		t.Error("Buffer.Read expected", len(input), "got", len(output), "\ninput:", input, "\noutput:", output)
	}

	if _, err := buffer.Read(output); err == nil {
		t.Error("expected EOF")
	}
}

func TestSnapshot(t *testing.T) {
	m := tilemap.New(40, 10)
	m.Fill(0, 8, 40, 2, tilemap.Tile{Attributes: tilemap.Solid})
	m.Fill(5, 8, 3, 1, tilemap.Tile{Attributes: tilemap.Solid | tilemap.Ice})
	m.Set(10, 7, tilemap.Tile{Attributes: tilemap.Solid | tilemap.Slope, Data: world.SouthEast | world.DeformBottom})
	m.Set(12, 4, tilemap.Tile{Attributes: tilemap.Solid | tilemap.Unisolid})

	snapshot := Encode(m)
	if len(snapshot.Data) >= snapshot.Length/4 {
		t.Errorf("expected compression, got %d bytes for %d tiles", len(snapshot.Data), snapshot.Length)
	}

	classes, err := snapshot.Decode()
	if err != nil {
		t.Fatal(err)
	}

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if got, want := classes[x+y*snapshot.Stride], ClassOf(m.Tile(x, y)); got != want {
				t.Errorf("tile %d,%d expected %d got %d", x, y, want, got)
			}
		}
	}
	if classes[10+7*40] != Slope+world.SouthEast {
		t.Errorf("expected south east slope got %d", classes[10+7*40])
	}

	// Flipped layers mirror the slope direction
	m.Flip()
	flipped, err := Encode(m).Decode()
	if err != nil {
		t.Fatal(err)
	}
	if flipped[10+2*40] != Slope+world.NorthEast {
		t.Errorf("expected north east slope got %d", flipped[10+2*40])
	}

	snapshot.Length++
	if _, err := snapshot.Decode(); !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt got %v", err)
	}
}
