// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import (
	"github.com/SoftbearStudios/tuxcollide/world"
	"math/rand"
	"testing"
)

func TestCellID_sliceIndex(t *testing.T) {
	const cellsX, cellsY = 37, 11

	errors := 0

	for i := 0; i < 10000; i++ {
		id := cellID{x: int32(rand.Intn(cellsX)), y: int32(rand.Intn(cellsY))}

		index := id.sliceIndex(cellsX, cellsY)
		newID := sliceIndexCellID(index, cellsX)

		if id != newID {
			t.Errorf("sliceIndexCellID(%#v.sliceIndex(), cellsX) != %#v", id, newID)
			errors++
			if errors > 10 {
				t.FailNow()
			}
		}
	}

	for _, id := range []cellID{{-1, 0}, {0, -1}, {cellsX, 0}, {0, cellsY}} {
		if index := id.sliceIndex(cellsX, cellsY); index != -1 {
			t.Errorf("expected %#v to be out of range got %d", id, index)
		}
	}
}

func TestRectCellRange(t *testing.T) {
	tests := []struct {
		rect     world.Rect
		expected cellRange
	}{
		{world.RectFrom(0, 0, 10, 10), cellRange{cellID{0, 0}, cellID{0, 0}}},
		{world.RectFrom(120, 0, 130, 10), cellRange{cellID{0, 0}, cellID{1, 0}}},
		{world.RectFrom(128, 256, 129, 300), cellRange{cellID{1, 2}, cellID{1, 2}}},
		{world.RectFrom(-10, -10, 5, 5), cellRange{cellID{-1, -1}, cellID{0, 0}}},
		{world.RectFrom(130, 10, 120, 0), cellRange{cellID{0, 0}, cellID{1, 0}}},
	}

	for _, test := range tests {
		if actual := rectCellRange(test.rect); actual != test.expected {
			t.Errorf("rectCellRange(%v) expected %v got %v", test.rect, test.expected, actual)
		}
	}

	clampTests := []struct {
		rect     world.Rect
		expected cellRange
		cut      bool
	}{
		{world.RectFrom(10, 10, 20, 20), cellRange{cellID{0, 0}, cellID{0, 0}}, false},
		{world.RectFrom(-10, -10, 5, 5), cellRange{cellID{0, 0}, cellID{0, 0}}, true},
		{world.RectFrom(-300, -300, -200, -200), cellRange{cellID{0, 0}, cellID{0, 0}}, true},
		{world.RectFrom(600, 10, 700, 20), cellRange{cellID{3, 0}, cellID{3, 0}}, true},
		{world.RectFrom(300, -1e9, 400, 1e9), cellRange{cellID{2, 0}, cellID{3, 3}}, true},
	}
	for _, test := range clampTests {
		clamped, cut := rectCellRange(test.rect).clamped(4, 4)
		if cut != test.cut || clamped != test.expected {
			t.Errorf("clamped(%v) expected %v %t got %v %t", test.rect, test.expected, test.cut, clamped, cut)
		}
	}
}
