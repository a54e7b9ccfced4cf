// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import (
	"github.com/SoftbearStudios/tuxcollide/world"
	"math"
)

type (
	// cellID is a cell by its position in the Grid
	cellID struct {
		x, y int32
	}

	// cellRange is an inclusive range of cells
	cellRange struct {
		min, max cellID
	}
)

func (id cellID) sliceIndex(cellsX, cellsY int) int {
	if id.x < 0 || id.y < 0 || int(id.x) >= cellsX || int(id.y) >= cellsY {
		return -1
	}
	return int(id.x) + int(id.y)*cellsX
}

func sliceIndexCellID(index, cellsX int) cellID {
	return cellID{x: int32(index % cellsX), y: int32(index / cellsX)}
}

func coordinate(f float32) int32 {
	// Use math.Floor instead because it uses assembly
	c := math.Floor(float64(f) * (1.0 / CellSize))
	if c < math.MinInt32 {
		return math.MinInt32
	}
	if c > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(c)
}

// rectCellRange is every cell a rect touches, floor(left/CellSize) to floor(right/CellSize).
func rectCellRange(r world.Rect) cellRange {
	r = r.Normalized()
	return cellRange{
		min: cellID{x: coordinate(r.Left()), y: coordinate(r.Top())},
		max: cellID{x: coordinate(r.Right()), y: coordinate(r.Bottom())},
	}
}

// grown widens the range by margin cells on each side.
func (cr cellRange) grown(margin int32) cellRange {
	cr.min.x = satSub(cr.min.x, margin)
	cr.min.y = satSub(cr.min.y, margin)
	cr.max.x = satAdd(cr.max.x, margin)
	cr.max.y = satAdd(cr.max.y, margin)
	return cr
}

// clamped moves both ends of the range into [0, cellsX) x [0, cellsY), so
// anything outside the grid lands in its border cells. Reports if the range changed.
func (cr cellRange) clamped(cellsX, cellsY int) (cellRange, bool) {
	out := cellRange{
		min: cellID{x: clampCell(cr.min.x, cellsX), y: clampCell(cr.min.y, cellsY)},
		max: cellID{x: clampCell(cr.max.x, cellsX), y: clampCell(cr.max.y, cellsY)},
	}
	return out, out != cr
}

func clampCell(c int32, cells int) int32 {
	if c < 0 {
		return 0
	}
	if int(c) >= cells {
		return int32(cells - 1)
	}
	return c
}

func (cr cellRange) empty() bool {
	return cr.min.x > cr.max.x || cr.min.y > cr.max.y
}

func (cr cellRange) contains(id cellID) bool {
	return id.x >= cr.min.x && id.x <= cr.max.x && id.y >= cr.min.y && id.y <= cr.max.y
}

func satAdd(a, b int32) int32 {
	if a > math.MaxInt32-b {
		return math.MaxInt32
	}
	return a + b
}

func satSub(a, b int32) int32 {
	if a < math.MinInt32+b {
		return math.MinInt32
	}
	return a - b
}
