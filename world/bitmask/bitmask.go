// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package bitmask is a pixel perfect collision raster. Bits are packed into 64
// column wide stripes, each stripe stored column major so a whole row of a
// stripe is one word.
package bitmask

import (
	"errors"
	"fmt"
	"math/bits"
)

const (
	stripeWidth = 64
	stripeMask  = stripeWidth - 1

	// maxWords caps allocations at 512MiB.
	maxWords = 1 << 26
)

var (
	ErrOutOfMemory       = errors.New("bitmask: out of memory")
	ErrInvalidSize       = errors.New("bitmask: invalid size")
	ErrUnsupportedFormat = errors.New("bitmask: unsupported image format")
)

// Bitmask is a w x h raster of bits.
type Bitmask struct {
	w, h    int
	stripes int
	bits    []uint64 // bits[x/64*h + y] holds column x in bit x%64
}

// New allocates a cleared w x h Bitmask.
func New(w, h int) (*Bitmask, error) {
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	stripes := (w + stripeMask) / stripeWidth
	if h > 0 && stripes > maxWords/h {
		return nil, fmt.Errorf("%w: %dx%d", ErrOutOfMemory, w, h)
	}
	return &Bitmask{
		w:       w,
		h:       h,
		stripes: stripes,
		bits:    make([]uint64, stripes*h),
	}, nil
}

func (m *Bitmask) Width() int  { return m.w }
func (m *Bitmask) Height() int { return m.h }

func (m *Bitmask) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.w && y < m.h
}

// Get returns the bit at (x, y), false if out of bounds.
func (m *Bitmask) Get(x, y int) bool {
	if !m.inBounds(x, y) {
		return false
	}
	return m.bits[x/stripeWidth*m.h+y]&(1<<uint(x&stripeMask)) != 0
}

// Set sets the bit at (x, y), out of bounds is ignored.
func (m *Bitmask) Set(x, y int) {
	if !m.inBounds(x, y) {
		return
	}
	m.bits[x/stripeWidth*m.h+y] |= 1 << uint(x&stripeMask)
}

// Clear clears the bit at (x, y), out of bounds is ignored.
func (m *Bitmask) Clear(x, y int) {
	if !m.inBounds(x, y) {
		return
	}
	m.bits[x/stripeWidth*m.h+y] &^= 1 << uint(x&stripeMask)
}

// Fill sets every bit.
func (m *Bitmask) Fill() {
	for i := range m.bits {
		m.bits[i] = ^uint64(0)
	}
	m.clearPadding()
}

// Reset clears every bit.
func (m *Bitmask) Reset() {
	for i := range m.bits {
		m.bits[i] = 0
	}
}

// Count returns the number of set bits.
func (m *Bitmask) Count() int {
	count := 0
	for _, word := range m.bits {
		count += bits.OnesCount64(word)
	}
	return count
}

// lastStripeMask keeps the columns of the last stripe that are inside the width.
func (m *Bitmask) lastStripeMask() uint64 {
	if r := m.w & stripeMask; r != 0 {
		return 1<<uint(r) - 1
	}
	return ^uint64(0)
}

// clearPadding zeroes bits past the width so they never collide.
func (m *Bitmask) clearPadding() {
	if m.stripes == 0 {
		return
	}
	mask := m.lastStripeMask()
	last := m.bits[(m.stripes-1)*m.h : m.stripes*m.h]
	for i := range last {
		last[i] &= mask
	}
}

// window returns the 64 columns of m starting at column x in row y, with
// columns outside of m reading as zero. x may be negative. Adjacent stripes
// are joined with shifts unless x is stripe aligned.
func (m *Bitmask) window(x, y int) uint64 {
	if m.stripes == 0 || x <= -stripeWidth || x >= m.w || y < 0 || y >= m.h {
		return 0
	}
	if x < 0 {
		return m.bits[y] << uint(-x)
	}

	stripe := x / stripeWidth
	shift := uint(x & stripeMask)
	word := m.bits[stripe*m.h+y] >> shift
	if shift != 0 && stripe+1 < m.stripes {
		word |= m.bits[(stripe+1)*m.h+y] << (stripeWidth - shift)
	}
	return word
}

// span is the range of a's stripes and rows that b covers at an offset.
type span struct {
	stripe0, stripe1 int // inclusive
	row0, row1       int // exclusive end
}

// overlapSpan returns false if b placed at (xoffset, yoffset) can't touch a.
func overlapSpan(a, b *Bitmask, xoffset, yoffset int) (span, bool) {
	if xoffset >= a.w || yoffset >= a.h || xoffset+b.w <= 0 || yoffset+b.h <= 0 {
		return span{}, false
	}
	left := maxInt(xoffset, 0)
	right := minInt(xoffset+b.w, a.w)
	return span{
		stripe0: left / stripeWidth,
		stripe1: (right - 1) / stripeWidth,
		row0:    maxInt(yoffset, 0),
		row1:    minInt(yoffset+b.h, a.h),
	}, true
}

// Overlap returns true if any set bit of b, placed at (xoffset, yoffset) in a,
// lands on a set bit of a.
func Overlap(a, b *Bitmask, xoffset, yoffset int) bool {
	if xoffset < 0 {
		return Overlap(b, a, -xoffset, -yoffset)
	}

	s, ok := overlapSpan(a, b, xoffset, yoffset)
	if !ok {
		return false
	}

	for stripe := s.stripe0; stripe <= s.stripe1; stripe++ {
		entry := a.bits[stripe*a.h : (stripe+1)*a.h]
		bx := stripe*stripeWidth - xoffset
		for y := s.row0; y < s.row1; y++ {
			if entry[y]&b.window(bx, y-yoffset) != 0 {
				return true
			}
		}
	}
	return false
}

// OverlapPos is like Overlap but also returns the first overlapping bit in a's
// coordinates, scanning stripe by stripe, then row by row, then lowest column first.
func OverlapPos(a, b *Bitmask, xoffset, yoffset int) (x, y int, ok bool) {
	if xoffset < 0 {
		if x, y, ok = OverlapPos(b, a, -xoffset, -yoffset); ok {
			x += xoffset
			y += yoffset
		}
		return
	}

	s, overlaps := overlapSpan(a, b, xoffset, yoffset)
	if !overlaps {
		return 0, 0, false
	}

	for stripe := s.stripe0; stripe <= s.stripe1; stripe++ {
		entry := a.bits[stripe*a.h : (stripe+1)*a.h]
		bx := stripe*stripeWidth - xoffset
		for row := s.row0; row < s.row1; row++ {
			if word := entry[row] & b.window(bx, row-yoffset); word != 0 {
				return stripe*stripeWidth + bits.TrailingZeros64(word), row, true
			}
		}
	}
	return 0, 0, false
}

// OverlapArea returns the number of bits set in both a and b placed at (xoffset, yoffset).
func OverlapArea(a, b *Bitmask, xoffset, yoffset int) int {
	if xoffset < 0 {
		return OverlapArea(b, a, -xoffset, -yoffset)
	}

	s, ok := overlapSpan(a, b, xoffset, yoffset)
	if !ok {
		return 0
	}

	count := 0
	for stripe := s.stripe0; stripe <= s.stripe1; stripe++ {
		entry := a.bits[stripe*a.h : (stripe+1)*a.h]
		bx := stripe*stripeWidth - xoffset
		for y := s.row0; y < s.row1; y++ {
			count += bits.OnesCount64(entry[y] & b.window(bx, y-yoffset))
		}
	}
	return count
}

// Draw ors b into a at (xoffset, yoffset). Bits of b that fall outside a are dropped.
func Draw(a, b *Bitmask, xoffset, yoffset int) {
	s, ok := overlapSpan(a, b, xoffset, yoffset)
	if !ok {
		return
	}

	for stripe := s.stripe0; stripe <= s.stripe1; stripe++ {
		entry := a.bits[stripe*a.h : (stripe+1)*a.h]
		bx := stripe*stripeWidth - xoffset
		for y := s.row0; y < s.row1; y++ {
			entry[y] |= b.window(bx, y-yoffset)
		}
	}

	if s.stripe1 == a.stripes-1 {
		a.clearPadding()
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
