// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
	"testing"
)

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 0.0001
}

func TestRect_Overlaps(t *testing.T) {
	tests := []struct {
		a, b       Rect
		overlaps   bool
		intersects bool
	}{
		{RectFrom(0, 0, 10, 10), RectFrom(5, 5, 15, 15), true, true},
		{RectFrom(0, 0, 10, 10), RectFrom(10, 0, 20, 10), false, true},
		{RectFrom(0, 0, 10, 10), RectFrom(0, 10, 10, 20), false, true},
		{RectFrom(0, 0, 10, 10), RectFrom(11, 0, 20, 10), false, false},
		{RectFrom(0, 0, 10, 10), RectFrom(2, 2, 3, 3), true, true},
	}

	for _, test := range tests {
		if o := test.a.Overlaps(test.b); o != test.overlaps {
			t.Errorf("%v.Overlaps(%v) expected %t got %t", test.a, test.b, test.overlaps, o)
		}
		if o := test.b.Overlaps(test.a); o != test.overlaps {
			t.Errorf("%v.Overlaps(%v) expected %t got %t", test.b, test.a, test.overlaps, o)
		}
		if i := test.a.Intersects(test.b); i != test.intersects {
			t.Errorf("%v.Intersects(%v) expected %t got %t", test.a, test.b, test.intersects, i)
		}
	}
}

func TestRect_Normalized(t *testing.T) {
	r := RectFrom(10, 20, 0, 5)
	if r.Valid() {
		t.Errorf("expected %v to be invalid", r)
	}
	n := r.Normalized()
	if !n.Valid() || n != RectFrom(0, 5, 10, 20) {
		t.Errorf("expected (0,5,10,20) got %v", n)
	}
}

func TestRect_Moved(t *testing.T) {
	r := RectFrom(0, 0, 10, 10).Moved(Vec2f{X: 0, Y: 5})
	if r != RectFrom(0, 5, 10, 15) {
		t.Errorf("expected (0,5,10,15) got %v", r)
	}
	if g := r.Grown(1); !approx(g.Width(), 12) || !approx(g.Height(), 12) {
		t.Errorf("expected 12x12 got %v", g.Size())
	}
}

func TestVerticalFlip(t *testing.T) {
	tests := []struct{ dir, flipped int }{
		{NorthEast, SouthEast},
		{SouthEast, NorthEast},
		{NorthWest, SouthWest},
		{SouthWest, NorthWest},
		{SouthWest | DeformTop, NorthWest | DeformBottom},
		{NorthEast | DeformLeft, SouthEast | DeformLeft},
	}

	for _, test := range tests {
		if f := VerticalFlip(test.dir); f != test.flipped {
			t.Errorf("VerticalFlip(%#x) expected %#x got %#x", test.dir, test.flipped, f)
		}
		if f := VerticalFlip(VerticalFlip(test.dir)); f != test.dir {
			t.Errorf("VerticalFlip twice of %#x got %#x", test.dir, f)
		}
	}
}

func TestAATriangle_Vertices(t *testing.T) {
	v := func(x, y float32) Vec2f { return Vec2f{X: x, Y: y} }
	bbox := RectFrom(0, 0, 32, 32)
	tests := []struct {
		dir      int
		expected [3]Vec2f
	}{
		{SouthWest, [3]Vec2f{v(0, 32), v(0, 0), v(32, 32)}},
		{NorthEast, [3]Vec2f{v(32, 0), v(0, 0), v(32, 32)}},
		{SouthEast | DeformBottom, [3]Vec2f{v(32, 32), v(32, 16), v(0, 32)}},
		{NorthWest | DeformLeft, [3]Vec2f{v(0, 0), v(16, 0), v(0, 32)}},
	}

	for _, test := range tests {
		tri := AATriangle{BBox: bbox, Dir: test.dir}
		if actual := tri.Vertices(); actual != test.expected {
			t.Errorf("%v expected %v got %v", tri, test.expected, actual)
		}
	}
}

func TestHit_Flipped(t *testing.T) {
	hit := Hit{Right: true, Bottom: true, Normal: Vec2f{X: -1}, Depth: 3}
	f := hit.Flipped()
	if !f.Left || !f.Top || f.Right || f.Bottom {
		t.Errorf("unexpected flags %v", f)
	}
	if f.Normal != (Vec2f{X: 1}) || f.Depth != 3 {
		t.Errorf("unexpected normal/depth %v", f)
	}
}

func TestKind_Data(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(k.String())
		if err != nil || parsed != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), parsed, err)
		}
		if d := k.Data(); d.Width <= 0 || d.Height <= 0 {
			t.Errorf("kind %s has no size", k)
		}
	}

	if KindPlatform.Data().Group != GroupMovingStatic {
		t.Errorf("expected platform to be moving static, got %s", KindPlatform.Data().Group)
	}
	if KindCoin.Data().Group != GroupTouchable {
		t.Errorf("expected coin to be touchable, got %s", KindCoin.Data().Group)
	}

	o := NewObject(KindPlayer, Vec2f{X: 1, Y: 2}, KindResponse{})
	if o.Collision(o, Hit{}) != Continue {
		t.Errorf("expected player to continue")
	}
	if o.BBox.P1 != (Vec2f{X: 1, Y: 2}) || o.Group != GroupMoving {
		t.Errorf("unexpected object %+v", o)
	}
}

func TestVec2f_ClampLength(t *testing.T) {
	v := Vec2f{X: 30, Y: 40}.ClampLength(16)
	if !approx(v.Length(), 16) || !approx(v.X, 9.6) {
		t.Errorf("expected length 16 got %v", v)
	}
	if v := (Vec2f{X: 3}).ClampLength(16); v != (Vec2f{X: 3}) {
		t.Errorf("expected unchanged got %v", v)
	}
	if n := (Vec2f{}).Norm(); !n.IsZero() {
		t.Errorf("expected zero norm got %v", n)
	}
}
