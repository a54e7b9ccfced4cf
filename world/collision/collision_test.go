// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package collision

import (
	"fmt"
	"github.com/SoftbearStudios/tuxcollide/world"
	"github.com/chewxy/math32"
	"math/rand"
	"testing"
)

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 0.001
}

func TestRectangleRectangle(t *testing.T) {
	tests := []struct {
		name     string
		r1       world.Rect
		movement world.Vec2f
		r2       world.Rect
		collides bool
		normal   world.Vec2f
		depth    float32
		bottom   bool
		right    bool
	}{
		{
			name:     "falling onto",
			r1:       world.RectFrom(0, 5, 10, 15),
			movement: world.Vec2f{Y: 5},
			r2:       world.RectFrom(0, 12, 10, 22),
			collides: true,
			normal:   world.Vec2f{Y: -1},
			depth:    3,
			bottom:   true,
		},
		{
			name:     "walking into",
			r1:       world.RectFrom(6, 0, 16, 10),
			movement: world.Vec2f{X: 4},
			r2:       world.RectFrom(12, 0, 22, 10),
			collides: true,
			normal:   world.Vec2f{X: -1},
			depth:    4,
			right:    true,
		},
		{
			name:     "earliest axis wins",
			r1:       world.RectFrom(8, 8, 18, 18),
			movement: world.Vec2f{X: 4, Y: 1},
			r2:       world.RectFrom(10, 10, 30, 30),
			collides: true,
			normal:   world.Vec2f{X: -1},
			depth:    8,
			right:    true,
		},
		{
			name:     "apart",
			r1:       world.RectFrom(0, 0, 10, 10),
			movement: world.Vec2f{Y: 5},
			r2:       world.RectFrom(0, 20, 10, 30),
		},
		{
			name:     "touching without movement",
			r1:       world.RectFrom(0, 0, 10, 10),
			movement: world.Vec2f{},
			r2:       world.RectFrom(10, 0, 20, 10),
		},
		{
			name:     "resting inside",
			r1:       world.RectFrom(0, 0, 10, 10),
			movement: world.Vec2f{},
			r2:       world.RectFrom(6, -2, 16, 12),
			collides: true,
			normal:   world.Vec2f{X: -1},
			depth:    4,
			right:    true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var hit world.Hit
			collides := RectangleRectangle(&hit, test.r1, test.movement, test.r2)
			if collides != test.collides {
				t.Fatalf("expected collides %t got %t", test.collides, collides)
			}
			if !collides {
				return
			}
			if hit.Normal != test.normal {
				t.Errorf("expected normal %v got %v", test.normal, hit.Normal)
			}
			if !approx(hit.Depth, test.depth) {
				t.Errorf("expected depth %g got %g", test.depth, hit.Depth)
			}
			if hit.Bottom != test.bottom || hit.Right != test.right || hit.Left || hit.Top {
				t.Errorf("unexpected flags %v", hit)
			}
		})
	}
}

func TestSetRectangleRectangleConstraints(t *testing.T) {
	c := NewConstraints()
	if c.HasConstraints() {
		t.Fatal("expected no constraints")
	}

	// Mostly above the tile
	SetRectangleRectangleConstraints(&c, world.RectFrom(0, 5, 10, 15), world.RectFrom(0, 12, 32, 44), world.Vec2f{X: 2})
	if !c.HasConstraints() || !c.Hit.Bottom || c.Bottom() != 12 {
		t.Errorf("expected bottom constraint at 12 got %v", c)
	}
	if c.GroundMovement != (world.Vec2f{X: 2}) {
		t.Errorf("expected ground movement to be carried got %v", c.GroundMovement)
	}

	// Mostly left of the wall
	SetRectangleRectangleConstraints(&c, world.RectFrom(0, 0, 10, 30), world.RectFrom(8, 0, 40, 32), world.Vec2f{})
	if !c.Hit.Right || c.Right() != 8 {
		t.Errorf("expected right constraint at 8 got %v", c)
	}
	if w := c.Width(); !math32.IsInf(w, 1) {
		t.Errorf("expected infinite width got %g", w)
	}
}

// TestConstraints_Monotonic folds random tiles and checks no bound loosens.
func TestConstraints_Monotonic(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	errors := 0

	for i := 0; i < 1000; i++ {
		rect := world.RectSized(world.Vec2f{X: r.Float32() * 64, Y: r.Float32() * 64}, 8+r.Float32()*32, 8+r.Float32()*32)
		folded := NewConstraints()
		var individual []Constraints

		for j := 0; j < 8; j++ {
			tile := world.RectSized(world.Vec2f{X: float32(r.Intn(4) * 32), Y: float32(r.Intn(4) * 32)}, 32, 32)
			if !rect.Overlaps(tile) {
				continue
			}

			before := folded
			single := NewConstraints()
			SetRectangleRectangleConstraints(&single, rect, tile, world.Vec2f{})
			folded.Merge(&single)
			individual = append(individual, single)

			if folded.Left() < before.Left() || folded.Right() > before.Right() ||
				folded.Top() < before.Top() || folded.Bottom() > before.Bottom() {
				t.Errorf("bound loosened from %v to %v", before, folded)
				errors++
			}
		}

		for _, single := range individual {
			if folded.Left() < single.Left() || folded.Right() > single.Right() ||
				folded.Top() < single.Top() || folded.Bottom() > single.Bottom() {
				t.Errorf("%v is looser than %v", folded, single)
				errors++
			}
		}

		if errors > 10 {
			t.FailNow()
		}
	}
}

func TestRectangleAATriangle(t *testing.T) {
	tri := world.AATriangle{BBox: world.RectFrom(0, 0, 32, 32), Dir: world.SouthWest}

	c := NewConstraints()
	collided, bottom := RectangleAATriangle(&c, world.RectFrom(10, 10, 20, 25), tri, world.Vec2f{})
	if !collided || !bottom {
		t.Fatalf("expected slope under rect, got collided %t bottom %t", collided, bottom)
	}

	const r float32 = 0.70710677
	out := r * (r*15 + slopeClearance)
	if !approx(c.Left(), 10+out) || !approx(c.Bottom(), 25-out) {
		t.Errorf("expected left %g bottom %g got %v", 10+out, 25-out, c)
	}
	if !c.Hit.Left || !c.Hit.Bottom || !approx(c.Hit.SlopeNormal.X, r) || !approx(c.Hit.SlopeNormal.Y, -r) {
		t.Errorf("unexpected hit %v", c.Hit)
	}

	// Above the slope
	c = NewConstraints()
	if collided, _ := RectangleAATriangle(&c, world.RectFrom(20, 0, 30, 10), tri, world.Vec2f{}); collided {
		t.Errorf("expected no collision got %v", c)
	}

	// Not even near
	if collided, _ := RectangleAATriangle(&c, world.RectFrom(100, 100, 110, 110), tri, world.Vec2f{}); collided {
		t.Errorf("expected no collision")
	}
}

func TestRectangleAATriangle_Deform(t *testing.T) {
	// Bottom half of the tile holds the slope, the top half is empty
	tri := world.AATriangle{BBox: world.RectFrom(0, 0, 32, 32), Dir: world.SouthWest | world.DeformBottom}
	c := NewConstraints()
	if collided, _ := RectangleAATriangle(&c, world.RectFrom(0, 0, 10, 15), tri, world.Vec2f{}); collided {
		t.Errorf("expected rect in the empty half to be free, got %v", c)
	}
	if collided, bottom := RectangleAATriangle(&c, world.RectFrom(0, 10, 10, 30), tri, world.Vec2f{}); !collided || !bottom {
		t.Errorf("expected collision with the deformed slope")
	}
}

func TestLineIntersectsLine(t *testing.T) {
	v := func(x, y float32) world.Vec2f { return world.Vec2f{X: x, Y: y} }
	tests := []struct {
		a1, a2, b1, b2 world.Vec2f
		expected       bool
	}{
		{v(0, 0), v(10, 10), v(0, 10), v(10, 0), true},
		{v(0, 0), v(10, 0), v(0, 1), v(10, 1), false},
		{v(0, 0), v(10, 0), v(5, 0), v(15, 0), true},
		{v(0, 0), v(0, 10), v(0, 5), v(0, 15), true},
		{v(0, 0), v(0, 10), v(0, 11), v(0, 15), false},
		{v(0, 0), v(10, 0), v(5, -5), v(5, 5), true},
		{v(0, 0), v(10, 0), v(5, 1), v(5, 5), false},
	}

	for _, test := range tests {
		if actual := LineIntersectsLine(test.a1, test.a2, test.b1, test.b2); actual != test.expected {
			t.Errorf("LineIntersectsLine(%v, %v, %v, %v) expected %t got %t", test.a1, test.a2, test.b1, test.b2, test.expected, actual)
		}
	}

	r := world.RectFrom(0, 0, 10, 10)
	if !IntersectsLine(r, v(-5, 5), v(5, 5)) {
		t.Errorf("expected line to cross left edge")
	}
	if IntersectsLine(r, v(2, 2), v(8, 8)) {
		t.Errorf("expected line inside rect not to cross an edge")
	}
}

func BenchmarkRectangleRectangle(b *testing.B) {
	for _, size := range []float32{16, 64} {
		b.Run(fmt.Sprintf("Size%.0f", size), func(b *testing.B) {
			const count = 1024
			rects := make([]world.Rect, count)
			for i := range rects {
				rects[i] = world.RectSized(world.Vec2f{X: rand.Float32() * 256, Y: rand.Float32() * 256}, size, size)
			}
			b.ResetTimer()

			var hit world.Hit
			for i := 0; i < b.N; i++ {
				_ = RectangleRectangle(&hit, rects[i&(count-1)], world.Vec2f{X: 3, Y: 4}, rects[(i+count/2)&(count-1)])
			}
		})
	}
}

func TestConstraints_MergeGroundMovement(t *testing.T) {
	c := NewConstraints()

	low := NewConstraints()
	SetRectangleRectangleConstraints(&low, world.RectFrom(0, 0, 10, 14), world.RectFrom(0, 12, 10, 22), world.Vec2f{X: 1})
	high := NewConstraints()
	SetRectangleRectangleConstraints(&high, world.RectFrom(0, 0, 10, 14), world.RectFrom(5, 11, 15, 21), world.Vec2f{X: 3})

	c.Merge(&low)
	c.Merge(&high)
	c.Merge(&low)

	if c.Bottom() != 11 || c.GroundMovement != (world.Vec2f{X: 3}) {
		t.Errorf("expected ground movement of the highest floor got %v %v", c, c.GroundMovement)
	}
}
