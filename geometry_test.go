package gesso

import (
	"math"
	"testing"
)

func TestScaleFactorFactor(t *testing.T) {
	s := NewScaleFactor(2.5)
	if s.Factor() != 2.5 {
		t.Errorf("Factor() = %v, want 2.5", s.Factor())
	}
}

func TestNewScaleFactorPanics(t *testing.T) {
	cases := []struct {
		name string
		f    float32
	}{
		{"zero", 0},
		{"negative", -1},
		{"nan", float32(math.NaN())},
		{"posinf", float32(math.Inf(1))},
		{"neginf", float32(math.Inf(-1))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("NewScaleFactor(%v) did not panic", tc.f)
				}
			}()
			NewScaleFactor(tc.f)
		})
	}
}

func TestScaleRect(t *testing.T) {
	s := NewScaleFactor(2)
	got := s.ScaleRect(RectXYWH(10, 20, 100, 50))
	want := DeviceRect{
		Origin: DevicePoint{X: 20, Y: 40},
		Size:   DeviceSize{Width: 200, Height: 100},
	}
	if got != want {
		t.Errorf("ScaleRect = %+v, want %+v", got, want)
	}
}

func TestScaleIdentity(t *testing.T) {
	s := NewScaleFactor(1)
	r := RectXYWH(10, 20, 100, 50)
	got := s.ScaleRect(r)
	if got.Origin.X != r.Origin.X || got.Origin.Y != r.Origin.Y ||
		got.Size.Width != r.Size.Width || got.Size.Height != r.Size.Height {
		t.Errorf("identity scale changed rect: %+v", got)
	}
}

func TestScaleUnscaleRoundTrip(t *testing.T) {
	factors := []float32{0.5, 1, 1.5, 2, 4}
	r := RectXYWH(8, 16, 128, 64)
	for _, f := range factors {
		s := NewScaleFactor(f)
		back := s.UnscaleRect(s.ScaleRect(r))
		if back != r {
			t.Errorf("factor %v: round trip = %+v, want %+v", f, back, r)
		}
	}
}

func TestScaleDegenerateSize(t *testing.T) {
	s := NewScaleFactor(2)
	got := s.ScaleRect(RectXYWH(5, 5, 0, 0))
	if got.Origin.X != 10 || got.Origin.Y != 10 {
		t.Errorf("origin = %+v, want (10, 10)", got.Origin)
	}
	if got.Size.Width != 0 || got.Size.Height != 0 {
		t.Errorf("size = %+v, want zero", got.Size)
	}
}

func TestPointVectorArithmetic(t *testing.T) {
	p := Pt(1, 2).Add(Vec(3, 4))
	if p != Pt(4, 6) {
		t.Errorf("Add = %+v, want (4, 6)", p)
	}
	v := Pt(4, 6).Sub(Pt(1, 2))
	if v != Vec(3, 4) {
		t.Errorf("Sub = %+v, want (3, 4)", v)
	}
	if w := Vec(1, 2).Mul(3); w != Vec(3, 6) {
		t.Errorf("Mul = %+v, want (3, 6)", w)
	}
	if w := Vec(3, 6).Div(3); w != Vec(1, 2) {
		t.Errorf("Div = %+v, want (1, 2)", w)
	}
	if n := Vec(1, -2).Neg(); n != Vec(-1, 2) {
		t.Errorf("Neg = %+v, want (-1, 2)", n)
	}
	if l := Vec(3, 4).Length(); l != 5 {
		t.Errorf("Length = %v, want 5", l)
	}
}

func TestRectContains(t *testing.T) {
	r := RectXYWH(10, 10, 20, 20)
	if !r.Contains(Pt(10, 10)) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(Pt(30, 30)) {
		t.Error("bottom-right corner should be outside")
	}
	if !r.Contains(Pt(15, 25)) {
		t.Error("interior point should be inside")
	}
}

func TestRectIntersect(t *testing.T) {
	a := RectXYWH(0, 0, 10, 10)
	b := RectXYWH(5, 5, 10, 10)
	got := a.Intersect(b)
	if got != RectXYWH(5, 5, 5, 5) {
		t.Errorf("Intersect = %+v, want (5, 5, 5, 5)", got)
	}

	c := RectXYWH(20, 20, 5, 5)
	if !a.Intersect(c).IsEmpty() {
		t.Error("disjoint rects should intersect to empty")
	}
}

func TestRectUnion(t *testing.T) {
	a := RectXYWH(0, 0, 10, 10)
	b := RectXYWH(5, 5, 10, 10)
	got := a.Union(b)
	if got != RectXYWH(0, 0, 15, 15) {
		t.Errorf("Union = %+v, want (0, 0, 15, 15)", got)
	}
	if u := a.Union(Rect{}); u != a {
		t.Errorf("union with empty = %+v, want %+v", u, a)
	}
}

func TestDeviceRectRound(t *testing.T) {
	r := DeviceRect{
		Origin: DevicePoint{X: 1.4, Y: 2.6},
		Size:   DeviceSize{Width: 3.2, Height: 1.1},
	}
	got := r.Round()
	if got.Origin.X != 1 || got.Origin.Y != 2 {
		t.Errorf("origin = %+v, want (1, 2)", got.Origin)
	}
	// Far corner (4.6, 3.7) ceils to (5, 4).
	if got.Size.Width != 4 || got.Size.Height != 2 {
		t.Errorf("size = %+v, want (4, 2)", got.Size)
	}
}

func TestDeviceRectIntersect(t *testing.T) {
	a := DeviceRect{Origin: DevicePoint{}, Size: DeviceSize{Width: 10, Height: 10}}
	b := DeviceRect{Origin: DevicePoint{X: 4, Y: 4}, Size: DeviceSize{Width: 10, Height: 10}}
	got := a.Intersect(b)
	if got.Origin.X != 4 || got.Origin.Y != 4 || got.Size.Width != 6 || got.Size.Height != 6 {
		t.Errorf("Intersect = %+v", got)
	}
}
