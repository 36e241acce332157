package riverpass

import (
	"errors"
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ffffff", Color{1, 1, 1, 1}},
		{"#000", Color{0, 0, 0, 1}},
		{"rgba(255, 0, 0, 0.5)", Color{1, 0, 0, 0.5}},
		{"white", Color{1, 1, 1, 1}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) error: %v", tt.in, err)
			continue
		}
		if !approxEqual(got.R, tt.want.R, 1e-3) || !approxEqual(got.G, tt.want.G, 1e-3) ||
			!approxEqual(got.B, tt.want.B, 1e-3) || !approxEqual(got.A, tt.want.A, 1e-3) {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorInvalid(t *testing.T) {
	_, err := ParseColor("not-a-color")
	if !errors.Is(err, ErrInvalidColor) {
		t.Errorf("err = %v, want ErrInvalidColor", err)
	}
}

func TestMustParseColorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustParseColor("###")
}

func TestColorPremultiplied(t *testing.T) {
	p := Color{1, 0.5, 0, 0.5}.Premultiplied()
	want := [4]float32{0.5, 0.25, 0, 0.5}
	if p != want {
		t.Errorf("Premultiplied = %v, want %v", p, want)
	}
	rgba := Color{1, 1, 1, 0.5}.ToRGBA()
	if rgba.A != 128 || rgba.R != 128 {
		t.Errorf("ToRGBA = %+v, want premultiplied 128s", rgba)
	}
}

func TestColorLerp(t *testing.T) {
	got := Color{0, 0, 0, 0}.Lerp(Color{1, 1, 1, 1}, 0.25)
	if got != (Color{0.25, 0.25, 0.25, 0.25}) {
		t.Errorf("Lerp = %+v", got)
	}
	if a := ColorWhite.WithAlpha(0.5).A; a != 0.5 {
		t.Errorf("WithAlpha = %v, want 0.5", a)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{110, 70, true},
		{60, 45, true},
		{9, 45, false},
		{60, 71, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if c := r.Center(); c != (Vec2{60, 45}) {
		t.Errorf("Center = %v", c)
	}
	if o := r.Offset(5, -5); o.X != 15 || o.Y != 15 || o.Width != 100 {
		t.Errorf("Offset = %+v", o)
	}
}
