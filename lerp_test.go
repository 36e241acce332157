package riverpass

import "testing"

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.5, 5},
		{10, 0, 0.1, 9},
		{0, 10, 2, 20},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); !approxEqual(got, tt.want, 1e-12) {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func TestInverseLerp(t *testing.T) {
	if got := InverseLerp(0.0, 10.0, 2.5); got != 0.25 {
		t.Errorf("InverseLerp = %v, want 0.25", got)
	}
	if got := InverseLerp(3.0, 3.0, 7.0); got != 0 {
		t.Errorf("InverseLerp(a == b) = %v, want 0", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Error("Clamp(int) wrong")
	}
	if Clamp(1.5, 0.0, 1.0) != 1 {
		t.Error("Clamp(float) wrong")
	}
}

func TestDampMatchesLerpAtReferenceRate(t *testing.T) {
	got := Damp(0.0, 100.0, 0.1, 1.0/60, 60)
	if !approxEqual(got, 10, 1e-9) {
		t.Errorf("Damp one frame = %v, want 10", got)
	}
	// Two half-length steps land on the same value as one full step.
	half := Damp(0.0, 100.0, 0.1, 1.0/120, 60)
	two := Damp(half, 100.0, 0.1, 1.0/120, 60)
	if !approxEqual(two, got, 1e-9) {
		t.Errorf("two half steps = %v, want %v", two, got)
	}
	if Damp(3.0, 7.0, 1, 0.5, 60) != 7 {
		t.Error("factor 1 should snap to target")
	}
}
