package riverpass

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestPlaneTransformCentersPlane(t *testing.T) {
	m := planeTransform(3, 4, 2, 6, 0)
	x, y := transformPoint(m, 0, 0)
	assertNear(t, "corner x", x, 2)
	assertNear(t, "corner y", y, 1)
	x, y = transformPoint(m, 1, 3)
	assertNear(t, "center x", x, 3)
	assertNear(t, "center y", y, 4)
}

func TestPlaneTransformRotatesAboutCenter(t *testing.T) {
	m := planeTransform(0, 0, 2, 2, math.Pi/2)
	x, y := transformPoint(m, 1, 1)
	assertNear(t, "center x", x, 0)
	assertNear(t, "center y", y, 0)
	// The (+1, 0) edge midpoint rotates counter-clockwise to (0, +1).
	x, y = transformPoint(m, 2, 1)
	assertNear(t, "edge x", x, 0)
	assertNear(t, "edge y", y, 1)
}

func TestMultiplyAffine(t *testing.T) {
	translate := [6]float64{1, 0, 0, 1, 5, -2}
	scale := [6]float64{2, 0, 0, 3, 0, 0}
	m := multiplyAffine(translate, scale)
	x, y := transformPoint(m, 1, 1)
	assertNear(t, "x", x, 7)
	assertNear(t, "y", y, 1)
	if multiplyAffine(identityTransform, scale) != scale {
		t.Error("identity * m != m")
	}
}

func TestInvertAffine(t *testing.T) {
	m := multiplyAffine([6]float64{1, 0, 0, 1, 5, -2}, planeTransform(1, 1, 4, 2, 0.3))
	inv := invertAffine(m)
	x, y := transformPoint(m, 0.7, -1.1)
	x, y = transformPoint(inv, x, y)
	assertNear(t, "x", x, 0.7)
	assertNear(t, "y", y, -1.1)

	if invertAffine([6]float64{0, 0, 0, 0, 1, 1}) != identityTransform {
		t.Error("singular matrix should invert to identity")
	}
}

func TestGeoM(t *testing.T) {
	m := [6]float64{2, 0.5, -1, 3, 10, 20}
	g := geoM(m)
	gx, gy := g.Apply(1, 2)
	wx, wy := transformPoint(m, 1, 2)
	assertNear(t, "x", gx, wx)
	assertNear(t, "y", gy, wy)
}
