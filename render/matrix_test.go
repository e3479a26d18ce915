package render

import (
	"math"
	"testing"
)

func approxEq(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestMatrixApply(t *testing.T) {
	tests := []struct {
		name   string
		m      Matrix
		x, y   float32
		wx, wy float32
	}{
		{"identity", Identity(), 3, 4, 3, 4},
		{"translate", TranslateM(10, 20), 3, 4, 13, 24},
		{"scale", ScaleM(2, 3), 3, 4, 6, 12},
		{"rotate 90", RotateM(math.Pi / 2), 1, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gx, gy := tt.m.Apply(tt.x, tt.y)
			if !approxEq(gx, tt.wx) || !approxEq(gy, tt.wy) {
				t.Errorf("Apply(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, gx, gy, tt.wx, tt.wy)
			}
		})
	}
}

func TestMatrixCompose(t *testing.T) {
	// Chained transforms apply innermost-last: the point is scaled first,
	// then translated.
	m := TranslateM(10, 0).Scale(2, 2)
	gx, gy := m.Apply(1, 1)
	if !approxEq(gx, 12) || !approxEq(gy, 2) {
		t.Errorf("composed Apply = (%v, %v), want (12, 2)", gx, gy)
	}
}

func TestMatrixInvert(t *testing.T) {
	m := TranslateM(5, -3).Scale(2, 4).Rotate(0.7)
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert reported singular matrix")
	}
	x, y := m.Apply(7, 11)
	rx, ry := inv.Apply(x, y)
	if !approxEq(rx, 7) || !approxEq(ry, 11) {
		t.Errorf("round trip = (%v, %v), want (7, 11)", rx, ry)
	}
}

func TestMatrixInvertSingular(t *testing.T) {
	if _, ok := ScaleM(0, 1).Invert(); ok {
		t.Error("Invert of singular matrix reported success")
	}
}
