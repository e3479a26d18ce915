package render

import "github.com/chewxy/math32"

// Matrix is a 2D affine transformation, row-major:
//
//	| A  B  C |
//	| D  E  F |
//
// mapping x' = A*x + B*y + C, y' = D*x + E*y + F.
type Matrix struct {
	A, B, C float32
	D, E, F float32
}

// Identity returns the identity transformation.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// TranslateM creates a translation matrix.
func TranslateM(x, y float32) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// ScaleM creates a scaling matrix.
func ScaleM(x, y float32) Matrix {
	return Matrix{A: x, E: y}
}

// RotateM creates a rotation matrix. The angle is in radians, positive
// rotating clockwise in the y-down coordinate system.
func RotateM(angle float32) Matrix {
	sin, cos := math32.Sincos(angle)
	return Matrix{A: cos, B: -sin, D: sin, E: cos}
}

// Mul composes the transformations: the result applies m first, then o.
func (m Matrix) Mul(o Matrix) Matrix {
	return Matrix{
		A: o.A*m.A + o.B*m.D,
		B: o.A*m.B + o.B*m.E,
		C: o.A*m.C + o.B*m.F + o.C,
		D: o.D*m.A + o.E*m.D,
		E: o.D*m.B + o.E*m.E,
		F: o.D*m.C + o.E*m.F + o.F,
	}
}

// Translate composes a translation onto m.
func (m Matrix) Translate(x, y float32) Matrix {
	return TranslateM(x, y).Mul(m)
}

// Scale composes a scale onto m.
func (m Matrix) Scale(x, y float32) Matrix {
	return ScaleM(x, y).Mul(m)
}

// Rotate composes a rotation onto m.
func (m Matrix) Rotate(angle float32) Matrix {
	return RotateM(angle).Mul(m)
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float32) (float32, float32) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// ApplyPoint transforms a point.
func (m Matrix) ApplyPoint(p Point) Point {
	x, y := m.Apply(p.X, p.Y)
	return Point{X: x, Y: y}
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Invert returns the inverse transformation. The second result is false for
// a degenerate (non-invertible) matrix.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.A*m.E - m.B*m.D
	if det == 0 {
		return Identity(), false
	}
	inv := 1 / det
	return Matrix{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.E*m.C) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.D*m.C - m.A*m.F) * inv,
	}, true
}
