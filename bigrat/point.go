package bigrat

// Point is an exact 2D point used while the arrangement engine is still
// working in rational coordinates, before snapping to the integer grid.
type Point struct {
	X, Y Rational
}

// NewPoint builds a Point from x, y.
func NewPoint(x, y Rational) Point {
	return Point{X: x, Y: y}
}

// Vector is an exact 2D displacement.
type Vector struct {
	X, Y Rational
}

// Sub returns the vector from o to p.
func (p Point) Sub(o Point) Vector {
	return Vector{X: p.X.Sub(o.X), Y: p.Y.Sub(o.Y)}
}

// Add returns p translated by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X.Add(v.X), Y: p.Y.Add(v.Y)}
}

// Cross returns the z-component of the 3D cross product of v and o,
// v.X*o.Y - v.Y*o.X. Its sign determines whether o is clockwise or
// counter-clockwise of v; the arrangement's angular sort and its
// intersection tests both reduce to this one primitive.
func (v Vector) Cross(o Vector) Rational {
	return v.X.Mul(o.Y).Sub(v.Y.Mul(o.X))
}

// Dot returns the dot product of v and o.
func (v Vector) Dot(o Vector) Rational {
	return v.X.Mul(o.X).Add(v.Y.Mul(o.Y))
}

// Vec4 is an exact rational RGBA color, used for render-program evaluation
// where a source color is derived directly from geometry (for example a
// gradient stop position computed as an intersection parameter) and must
// stay exact until the final rasterization step converts to float32.
type Vec4 struct {
	R, G, B, A Rational
}
