package raycaster

import (
	"fmt"

	"github.com/chewxy/math32"
)

const (
	toRad = math32.Pi / 180
	toDeg = 180 / math32.Pi
)

// Vector is a 2D float32 vector used for both positions and directions. When
// used as a direction its magnitude is meaningful: a Ray's Dir spans from its
// start to its end.
type Vector struct {
	X, Y float32
}

// Common directions. Left is counter-clockwise from Forward.
var (
	Zero    = Vector{0, 0}
	Forward = Vector{1, 0}
	Back    = Vector{-1, 0}
	Left    = Vector{0, 1}
	Right   = Vector{0, -1}
)

// Vec is shorthand for Vector{x, y}.
func Vec(x, y float32) Vector { return Vector{x, y} }

// FromDeg returns the unit vector at the given angle in degrees from +X.
func FromDeg(deg float32) Vector {
	sin, cos := math32.Sincos(deg * toRad)
	return Vector{cos, sin}
}

// Vector arithmetic.
func (a Vector) Add(b Vector) Vector   { return Vector{a.X + b.X, a.Y + b.Y} }
func (a Vector) Sub(b Vector) Vector   { return Vector{a.X - b.X, a.Y - b.Y} }
func (a Vector) Neg() Vector           { return Vector{-a.X, -a.Y} }
func (a Vector) Mul(s float32) Vector  { return Vector{a.X * s, a.Y * s} }
func (a Vector) Dot(b Vector) float32  { return a.X*b.X + a.Y*b.Y }
func (a Vector) Mag() float32          { return math32.Sqrt(a.X*a.X + a.Y*a.Y) }
func (a Vector) Dist(b Vector) float32 { return a.Sub(b).Mag() }
func (a Vector) IsZero() bool          { return a.X == 0 && a.Y == 0 }

// Perp returns a rotated 90 degrees counter-clockwise.
func (a Vector) Perp() Vector { return Vector{-a.Y, a.X} }

func (a Vector) String() string { return fmt.Sprintf("<%g, %g>", a.X, a.Y) }

// Div divides a by the scalar s.
func (a Vector) Div(s float32) Vector {
	is := 1 / s
	return Vector{a.X * is, a.Y * is}
}

// CMul multiplies a and by as complex numbers. For unit vectors this composes
// rotations: the result's angle is the sum of both angles and its magnitude
// the product of both magnitudes.
func (a Vector) CMul(by Vector) Vector {
	return Vector{
		a.X*by.X - a.Y*by.Y,
		a.X*by.Y + a.Y*by.X,
	}
}

// CDiv is the inverse of CMul. by must not be the zero vector.
func (a Vector) CDiv(by Vector) Vector {
	is := 1 / (by.X*by.X + by.Y*by.Y)
	return Vector{
		(a.X*by.X + a.Y*by.Y) * is,
		(a.Y*by.X - a.X*by.Y) * is,
	}
}

// Modularize scales v to unit length in place and returns its previous
// magnitude. The zero vector is left untouched.
func (a *Vector) Modularize() float32 {
	m := a.Mag()
	if m != 0 {
		im := 1 / m
		a.X *= im
		a.Y *= im
	}
	return m
}

// Unit returns a unit-length copy of a, or a itself when it is zero.
func (a Vector) Unit() Vector {
	a.Modularize()
	return a
}

// Angle returns the angle of a in degrees from +X, in [0, 360). The zero
// vector has angle 0.
func (a Vector) Angle() float32 {
	if a.X == 0 && a.Y == 0 {
		return 0
	}
	c := a.X / a.Mag()
	// Rounding can push the cosine just outside [-1, 1].
	c = math32.Max(-1, math32.Min(1, c))
	deg := toDeg * math32.Acos(c)
	if a.Y >= 0 {
		return deg
	}
	deg = 360 - deg
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// SetAngle rotates a in place so that it points at deg degrees while keeping
// its magnitude.
func (a *Vector) SetAngle(deg float32) {
	*a = FromDeg(deg).Mul(a.Mag())
}
