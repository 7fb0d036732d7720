package raycaster

import "github.com/chewxy/math32"

// DefaultFOV is the horizontal field of view, in degrees, of a new Camera.
const DefaultFOV = 110

// Camera is the payload of the scene's camera entity.
type Camera struct {
	// Pos is the eye position in the world plane.
	Pos Vector
	// Dir is the look direction. Its magnitude scales the whole projection,
	// so controllers keep it at unit length.
	Dir Vector
	// Z is the eye height as a fraction of wall height: 0.5 looks at the
	// middle of every wall, 0 sits on the floor, 1 at the top. It shifts
	// columns up and down to fake jumping and crouching.
	Z float32
	// FOV is the horizontal field of view in degrees.
	FOV float32
}

// NewCamera returns a camera at pos looking along +X with the default FOV and
// a centered eye height.
func NewCamera(pos Vector) *Camera {
	return &Camera{
		Pos: pos,
		Dir: Forward,
		Z:   0.5,
		FOV: DefaultFOV,
	}
}

// Left returns Dir rotated 90 degrees counter-clockwise.
func (c *Camera) Left() Vector { return c.Dir.Perp() }

// Projection holds the per-frame constants needed to turn a screen column
// into a ray and a hit distance into a column height.
type Projection struct {
	Pos  Vector
	Dir  Vector
	Left Vector
	Z    float32

	// Step is the lateral ray offset between two adjacent columns.
	Step float32
	// Focal is width / (2*tan(fov/2)): the height, in pixels, of a wall at
	// distance 1 straight ahead.
	Focal float32

	width   int
	heightf float32
}

// Project computes the projection of c onto a width x height image.
func (c *Camera) Project(width, height int) Projection {
	tan := math32.Tan(c.FOV * 0.5 * toRad)
	wf := float32(width)
	return Projection{
		Pos:     c.Pos,
		Dir:     c.Dir,
		Left:    c.Left(),
		Z:       c.Z,
		Step:    2 * tan / wf,
		Focal:   wf / (2 * tan),
		width:   width,
		heightf: float32(height),
	}
}

// ColumnRay returns the ray cast through screen column col.
func (p *Projection) ColumnRay(col int) Ray {
	delta := float32(p.width/2 - col)
	return Ray{Start: p.Pos, Dir: p.Dir.Add(p.Left.Mul(p.Step * delta))}
}

// ColumnSpan returns the unclipped vertical extent of a wall hit at
// parameter r along ray. The ray-direction dot product undoes the fisheye
// distortion of casting from a single point.
func (p *Projection) ColumnSpan(ray Ray, r float32) (start, end, height float32) {
	height = p.Focal / (ray.Dir.Dot(p.Dir) * r)
	shift := height * (p.Z - 0.5)
	start = (p.heightf-1-height)*0.5 + shift
	end = (p.heightf-1+height)*0.5 + shift
	return start, end, height
}
