package raycaster

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Ray is a directed segment from Start to Start+Dir. Camera casts and plane
// geometry both use it. A Ray with a zero Dir is degenerate and never
// intersects anything.
type Ray struct {
	Start Vector
	Dir   Vector
}

// NewRay returns the ray starting at start with direction dir.
func NewRay(start, dir Vector) Ray {
	return Ray{Start: start, Dir: dir}
}

// Segment returns the ray spanning from start to end.
func Segment(start, end Vector) Ray {
	return Ray{Start: start, Dir: end.Sub(start)}
}

// End returns Start+Dir.
func (ray Ray) End() Vector { return ray.Start.Add(ray.Dir) }

// SetEnd moves the end point, keeping Start.
func (ray *Ray) SetEnd(end Vector) { ray.Dir = end.Sub(ray.Start) }

// Translate moves the whole ray by delta.
func (ray *Ray) Translate(delta Vector) { ray.Start = ray.Start.Add(delta) }

// At returns Start + t*Dir.
func (ray Ray) At(t float32) Vector { return ray.Start.Add(ray.Dir.Mul(t)) }

// RS returns the parameters r and s such that
//
//	ray.Start + r*ray.Dir == seg.Start + s*seg.Dir
//
// If the rays are parallel (including either one being degenerate), both
// results are +Inf.
//
// RS runs once per screen column and candidate plane, so it must not
// allocate.
func (ray Ray) RS(seg Ray) (r, s float32) {
	det := ray.Dir.Y*seg.Dir.X - ray.Dir.X*seg.Dir.Y
	if det == 0 {
		inf := math32.Inf(1)
		return inf, inf
	}

	idet := 1 / det
	dx := seg.Start.X - ray.Start.X
	dy := seg.Start.Y - ray.Start.Y

	r = idet * (seg.Dir.X*dy - seg.Dir.Y*dx)
	s = idet * (ray.Dir.X*dy - ray.Dir.Y*dx)
	return r, s
}

func (ray Ray) String() string {
	return fmt.Sprintf("Ray <%v -> %v>", ray.Start, ray.End())
}
