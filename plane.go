package raycaster

import "fmt"

// Plane is a vertical wall: a world-space segment with a texture stretched
// along it. Texture u runs from 0 at the segment start to 1 at its end.
type Plane struct {
	Segment Ray
	Texture Texture
}

// NewPlane returns a plane spanning from start to end.
func NewPlane(start, end Vector, tex Texture) *Plane {
	return &Plane{Segment: Segment(start, end), Texture: tex}
}

// Start returns the first endpoint.
func (p *Plane) Start() Vector { return p.Segment.Start }

// End returns the second endpoint.
func (p *Plane) End() Vector { return p.Segment.End() }

// Length returns the distance between the endpoints.
func (p *Plane) Length() float32 { return p.Segment.Dir.Mag() }

func (p *Plane) String() string {
	return fmt.Sprintf("Plane <%v, %v>", p.Start(), p.End())
}
