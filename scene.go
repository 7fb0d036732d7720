package raycaster

import (
	"fmt"
	"iter"

	"github.com/chewxy/math32"
)

// Hit is the result of a nearest-intersection query.
type Hit struct {
	Plane *Plane
	// R is the parameter along the cast ray and S the parameter along the
	// plane segment (the texture u coordinate).
	R, S float32
}

// Scene owns every entity, including the camera, in one arena indexed by
// EntityID. The camera always has ID CameraID.
//
// The scene is mutated only during Update; the renderer reads it while no
// update runs.
type Scene struct {
	entities []*Entity
	names    map[string]EntityID
	system   System
	debug    bool
	started  bool
	ended    bool
}

// NewScene creates a scene with a camera at the origin looking along +X.
func NewScene() *Scene {
	s := &Scene{names: make(map[string]EntityID)}
	s.Add(newCameraEntity(NewCamera(Zero)))
	return s
}

// Camera returns the camera entity.
func (s *Scene) Camera() *Entity { return s.entities[CameraID] }

// System returns the scene's request queue.
func (s *Scene) System() *System { return &s.system }

// SetDebugMode enables or disables debug logging of render statistics.
func (s *Scene) SetDebugMode(enabled bool) { s.debug = enabled }

// Debug reports whether debug mode is enabled.
func (s *Scene) Debug() bool { return s.debug }

// Add takes ownership of e and returns its ID. An entity can belong to only
// one scene; adding it twice panics.
func (s *Scene) Add(e *Entity) EntityID {
	if s.debug {
		debugCheckDisposed(e, "Add")
	}
	if e.scene != nil {
		panic(fmt.Sprintf("raycaster: entity %q already belongs to a scene", e.Name))
	}
	e.ID = EntityID(len(s.entities))
	e.scene = s
	s.entities = append(s.entities, e)
	if e.Name != "" {
		if _, dup := s.names[e.Name]; !dup {
			s.names[e.Name] = e.ID
		}
	}
	return e.ID
}

// Entity returns the live entity with the given ID, or nil.
func (s *Scene) Entity(id EntityID) *Entity {
	if id < 0 || int(id) >= len(s.entities) {
		return nil
	}
	return s.entities[id]
}

// Find returns the first live entity added with the given name, or nil.
func (s *Scene) Find(name string) *Entity {
	id, ok := s.names[name]
	if !ok {
		return nil
	}
	return s.Entity(id)
}

// Len returns the number of live entities, camera included.
func (s *Scene) Len() int {
	n := 0
	for _, e := range s.entities {
		if e != nil {
			n++
		}
	}
	return n
}

// Remove ends the entity's scripts, detaches its children (they keep their
// world transform), stops its tweens and frees its ID. The camera cannot be
// removed.
func (s *Scene) Remove(id EntityID) error {
	e := s.Entity(id)
	if e == nil || id == CameraID {
		return fmt.Errorf("remove entity %d: %w", id, ErrUnknownEntity)
	}
	if s.started && !s.ended {
		s.endScripts(e)
	}
	for _, cid := range append([]EntityID(nil), e.children...) {
		if c := s.Entity(cid); c != nil {
			_ = c.SetParent(nil)
		}
	}
	_ = e.SetParent(nil)
	for _, g := range e.tweens {
		g.Done = true
	}
	e.tweens = nil

	s.entities[id] = nil
	if nid, ok := s.names[e.Name]; ok && nid == id {
		delete(s.names, e.Name)
		// Hand the name to the next live entity that shares it.
		for _, o := range s.entities[id+1:] {
			if o != nil && o.Name == e.Name {
				s.names[e.Name] = o.ID
				break
			}
		}
	}
	e.disposed = true
	e.scene = nil
	e.ID = NoEntity
	return nil
}

// Entities iterates live entities in insertion order, camera first.
func (s *Scene) Entities() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, e := range s.entities {
			if e != nil && !yield(e) {
				return
			}
		}
	}
}

// Planes iterates every plane in entity insertion order.
func (s *Scene) Planes() iter.Seq[*Plane] {
	return func(yield func(*Plane) bool) {
		for _, e := range s.entities {
			if e != nil && e.plane != nil && !yield(e.plane) {
				return
			}
		}
	}
}

// AppendPlanes appends every plane, in iteration order, to dst.
func (s *Scene) AppendPlanes(dst []*Plane) []*Plane {
	for _, e := range s.entities {
		if e != nil && e.plane != nil {
			dst = append(dst, e.plane)
		}
	}
	return dst
}

// Raycast returns the nearest plane hit by ray. A candidate counts only when
// it lies ahead of the ray start (r >= 0) and within the segment (0 <= s < 1,
// half-open so shared endpoints are hit once). On equal distances the plane
// met first in iteration order wins.
func (s *Scene) Raycast(ray Ray) (Hit, bool) {
	best := Hit{R: math32.Inf(1)}
	found := false
	for p := range s.Planes() {
		if h, ok := testPlane(ray, p); ok && h.R < best.R {
			best, found = h, true
		}
	}
	return best, found
}

// nearest is Raycast over a plane snapshot. It is the renderer's inner loop.
func nearest(planes []*Plane, ray Ray) (Hit, bool) {
	best := Hit{R: math32.Inf(1)}
	found := false
	for _, p := range planes {
		if h, ok := testPlane(ray, p); ok && h.R < best.R {
			best, found = h, true
		}
	}
	return best, found
}

func testPlane(ray Ray, p *Plane) (Hit, bool) {
	r, s := ray.RS(p.Segment)
	if r < 0 || s < 0 || s >= 1 {
		return Hit{}, false
	}
	return Hit{Plane: p, R: r, S: s}, true
}

// --- Script lifecycle ---

// Start runs Start on every script of every non-camera entity in scene
// order. Calling it again has no effect.
func (s *Scene) Start() {
	if s.started {
		return
	}
	s.started = true
	for i := 1; i < len(s.entities); i++ {
		e := s.entities[i]
		if e == nil {
			continue
		}
		s.startScripts(e)
	}
}

// Update runs one frame of scripts: for every non-camera entity in insertion
// order, each script in attachment order. Scripts attached since the last
// frame are started first. Entities added during the pass are updated in the
// same pass; entities removed during it are skipped.
func (s *Scene) Update(in *Input, clock FrameClock) {
	if !s.started {
		s.Start()
	}
	if in == nil {
		in = &Input{}
	}
	for i := 1; i < len(s.entities); i++ {
		e := s.entities[i]
		if e == nil {
			continue
		}
		id := EntityID(i)
		for j := 0; j < len(e.scripts); j++ {
			if !e.scripts[j].started {
				e.scripts[j].started = true
				e.scripts[j].script.Start(StartContext{Self: id, Scene: s, System: &s.system})
			}
			e.scripts[j].script.Update(UpdateContext{
				Self:   id,
				Scene:  s,
				System: &s.system,
				Input:  in,
				Time:   clock.Total,
				Delta:  clock.Delta,
			})
			if s.entities[i] != e {
				// The script removed its own entity.
				break
			}
		}
	}
}

// End runs End on every started script. Calling it again has no effect.
func (s *Scene) End() {
	if s.ended {
		return
	}
	s.ended = true
	for i := 1; i < len(s.entities); i++ {
		if e := s.entities[i]; e != nil {
			s.endScripts(e)
		}
	}
}

func (s *Scene) startScripts(e *Entity) {
	for j := 0; j < len(e.scripts); j++ {
		if e.scripts[j].started {
			continue
		}
		e.scripts[j].started = true
		e.scripts[j].script.Start(StartContext{Self: e.ID, Scene: s, System: &s.system})
	}
}

func (s *Scene) endScripts(e *Entity) {
	for j := range e.scripts {
		if !e.scripts[j].started {
			continue
		}
		e.scripts[j].started = false
		e.scripts[j].script.End(EndContext{Self: e.ID, Scene: s, System: &s.system})
	}
}
