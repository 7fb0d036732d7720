package raycaster

import (
	"errors"
	"fmt"
)

// EntityID identifies an entity inside its Scene. IDs are indices into the
// scene's entity arena and stay valid until the entity is removed.
type EntityID int

const (
	// NoEntity is the ID of an entity that has not been added to a scene,
	// and the parent of every root entity.
	NoEntity EntityID = -1
	// CameraID is the ID of every scene's camera entity.
	CameraID EntityID = 0
)

// ErrUnknownEntity is returned when an ID does not name a live entity of the
// scene it is used with.
var ErrUnknownEntity = errors.New("raycaster: unknown entity")

// EntityKind distinguishes what an Entity carries.
type EntityKind uint8

const (
	EntityEmpty  EntityKind = iota // transform only, e.g. a script holder
	EntityPlane                    // owns one Plane
	EntityCamera                   // the scene camera
)

func (k EntityKind) String() string {
	switch k {
	case EntityEmpty:
		return "empty"
	case EntityPlane:
		return "plane"
	case EntityCamera:
		return "camera"
	default:
		return fmt.Sprintf("EntityKind(%d)", uint8(k))
	}
}

type scriptSlot struct {
	script  Script
	started bool
}

// Entity is the unit of ownership in a Scene: a transform, an optional
// drawable payload and a list of scripts. A single flat struct covers all
// kinds; Kind says which payload field is set.
//
// The transform of a plane entity is a pivot. Moving or turning the entity
// moves its plane rigidly around that pivot.
type Entity struct {
	ID   EntityID
	Name string
	Kind EntityKind

	// Transform for empty and plane entities. Camera entities keep theirs in
	// the Camera payload.
	pos Vector
	dir Vector

	plane  *Plane
	camera *Camera

	// Hierarchy. relPos and relDir are expressed in the parent's frame and
	// are only meaningful while parent != NoEntity.
	parent   EntityID
	children []EntityID
	relPos   Vector
	relDir   Vector

	scripts []scriptSlot

	scene    *Scene
	disposed bool
	tweens   []*TweenGroup
}

// NewEmpty returns an entity with no payload at pos, facing +X.
func NewEmpty(name string, pos Vector) *Entity {
	return &Entity{
		ID:     NoEntity,
		Name:   name,
		Kind:   EntityEmpty,
		pos:    pos,
		dir:    Forward,
		parent: NoEntity,
	}
}

// NewPlaneEntity returns an entity owning p. The pivot is placed at the
// plane's start and faces along the plane, so turning the entity swings the
// plane around its first endpoint like a hinged door.
func NewPlaneEntity(name string, p *Plane) *Entity {
	return &Entity{
		ID:     NoEntity,
		Name:   name,
		Kind:   EntityPlane,
		pos:    p.Segment.Start,
		dir:    p.Segment.Dir.Unit(),
		plane:  p,
		parent: NoEntity,
	}
}

func newCameraEntity(c *Camera) *Entity {
	return &Entity{
		ID:     NoEntity,
		Name:   "camera",
		Kind:   EntityCamera,
		camera: c,
		parent: NoEntity,
	}
}

// Plane returns the owned plane, or nil if the entity is not a plane entity.
func (e *Entity) Plane() *Plane { return e.plane }

// Camera returns the camera payload, or nil if the entity is not the camera.
func (e *Entity) Camera() *Camera { return e.camera }

// Scene returns the scene the entity was added to, or nil.
func (e *Entity) Scene() *Scene { return e.scene }

// IsDisposed reports whether the entity has been removed from its scene.
func (e *Entity) IsDisposed() bool { return e.disposed }

// AddScript attaches s. Scripts run in attachment order. A script added to an
// entity of a running scene is started before its first update.
func (e *Entity) AddScript(s Script) {
	e.scripts = append(e.scripts, scriptSlot{script: s})
}

// Scripts returns the number of attached scripts.
func (e *Entity) Scripts() int { return len(e.scripts) }

// --- Transform ---

// Pos returns the world position.
func (e *Entity) Pos() Vector {
	if e.Kind == EntityCamera {
		return e.camera.Pos
	}
	return e.pos
}

// Dir returns the world direction.
func (e *Entity) Dir() Vector {
	if e.Kind == EntityCamera {
		return e.camera.Dir
	}
	return e.dir
}

// Angle returns the world direction in degrees.
func (e *Entity) Angle() float32 { return e.Dir().Angle() }

// Z returns the camera eye height. Other kinds have no height and return 0.
func (e *Entity) Z() float32 {
	if e.Kind == EntityCamera {
		return e.camera.Z
	}
	return 0
}

// SetZ sets the camera eye height. It is a no-op on other kinds.
func (e *Entity) SetZ(z float32) {
	if e.Kind == EntityCamera {
		e.camera.Z = z
	}
}

// SetPos moves the entity to the world position p. An owned plane is
// translated by the same delta and children follow.
func (e *Entity) SetPos(p Vector) {
	e.setWorld(p, e.Dir())
	e.syncRelative()
}

// SetDir turns the entity to the world direction d. An owned plane is
// rotated around the pivot by the unit rotation d/Dir() (complex division),
// so its length never changes. A zero d is ignored.
func (e *Entity) SetDir(d Vector) {
	if d.IsZero() {
		return
	}
	e.setWorld(e.Pos(), d)
	e.syncRelative()
}

// Translate moves the entity by a world-space delta.
func (e *Entity) Translate(delta Vector) {
	e.SetPos(e.Pos().Add(delta))
}

// Transform moves the entity by v expressed in its own frame: +X is forward
// and +Y is left.
func (e *Entity) Transform(v Vector) {
	e.SetPos(e.Pos().Add(v.CMul(e.Dir().Unit())))
}

// Rotate turns the entity counter-clockwise by deg degrees.
func (e *Entity) Rotate(deg float32) {
	e.SetDir(e.Dir().CMul(FromDeg(deg)))
}

// setWorld writes an absolute transform through to the payload and
// recomputes every descendant from its cached relative transform.
func (e *Entity) setWorld(p, d Vector) {
	switch e.Kind {
	case EntityCamera:
		e.camera.Pos = p
		e.camera.Dir = d
	case EntityPlane:
		seg := &e.plane.Segment
		if d != e.dir && !e.dir.IsZero() {
			factor := d.CDiv(e.dir).Unit()
			seg.Dir = seg.Dir.CMul(factor)
			seg.Start = e.pos.Add(seg.Start.Sub(e.pos).CMul(factor))
		}
		seg.Start = seg.Start.Add(p.Sub(e.pos))
		e.pos = p
		e.dir = d
	default:
		e.pos = p
		e.dir = d
	}

	if len(e.children) == 0 || e.scene == nil {
		return
	}
	u := d.Unit()
	for _, id := range e.children {
		c := e.scene.Entity(id)
		if c == nil {
			continue
		}
		c.setWorld(p.Add(c.relPos.CMul(u)), c.relDir.CMul(u))
	}
}

// syncRelative refreshes the cached relative transform after the world
// transform was set directly.
func (e *Entity) syncRelative() {
	parent := e.Parent()
	if parent == nil {
		return
	}
	u := parent.Dir().Unit()
	if u.IsZero() {
		return
	}
	e.relPos = e.Pos().Sub(parent.Pos()).CDiv(u)
	e.relDir = e.Dir().CDiv(u)
}

// --- Hierarchy ---

// Parent returns the parent entity, or nil for a root entity.
func (e *Entity) Parent() *Entity {
	if e.parent == NoEntity || e.scene == nil {
		return nil
	}
	return e.scene.Entity(e.parent)
}

// Children returns the IDs of the direct children. The returned slice must
// not be mutated.
func (e *Entity) Children() []EntityID { return e.children }

// LocalPos returns the position relative to the parent, or the world
// position for a root entity.
func (e *Entity) LocalPos() Vector {
	if e.parent == NoEntity {
		return e.Pos()
	}
	return e.relPos
}

// LocalDir returns the direction relative to the parent, or the world
// direction for a root entity.
func (e *Entity) LocalDir() Vector {
	if e.parent == NoEntity {
		return e.Dir()
	}
	return e.relDir
}

// SetLocal sets the transform relative to the parent. On a root entity it is
// the same as setting the world transform.
func (e *Entity) SetLocal(pos, dir Vector) {
	if dir.IsZero() {
		dir = e.LocalDir()
	}
	parent := e.Parent()
	if parent == nil {
		e.setWorld(pos, dir)
		return
	}
	e.relPos = pos
	e.relDir = dir
	u := parent.Dir().Unit()
	e.setWorld(parent.Pos().Add(pos.CMul(u)), dir.CMul(u))
}

// SetParent attaches e under parent, keeping e's current world transform.
// Passing nil detaches e. Both entities must belong to the same scene and the
// link must not create a cycle.
func (e *Entity) SetParent(parent *Entity) error {
	if e.scene == nil {
		return fmt.Errorf("set parent of %q: %w", e.Name, ErrUnknownEntity)
	}
	if parent != nil {
		if parent.scene != e.scene || parent.disposed {
			return fmt.Errorf("set parent of %q to %q: %w", e.Name, parent.Name, ErrUnknownEntity)
		}
		for p := parent; p != nil; p = p.Parent() {
			if p == e {
				return fmt.Errorf("set parent of %q to %q: cycle", e.Name, parent.Name)
			}
		}
	}

	if old := e.Parent(); old != nil {
		old.removeChild(e.ID)
	}
	e.parent = NoEntity
	if parent == nil {
		return nil
	}

	e.parent = parent.ID
	parent.children = append(parent.children, e.ID)
	e.syncRelative()
	if e.scene.debug {
		debugCheckTreeDepth(e)
		debugCheckChildCount(parent)
	}
	return nil
}

func (e *Entity) removeChild(id EntityID) {
	for i, c := range e.children {
		if c == id {
			copy(e.children[i:], e.children[i+1:])
			e.children = e.children[:len(e.children)-1]
			return
		}
	}
}

func (e *Entity) String() string {
	return fmt.Sprintf("Entity %d %q (%s) at %v facing %v", e.ID, e.Name, e.Kind, e.Pos(), e.Dir())
}
