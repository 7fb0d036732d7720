package raycaster

import (
	"errors"
	"testing"
)

func newWall(name string, a, b Vector) *Entity {
	return NewPlaneEntity(name, NewPlane(a, b, Texture{}))
}

func TestEntitySetPosTranslatesPlane(t *testing.T) {
	s := NewScene()
	e := newWall("wall", Vec(0, 0), Vec(2, 0))
	s.Add(e)

	e.SetPos(Vec(1, 1))
	assertVec(t, "pos", e.Pos(), Vec(1, 1))
	assertVec(t, "plane start", e.Plane().Start(), Vec(1, 1))
	assertVec(t, "plane end", e.Plane().End(), Vec(3, 1))

	e.Translate(Vec(-1, 0))
	assertVec(t, "plane start after translate", e.Plane().Start(), Vec(0, 1))
}

func TestEntityRotateSwingsPlaneAroundPivot(t *testing.T) {
	s := NewScene()
	e := newWall("door", Vec(1, 1), Vec(3, 1))
	s.Add(e)

	e.Rotate(90)
	assertVec(t, "pivot", e.Plane().Start(), Vec(1, 1))
	assertVec(t, "swung end", e.Plane().End(), Vec(1, 3))
	assertNear(t, "length", e.Plane().Length(), 2)
	assertNear(t, "angle", e.Angle(), 90)
}

func TestEntityRotateFullTurn(t *testing.T) {
	s := NewScene()
	e := newWall("wall", Vec(0, 0), Vec(1, 2))
	s.Add(e)
	startDir := e.Dir()
	startEnd := e.Plane().End()

	for i := 0; i < 12; i++ {
		e.Rotate(30)
	}
	assertVecTol(t, "direction", e.Dir(), startDir, 1e-3)
	assertVecTol(t, "plane end", e.Plane().End(), startEnd, 1e-3)

	cam := s.Camera()
	for i := 0; i < 12; i++ {
		cam.Rotate(30)
	}
	assertVecTol(t, "camera direction", cam.Dir(), Forward, 1e-3)
}

func TestEntityTransformIsLocal(t *testing.T) {
	e := NewEmpty("mover", Zero)
	e.SetDir(Vec(0, 1))
	e.Transform(Vec(2, 0))
	assertVec(t, "forward", e.Pos(), Vec(0, 2))
	e.Transform(Vec(0, 1))
	assertVec(t, "left", e.Pos(), Vec(-1, 2))
}

func TestEntitySetDirZeroIgnored(t *testing.T) {
	e := NewEmpty("e", Zero)
	e.SetDir(Zero)
	assertVec(t, "dir", e.Dir(), Forward)
}

func TestEntityCameraPayload(t *testing.T) {
	s := NewScene()
	cam := s.Camera()
	if cam.Kind != EntityCamera || cam.ID != CameraID {
		t.Fatalf("camera = %v", cam)
	}
	cam.SetPos(Vec(3, 4))
	cam.SetZ(0.25)
	assertVec(t, "camera pos", cam.Camera().Pos, Vec(3, 4))
	assertNear(t, "camera z", cam.Camera().Z, 0.25)

	e := NewEmpty("e", Zero)
	e.SetZ(1)
	assertNear(t, "empty z", e.Z(), 0)
}

func TestEntityParentPropagation(t *testing.T) {
	s := NewScene()
	rig := NewEmpty("rig", Zero)
	s.Add(rig)
	wall := newWall("wall", Vec(1, 0), Vec(2, 0))
	s.Add(wall)

	if err := wall.SetParent(rig); err != nil {
		t.Fatal(err)
	}
	if wall.Parent() != rig || len(rig.Children()) != 1 {
		t.Fatal("link not recorded")
	}
	assertVec(t, "local pos", wall.LocalPos(), Vec(1, 0))

	rig.Rotate(90)
	assertVec(t, "child pos", wall.Pos(), Vec(0, 1))
	assertVec(t, "child plane end", wall.Plane().End(), Vec(0, 2))
	assertVec(t, "local pos unchanged", wall.LocalPos(), Vec(1, 0))

	rig.Translate(Vec(5, 0))
	assertVec(t, "child after translate", wall.Pos(), Vec(5, 1))

	// Moving the child directly updates its relative transform.
	wall.SetPos(Vec(5, 3))
	assertVec(t, "local after child move", wall.LocalPos(), Vec(3, 0))
}

func TestEntityGrandchildren(t *testing.T) {
	s := NewScene()
	a := NewEmpty("a", Zero)
	b := NewEmpty("b", Vec(1, 0))
	c := NewEmpty("c", Vec(2, 0))
	s.Add(a)
	s.Add(b)
	s.Add(c)
	if err := b.SetParent(a); err != nil {
		t.Fatal(err)
	}
	if err := c.SetParent(b); err != nil {
		t.Fatal(err)
	}

	a.Rotate(180)
	assertVec(t, "b", b.Pos(), Vec(-1, 0))
	assertVec(t, "c", c.Pos(), Vec(-2, 0))
	assertVec(t, "c dir", c.Dir(), Back)
}

func TestEntitySetLocal(t *testing.T) {
	s := NewScene()
	parent := NewEmpty("p", Vec(10, 0))
	parent.SetDir(Vec(0, 1))
	child := NewEmpty("c", Zero)
	s.Add(parent)
	s.Add(child)
	if err := child.SetParent(parent); err != nil {
		t.Fatal(err)
	}

	child.SetLocal(Vec(2, 0), Forward)
	assertVec(t, "world pos", child.Pos(), Vec(10, 2))
	assertVec(t, "world dir", child.Dir(), Vec(0, 1))

	root := NewEmpty("r", Zero)
	root.SetLocal(Vec(4, 4), Zero)
	assertVec(t, "root pos", root.Pos(), Vec(4, 4))
	assertVec(t, "root dir kept", root.Dir(), Forward)
}

func TestEntitySetParentErrors(t *testing.T) {
	s := NewScene()
	a := NewEmpty("a", Zero)
	b := NewEmpty("b", Zero)

	if err := a.SetParent(b); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("parent outside scene: err = %v", err)
	}

	s.Add(a)
	if err := a.SetParent(b); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("parent in no scene: err = %v", err)
	}

	s.Add(b)
	if err := b.SetParent(a); err != nil {
		t.Fatal(err)
	}
	if err := a.SetParent(b); err == nil {
		t.Error("expected cycle error")
	}
	if err := a.SetParent(a); err == nil {
		t.Error("expected self-parent error")
	}

	other := NewScene()
	c := NewEmpty("c", Zero)
	other.Add(c)
	if err := c.SetParent(a); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("cross-scene parent: err = %v", err)
	}
}

func TestEntityDetachKeepsWorldTransform(t *testing.T) {
	s := NewScene()
	p := NewEmpty("p", Zero)
	c := NewEmpty("c", Vec(1, 0))
	s.Add(p)
	s.Add(c)
	_ = c.SetParent(p)
	p.Translate(Vec(0, 3))

	if err := c.SetParent(nil); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "pos", c.Pos(), Vec(1, 3))
	if len(p.Children()) != 0 {
		t.Error("child still listed")
	}
	p.Translate(Vec(0, 3))
	assertVec(t, "detached pos", c.Pos(), Vec(1, 3))
}

func TestEntityKindString(t *testing.T) {
	tests := map[EntityKind]string{
		EntityEmpty:    "empty",
		EntityPlane:    "plane",
		EntityCamera:   "camera",
		EntityKind(42): "EntityKind(42)",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}
