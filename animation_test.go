package raycaster

import (
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	s := NewScene()
	e := newWall("door", Vec(0, 0), Vec(1, 0))
	s.Add(e)

	g := TweenPosition(e, Vec(4, 2), 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	if g.Done {
		t.Fatal("should not be Done at halfway")
	}
	assertVecTol(t, "halfway", e.Pos(), Vec(2, 1), 0.05)

	g.Update(0.5)
	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	assertVecTol(t, "pos", e.Pos(), Vec(4, 2), 0.01)
	assertVecTol(t, "plane end follows", e.Plane().End(), Vec(5, 2), 0.01)
	if len(e.tweens) != 0 {
		t.Errorf("finished group still registered: %d", len(e.tweens))
	}

	// Update after done is a no-op.
	g.Update(0.1)
	assertVecTol(t, "pos after done", e.Pos(), Vec(4, 2), 0.01)
}

func TestTweenRotationReachesTarget(t *testing.T) {
	e := NewEmpty("spinner", Zero)
	tw := TweenRotation(e, 90, 1.0, ease.Linear)

	tw.Update(0.5)
	if math.Abs(float64(e.Angle()-45)) > 0.5 {
		t.Errorf("Angle = %v, want ~45 at halfway", e.Angle())
	}
	tw.Update(0.5)
	if !tw.Done {
		t.Fatal("expected done after full duration")
	}
	if math.Abs(float64(e.Angle()-90)) > 0.05 {
		t.Errorf("Angle = %v, want ~90", e.Angle())
	}
	assertNear(t, "unit length", e.Dir().Mag(), 1)
}

func TestTweenZ(t *testing.T) {
	s := NewScene()
	cam := s.Camera()
	g := TweenZ(cam, 1, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)
	if !g.Done {
		t.Fatal("expected Done")
	}
	if math.Abs(float64(cam.Z()-1)) > 0.01 {
		t.Errorf("Z = %v, want ~1", cam.Z())
	}
}

func TestTweenGroupRemovedTarget(t *testing.T) {
	s := NewScene()
	e := NewEmpty("gone", Vec(10, 20))
	s.Add(e)

	g := TweenPosition(e, Vec(100, 200), 1.0, ease.Linear)
	g.Update(0.1)
	if g.Done {
		t.Fatal("should not be Done yet")
	}
	saved := e.Pos()

	if err := s.Remove(e.ID); err != nil {
		t.Fatal(err)
	}
	if !g.Done {
		t.Error("Remove should stop the entity's tweens")
	}
	g.Update(0.5)
	if e.Pos() != saved {
		t.Errorf("pos changed to %v after removal", e.Pos())
	}
	if g.Target() != e {
		t.Error("Target changed")
	}
}

func TestTweenGroupDisposedTarget(t *testing.T) {
	s := NewScene()
	e := NewEmpty("e", Vec(1, 1))
	s.Add(e)
	g := TweenPosition(e, Vec(5, 5), 1.0, ease.Linear)
	_ = s.Remove(e.ID)
	// Remove already stopped the group; revive it to hit the disposed check.
	g.Done = false

	g.Update(0.1)
	if !g.Done {
		t.Fatal("expected Done after disposed target detected")
	}
	assertVec(t, "pos", e.Pos(), Vec(1, 1))
}

func TestTweenScriptRunsStepsInSequence(t *testing.T) {
	s := NewScene()
	e := NewEmpty("panel", Zero)
	script := &TweenScript{Steps: []TweenStep{
		MoveBy(Vec(1, 0), 1, ease.Linear),
		RotateBy(90, 1, ease.Linear),
	}}
	e.AddScript(script)
	s.Add(e)

	var clock FrameClock
	frame := func() {
		clock.Advance(500 * time.Millisecond)
		s.Update(nil, clock)
	}

	frame()
	assertVecTol(t, "first half of move", e.Pos(), Vec(0.5, 0), 0.05)
	frame()
	assertVecTol(t, "move done", e.Pos(), Vec(1, 0), 0.01)
	assertNear(t, "not rotated yet", e.Angle(), 0)

	frame()
	if math.Abs(float64(e.Angle()-45)) > 0.5 {
		t.Errorf("Angle = %v, want ~45", e.Angle())
	}
	frame()
	if math.Abs(float64(e.Angle()-90)) > 0.05 {
		t.Errorf("Angle = %v, want ~90", e.Angle())
	}
	if !script.Finished() {
		t.Fatal("sequence should be finished")
	}

	frame()
	assertVecTol(t, "no further motion", e.Pos(), Vec(1, 0), 0.01)
}

func TestTweenScriptLoops(t *testing.T) {
	s := NewScene()
	e := NewEmpty("slider", Zero)
	script := &TweenScript{Loop: true, Steps: []TweenStep{
		MoveBy(Vec(1, 0), 0.5, ease.Linear),
		MoveBy(Vec(-1, 0), 0.5, ease.Linear),
	}}
	e.AddScript(script)
	s.Add(e)

	var clock FrameClock
	for i := 0; i < 8; i++ {
		clock.Advance(500 * time.Millisecond)
		s.Update(nil, clock)
	}
	if script.Finished() {
		t.Error("looping script reported finished")
	}
	assertVecTol(t, "back at origin", e.Pos(), Zero, 0.01)

	s.End()
	if !script.Finished() {
		t.Error("End should finish the script")
	}
}

func TestParseEase(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"", false},
		{"linear", false},
		{"InOutCubic", false},
		{"OUTBOUNCE", false},
		{"wobble", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := ParseEase(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && fn == nil {
				t.Error("nil easing")
			}
		})
	}
}
