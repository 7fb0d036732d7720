package raycaster

import (
	"math"
	"testing"
	"time"
)

// controlled returns a scene whose only script is c, attached to a holder
// entity, and a function that runs one frame of dt with the given input.
func controlled(c Script) (*Scene, func(in Input, dt time.Duration)) {
	s := NewScene()
	holder := NewEmpty("player", Zero)
	holder.AddScript(c)
	s.Add(holder)
	var clock FrameClock
	return s, func(in Input, dt time.Duration) {
		clock.Advance(dt)
		s.Update(&in, clock)
	}
}

func held(keys ...Key) Input { return NewInput(keys, nil, 0, 0) }

func TestWishDir(t *testing.T) {
	tests := []struct {
		name string
		look Vector
		keys []Key
		want Vector
	}{
		{"none", Forward, nil, Zero},
		{"forward", Forward, []Key{KeyW}, Forward},
		{"back", Forward, []Key{KeyS}, Back},
		{"strafe left", Forward, []Key{KeyA}, Left},
		{"diagonal", Forward, []Key{KeyW, KeyD}, Vec(1, -1).Unit()},
		{"opposed cancel", Forward, []Key{KeyW, KeyS}, Zero},
		{"rotated look", Vec(0, 3), []Key{KeyW}, Vec(0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := held(tt.keys...)
			assertVec(t, "wish", wishDir(tt.look, &in), tt.want)
		})
	}
}

func TestFlatControllerStartCapturesMouse(t *testing.T) {
	s, _ := controlled(NewFlatController())
	s.Start()
	reqs := s.System().Drain(nil)
	if len(reqs) != 1 || reqs[0].Kind != RequestCaptureMouse || !reqs[0].Enabled {
		t.Errorf("requests = %+v", reqs)
	}
}

func TestFlatControllerMoves(t *testing.T) {
	s, frame := controlled(NewFlatController())
	cam := s.Camera()

	frame(held(KeyW), 500*time.Millisecond)
	assertVec(t, "forward", cam.Pos(), Vec(1, 0))

	frame(held(KeyA), 500*time.Millisecond)
	assertVec(t, "strafe", cam.Pos(), Vec(1, 1))
}

func TestFlatControllerMouseTurns(t *testing.T) {
	s, frame := controlled(NewFlatController())
	// Moving the mouse left turns counter-clockwise.
	frame(NewInput(nil, nil, -100, 0), 16*time.Millisecond)
	want := float32(100 * mouseDegrees * 2.2)
	if d := angleDiff(s.Camera().Angle(), want); d > 0.01 {
		t.Errorf("angle = %v, want %v", s.Camera().Angle(), want)
	}
}

func TestFlatControllerEyeHeightClamped(t *testing.T) {
	s, frame := controlled(NewFlatController())
	cam := s.Camera()

	frame(held(KeySpace), 250*time.Millisecond)
	assertNear(t, "raised", cam.Z(), 0.75)
	frame(held(KeySpace), time.Second)
	assertNear(t, "ceiling", cam.Z(), 1)
	frame(held(KeyAltLeft), 2*time.Second)
	assertNear(t, "floor", cam.Z(), 0)
}

func TestQ1ControllerStart(t *testing.T) {
	c := NewQ1Controller()
	s, _ := controlled(c)
	s.Start()
	assertNear(t, "eye height", s.Camera().Z(), c.Height)
	if !c.Grounded() {
		t.Error("should start grounded")
	}
}

func TestQ1ControllerAccelerates(t *testing.T) {
	c := NewQ1Controller()
	s, frame := controlled(c)

	frame(held(KeyW), 100*time.Millisecond)
	assertVec(t, "velocity", c.Velocity(), Vec(3.2, 0))
	assertVec(t, "pos", s.Camera().Pos(), Vec(0.32, 0))

	// Friction bleeds off the old heading until the velocity settles on
	// the new wish direction at MaxSpeed.
	for i := 0; i < 100; i++ {
		frame(held(KeyW, KeyD), 16*time.Millisecond)
	}
	assertVecTol(t, "settled velocity", c.Velocity(), Vec(1, -1).Unit().Mul(c.MaxSpeed), 1e-2)
}

func TestQ1ControllerFrictionStops(t *testing.T) {
	c := NewQ1Controller()
	_, frame := controlled(c)

	frame(held(KeyW), 100*time.Millisecond)
	for i := 0; i < 60; i++ {
		frame(Input{}, 16*time.Millisecond)
	}
	if sp := c.Velocity().Mag(); sp != 0 {
		t.Errorf("speed after coasting = %v, want 0", sp)
	}
}

func TestQ1ControllerJumpLands(t *testing.T) {
	c := NewQ1Controller()
	s, frame := controlled(c)
	cam := s.Camera()

	frame(NewInput(nil, []Key{KeySpace}, 0, 0), 50*time.Millisecond)
	if c.Grounded() {
		t.Fatal("should be airborne after jump")
	}
	if cam.Z() <= c.Height {
		t.Errorf("Z = %v, want above %v", cam.Z(), c.Height)
	}

	peak := cam.Z()
	for i := 0; i < 40 && !c.Grounded(); i++ {
		frame(Input{}, 50*time.Millisecond)
		peak = float32(math.Max(float64(peak), float64(cam.Z())))
	}
	if !c.Grounded() {
		t.Fatal("never landed")
	}
	assertNear(t, "landed height", cam.Z(), c.Height)
	if peak > c.Ceiling {
		t.Errorf("peak %v above ceiling", peak)
	}
}

func TestQ1ControllerCeiling(t *testing.T) {
	c := NewQ1Controller()
	c.JumpSpeed = 100
	s, frame := controlled(c)
	frame(held(KeySpace), 50*time.Millisecond)
	assertNear(t, "clamped", s.Camera().Z(), c.Ceiling)
}

func TestQ1ControllerAirControlLimited(t *testing.T) {
	c := NewQ1Controller()
	_, frame := controlled(c)

	// Jump from standstill, then try to accelerate in the air.
	frame(NewInput(nil, []Key{KeySpace}, 0, 0), 16*time.Millisecond)
	frame(held(KeyW), 16*time.Millisecond)
	if sp := c.Velocity().Mag(); sp > c.AirSpeedCap+1e-3 {
		t.Errorf("air speed %v exceeds cap %v", sp, c.AirSpeedCap)
	}
}
