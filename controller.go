package raycaster

// mouseDegrees converts mouse pixels to degrees at sensitivity 1.
const mouseDegrees = 0.022

// wishDir returns the unit WASD direction rotated into the look direction,
// or Zero when no movement key is held.
func wishDir(look Vector, in *Input) Vector {
	dir := Zero
	if in.IsKeyDown(KeyW) {
		dir = dir.Add(Forward)
	}
	if in.IsKeyDown(KeyS) {
		dir = dir.Add(Back)
	}
	if in.IsKeyDown(KeyA) {
		dir = dir.Add(Left)
	}
	if in.IsKeyDown(KeyD) {
		dir = dir.Add(Right)
	}
	dir.Modularize()
	return dir.CMul(look.Unit())
}

// FlatController is a noclip-style camera controller: WASD moves relative to
// the view direction, horizontal mouse motion turns, Space raises and Alt
// lowers the eye height within [0, 1]. Attach it to any non-camera entity;
// it drives the scene camera and captures the mouse on Start.
type FlatController struct {
	Speed            float32 // world units per second
	VerticalSpeed    float32 // eye height units per second
	MouseSensitivity float32
}

// NewFlatController returns a controller with default tuning.
func NewFlatController() *FlatController {
	return &FlatController{Speed: 2, VerticalSpeed: 1, MouseSensitivity: 2.2}
}

func (c *FlatController) Start(ctx StartContext) {
	ctx.System.SetCaptureMouse(true)
}

func (c *FlatController) Update(ctx UpdateContext) {
	cam := ctx.Camera()
	dt := ctx.DeltaSeconds()

	cam.Translate(wishDir(cam.Dir(), ctx.Input).Mul(c.Speed * dt))
	cam.Rotate(c.MouseSensitivity * -mouseDegrees * ctx.Input.MouseDX)

	if ctx.Input.IsKeyDown(KeySpace) {
		cam.SetZ(min(cam.Z()+c.VerticalSpeed*dt, 1))
	}
	if ctx.Input.IsKeyDown(KeyAltLeft) {
		cam.SetZ(max(cam.Z()-c.VerticalSpeed*dt, 0))
	}
}

func (c *FlatController) End(EndContext) {}

// Q1Controller moves the camera with Quake-style physics: ground
// acceleration with friction, limited air control, and jumping under
// gravity. Heights are in wall units, so a wall is 1 tall.
type Q1Controller struct {
	Acceleration     float32
	AirAcceleration  float32
	AirSpeedCap      float32 // wish speed limit while airborne
	JumpSpeed        float32
	Gravity          float32
	MouseSensitivity float32
	Friction         float32
	Height           float32 // eye height when standing
	Ceiling          float32 // highest eye height
	MaxSpeed         float32
	StopSpeed        float32

	velocity Vector
	zSpeed   float32
	airborne bool
}

// NewQ1Controller returns a controller with default tuning.
func NewQ1Controller() *Q1Controller {
	return &Q1Controller{
		Acceleration:     10,
		AirAcceleration:  7,
		AirSpeedCap:      0.3,
		JumpSpeed:        2.7,
		Gravity:          8,
		MouseSensitivity: 2.2,
		Friction:         6,
		Height:           0.46,
		Ceiling:          1,
		MaxSpeed:         3.2,
		StopSpeed:        1,
	}
}

// Velocity returns the current horizontal velocity.
func (c *Q1Controller) Velocity() Vector { return c.velocity }

// Grounded reports whether the camera is standing.
func (c *Q1Controller) Grounded() bool { return !c.airborne }

func (c *Q1Controller) Start(ctx StartContext) {
	ctx.Scene.Camera().SetZ(c.Height)
	ctx.System.SetCaptureMouse(true)
}

func (c *Q1Controller) Update(ctx UpdateContext) {
	cam := ctx.Camera()
	dt := ctx.DeltaSeconds()

	cam.Rotate(c.MouseSensitivity * -mouseDegrees * ctx.Input.MouseDX)

	if !c.airborne && (ctx.Input.WasKeyPressed(KeySpace) || ctx.Input.IsKeyDown(KeySpace)) {
		c.zSpeed = c.JumpSpeed
		c.airborne = true
	}
	c.updateZ(cam, dt)

	wish := wishDir(cam.Dir(), ctx.Input)
	if c.airborne {
		c.airAccelerate(wish, c.MaxSpeed, dt)
	} else {
		c.accelerate(wish, c.MaxSpeed, dt)
	}
	cam.Translate(c.velocity.Mul(dt))
}

func (c *Q1Controller) End(EndContext) {}

func (c *Q1Controller) updateZ(cam *Entity, dt float32) {
	if !c.airborne {
		return
	}
	z := cam.Z() + c.zSpeed*dt
	switch {
	case z < c.Height:
		z = c.Height
		c.airborne = false
		c.zSpeed = 0
	case z > c.Ceiling:
		z = c.Ceiling
		c.zSpeed = 0
	}
	cam.SetZ(z)
	c.zSpeed -= c.Gravity * dt
}

func (c *Q1Controller) accelerate(wish Vector, wishSpeed, dt float32) {
	c.applyFriction(dt)

	add := wishSpeed - c.velocity.Dot(wish)
	if add <= 0 {
		return
	}
	c.velocity = c.velocity.Add(wish.Mul(min(c.Acceleration*wishSpeed*dt, add)))
}

func (c *Q1Controller) airAccelerate(wish Vector, wishSpeed, dt float32) {
	add := min(wishSpeed, c.AirSpeedCap) - c.velocity.Dot(wish)
	if add <= 0 {
		return
	}
	c.velocity = c.velocity.Add(wish.Mul(min(c.AirAcceleration*wishSpeed*dt, add)))
}

func (c *Q1Controller) applyFriction(dt float32) {
	speed := c.velocity.Mag()
	if speed < 0.0001 {
		c.velocity = Zero
		return
	}
	control := max(speed, c.StopSpeed)
	newSpeed := max(speed-control*c.Friction*dt, 0)
	c.velocity = c.velocity.Mul(newSpeed / speed)
}
