package raycaster

import "time"

// Script is a behavior attached to an Entity. Start runs once before the
// script's first update, Update once per frame and End once when the scene
// shuts down or the entity is removed.
//
// Scripts run synchronously in scene order, then attachment order, and may
// mutate any entity: a script sees every change made by the scripts that ran
// before it in the same frame.
type Script interface {
	Start(ctx StartContext)
	Update(ctx UpdateContext)
	End(ctx EndContext)
}

// StartContext is passed to Script.Start.
type StartContext struct {
	// Self is the ID of the entity the script is attached to.
	Self   EntityID
	Scene  *Scene
	System *System
}

// Entity returns the entity the script is attached to.
func (c StartContext) Entity() *Entity { return c.Scene.Entity(c.Self) }

// UpdateContext is passed to Script.Update.
type UpdateContext struct {
	Self   EntityID
	Scene  *Scene
	System *System
	// Input is this frame's input snapshot. It does not change while the
	// scene updates.
	Input *Input
	// Time is the total elapsed time and Delta the time since the previous
	// frame.
	Time  time.Duration
	Delta time.Duration
}

// Entity returns the entity the script is attached to.
func (c UpdateContext) Entity() *Entity { return c.Scene.Entity(c.Self) }

// Camera returns the scene camera entity.
func (c UpdateContext) Camera() *Entity { return c.Scene.Camera() }

// DeltaSeconds returns Delta in seconds.
func (c UpdateContext) DeltaSeconds() float32 { return float32(c.Delta.Seconds()) }

// EndContext is passed to Script.End.
type EndContext struct {
	Self   EntityID
	Scene  *Scene
	System *System
}

// Entity returns the entity the script is attached to.
func (c EndContext) Entity() *Entity { return c.Scene.Entity(c.Self) }

// UpdateFunc adapts a plain function to a Script with empty Start and End.
type UpdateFunc func(ctx UpdateContext)

func (f UpdateFunc) Start(StartContext)       {}
func (f UpdateFunc) Update(ctx UpdateContext) { f(ctx) }
func (f UpdateFunc) End(EndContext)           {}

// FrameClock tracks frame timing. It is owned by the frame loop and threaded
// through every UpdateContext; there is no global clock.
type FrameClock struct {
	// Total is the time elapsed since the first frame.
	Total time.Duration
	// Delta is the duration of the last frame.
	Delta time.Duration
	// Frame counts advanced frames.
	Frame uint64
}

// Advance records a frame of length dt.
func (c *FrameClock) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	c.Delta = dt
	c.Total += dt
	c.Frame++
}
