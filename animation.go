package raycaster

import (
	"fmt"
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float32 channels of an Entity transform
// simultaneously. Create one via the convenience constructors
// (TweenPosition, TweenRotation, TweenZ) and call Update(dt) each frame, or
// attach it through a TweenScript. The group writes through the entity's
// setters, so an owned plane and any children move with it. If the target
// entity is removed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	values [4]float32
	apply  func(v [4]float32)
	target *Entity
	Done   bool
}

func newTweenGroup(e *Entity, count int, apply func([4]float32)) *TweenGroup {
	g := &TweenGroup{count: count, target: e, apply: apply}
	e.tweens = append(e.tweens, g)
	return g
}

// Update advances all tweens by dt seconds and applies the values to the
// target. If the target has been removed, Done is set and nothing is written.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target == nil || g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = val
		if !finished {
			allDone = false
		}
	}
	g.apply(g.values)
	g.Done = allDone
	if g.Done {
		g.target.dropTween(g)
	}
}

// Target returns the animated entity.
func (g *TweenGroup) Target() *Entity { return g.target }

// TweenPosition creates a TweenGroup that moves e to the world position to
// over duration seconds using the easing function.
func TweenPosition(e *Entity, to Vector, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := e.Pos()
	g := newTweenGroup(e, 2, func(v [4]float32) { e.SetPos(Vector{v[0], v[1]}) })
	g.tweens[0] = gween.New(from.X, to.X, duration, fn)
	g.tweens[1] = gween.New(from.Y, to.Y, duration, fn)
	return g
}

// TweenRotation creates a TweenGroup that turns e to the absolute angle deg
// (degrees, counter-clockwise from +X). The angle is interpolated linearly
// from the current Angle, so pass 360+a to wind the long way round.
func TweenRotation(e *Entity, deg float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(e, 1, func(v [4]float32) { e.SetDir(FromDeg(v[0])) })
	g.tweens[0] = gween.New(e.Angle(), deg, duration, fn)
	return g
}

// TweenZ creates a TweenGroup that animates the camera eye height. On other
// kinds the group runs but has no effect.
func TweenZ(e *Entity, to float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(e, 1, func(v [4]float32) { e.SetZ(v[0]) })
	g.tweens[0] = gween.New(e.Z(), to, duration, fn)
	return g
}

func (e *Entity) dropTween(g *TweenGroup) {
	for i, t := range e.tweens {
		if t == g {
			e.tweens = append(e.tweens[:i], e.tweens[i+1:]...)
			return
		}
	}
}

// TweenStep builds the tween group for one step of a TweenScript. It is
// called when the step begins, so the group starts from the entity's
// transform at that moment.
type TweenStep func(e *Entity) *TweenGroup

// MoveBy returns a step that moves the entity by offset.
func MoveBy(offset Vector, duration float32, fn ease.TweenFunc) TweenStep {
	return func(e *Entity) *TweenGroup {
		return TweenPosition(e, e.Pos().Add(offset), duration, fn)
	}
}

// RotateBy returns a step that turns the entity by deg degrees,
// counter-clockwise for positive values.
func RotateBy(deg float32, duration float32, fn ease.TweenFunc) TweenStep {
	return func(e *Entity) *TweenGroup {
		return TweenRotation(e, e.Angle()+deg, duration, fn)
	}
}

// TweenScript runs tween steps one after another from the scene update.
// With Loop set the sequence restarts after the last step.
type TweenScript struct {
	Steps []TweenStep
	Loop  bool

	cur  *TweenGroup
	step int
	done bool
}

func (s *TweenScript) Start(StartContext) {}

func (s *TweenScript) Update(ctx UpdateContext) {
	if s.done || len(s.Steps) == 0 {
		return
	}
	e := ctx.Entity()
	if e == nil {
		return
	}
	if s.cur == nil {
		s.cur = s.Steps[s.step](e)
	}
	s.cur.Update(ctx.DeltaSeconds())
	if !s.cur.Done {
		return
	}
	s.cur = nil
	s.step++
	if s.step < len(s.Steps) {
		return
	}
	s.step = 0
	s.done = !s.Loop
}

func (s *TweenScript) End(EndContext) {
	if s.cur != nil {
		s.cur.Done = true
		s.cur = nil
	}
	s.done = true
}

// Finished reports whether a non-looping sequence has completed.
func (s *TweenScript) Finished() bool { return s.done }

var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inquad":     ease.InQuad,
	"outquad":    ease.OutQuad,
	"inoutquad":  ease.InOutQuad,
	"incubic":    ease.InCubic,
	"outcubic":   ease.OutCubic,
	"inoutcubic": ease.InOutCubic,
	"inoutsine":  ease.InOutSine,
	"outbounce":  ease.OutBounce,
	"outelastic": ease.OutElastic,
}

// ParseEase returns the easing function with the given name, e.g.
// "InOutCubic". Matching ignores case; the empty name is Linear.
func ParseEase(name string) (ease.TweenFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := easings[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return fn, nil
}
