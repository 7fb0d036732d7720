package raycaster

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoCamera is returned when an engine is created without a scene.
var ErrNoCamera = errors.New("raycaster: scene has no camera")

// DefaultScreenshotDir is where screenshots go unless Engine.ScreenshotDir
// is set.
const DefaultScreenshotDir = "screenshots"

// Engine is the headless frame loop: it owns the Scene, the FrameClock, the
// frame buffer and the Renderer, and runs update then render once per Step.
// A presentation layer (see package display) polls input, calls Step and
// blits Frame.
type Engine struct {
	// ScreenshotDir is the directory screenshot requests are written to.
	ScreenshotDir string

	scene    *Scene
	renderer *Renderer
	frame    *Image
	clock    FrameClock
	requests []Request
	held     []Request
	rendered bool
	started  bool
	ended    bool
	exit     bool
}

// NewEngine creates an engine rendering s into a width x height frame.
func NewEngine(s *Scene, width, height int, cfg RenderConfig) (*Engine, error) {
	if s == nil {
		return nil, ErrNoCamera
	}
	frame, err := NewImage(width, height)
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	return &Engine{
		ScreenshotDir: DefaultScreenshotDir,
		scene:         s,
		renderer:      NewRenderer(cfg),
		frame:         frame,
	}, nil
}

// Scene returns the engine's scene.
func (e *Engine) Scene() *Scene { return e.scene }

// Renderer returns the engine's renderer.
func (e *Engine) Renderer() *Renderer { return e.renderer }

// Frame returns the last rendered frame. The image is reused between frames
// and replaced on Resize.
func (e *Engine) Frame() *Image { return e.frame }

// Clock returns the frame clock.
func (e *Engine) Clock() FrameClock { return e.clock }

// ExitRequested reports whether a script asked the loop to stop.
func (e *Engine) ExitRequested() bool { return e.exit }

// Start runs every script's Start and returns the requests they queued,
// with resolution requests already handled. Screenshots requested during
// Start are written once the first Step has rendered a frame. A presentation
// layer should check ExitRequested before opening a window.
func (e *Engine) Start() []Request {
	if e.started {
		return nil
	}
	e.started = true
	Logger().Info("engine start",
		"width", e.frame.Width(), "height", e.frame.Height(),
		"entities", e.scene.Len())
	e.scene.Start()
	return e.drain(false)
}

// Step advances the clock by dt, updates the scene with in, renders the new
// frame and returns the requests queued during the update. Resolution
// changes take effect before rendering; screenshots capture the frame
// rendered by this step. The returned slice is reused by the next call.
func (e *Engine) Step(in Input, dt time.Duration) []Request {
	if !e.started {
		e.Start()
	}
	e.clock.Advance(dt)
	e.scene.Update(&in, e.clock)
	pending := e.drain(true)
	e.renderer.Render(e.scene, e.frame)
	e.rendered = true
	if len(e.held) > 0 {
		e.flushScreenshots(e.held)
		e.held = e.held[:0]
	}
	e.flushScreenshots(pending)
	return pending
}

// drain empties the scene's request queue, applies the requests the engine
// owns and returns all of them. Outside Step, screenshots are written at
// once if a frame has been rendered and held for the next Step otherwise.
func (e *Engine) drain(inStep bool) []Request {
	e.requests = e.scene.System().Drain(e.requests[:0])
	for _, r := range e.requests {
		switch r.Kind {
		case RequestResolution:
			if err := e.Resize(r.Width, r.Height); err != nil {
				Logger().Warn("resolution request rejected", "error", err)
			}
		case RequestExit:
			e.exit = true
		}
	}
	if !inStep {
		if e.rendered {
			e.flushScreenshots(e.requests)
		} else {
			for _, r := range e.requests {
				if r.Kind == RequestScreenshot {
					e.held = append(e.held, r)
				}
			}
		}
	}
	return e.requests
}

func (e *Engine) flushScreenshots(reqs []Request) {
	for _, r := range reqs {
		if r.Kind != RequestScreenshot {
			continue
		}
		path, err := SaveScreenshot(e.ScreenshotDir, r.Text, e.frame)
		if err != nil {
			Logger().Warn("screenshot failed", "label", r.Text, "error", err)
			continue
		}
		Logger().Info("screenshot", "path", path)
	}
}

// Resize replaces the frame buffer with a width x height one. The new frame
// is blank until the next Step.
func (e *Engine) Resize(width, height int) error {
	if width == e.frame.Width() && height == e.frame.Height() {
		return nil
	}
	frame, err := NewImage(width, height)
	if err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	e.frame = frame
	e.rendered = false
	Logger().Info("engine resize", "width", width, "height", height)
	return nil
}

// End runs every script's End. Calling it again has no effect.
func (e *Engine) End() {
	if e.ended {
		return
	}
	e.ended = true
	e.scene.End()
	e.drain(false)
	for _, r := range e.held {
		Logger().Warn("screenshot skipped: no frame rendered", "label", r.Text)
	}
	e.held = nil
	Logger().Info("engine end", "frames", e.clock.Frame, "elapsed", e.clock.Total)
}
