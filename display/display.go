// Package display presents a raycaster.Engine in an Ebitengine window: it
// polls keyboard and mouse into raycaster.Input snapshots, steps the engine
// once per tick, blits the frame and applies the engine's system requests.
package display

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/raycaster"
)

// Config holds the window settings. Width and Height are the window size in
// screen pixels; the engine frame is scaled to fit.
type Config struct {
	Title        string `yaml:"title"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Fullscreen   bool   `yaml:"fullscreen"`
	VSync        *bool  `yaml:"vsync"`
	ShowFPS      bool   `yaml:"show_fps"`
	CaptureMouse bool   `yaml:"capture_mouse"`
}

// DefaultConfig returns a windowed 1280x720 configuration with vsync on.
func DefaultConfig() Config {
	return Config{Title: "raycaster", Width: 1280, Height: 720}
}

// LoadConfig parses a YAML window configuration. Missing fields keep their
// DefaultConfig values.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse display config: %w", err)
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	return c
}

// game adapts an Engine to ebiten.Game.
type game struct {
	engine  *raycaster.Engine
	poller  inputPoller
	pixels  []byte
	showFPS bool
	fps     fpsOverlay
	last    time.Time
}

// Run opens the window and runs the engine until a script requests exit or
// the window is closed. Scripts are started before the window opens; if one
// of them already requests exit, no window is created. The engine is ended
// before Run returns.
func Run(engine *raycaster.Engine, cfg Config) error {
	cfg = cfg.withDefaults()
	g := &game{engine: engine, showFPS: cfg.ShowFPS}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Fullscreen)
	if cfg.VSync != nil {
		ebiten.SetVsyncEnabled(*cfg.VSync)
	}
	if cfg.CaptureMouse {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}

	g.apply(engine.Start())
	if engine.ExitRequested() {
		engine.End()
		return nil
	}

	raycaster.Logger().Info("display open", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	err := ebiten.RunGame(g)
	engine.End()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (g *game) Update() error {
	now := time.Now()
	dt := time.Second / time.Duration(ebiten.TPS())
	if !g.last.IsZero() {
		dt = now.Sub(g.last)
	}
	g.last = now

	g.apply(g.engine.Step(g.poller.poll(), dt))
	if g.engine.ExitRequested() {
		return ebiten.Termination
	}
	return nil
}

// apply carries out the requests the engine leaves to the presentation
// layer. Resolution changes and screenshots were handled by the engine.
func (g *game) apply(reqs []raycaster.Request) {
	for _, r := range reqs {
		switch r.Kind {
		case raycaster.RequestFullscreen:
			ebiten.SetFullscreen(r.Enabled)
		case raycaster.RequestCaptureMouse:
			if r.Enabled {
				ebiten.SetCursorMode(ebiten.CursorModeCaptured)
			} else {
				ebiten.SetCursorMode(ebiten.CursorModeVisible)
			}
			g.poller.resetMouse()
		case raycaster.RequestTitle:
			ebiten.SetWindowTitle(r.Text)
		case raycaster.RequestVSync:
			ebiten.SetVsyncEnabled(r.Enabled)
		}
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	frame := g.engine.Frame()
	b := screen.Bounds()
	// Right after a resolution change the screen keeps its old size for one
	// draw.
	if b.Dx() != frame.Width() || b.Dy() != frame.Height() {
		return
	}
	g.pixels = frame.Bytes(g.pixels)
	screen.WritePixels(g.pixels)
	if g.showFPS {
		g.fps.draw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	frame := g.engine.Frame()
	return frame.Width(), frame.Height()
}
