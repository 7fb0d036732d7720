package raycaster

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrUnknownTexture is returned when a scene description names a texture
// it does not define.
var ErrUnknownTexture = errors.New("raycaster: unknown texture")

// ImageLoader resolves image names in a scene description. The assets
// package provides a file-backed, caching implementation.
type ImageLoader interface {
	Load(name string) (*Image, error)
}

// SceneConfig is a scene description, usually read from YAML:
//
//	render:
//	  filter: bilinear
//	camera:
//	  pos: [0, 0]
//	  angle: 0
//	textures:
//	  brick: {image: brick.png, hrepeat: 2}
//	entities:
//	  - name: wall
//	    start: [3, -1]
//	    end: [3, 1]
//	    texture: brick
//	  - name: player
//	    controller: flat
type SceneConfig struct {
	Render   RenderSection             `yaml:"render"`
	Camera   CameraSection             `yaml:"camera"`
	Textures map[string]TextureSection `yaml:"textures"`
	Entities []EntitySection           `yaml:"entities"`
	Debug    bool                      `yaml:"debug"`
}

// RenderSection mirrors RenderConfig.
type RenderSection struct {
	Filter  Filter `yaml:"filter"`
	Workers int    `yaml:"workers"`
}

// CameraSection places the camera. A zero FOV means DefaultFOV and a nil Z
// means the default eye height.
type CameraSection struct {
	Pos   [2]float32 `yaml:"pos"`
	Angle float32    `yaml:"angle"`
	Z     *float32   `yaml:"z"`
	FOV   float32    `yaml:"fov"`
}

// TextureSection binds an image to repeat and offset values. Zero repeats
// mean 1.
type TextureSection struct {
	Image   string  `yaml:"image"`
	HRepeat float32 `yaml:"hrepeat"`
	VRepeat float32 `yaml:"vrepeat"`
	HOffset float32 `yaml:"hoffset"`
	VOffset float32 `yaml:"voffset"`
}

// EntitySection describes one entity. Entities with a texture are planes
// from Start to End; the rest are empty entities at Pos.
type EntitySection struct {
	Name       string        `yaml:"name"`
	Start      [2]float32    `yaml:"start"`
	End        [2]float32    `yaml:"end"`
	Texture    string        `yaml:"texture"`
	Pos        [2]float32    `yaml:"pos"`
	Angle      float32       `yaml:"angle"`
	Parent     string        `yaml:"parent"`
	Controller string        `yaml:"controller"`
	Tween      *TweenSection `yaml:"tween"`
}

// TweenSection is a tween sequence run by a TweenScript.
type TweenSection struct {
	Loop  bool               `yaml:"loop"`
	Steps []TweenStepSection `yaml:"steps"`
}

// TweenStepSection is one animation segment. Exactly one of Move (a world-space
// offset from where the step starts) or Rotate (degrees) should be set.
type TweenStepSection struct {
	Move     *[2]float32 `yaml:"move"`
	Rotate   float32     `yaml:"rotate"`
	Duration float32     `yaml:"duration"`
	Ease     string      `yaml:"ease"`
}

// LoadSceneConfig parses and validates a YAML scene description.
func LoadSceneConfig(data []byte) (*SceneConfig, error) {
	var cfg SceneConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &cfg, nil
}

func (c *SceneConfig) validate() error {
	names := make(map[string]bool, len(c.Entities))
	for i, e := range c.Entities {
		if e.Texture != "" {
			if _, ok := c.Textures[e.Texture]; !ok {
				return fmt.Errorf("entity %d %q: %w %q", i, e.Name, ErrUnknownTexture, e.Texture)
			}
			if e.Start == e.End {
				return fmt.Errorf("entity %d %q: plane has zero length", i, e.Name)
			}
		}
		if e.Parent != "" && !names[e.Parent] {
			return fmt.Errorf("entity %d %q: parent %q must be declared before it", i, e.Name, e.Parent)
		}
		switch e.Controller {
		case "", "flat", "q1":
		default:
			return fmt.Errorf("entity %d %q: unknown controller %q", i, e.Name, e.Controller)
		}
		if e.Tween != nil {
			for j, st := range e.Tween.Steps {
				if _, err := ParseEase(st.Ease); err != nil {
					return fmt.Errorf("entity %d %q tween step %d: %w", i, e.Name, j, err)
				}
				if st.Duration <= 0 {
					return fmt.Errorf("entity %d %q tween step %d: duration must be positive", i, e.Name, j)
				}
			}
		}
		if e.Name != "" {
			names[e.Name] = true
		}
	}
	return nil
}

// RenderConfig returns the render settings of the description.
func (c *SceneConfig) RenderConfig() RenderConfig {
	return RenderConfig{Filter: c.Render.Filter, Workers: c.Render.Workers}
}

// Build creates the described scene. Images are resolved through loader;
// an image that fails to load is replaced by a placeholder and logged.
func (c *SceneConfig) Build(loader ImageLoader) (*Scene, error) {
	s := NewScene()
	s.SetDebugMode(c.Debug)

	cam := s.Camera()
	cam.SetPos(Vec(c.Camera.Pos[0], c.Camera.Pos[1]))
	cam.SetDir(FromDeg(c.Camera.Angle))
	if c.Camera.Z != nil {
		cam.SetZ(*c.Camera.Z)
	}
	if c.Camera.FOV > 0 {
		cam.Camera().FOV = c.Camera.FOV
	}

	textures := make(map[string]Texture, len(c.Textures))
	for name, ts := range c.Textures {
		img, err := c.loadImage(loader, ts.Image)
		if err != nil {
			Logger().Warn("scene texture fallback", "texture", name, "image", ts.Image, "error", err)
			img = placeholder()
		}
		t := NewTexture(img)
		if ts.HRepeat != 0 {
			t.HRepeat = ts.HRepeat
		}
		if ts.VRepeat != 0 {
			t.VRepeat = ts.VRepeat
		}
		t.HOffset = ts.HOffset
		t.VOffset = ts.VOffset
		textures[name] = t
	}

	for i, es := range c.Entities {
		var e *Entity
		if es.Texture != "" {
			tex, ok := textures[es.Texture]
			if !ok {
				return nil, fmt.Errorf("build entity %d %q: %w %q", i, es.Name, ErrUnknownTexture, es.Texture)
			}
			start := Vec(es.Start[0], es.Start[1])
			end := Vec(es.End[0], es.End[1])
			e = NewPlaneEntity(es.Name, NewPlane(start, end, tex))
		} else {
			e = NewEmpty(es.Name, Vec(es.Pos[0], es.Pos[1]))
			e.SetDir(FromDeg(es.Angle))
		}
		s.Add(e)

		if es.Parent != "" {
			if err := e.SetParent(s.Find(es.Parent)); err != nil {
				return nil, fmt.Errorf("build entity %d %q: %w", i, es.Name, err)
			}
		}
		switch es.Controller {
		case "flat":
			e.AddScript(NewFlatController())
		case "q1":
			e.AddScript(NewQ1Controller())
		}
		if es.Tween != nil && len(es.Tween.Steps) > 0 {
			e.AddScript(tweenScript(es.Tween))
		}
	}
	return s, nil
}

func (c *SceneConfig) loadImage(loader ImageLoader, name string) (*Image, error) {
	if loader == nil {
		return nil, fmt.Errorf("no image loader for %q", name)
	}
	return loader.Load(name)
}

// placeholder is a 2x2 magenta and black checker that stands in for images
// that failed to load.
func placeholder() *Image {
	img, _ := NewImage(2, 2)
	img.Set(0, 0, Magenta)
	img.Set(1, 1, Magenta)
	img.Set(1, 0, Black)
	img.Set(0, 1, Black)
	return img
}

func tweenScript(ts *TweenSection) *TweenScript {
	script := &TweenScript{Loop: ts.Loop}
	for _, st := range ts.Steps {
		fn, _ := ParseEase(st.Ease)
		if st.Move != nil {
			script.Steps = append(script.Steps, MoveBy(Vec(st.Move[0], st.Move[1]), st.Duration, fn))
		} else {
			script.Steps = append(script.Steps, RotateBy(st.Rotate, st.Duration, fn))
		}
	}
	return script
}
