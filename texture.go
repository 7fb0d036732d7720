package raycaster

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// Filter selects how a Texture is sampled.
type Filter uint8

const (
	FilterNearest  Filter = iota // single texel lookup
	FilterBilinear               // blend of the four surrounding texels
)

// String returns the filter name.
func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterBilinear:
		return "bilinear"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Filter) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. It accepts "nearest"
// and "bilinear".
func (f *Filter) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "nearest", "":
		*f = FilterNearest
	case "bilinear":
		*f = FilterBilinear
	default:
		return fmt.Errorf("unknown filter %q", text)
	}
	return nil
}

// Texture maps normalized (u, v) coordinates onto a shared source Image.
// HRepeat/VRepeat tile the image across the unit square and HOffset/VOffset
// shift it, both in units of one full image.
type Texture struct {
	Source  *Image
	HOffset float32
	VOffset float32
	HRepeat float32
	VRepeat float32
}

// NewTexture returns a texture that shows src exactly once.
func NewTexture(src *Image) Texture {
	return Texture{Source: src, HRepeat: 1, VRepeat: 1}
}

// Sample returns the color at (u, v) using the given filter.
func (t *Texture) Sample(u, v float32, f Filter) Color {
	if f == FilterBilinear {
		return t.SampleBilinear(u, v)
	}
	return t.SampleNearest(u, v)
}

// SampleNearest returns the texel covering (u, v).
func (t *Texture) SampleNearest(u, v float32) Color {
	src := t.Source
	x := wrap(src.widthf*(t.HRepeat*u+t.HOffset), src.widthf)
	y := wrap(src.heightf*(t.VRepeat*v+t.VOffset), src.heightf)
	return src.Get(clampIndex(x, src.width), clampIndex(y, src.height))
}

// SampleBilinear blends the four texels around (u, v). Coordinates wrap over
// Width-1 and Height-1 so that the right and bottom neighbours always exist.
func (t *Texture) SampleBilinear(u, v float32) Color {
	src := t.Source
	if src.width < 2 || src.height < 2 {
		return t.SampleNearest(u, v)
	}
	wf := src.widthf - 1
	hf := src.heightf - 1

	x := wrap(wf*(t.HRepeat*u+t.HOffset), wf)
	y := wrap(hf*(t.VRepeat*v+t.VOffset), hf)

	x0 := clampIndex(x, src.width-1)
	y0 := clampIndex(y, src.height-1)
	tx := x - float32(x0)
	ty := y - float32(y0)

	q11 := src.Get(x0, y0)
	q21 := src.Get(x0+1, y0)
	q12 := src.Get(x0, y0+1)
	q22 := src.Get(x0+1, y0+1)

	top := q11.Lerp(q21, tx)
	bottom := q12.Lerp(q22, tx)
	return top.Lerp(bottom, ty)
}

// wrap reduces v into [0, m).
func wrap(v, m float32) float32 {
	v = math32.Mod(v, m)
	if v < 0 {
		v += m
	}
	return v
}

// clampIndex truncates v to an index in [0, n). Rounding in wrap can land
// exactly on m, and NaN coordinates collapse to 0.
func clampIndex(v float32, n int) int {
	if !(v >= 0) {
		return 0
	}
	i := int(v)
	if i >= n {
		return n - 1
	}
	return i
}
