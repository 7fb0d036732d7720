package raycaster

import "image/color"

// Color is a packed 32-bit color laid out as 0xAARRGGBB. It is not
// premultiplied; every color the renderer writes is opaque, so the
// distinction only matters for the cleared (zero) background.
type Color uint32

// Named colors. All are opaque.
const (
	Black   = Color(0xFF000000)
	Gray    = Color(0xFF808080)
	White   = Color(0xFFFFFFFF)
	Red     = Color(0xFFFF0000)
	Green   = Color(0xFF00FF00)
	Blue    = Color(0xFF0000FF)
	Yellow  = Color(0xFFFFFF00)
	Cyan    = Color(0xFF00FFFF)
	Magenta = Color(0xFFFF00FF)
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 0xFF)
}

// RGBA returns a color with an explicit alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// ColorOf converts any image/color value to a Color.
func ColorOf(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA(n.R, n.G, n.B, n.A)
}

func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }
func (c Color) A() uint8 { return uint8(c >> 24) }

// Luma returns the Rec. 601 luminance of c.
func (c Color) Luma() uint8 {
	y := 0.299*float32(c.R()) + 0.587*float32(c.G()) + 0.114*float32(c.B())
	return uint8(min(y+0.5, 255))
}

// Lerp interpolates each channel from c (t=0) to o (t=1).
func (c Color) Lerp(o Color, t float32) Color {
	return RGBA(
		lerp8(c.R(), o.R(), t),
		lerp8(c.G(), o.G(), t),
		lerp8(c.B(), o.B(), t),
		lerp8(c.A(), o.A(), t),
	)
}

func lerp8(a, b uint8, t float32) uint8 {
	v := float32(a) + (float32(b)-float32(a))*t + 0.5
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}.RGBA()
}
