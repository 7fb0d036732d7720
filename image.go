package raycaster

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
)

// maxImagePixels bounds a single allocation so that absurd resolutions fail
// with an error instead of exhausting memory.
const maxImagePixels = 1 << 28

// ErrInvalidSize is returned when an image is requested with a non-positive or
// oversized resolution.
var ErrInvalidSize = errors.New("raycaster: invalid image size")

// Image is a flat row-major pixel buffer. The renderer writes frames into one
// and textures sample from others. An Image used as a texture source is shared
// read-only by every Texture that points at it.
//
// Image implements image.Image so it can be handed to image/png directly.
type Image struct {
	pix    []Color
	width  int
	height int

	widthf, heightf float32
}

// NewImage allocates a zeroed width x height image.
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 || width > maxImagePixels/height {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Image{
		pix:     make([]Color, width*height),
		width:   width,
		height:  height,
		widthf:  float32(width),
		heightf: float32(height),
	}, nil
}

// ImageFrom copies an already-decoded image into a new Image. Decoding files
// is left to the caller (see the assets package).
func ImageFrom(src image.Image) (*Image, error) {
	b := src.Bounds()
	img, err := NewImage(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.pix[i] = ColorOf(src.At(x, y))
			i++
		}
	}
	return img, nil
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.width }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.height }

// Pix returns the underlying row-major buffer. Pixel (x, y) is at
// y*Width()+x.
func (img *Image) Pix() []Color { return img.pix }

// Get returns the pixel at (x, y). Coordinates must be in range.
func (img *Image) Get(x, y int) Color {
	return img.pix[y*img.width+x]
}

// Set writes the pixel at (x, y). Coordinates must be in range.
func (img *Image) Set(x, y int, c Color) {
	img.pix[y*img.width+x] = c
}

// Fill sets every pixel to c.
func (img *Image) Fill(c Color) {
	for i := range img.pix {
		img.pix[i] = c
	}
}

// Clear zeroes every pixel.
func (img *Image) Clear() {
	clear(img.pix)
}

// Bytes writes the image into dst as tightly packed R, G, B, A bytes
// (Width()*4 bytes per row), growing dst if needed, and returns it. This is
// the layout expected by image.RGBA and by Ebitengine's WritePixels.
func (img *Image) Bytes(dst []byte) []byte {
	n := len(img.pix) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, c := range img.pix {
		// 0xAARRGGBB -> R G B A
		binary.BigEndian.PutUint32(dst[i*4:], uint32(c)<<8|uint32(c)>>24)
	}
	return dst
}

// --- image.Image ---

// ColorModel implements image.Image.
func (img *Image) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image.
func (img *Image) Bounds() image.Rectangle { return image.Rect(0, 0, img.width, img.height) }

// At implements image.Image.
func (img *Image) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= img.width || y >= img.height {
		return Color(0)
	}
	return img.Get(x, y)
}
