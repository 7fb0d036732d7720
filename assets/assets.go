// Package assets decodes image files into raycaster images. PNG, JPEG and
// BMP are supported. A Loader caches decoded images so that every texture
// naming the same file shares one source image.
package assets

import (
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp" // register BMP with image.Decode

	"github.com/phanxgames/raycaster"
)

// Decode reads and decodes the image file at path.
func Decode(path string) (*raycaster.Image, error) {
	src, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	img, err := raycaster.ImageFrom(src)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Loader loads images relative to Root and caches them by name. It is safe
// for concurrent use.
type Loader struct {
	// Root is the directory names are resolved against.
	Root string
	// MaxSize, when positive, downscales images whose width or height
	// exceeds it, keeping the aspect ratio.
	MaxSize int

	mu    sync.Mutex
	cache map[string]*raycaster.Image
}

// NewLoader returns a loader reading from root.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, cache: make(map[string]*raycaster.Image)}
}

// Load returns the image with the given name, decoding it on first use.
func (l *Loader) Load(name string) (*raycaster.Image, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cache == nil {
		l.cache = make(map[string]*raycaster.Image)
	}
	if img, ok := l.cache[name]; ok {
		return img, nil
	}

	path := filepath.Join(l.Root, filepath.FromSlash(name))
	src, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	src = fit(src, l.MaxSize)
	img, err := raycaster.ImageFrom(src)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	raycaster.Logger().Debug("asset loaded", "name", name, "width", img.Width(), "height", img.Height())
	l.cache[name] = img
	return img, nil
}

// Len returns the number of cached images.
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cache)
}

// fit downscales src so neither side exceeds maxSize.
func fit(src image.Image, maxSize int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return src
	}
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	return transform.Resize(src, w, h, transform.Linear)
}

// Resize scales img to width x height with bilinear resampling.
func Resize(img *raycaster.Image, width, height int) (*raycaster.Image, error) {
	return raycaster.ImageFrom(transform.Resize(img, width, height, transform.Linear))
}
