package display

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay draws the current FPS and TPS in the top-left corner. The text
// is refreshed every ~0.5 seconds into a small cached image.
type fpsOverlay struct {
	img     *ebiten.Image
	updated time.Time
	op      ebiten.DrawImageOptions
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if o.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		o.img = ebiten.NewImage(100, 32)
	}
	if now := time.Now(); now.Sub(o.updated) >= 500*time.Millisecond {
		o.updated = now
		o.img.Clear()
		// Semi-transparent background for readability
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	screen.DrawImage(o.img, &o.op)
}
