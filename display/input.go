package display

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/raycaster"
)

// keyTable pairs every raycaster key with its Ebitengine key.
var keyTable = [...]struct {
	key raycaster.Key
	eb  ebiten.Key
}{
	{raycaster.KeyA, ebiten.KeyA}, {raycaster.KeyB, ebiten.KeyB},
	{raycaster.KeyC, ebiten.KeyC}, {raycaster.KeyD, ebiten.KeyD},
	{raycaster.KeyE, ebiten.KeyE}, {raycaster.KeyF, ebiten.KeyF},
	{raycaster.KeyG, ebiten.KeyG}, {raycaster.KeyH, ebiten.KeyH},
	{raycaster.KeyI, ebiten.KeyI}, {raycaster.KeyJ, ebiten.KeyJ},
	{raycaster.KeyK, ebiten.KeyK}, {raycaster.KeyL, ebiten.KeyL},
	{raycaster.KeyM, ebiten.KeyM}, {raycaster.KeyN, ebiten.KeyN},
	{raycaster.KeyO, ebiten.KeyO}, {raycaster.KeyP, ebiten.KeyP},
	{raycaster.KeyQ, ebiten.KeyQ}, {raycaster.KeyR, ebiten.KeyR},
	{raycaster.KeyS, ebiten.KeyS}, {raycaster.KeyT, ebiten.KeyT},
	{raycaster.KeyU, ebiten.KeyU}, {raycaster.KeyV, ebiten.KeyV},
	{raycaster.KeyW, ebiten.KeyW}, {raycaster.KeyX, ebiten.KeyX},
	{raycaster.KeyY, ebiten.KeyY}, {raycaster.KeyZ, ebiten.KeyZ},

	{raycaster.KeyDigit0, ebiten.KeyDigit0}, {raycaster.KeyDigit1, ebiten.KeyDigit1},
	{raycaster.KeyDigit2, ebiten.KeyDigit2}, {raycaster.KeyDigit3, ebiten.KeyDigit3},
	{raycaster.KeyDigit4, ebiten.KeyDigit4}, {raycaster.KeyDigit5, ebiten.KeyDigit5},
	{raycaster.KeyDigit6, ebiten.KeyDigit6}, {raycaster.KeyDigit7, ebiten.KeyDigit7},
	{raycaster.KeyDigit8, ebiten.KeyDigit8}, {raycaster.KeyDigit9, ebiten.KeyDigit9},

	{raycaster.KeyF1, ebiten.KeyF1}, {raycaster.KeyF2, ebiten.KeyF2},
	{raycaster.KeyF3, ebiten.KeyF3}, {raycaster.KeyF4, ebiten.KeyF4},
	{raycaster.KeyF5, ebiten.KeyF5}, {raycaster.KeyF6, ebiten.KeyF6},
	{raycaster.KeyF7, ebiten.KeyF7}, {raycaster.KeyF8, ebiten.KeyF8},
	{raycaster.KeyF9, ebiten.KeyF9}, {raycaster.KeyF10, ebiten.KeyF10},
	{raycaster.KeyF11, ebiten.KeyF11}, {raycaster.KeyF12, ebiten.KeyF12},

	{raycaster.KeySpace, ebiten.KeySpace},
	{raycaster.KeyEnter, ebiten.KeyEnter},
	{raycaster.KeyEscape, ebiten.KeyEscape},
	{raycaster.KeyTab, ebiten.KeyTab},
	{raycaster.KeyBackspace, ebiten.KeyBackspace},
	{raycaster.KeyArrowUp, ebiten.KeyArrowUp},
	{raycaster.KeyArrowDown, ebiten.KeyArrowDown},
	{raycaster.KeyArrowLeft, ebiten.KeyArrowLeft},
	{raycaster.KeyArrowRight, ebiten.KeyArrowRight},
	{raycaster.KeyShiftLeft, ebiten.KeyShiftLeft},
	{raycaster.KeyShiftRight, ebiten.KeyShiftRight},
	{raycaster.KeyControlLeft, ebiten.KeyControlLeft},
	{raycaster.KeyControlRight, ebiten.KeyControlRight},
	{raycaster.KeyAltLeft, ebiten.KeyAltLeft},
	{raycaster.KeyAltRight, ebiten.KeyAltRight},
	{raycaster.KeyMetaLeft, ebiten.KeyMetaLeft},
	{raycaster.KeyMetaRight, ebiten.KeyMetaRight},
}

var fromEbiten = func() map[ebiten.Key]raycaster.Key {
	m := make(map[ebiten.Key]raycaster.Key, len(keyTable))
	for _, p := range keyTable {
		m[p.eb] = p.key
	}
	return m
}()

// EbitenKey returns the Ebitengine key for k.
func EbitenKey(k raycaster.Key) (ebiten.Key, bool) {
	for _, p := range keyTable {
		if p.key == k {
			return p.eb, true
		}
	}
	return 0, false
}

// inputPoller builds one raycaster.Input per tick from Ebitengine state.
type inputPoller struct {
	keys     []ebiten.Key
	lastX    int
	lastY    int
	havePrev bool
}

// poll snapshots the keyboard and the cursor motion since the previous
// poll. The first poll reports no motion.
func (p *inputPoller) poll() raycaster.Input {
	var in raycaster.Input

	p.keys = ebiten.AppendPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		if rk, ok := fromEbiten[k]; ok {
			in.Held.Add(rk)
		}
	}
	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		if rk, ok := fromEbiten[k]; ok {
			in.Pressed.Add(rk)
		}
	}

	x, y := ebiten.CursorPosition()
	if p.havePrev {
		in.MouseDX = float32(x - p.lastX)
		in.MouseDY = float32(y - p.lastY)
	}
	p.lastX, p.lastY, p.havePrev = x, y, true
	return in
}

// resetMouse discards accumulated motion, e.g. after the cursor mode
// changes and the cursor jumps.
func (p *inputPoller) resetMouse() { p.havePrev = false }
