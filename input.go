package raycaster

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Key identifies a keyboard key. Names follow Ebitengine's key names so the
// display layer can map them one to one.
type Key uint8

const (
	KeyA Key = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyDigit0
	KeyDigit1
	KeyDigit2
	KeyDigit3
	KeyDigit4
	KeyDigit5
	KeyDigit6
	KeyDigit7
	KeyDigit8
	KeyDigit9
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyShiftLeft
	KeyShiftRight
	KeyControlLeft
	KeyControlRight
	KeyAltLeft
	KeyAltRight
	KeyMetaLeft
	KeyMetaRight

	KeyMax = KeyMetaRight
)

// ErrUnknownKey is returned when a key name cannot be parsed.
var ErrUnknownKey = errors.New("raycaster: unknown key")

var keyNames = func() [KeyMax + 1]string {
	var n [KeyMax + 1]string
	for k := KeyA; k <= KeyZ; k++ {
		n[k] = string(rune('A' + k - KeyA))
	}
	for k := KeyDigit0; k <= KeyDigit9; k++ {
		n[k] = fmt.Sprintf("Digit%d", int(k-KeyDigit0))
	}
	for k := KeyF1; k <= KeyF12; k++ {
		n[k] = fmt.Sprintf("F%d", int(k-KeyF1)+1)
	}
	rest := []string{
		"Space", "Enter", "Escape", "Tab", "Backspace",
		"ArrowUp", "ArrowDown", "ArrowLeft", "ArrowRight",
		"ShiftLeft", "ShiftRight", "ControlLeft", "ControlRight",
		"AltLeft", "AltRight", "MetaLeft", "MetaRight",
	}
	for i, name := range rest {
		n[KeySpace+Key(i)] = name
	}
	return n
}()

// String returns the key name, e.g. "W" or "ArrowUp".
func (k Key) String() string {
	if k > KeyMax {
		return fmt.Sprintf("Key(%d)", uint8(k))
	}
	return keyNames[k]
}

// ParseKey returns the key with the given name. Matching ignores case.
func ParseKey(name string) (Key, error) {
	for k, n := range keyNames {
		if strings.EqualFold(n, name) {
			return Key(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	if k > KeyMax {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKey, uint8(k))
	}
	return []byte(keyNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// KeySet is a set of keys.
type KeySet [2]uint64

// Add inserts k. Unknown keys are ignored.
func (s *KeySet) Add(k Key) {
	if k <= KeyMax {
		s[k>>6] |= 1 << (k & 63)
	}
}

// Remove deletes k.
func (s *KeySet) Remove(k Key) {
	if k <= KeyMax {
		s[k>>6] &^= 1 << (k & 63)
	}
}

// Has reports whether k is in the set.
func (s KeySet) Has(k Key) bool { return k <= KeyMax && s[k>>6]&(1<<(k&63)) != 0 }

// Len returns the number of keys in the set.
func (s KeySet) Len() int { return bits.OnesCount64(s[0]) + bits.OnesCount64(s[1]) }

// Keys returns the members in ascending order.
func (s KeySet) Keys() []Key {
	var out []Key
	for k := Key(0); k <= KeyMax; k++ {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// Input is one frame's input snapshot: keys held down, keys that went down
// this frame and the relative mouse motion since the previous frame. It is a
// plain value and never changes while the scene updates.
type Input struct {
	Held    KeySet
	Pressed KeySet
	// MouseDX and MouseDY are the cursor motion in pixels since the last
	// frame. Positive X is to the right.
	MouseDX float32
	MouseDY float32
}

// NewInput builds a snapshot from key lists.
func NewInput(held, pressed []Key, dx, dy float32) Input {
	in := Input{MouseDX: dx, MouseDY: dy}
	for _, k := range held {
		in.Held.Add(k)
	}
	for _, k := range pressed {
		in.Pressed.Add(k)
		in.Held.Add(k)
	}
	return in
}

// IsKeyDown reports whether k is held.
func (in *Input) IsKeyDown(k Key) bool { return in.Held.Has(k) }

// WasKeyPressed reports whether k went down this frame.
func (in *Input) WasKeyPressed(k Key) bool { return in.Pressed.Has(k) }

// MouseDelta returns the mouse motion as a vector.
func (in *Input) MouseDelta() Vector { return Vector{in.MouseDX, in.MouseDY} }

// --- Modifiers ---

// KeyModifiers is a bitmask of modifier keys.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // either Shift key
	ModCtrl                           // either Control key
	ModAlt                            // either Alt / Option key
	ModMeta                           // either Meta / Command / Windows key
)

// Modifiers returns the held modifier keys.
func (in *Input) Modifiers() KeyModifiers {
	var m KeyModifiers
	if in.IsKeyDown(KeyShiftLeft) || in.IsKeyDown(KeyShiftRight) {
		m |= ModShift
	}
	if in.IsKeyDown(KeyControlLeft) || in.IsKeyDown(KeyControlRight) {
		m |= ModCtrl
	}
	if in.IsKeyDown(KeyAltLeft) || in.IsKeyDown(KeyAltRight) {
		m |= ModAlt
	}
	if in.IsKeyDown(KeyMetaLeft) || in.IsKeyDown(KeyMetaRight) {
		m |= ModMeta
	}
	return m
}
