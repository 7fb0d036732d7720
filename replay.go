package raycaster

import (
	"encoding/json"
	"fmt"
)

// replayStep is a single action in a replay script.
type replayStep struct {
	Action string  `json:"action"`
	Keys   []Key   `json:"keys,omitempty"`
	Label  string  `json:"label,omitempty"`
	DX     float32 `json:"dx,omitempty"`
	DY     float32 `json:"dy,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// replayScript is the top-level JSON structure for a replay script.
type replayScript struct {
	Steps []replayStep `json:"steps"`
}

// Replay turns a scripted sequence of input actions into one Input snapshot
// per frame, for deterministic headless runs and visual tests. Steps run one
// per frame:
//
//	{"steps": [
//	  {"action": "hold", "keys": ["W"]},
//	  {"action": "wait", "frames": 30},
//	  {"action": "release", "keys": ["W"]},
//	  {"action": "mouse", "dx": 40},
//	  {"action": "tap", "keys": ["Space"]},
//	  {"action": "screenshot", "label": "after-jump"}
//	]}
type Replay struct {
	steps     []replayStep
	cursor    int
	waitCount int
	held      KeySet
	taps      []Key
	done      bool
}

// LoadReplay parses a JSON replay script.
func LoadReplay(jsonData []byte) (*Replay, error) {
	var script replayScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse replay: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse replay: no steps")
	}
	return &Replay{steps: script.Steps}, nil
}

// Done reports whether every step has been executed.
func (r *Replay) Done() bool { return r.done }

// Next advances the replay by one frame and returns that frame's input.
// Screenshot steps are queued on sys. After the last step Next keeps
// returning the held keys with no presses.
func (r *Replay) Next(sys *System) Input {
	var in Input
	for _, k := range r.taps {
		r.held.Remove(k)
	}
	r.taps = r.taps[:0]

	switch {
	case r.done:
	case r.waitCount > 0:
		r.waitCount--
	case r.cursor >= len(r.steps):
		r.done = true
	default:
		st := r.steps[r.cursor]
		r.cursor++
		r.apply(st, &in, sys)
		if r.cursor >= len(r.steps) && r.waitCount == 0 {
			r.done = true
		}
	}

	in.Held = r.held
	return in
}

func (r *Replay) apply(st replayStep, in *Input, sys *System) {
	switch st.Action {
	case "hold":
		for _, k := range st.Keys {
			if !r.held.Has(k) {
				in.Pressed.Add(k)
			}
			r.held.Add(k)
		}
	case "release":
		for _, k := range st.Keys {
			r.held.Remove(k)
		}
	case "tap":
		for _, k := range st.Keys {
			in.Pressed.Add(k)
			if !r.held.Has(k) {
				r.held.Add(k)
				r.taps = append(r.taps, k)
			}
		}
	case "mouse":
		in.MouseDX = st.DX
		in.MouseDY = st.DY
	case "screenshot":
		if sys != nil {
			sys.Screenshot(st.Label)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		Logger().Warn("replay: unknown action", "action", st.Action, "step", r.cursor-1)
	}
}
