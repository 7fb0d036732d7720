package raycaster

import "fmt"

// debugLog reports one frame's render statistics. Only called when the
// scene is in debug mode.
func (r *Renderer) debugLog(stats RenderStats) {
	Logger().Debug("render",
		"columns", stats.Columns,
		"hits", stats.Hits,
		"bands", stats.Bands,
		"planes", len(r.planes),
		"filter", r.cfg.Filter.String(),
		"duration", stats.Duration)
}

// debugCheckDisposed panics with a descriptive message when a removed entity
// is used in a scene operation. Only called in debug mode.
func debugCheckDisposed(e *Entity, op string) {
	if e.disposed {
		panic(fmt.Sprintf("raycaster debug: %s on removed entity %q", op, e.Name))
	}
}

// debugMaxTreeDepth is the hierarchy depth above which SetParent warns.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(e *Entity) {
	depth := 0
	for p := e; p != nil; p = p.Parent() {
		depth++
		if depth > debugMaxTreeDepth {
			Logger().Warn("entity hierarchy too deep", "entity", e.Name, "threshold", debugMaxTreeDepth)
			return
		}
	}
}

// debugMaxChildCount is the child count above which SetParent warns.
const debugMaxChildCount = 1000

func debugCheckChildCount(e *Entity) {
	if len(e.children) > debugMaxChildCount {
		Logger().Warn("entity has many children",
			"entity", e.Name, "children", len(e.children), "threshold", debugMaxChildCount)
	}
}
