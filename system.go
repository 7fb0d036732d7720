package raycaster

import "fmt"

// RequestKind identifies a deferred system-level side effect.
type RequestKind uint8

const (
	RequestResolution   RequestKind = iota // change the render resolution
	RequestFullscreen                      // enter or leave fullscreen
	RequestCaptureMouse                    // capture or release the cursor
	RequestTitle                           // set the window title
	RequestVSync                           // enable or disable vsync
	RequestScreenshot                      // save the next presented frame
	RequestExit                            // stop the frame loop
)

func (k RequestKind) String() string {
	switch k {
	case RequestResolution:
		return "resolution"
	case RequestFullscreen:
		return "fullscreen"
	case RequestCaptureMouse:
		return "capture-mouse"
	case RequestTitle:
		return "title"
	case RequestVSync:
		return "vsync"
	case RequestScreenshot:
		return "screenshot"
	case RequestExit:
		return "exit"
	default:
		return fmt.Sprintf("RequestKind(%d)", uint8(k))
	}
}

// Request is one queued side effect. Only the fields relevant to Kind are
// set.
type Request struct {
	Kind    RequestKind
	Width   int
	Height  int
	Enabled bool
	// Text is the title for RequestTitle and the label for
	// RequestScreenshot.
	Text string
}

// System is the queue through which scripts ask the engine for side effects.
// Nothing runs synchronously: the engine drains the queue once per frame.
type System struct {
	requests []Request
	exit     bool
}

func (s *System) push(r Request) { s.requests = append(s.requests, r) }

// SetResolution asks for a new render resolution.
func (s *System) SetResolution(width, height int) {
	s.push(Request{Kind: RequestResolution, Width: width, Height: height})
}

// SetFullscreen asks to enter or leave fullscreen.
func (s *System) SetFullscreen(on bool) {
	s.push(Request{Kind: RequestFullscreen, Enabled: on})
}

// SetCaptureMouse asks to capture (hide and lock) or release the cursor.
func (s *System) SetCaptureMouse(on bool) {
	s.push(Request{Kind: RequestCaptureMouse, Enabled: on})
}

// SetTitle asks for a new window title.
func (s *System) SetTitle(title string) {
	s.push(Request{Kind: RequestTitle, Text: title})
}

// SetVSync asks to enable or disable vsync.
func (s *System) SetVSync(on bool) {
	s.push(Request{Kind: RequestVSync, Enabled: on})
}

// Screenshot asks for the next rendered frame to be saved as a PNG.
func (s *System) Screenshot(label string) {
	s.push(Request{Kind: RequestScreenshot, Text: label})
}

// Exit asks the frame loop to stop after the current frame.
func (s *System) Exit() {
	s.exit = true
	s.push(Request{Kind: RequestExit})
}

// ExitRequested reports whether Exit has been called.
func (s *System) ExitRequested() bool { return s.exit }

// Pending returns the number of queued requests.
func (s *System) Pending() int { return len(s.requests) }

// Drain appends every queued request to dst in submission order, empties the
// queue and returns the extended slice.
func (s *System) Drain(dst []Request) []Request {
	dst = append(dst, s.requests...)
	clear(s.requests)
	s.requests = s.requests[:0]
	return dst
}
