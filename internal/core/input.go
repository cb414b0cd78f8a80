package core

import "time"

// Key identifies a physical key, abstracted from the terminal library.
// Printable characters arrive as KeyRune with the character in Event.Rune.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyRune
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Escape"
	case KeyBackspace:
		return "Backspace"
	case KeyRune:
		return "Rune"
	default:
		return "Unknown"
	}
}

// EventKind classifies a discrete input event.
type EventKind int

const (
	EventQuit  EventKind = iota // Window closed or Ctrl+C
	EventKey                    // Key pressed
	EventClick                  // Pointer button pressed
)

// Event is one discrete input event delivered during a frame.
type Event struct {
	Kind EventKind
	Key  Key  // Set for EventKey
	Rune rune // Set when Key is KeyRune
	Pos  Vec  // Set for EventClick, in world pixels
}

// KeyEvent builds a key-down event for a non-printable key.
func KeyEvent(k Key) Event {
	return Event{Kind: EventKey, Key: k}
}

// RuneEvent builds a key-down event for a printable character.
func RuneEvent(r rune) Event {
	return Event{Kind: EventKey, Key: KeyRune, Rune: r}
}

// ClickEvent builds a pointer click at world position (x, y).
func ClickEvent(x, y float64) Event {
	return Event{Kind: EventClick, Pos: Vec{X: x, Y: y}}
}

// QuitEvent builds a quit request.
func QuitEvent() Event {
	return Event{Kind: EventQuit}
}

// IsRune reports whether the event is a key-down of the given character.
func (e Event) IsRune(r rune) bool {
	return e.Kind == EventKey && e.Key == KeyRune && e.Rune == r
}

// IsKey reports whether the event is a key-down of the given key.
func (e Event) IsKey(k Key) bool {
	return e.Kind == EventKey && e.Key == k
}

// InputFrame represents the input for a single simulation tick.
// An empty frame (no events, nothing held, zero elapsed) is always valid.
type InputFrame struct {
	// Events is the queue of discrete events in arrival order.
	Events []Event

	// Held marks keys that are currently held down (steering).
	Held map[Key]bool

	// Elapsed is the wall time this frame represents. Zero means one
	// nominal tick at the configured rate.
	Elapsed time.Duration
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Held: make(map[Key]bool),
	}
}

// Push appends a discrete event to the frame.
func (f *InputFrame) Push(e Event) {
	f.Events = append(f.Events, e)
}

// Hold marks a key as held for this frame.
func (f *InputFrame) Hold(k Key) {
	if f.Held == nil {
		f.Held = make(map[Key]bool)
	}
	f.Held[k] = true
}

// Has returns true if the given key is held this frame.
func (f InputFrame) Has(k Key) bool {
	if f.Held == nil {
		return false
	}
	return f.Held[k]
}

// Quit returns true if any event in the frame is a quit request.
func (f InputFrame) Quit() bool {
	for _, e := range f.Events {
		if e.Kind == EventQuit {
			return true
		}
	}
	return false
}

// Clear resets events and held keys for the next frame.
func (f *InputFrame) Clear() {
	f.Events = f.Events[:0]
	for k := range f.Held {
		delete(f.Held, k)
	}
	f.Elapsed = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	clone.Events = append(clone.Events, f.Events...)
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	clone.Elapsed = f.Elapsed
	return clone
}
