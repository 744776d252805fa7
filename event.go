package modalprompt

// Key names reported in KeyEvent.Key. Printable keys use the character
// itself ("a", " ", "é"); Ctrl chords use the lower-case letter with Ctrl set.
const (
	KeyEnter      = "Enter"
	KeyEscape     = "Escape"
	KeyTab        = "Tab"
	KeyBackspace  = "Backspace"
	KeyDelete     = "Delete"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyHome       = "Home"
	KeyEnd        = "End"
)

// KeyCodeIMEProcess is the legacy key code some input methods report for
// every key press that belongs to a composition session.
const KeyCodeIMEProcess = 229

// Event is an input event whose default action a listener may suppress.
type Event struct {
	prevented bool
}

// PreventDefault suppresses the host's default action for the event,
// such as inserting a newline for Enter in a text area.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

// KeyEvent is a key press delivered to an input surface.
type KeyEvent struct {
	Event

	Key   string // key name, see the Key constants
	Shift bool
	Alt   bool
	Ctrl  bool

	// Composing is set for keys that are part of an in-progress text
	// composition: IME candidate selection, or a bracketed paste on
	// terminals.
	Composing bool
	// KeyCode carries a platform key code when the host has one.
	// Zero means unknown.
	KeyCode int
}

// IsComposing reports whether the event belongs to a composition session,
// either flagged directly or through the legacy IME key code.
func (e *KeyEvent) IsComposing() bool {
	return e.Composing || e.KeyCode == KeyCodeIMEProcess
}

// String returns a chord description such as "shift+Enter" or "ctrl+c".
func (e *KeyEvent) String() string {
	s := e.Key
	if e.Shift {
		s = "shift+" + s
	}
	if e.Alt {
		s = "alt+" + s
	}
	if e.Ctrl {
		s = "ctrl+" + s
	}
	return s
}
