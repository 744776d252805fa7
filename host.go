package modalprompt

// Host mounts modal surfaces for a Dialog.
//
// A Host is the adapter between the dialog state machine and a concrete UI
// runtime. The dialog never inherits host behavior; it asks the host for a
// titled Container and renders its input surface into it. TerminalHost and
// the teahost package are the two runtimes shipped with this module; tests
// use a recording host.
type Host interface {
	// Mount shows a titled modal and returns its content area.
	Mount(title string) (Container, error)
}

// Container is the content area of a mounted modal.
//
// Listeners registered through AddInput and AddButton are invoked by the
// host from its event loop, one event at a time, in the order the
// underlying input arrived.
type Container interface {
	// AddInput adds a text input surface. The host calls listeners.Change
	// after every edit with the full current text and listeners.KeyDown
	// before applying a key's default action.
	AddInput(spec InputSpec, listeners InputListeners) error
	// AddButton adds a clickable action control.
	AddButton(label string, onClick func(*Event)) error
	// Empty tears down the rendered content and unmounts the modal.
	Empty() error
}

// InputSpec describes the input surface a Dialog asks its Container for.
type InputSpec struct {
	MultiLine   bool   // text area instead of a single-line field
	Value       string // initial text
	Placeholder string // shown while the text is empty
}

// InputListeners are the callbacks a Container invokes for its input surface.
type InputListeners struct {
	Change  func(value string)
	KeyDown func(ev *KeyEvent)
}

// Consumer receives the value of a confirmed prompt.
//
// Consume is called once, synchronously, from inside the event handler that
// confirmed the prompt. The dialog neither waits for nor inspects the
// outcome: a consumer doing slow or fallible work should hand the value off
// and report its own errors.
type Consumer interface {
	Consume(value string)
}

// ConsumerFunc adapts an ordinary function to the Consumer interface.
type ConsumerFunc func(value string)

// Consume calls f(value).
func (f ConsumerFunc) Consume(value string) {
	f(value)
}
