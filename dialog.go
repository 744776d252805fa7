package modalprompt

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrNoHost is returned by New when no Host is given.
	ErrNoHost = errors.New("modalprompt: host is required")
	// ErrNoConsumer is returned by New when no Consumer is given.
	ErrNoConsumer = errors.New("modalprompt: consumer is required")
	// ErrAlreadyOpen is returned when opening a dialog that is already open.
	ErrAlreadyOpen = errors.New("modalprompt: dialog already open")
	// ErrClosed is returned when opening a dialog that was closed. Dialogs
	// are never reused.
	ErrClosed = errors.New("modalprompt: dialog closed")
)

// State is the position of a Dialog in its confirmation state machine.
type State int

const (
	// StateEditing is the initial state: the user may still edit and confirm.
	StateEditing State = iota
	// StateSubmitted is terminal: the value was delivered to the consumer.
	StateSubmitted
	// StateDismissed is terminal: the dialog closed without a confirmation.
	StateDismissed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitted:
		return "submitted"
	case StateDismissed:
		return "dismissed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Dialog is a modal prompt that collects one string value.
//
// A Dialog is created per prompt, opened once, and discarded when closed.
// Its value reaches the consumer at most once, through whichever confirm
// path fires first: Enter in the input surface or a click on the Submit
// control of a multi-line dialog.
//
// Dialog instances are not thread-safe. All listeners run on the host's
// event loop; Open and Close must be called from the same goroutine.
type Dialog struct {
	config    Config
	host      Host
	consumer  Consumer
	container Container
	resolve   func(string)

	value     string
	opened    bool
	submitted bool
	closed    bool
}

// New creates a dialog that mounts itself on host and delivers the confirmed
// value to consumer.
//
// Example:
//
//	host, err := modalprompt.NewTerminalHost()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer host.Close()
//
//	d, err := modalprompt.New(host, modalprompt.ConsumerFunc(func(v string) {
//		fmt.Println("backup name:", v)
//	}), "Backup name", modalprompt.WithDefault("vault"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := host.Run(context.Background(), d); err != nil {
//		log.Fatal(err)
//	}
func New(host Host, consumer Consumer, title string, options ...Option) (*Dialog, error) {
	config := Config{
		Title: title,
	}
	for _, option := range options {
		option(&config)
	}
	return newFromConfig(host, consumer, config)
}

func newFromConfig(host Host, consumer Consumer, config Config) (*Dialog, error) {
	if host == nil {
		return nil, ErrNoHost
	}
	if consumer == nil {
		return nil, ErrNoConsumer
	}
	config.setDefaults()
	return &Dialog{
		config:   config,
		host:     host,
		consumer: consumer,
		value:    config.Default,
	}, nil
}

// Open mounts the dialog on its host and renders the input surface.
func (d *Dialog) Open() error {
	if d.closed {
		return ErrClosed
	}
	if d.opened {
		return ErrAlreadyOpen
	}
	container, err := d.host.Mount(d.config.Title)
	if err != nil {
		return fmt.Errorf("failed to mount dialog: %w", err)
	}
	d.opened = true
	d.container = container

	if err := d.Render(container); err != nil {
		if closeErr := d.Close(); closeErr != nil {
			fmt.Fprintf(d.config.Warnings, "Warning: failed to close dialog: %v\n", closeErr)
		}
		return fmt.Errorf("failed to render dialog: %w", err)
	}
	return nil
}

// OpenAndGetValue registers resolve as the continuation that receives the
// confirmed value, then opens the dialog.
//
// resolve is called once if the user confirms. If the dialog is dismissed
// instead, resolve is never called and no error is reported through it.
func (d *Dialog) OpenAndGetValue(resolve func(value string)) error {
	d.resolve = resolve
	return d.Open()
}

// Render builds the input surface inside c: a text area and a Submit
// control for multi-line dialogs, a single-line field otherwise. The edit
// buffer starts at the configured default.
func (d *Dialog) Render(c Container) error {
	d.value = d.config.Default

	spec := InputSpec{
		MultiLine:   d.config.MultiLine,
		Value:       d.value,
		Placeholder: d.config.Placeholder,
	}
	listeners := InputListeners{
		Change:  d.handleChange,
		KeyDown: d.handleKeyDown,
	}
	if err := c.AddInput(spec, listeners); err != nil {
		return err
	}

	// Plain Enter must stay usable for newlines on touch keyboards, so
	// multi-line dialogs always get an explicit confirm control.
	if d.config.MultiLine {
		if err := c.AddButton(d.config.SubmitLabel, d.handleSubmitClick); err != nil {
			return err
		}
	}
	return nil
}

// Close tears down the rendered surface. Closing a dialog that was not
// confirmed leaves it dismissed: the consumer and any registered
// continuation are not called. Close is safe to call multiple times.
func (d *Dialog) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if d.container == nil {
		return nil
	}
	c := d.container
	d.container = nil
	return c.Empty()
}

// Value returns the current content of the edit buffer.
func (d *Dialog) Value() string {
	return d.value
}

// Submitted reports whether the dialog was confirmed.
func (d *Dialog) Submitted() bool {
	return d.submitted
}

// IsOpen reports whether the dialog is mounted and accepting input.
func (d *Dialog) IsOpen() bool {
	return d.opened && !d.closed
}

// State returns the current state of the dialog.
func (d *Dialog) State() State {
	switch {
	case d.submitted:
		return StateSubmitted
	case d.closed:
		return StateDismissed
	default:
		return StateEditing
	}
}

// Config returns a copy of the dialog configuration.
func (d *Dialog) Config() Config {
	return d.config
}

func (d *Dialog) handleChange(value string) {
	if d.submitted || d.closed {
		return
	}
	d.value = value
}

// handleKeyDown decides whether a key press confirms the dialog.
func (d *Dialog) handleKeyDown(ev *KeyEvent) {
	if d.submitted || d.closed || ev == nil {
		return
	}
	// Enter while picking an IME candidate selects the candidate.
	if ev.IsComposing() {
		return
	}
	if ev.Key != KeyEnter {
		return
	}
	if !d.config.MultiLine {
		d.resolveAndClose(&ev.Event)
		return
	}

	switch d.config.Platform {
	case PlatformTouch:
		// On-screen keyboards rarely offer a separate newline key: Enter
		// becomes a no-op and only the Submit control confirms.
		ev.PreventDefault()
	default:
		if ev.Shift {
			return
		}
		d.resolveAndClose(&ev.Event)
	}
}

func (d *Dialog) handleSubmitClick(ev *Event) {
	if d.submitted || d.closed {
		return
	}
	d.resolveAndClose(ev)
}

func (d *Dialog) resolveAndClose(ev *Event) {
	if d.submitted {
		return
	}
	if ev != nil {
		ev.PreventDefault()
	}
	d.submitted = true

	value := d.value
	d.consumer.Consume(value)
	if d.resolve != nil {
		d.resolve(value)
	}

	if err := d.Close(); err != nil {
		fmt.Fprintf(d.config.Warnings, "Warning: failed to close dialog: %v\n", err)
	}
}
