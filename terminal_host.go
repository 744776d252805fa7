package modalprompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"unicode"

	"github.com/mattn/go-colorable"
)

// Common errors
var (
	// ErrEOF is returned when the user presses Ctrl+D on an empty input or
	// the input stream ends.
	ErrEOF = errors.New("EOF")
	// ErrInterrupted is returned when the user presses Ctrl+C.
	ErrInterrupted = errors.New("interrupted")
	// ErrDismissed is returned by Ask when the prompt closed without a
	// confirmed value.
	ErrDismissed = errors.New("dismissed")
	// ErrHostBusy is returned by Mount while another dialog is mounted.
	ErrHostBusy = errors.New("modalprompt: host already shows a dialog")
	// ErrHostClosed is returned when using a host after Close.
	ErrHostClosed = errors.New("modalprompt: host closed")
	// ErrNotMounted is returned by Run for a dialog mounted on another host.
	ErrNotMounted = errors.New("modalprompt: dialog is not mounted on this host")
)

// Bracketed paste mode switches (DECSET/DECRST 2004).
const (
	bracketedPasteOn  = "\x1b[?2004h"
	bracketedPasteOff = "\x1b[?2004l"
)

// HostOption configures a TerminalHost.
type HostOption func(*TerminalHost)

// WithTheme sets the colors used to draw dialogs.
func WithTheme(theme *Theme) HostOption {
	return func(h *TerminalHost) {
		h.theme = theme
	}
}

// WithKeyMap sets the key bindings used to decode terminal input.
func WithKeyMap(keyMap *KeyMap) HostOption {
	return func(h *TerminalHost) {
		h.keyMap = keyMap
	}
}

// WithHistory enables Up/Down recall of earlier values in single-line
// dialogs. The history is loaded when the host is created, extended with
// every confirmed value, and saved when the host is closed.
func WithHistory(history *History) HostOption {
	return func(h *TerminalHost) {
		h.history = history
	}
}

// WithOutput sets where dialogs are drawn (default: stdout).
func WithOutput(w io.Writer) HostOption {
	return func(h *TerminalHost) {
		h.output = w
	}
}

// WithHostWarnings sets where non-fatal host warnings are written
// (default: stderr).
func WithHostWarnings(w io.Writer) HostOption {
	return func(h *TerminalHost) {
		h.warnings = w
	}
}

// TerminalHost mounts dialogs on an ANSI terminal.
//
// It owns the terminal for its lifetime: Run puts it in raw mode, decodes
// key presses, passes them to the dialog's listeners and applies the
// default editing action of every key whose default was not prevented.
// A TerminalHost shows one dialog at a time and must be used from a single
// goroutine.
type TerminalHost struct {
	terminal terminalInterface
	output   io.Writer
	warnings io.Writer
	renderer *renderer
	keyMap   *KeyMap
	theme    *Theme
	history  *History
	surface  *terminalSurface
	closed   bool
}

// NewTerminalHost creates a host on the controlling terminal.
//
// Example:
//
//	host, err := modalprompt.NewTerminalHost(modalprompt.WithTheme(modalprompt.ThemeDark))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer host.Close()
func NewTerminalHost(opts ...HostOption) (*TerminalHost, error) {
	terminal, err := newRealTerminal()
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal: %w", err)
	}
	var output io.Writer = os.Stdout
	if runtime.GOOS == "windows" {
		output = colorable.NewColorableStdout()
	}
	h, err := newTerminalHost(terminal, output, opts...)
	if err != nil {
		if closeErr := terminal.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close terminal: %v\n", closeErr)
		}
		return nil, err
	}
	return h, nil
}

// NewStreamHost creates a host that reads keys from in and draws on out.
// Raw mode is not touched, which suits piped input.
func NewStreamHost(in io.Reader, out io.Writer, opts ...HostOption) (*TerminalHost, error) {
	return newTerminalHost(newStreamTerminal(in), out, opts...)
}

func newTerminalHost(terminal terminalInterface, output io.Writer, opts ...HostOption) (*TerminalHost, error) {
	h := &TerminalHost{
		terminal: terminal,
		output:   output,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.output == nil {
		h.output = io.Discard
	}
	if h.warnings == nil {
		h.warnings = os.Stderr
	}
	if h.theme == nil {
		h.theme = ThemeDefault
	}
	if h.keyMap == nil {
		h.keyMap = NewDefaultKeyMap()
	}
	if h.history != nil {
		if err := h.history.Load(); err != nil {
			return nil, fmt.Errorf("failed to load history: %w", err)
		}
	}
	h.renderer = newRenderer(h.output, h.theme)
	return h, nil
}

// Mount implements Host.
func (h *TerminalHost) Mount(title string) (Container, error) {
	if h.closed {
		return nil, ErrHostClosed
	}
	if h.surface != nil {
		return nil, ErrHostBusy
	}
	h.surface = &terminalSurface{
		host:   h,
		title:  title,
		buffer: newEditBuffer(""),
	}
	return h.surface, nil
}

// Run opens d on this host if it is not open yet and processes key presses
// until the dialog closes.
//
// Run returns nil when the dialog was confirmed or dismissed with Esc; use
// d.Submitted to tell the two apart. Ctrl+C dismisses the dialog and
// returns ErrInterrupted; Ctrl+D on an empty input and the end of input
// dismiss it and return ErrEOF. When ctx is cancelled the dialog is
// dismissed and ctx.Err() is returned.
func (h *TerminalHost) Run(ctx context.Context, d *Dialog) error {
	if h.closed {
		return ErrHostClosed
	}
	if !d.IsOpen() {
		if err := d.Open(); err != nil {
			return err
		}
	}
	s := h.surface
	if s == nil || d.container != Container(s) {
		return ErrNotMounted
	}

	if err := h.terminal.SetRaw(); err != nil {
		h.dismiss(d)
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	// Pasted text arrives between paste markers only while bracketed
	// paste mode is on.
	fmt.Fprint(h.output, bracketedPasteOn)
	defer func() {
		fmt.Fprint(h.output, bracketedPasteOff)
		if err := h.terminal.Restore(); err != nil {
			fmt.Fprintf(h.warnings, "Warning: failed to exit raw mode: %v\n", err)
		}
	}()

	if err := h.render(s); err != nil {
		h.dismiss(d)
		return fmt.Errorf("failed to render dialog: %w", err)
	}

	reader := newKeyReader(h.terminal, h.keyMap)
	for !s.closed {
		select {
		case <-ctx.Done():
			h.dismiss(d)
			return ctx.Err()
		default:
		}

		ev, err := reader.next()
		if err != nil {
			h.dismiss(d)
			if errors.Is(err, io.EOF) {
				return ErrEOF
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if err := h.dispatch(d, s, ev); err != nil {
			return err
		}
		if s.closed {
			break
		}
		if err := h.render(s); err != nil {
			h.dismiss(d)
			return fmt.Errorf("failed to render dialog: %w", err)
		}
	}

	if d.Submitted() && h.history != nil {
		h.history.Add(d.Value())
	}
	return nil
}

// Ask shows a one-off dialog on this host and returns the confirmed value,
// or ErrDismissed when the dialog was closed without one.
func (h *TerminalHost) Ask(ctx context.Context, title string, opts ...Option) (string, error) {
	var value string
	d, err := New(h, ConsumerFunc(func(v string) {
		value = v
	}), title, opts...)
	if err != nil {
		return "", err
	}
	if err := h.Run(ctx, d); err != nil {
		return "", err
	}
	if !d.Submitted() {
		return "", ErrDismissed
	}
	return value, nil
}

// Ask shows a one-off dialog on the controlling terminal.
//
// Example:
//
//	name, err := modalprompt.Ask(ctx, "Branch name", modalprompt.WithDefault("main"))
//	if errors.Is(err, modalprompt.ErrDismissed) {
//		return nil
//	}
func Ask(ctx context.Context, title string, opts ...Option) (string, error) {
	h, err := NewTerminalHost()
	if err != nil {
		return "", err
	}
	defer func() {
		if err := h.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close terminal host: %v\n", err)
		}
	}()
	return h.Ask(ctx, title, opts...)
}

// Close releases the terminal and saves the history. A mounted surface is
// cleared first. Close is safe to call multiple times.
func (h *TerminalHost) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true

	if h.surface != nil {
		if err := h.surface.Empty(); err != nil {
			fmt.Fprintf(h.warnings, "Warning: failed to clear dialog: %v\n", err)
		}
	}
	fmt.Fprint(h.output, "\x1b[?25h") // Show cursor

	if h.history != nil {
		if err := h.history.Save(); err != nil {
			fmt.Fprintf(h.warnings, "Warning: failed to save history: %v\n", err)
		}
	}
	if h.terminal != nil {
		return h.terminal.Close()
	}
	return nil
}

// dispatch routes one key press. Host-level keys (interrupt, dismiss,
// focus) are handled here; everything else goes to the input surface.
func (h *TerminalHost) dispatch(d *Dialog, s *terminalSurface, ev *KeyEvent) error {
	// Control characters inside a paste are text, not shortcuts.
	composing := ev.IsComposing()
	switch {
	case composing:
	case ev.Ctrl && ev.Key == "c":
		h.dismiss(d)
		return ErrInterrupted
	case ev.Key == KeyEscape:
		h.dismiss(d)
		return nil
	case ev.Ctrl && ev.Key == "d" && len(s.buffer.runes) == 0:
		h.dismiss(d)
		return ErrEOF
	case ev.Key == KeyTab && s.onClick != nil:
		s.buttonFocused = !s.buttonFocused
		return nil
	}

	if s.buttonFocused {
		if !composing && (ev.Key == KeyEnter || ev.Key == " ") {
			s.onClick(&Event{})
			return nil
		}
		// Any other key goes back to the input.
		s.buttonFocused = false
	}
	s.keyDown(ev)
	return nil
}

func (h *TerminalHost) dismiss(d *Dialog) {
	if err := d.Close(); err != nil {
		fmt.Fprintf(h.warnings, "Warning: failed to close dialog: %v\n", err)
	}
}

func (h *TerminalHost) render(s *terminalSurface) error {
	// Size falls back to 80x24 on failure; the fallback is good enough.
	width, _, _ := h.terminal.Size()
	f := frame{
		title:         s.title,
		width:         width,
		text:          s.buffer.String(),
		cursor:        s.buffer.cursor,
		placeholder:   s.spec.Placeholder,
		buttonFocused: s.buttonFocused,
	}
	if s.onClick != nil {
		f.button = s.button
	}
	return h.renderer.render(f)
}

// terminalSurface is the Container of a dialog mounted on a TerminalHost.
type terminalSurface struct {
	host  *TerminalHost
	title string

	buffer    *editBuffer
	spec      InputSpec
	listeners InputListeners
	hasInput  bool

	button        string
	onClick       func(*Event)
	buttonFocused bool

	recall       []string
	historyIndex int
	draft        string

	closed bool
}

func (s *terminalSurface) AddInput(spec InputSpec, listeners InputListeners) error {
	if s.closed {
		return ErrHostClosed
	}
	if s.hasInput {
		return errors.New("modalprompt: surface already has an input")
	}
	s.hasInput = true
	s.spec = spec
	s.listeners = listeners
	s.buffer.set(spec.Value)
	if s.host.history != nil && !spec.MultiLine {
		s.recall = s.host.history.Entries()
	}
	s.historyIndex = len(s.recall)
	return nil
}

func (s *terminalSurface) AddButton(label string, onClick func(*Event)) error {
	if s.closed {
		return ErrHostClosed
	}
	if s.onClick != nil {
		return errors.New("modalprompt: surface already has a button")
	}
	s.button = label
	s.onClick = onClick
	return nil
}

// Empty clears the drawn dialog and frees the host for the next one.
func (s *terminalSurface) Empty() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.host.surface == s {
		s.host.surface = nil
	}
	return s.host.renderer.clear()
}

// keyDown delivers ev to the KeyDown listener and then, unless the surface
// closed or the default was prevented, applies the key's editing action.
func (s *terminalSurface) keyDown(ev *KeyEvent) {
	if !s.hasInput {
		return
	}
	if s.listeners.KeyDown != nil {
		s.listeners.KeyDown(ev)
	}
	if s.closed || ev.DefaultPrevented() {
		return
	}

	before := s.buffer.String()
	s.applyDefault(ev)
	if after := s.buffer.String(); after != before && s.listeners.Change != nil {
		s.listeners.Change(after)
	}
}

func (s *terminalSurface) applyDefault(ev *KeyEvent) {
	b := s.buffer

	if ev.Ctrl {
		switch ev.Key {
		case "a":
			b.cursor = b.lineStart()
		case "e":
			b.cursor = b.lineEnd()
		case "k":
			b.deleteToLineEnd()
		case "u":
			b.clear()
		case "w":
			b.deleteWordBack()
		case KeyArrowLeft:
			b.cursor = b.wordBoundary(-1)
		case KeyArrowRight:
			b.cursor = b.wordBoundary(1)
		}
		return
	}
	if ev.Alt {
		return
	}

	switch ev.Key {
	case KeyEnter:
		if s.spec.MultiLine {
			b.insert('\n')
		}
	case KeyTab:
		// Tabs only arrive as text inside a paste.
		if ev.IsComposing() {
			b.insert('\t')
		}
	case KeyBackspace:
		b.backspace()
	case KeyDelete:
		b.deleteForward()
	case KeyArrowLeft:
		b.left()
	case KeyArrowRight:
		b.right()
	case KeyHome:
		b.cursor = b.lineStart()
	case KeyEnd:
		b.cursor = b.lineEnd()
	case KeyArrowUp:
		if s.spec.MultiLine {
			b.up()
		} else {
			s.recallPrevious()
		}
	case KeyArrowDown:
		if s.spec.MultiLine {
			b.down()
		} else {
			s.recallNext()
		}
	default:
		runes := []rune(ev.Key)
		if len(runes) == 1 && unicode.IsPrint(runes[0]) {
			b.insert(runes[0])
		}
	}
}

func (s *terminalSurface) recallPrevious() {
	if s.historyIndex == 0 {
		return
	}
	if s.historyIndex == len(s.recall) {
		s.draft = s.buffer.String()
	}
	s.historyIndex--
	s.buffer.set(s.recall[s.historyIndex])
}

func (s *terminalSurface) recallNext() {
	if s.historyIndex >= len(s.recall) {
		return
	}
	s.historyIndex++
	if s.historyIndex == len(s.recall) {
		s.buffer.set(s.draft)
		return
	}
	s.buffer.set(s.recall[s.historyIndex])
}
