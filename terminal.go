package modalprompt

import (
	"bufio"
	"io"
	"os"

	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// terminalInterface abstracts the terminal a TerminalHost reads keys from.
//
// Implementations:
//   - realTerminal: go-tty input with golang.org/x/term raw mode
//   - streamTerminal: any io.Reader, for pipes
//   - mockTerminal: scripted input for tests
type terminalInterface interface {
	SetRaw() error                        // Enter raw mode for immediate key processing
	Restore() error                       // Restore original terminal settings
	Size() (width, height int, err error) // Terminal dimensions with safe fallbacks
	ReadRune() (rune, int, error)         // Read a single Unicode character from input
	Buffered() bool                       // Whether more input is already waiting
	Close() error                         // Release resources; safe to call twice
}

// realTerminal reads keys from the controlling terminal.
//
// The closed flag guards against the double-close panic go-tty has on
// Windows, and Size falls back to 80x24 when detection fails.
type realTerminal struct {
	tty           *tty.TTY
	closed        bool
	stdinFd       int
	originalState *term.State
}

func newRealTerminal() (*realTerminal, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, err
	}
	return &realTerminal{
		tty:     t,
		stdinFd: int(os.Stdin.Fd()),
	}, nil
}

func (t *realTerminal) SetRaw() error {
	if !term.IsTerminal(t.stdinFd) {
		return nil
	}
	state, err := term.GetState(t.stdinFd)
	if err != nil {
		return err
	}
	t.originalState = state
	_, err = term.MakeRaw(t.stdinFd)
	return err
}

func (t *realTerminal) Restore() error {
	if t.originalState == nil || !term.IsTerminal(t.stdinFd) {
		return nil
	}
	err := term.Restore(t.stdinFd, t.originalState)
	// SetRaw captures a fresh baseline next time.
	t.originalState = nil
	return err
}

func (t *realTerminal) Size() (width, height int, err error) {
	w, h, err := t.tty.Size()
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24, err
	}
	return w, h, nil
}

func (t *realTerminal) ReadRune() (rune, int, error) {
	r, err := t.tty.ReadRune()
	if err != nil {
		return 0, 0, err
	}
	return r, 1, nil
}

func (t *realTerminal) Buffered() bool {
	return t.tty.Buffered()
}

func (t *realTerminal) Close() error {
	if t.closed || t.tty == nil {
		return nil
	}
	t.closed = true
	return t.tty.Close()
}

// streamTerminal reads keys from a plain reader. Raw mode is a no-op and
// the size is fixed, which is what piped input needs.
type streamTerminal struct {
	reader *bufio.Reader
	closer io.Closer
	closed bool
}

func newStreamTerminal(in io.Reader) *streamTerminal {
	st := &streamTerminal{reader: bufio.NewReader(in)}
	if c, ok := in.(io.Closer); ok && in != os.Stdin {
		st.closer = c
	}
	return st
}

func (s *streamTerminal) SetRaw() error  { return nil }
func (s *streamTerminal) Restore() error { return nil }

func (s *streamTerminal) Size() (width, height int, err error) {
	return 80, 24, nil
}

func (s *streamTerminal) ReadRune() (rune, int, error) {
	return s.reader.ReadRune()
}

func (s *streamTerminal) Buffered() bool {
	return s.reader.Buffered() > 0
}

func (s *streamTerminal) Close() error {
	if s.closed || s.closer == nil {
		return nil
	}
	s.closed = true
	return s.closer.Close()
}
