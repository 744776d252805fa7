package main

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"

	"github.com/nao1215/modalprompt/internal/config"
)

// valueWriter delivers a confirmed value to stdout, the clipboard or a file.
// The dialog does not look at consumer failures, so the error is kept for
// the command to report after the dialog closed.
type valueWriter struct {
	dest   string
	stdout io.Writer
	err    error
}

func newValueWriter(dest string, stdout io.Writer) *valueWriter {
	return &valueWriter{dest: dest, stdout: stdout}
}

// Consume implements modalprompt.Consumer.
func (w *valueWriter) Consume(value string) {
	switch w.dest {
	case "", config.OutputStdout:
		_, w.err = fmt.Fprintln(w.stdout, value)
	case config.OutputClipboard:
		w.err = clipboard.WriteAll(value)
	default:
		w.err = os.WriteFile(w.dest, []byte(value+"\n"), 0o600)
	}
}

// Err returns the error of the last delivery.
func (w *valueWriter) Err() error {
	return w.err
}
