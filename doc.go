// Package modalprompt provides a modal text-prompt dialog for Go programs.
//
// A Dialog collects one string value from the user and delivers it to a
// Consumer when the user confirms. The dialog is a small state machine: it
// is rendered by a Host into a Container, listens to the input surface's
// Change and KeyDown events, and confirms at most once. It never talks to a
// UI toolkit directly, so the same Dialog runs on the bundled terminal host,
// on the Bubble Tea host in the teahost package, or on a test double.
//
// Key Features:
//
//   - Single-line and multi-line prompts with a default value
//   - Desktop and touch Enter semantics, selected explicitly per dialog
//   - IME composition and bracketed paste never confirm a prompt
//   - Exactly-once delivery to the consumer, whichever confirm path fires
//   - Terminal host with themes, history recall and context cancellation
//
// Quick Start:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		"github.com/nao1215/modalprompt"
//	)
//
//	func main() {
//		name, err := modalprompt.Ask(context.Background(), "Project name",
//			modalprompt.WithDefault("demo"))
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Printf("Creating %s\n", name)
//	}
//
// Confirmation Rules:
//
// A single-line prompt confirms on Enter. A multi-line prompt renders a
// Submit control and follows the platform passed with WithPlatform:
//
//   - Desktop: Enter confirms, Shift+Enter inserts a newline
//   - Touch: Enter inserts nothing and does not confirm; only Submit confirms
//
// Key events that belong to a composition session (KeyEvent.Composing, or
// the legacy key code 229) are ignored by the dialog.
//
// Terminal Key Bindings:
//
//   - Enter: Confirm (or newline in touch multi-line prompts, see above)
//   - Shift+Enter / Alt+Enter: Newline in multi-line prompts
//   - Tab / Shift+Tab: Move focus between the input and Submit
//   - Esc: Dismiss the prompt
//   - Ctrl+C: Dismiss and return ErrInterrupted
//   - Ctrl+D: Dismiss and return ErrEOF when the input is empty
//   - Up/Down: History recall (single-line) or line moves (multi-line)
//   - Ctrl+A / Home, Ctrl+E / End, Ctrl+K, Ctrl+U, Ctrl+W, Ctrl+Left/Right
//
// Continuations:
//
// OpenAndGetValue registers a function that receives the confirmed value in
// addition to the consumer. A dismissed dialog never calls it. Blocking
// helpers such as TerminalHost.Ask report dismissal as ErrDismissed.
//
// Thread Safety:
//
// Dialog and TerminalHost instances are not thread-safe. Listeners run on
// the host's event loop and a dialog must be opened and closed from that
// same goroutine. Cancel a running terminal prompt through its context.
package modalprompt
