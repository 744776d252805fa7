package modalprompt

import (
	"io"
	"os"
)

// Default labels used when a Config leaves them empty.
const (
	DefaultPlaceholder = "Type text here"
	DefaultSubmitLabel = "Submit"
)

// Config holds the configuration of a Dialog.
//
// A Config is copied into the Dialog by New and never changes afterwards.
type Config struct {
	Title       string    // Dialog title (may be empty)
	Default     string    // Value pre-filled into the input surface
	MultiLine   bool      // Text area with a Submit control instead of a single-line field
	Platform    Platform  // Desktop or touch Enter semantics (default: desktop)
	Placeholder string    // Placeholder text (default: DefaultPlaceholder)
	SubmitLabel string    // Label of the Submit control (default: DefaultSubmitLabel)
	Warnings    io.Writer // Destination for non-fatal warnings (default: os.Stderr)
}

// Option represents a configuration option for a Dialog.
type Option func(*Config)

// WithDefault pre-fills the input surface with value.
func WithDefault(value string) Option {
	return func(c *Config) {
		c.Default = value
	}
}

// WithMultiLine selects a multi-line text area with an explicit Submit control.
func WithMultiLine(multiLine bool) Option {
	return func(c *Config) {
		c.MultiLine = multiLine
	}
}

// WithPlatform sets the platform whose Enter semantics the dialog follows.
//
// Example:
//
//	d, err := modalprompt.New(host, consumer, "Notes",
//		modalprompt.WithMultiLine(true),
//		modalprompt.WithPlatform(modalprompt.DetectPlatform(os.LookupEnv)),
//	)
func WithPlatform(platform Platform) Option {
	return func(c *Config) {
		c.Platform = platform
	}
}

// WithPlaceholder sets the placeholder shown while the input is empty.
func WithPlaceholder(placeholder string) Option {
	return func(c *Config) {
		c.Placeholder = placeholder
	}
}

// WithSubmitLabel sets the label of the Submit control.
func WithSubmitLabel(label string) Option {
	return func(c *Config) {
		c.SubmitLabel = label
	}
}

// WithWarnings sets where non-fatal warnings are written.
func WithWarnings(w io.Writer) Option {
	return func(c *Config) {
		c.Warnings = w
	}
}

func (c *Config) setDefaults() {
	if c.Placeholder == "" {
		c.Placeholder = DefaultPlaceholder
	}
	if c.SubmitLabel == "" {
		c.SubmitLabel = DefaultSubmitLabel
	}
	if c.Warnings == nil {
		c.Warnings = os.Stderr
	}
}
