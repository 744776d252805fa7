// Package teahost mounts modalprompt dialogs inside a Bubble Tea program.
//
// Single-line dialogs use a bubbles textinput and multi-line dialogs a
// bubbles textarea; colors come from a modalprompt.Theme rendered through
// lipgloss. Key presses are translated into modalprompt.KeyEvent values
// before the dialog sees them, so the confirmation rules are exactly those
// of the terminal host:
//
//   - Alt+Enter is reported as Shift+Enter, the newline chord
//   - bracketed paste is reported as a composition session
//   - Tab and Shift+Tab move focus to the Submit control and back
package teahost

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nao1215/modalprompt"
)

var (
	// ErrHostBusy is returned by Mount while another dialog is mounted.
	ErrHostBusy = errors.New("teahost: host already shows a dialog")
	// ErrNotMounted is returned by Run for a dialog mounted on another host.
	ErrNotMounted = errors.New("teahost: dialog is not mounted on this host")
)

const defaultWidth = 60

// Option configures a Host.
type Option func(*Host)

// WithTheme sets the colors used to draw dialogs.
func WithTheme(theme *modalprompt.Theme) Option {
	return func(h *Host) {
		h.theme = theme
	}
}

// WithWidth sets the width of the input surface in cells.
func WithWidth(width int) Option {
	return func(h *Host) {
		h.width = width
	}
}

// Host implements modalprompt.Host on top of Bubble Tea.
type Host struct {
	theme   *modalprompt.Theme
	width   int
	styles  styles
	surface *surface
}

type styles struct {
	title         lipgloss.Style
	input         lipgloss.Style
	placeholder   lipgloss.Style
	button        lipgloss.Style
	buttonFocused lipgloss.Style
}

// New creates a Bubble Tea host.
func New(opts ...Option) *Host {
	h := &Host{}
	for _, opt := range opts {
		opt(h)
	}
	if h.theme == nil {
		h.theme = modalprompt.ThemeDefault
	}
	if h.width <= 0 {
		h.width = defaultWidth
	}
	h.styles = styles{
		title:         style(h.theme.Title),
		input:         style(h.theme.Input),
		placeholder:   style(h.theme.Placeholder),
		button:        style(h.theme.Button),
		buttonFocused: style(h.theme.ButtonFocused),
	}
	return h
}

func style(c modalprompt.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Hex())).
		Bold(c.Bold)
}

// Mount implements modalprompt.Host.
func (h *Host) Mount(title string) (modalprompt.Container, error) {
	if h.surface != nil {
		return nil, ErrHostBusy
	}
	h.surface = &surface{host: h, title: title}
	return h.surface, nil
}

// Run opens d if needed and runs a Bubble Tea program until the dialog
// closes. Ctrl+C dismisses the dialog and returns
// modalprompt.ErrInterrupted; a cancelled ctx dismisses it and returns
// ctx.Err().
func (h *Host) Run(ctx context.Context, d *modalprompt.Dialog, opts ...tea.ProgramOption) error {
	if !d.IsOpen() {
		if err := d.Open(); err != nil {
			return err
		}
	}
	if h.surface == nil {
		return ErrNotMounted
	}

	m := newModel(h, d)
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		m.dismiss()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	if fm, ok := final.(*model); ok && fm.interrupted {
		return modalprompt.ErrInterrupted
	}
	return nil
}

// surface is the Container of a dialog mounted on a Host.
type surface struct {
	host  *Host
	title string

	spec      modalprompt.InputSpec
	listeners modalprompt.InputListeners
	hasInput  bool
	input     textinput.Model
	area      textarea.Model

	button        string
	onClick       func(*modalprompt.Event)
	buttonFocused bool

	closed bool
}

func (s *surface) AddInput(spec modalprompt.InputSpec, listeners modalprompt.InputListeners) error {
	if s.hasInput {
		return errors.New("teahost: surface already has an input")
	}
	s.hasInput = true
	s.spec = spec
	s.listeners = listeners
	st := s.host.styles

	if spec.MultiLine {
		s.area = textarea.New()
		s.area.CharLimit = 0
		s.area.ShowLineNumbers = false
		s.area.Prompt = "> "
		s.area.Placeholder = spec.Placeholder
		s.area.FocusedStyle.Placeholder = st.placeholder
		s.area.FocusedStyle.Text = st.input
		s.area.SetWidth(s.host.width)
		s.area.SetValue(spec.Value)
		s.area.Focus()
		return nil
	}

	s.input = textinput.New()
	s.input.CharLimit = 0
	s.input.Prompt = "> "
	s.input.Placeholder = spec.Placeholder
	s.input.PlaceholderStyle = st.placeholder
	s.input.TextStyle = st.input
	s.input.Width = s.host.width
	s.input.SetValue(spec.Value)
	s.input.Focus()
	return nil
}

func (s *surface) AddButton(label string, onClick func(*modalprompt.Event)) error {
	if s.onClick != nil {
		return errors.New("teahost: surface already has a button")
	}
	s.button = label
	s.onClick = onClick
	return nil
}

// Empty unmounts the surface; the running program quits after the current
// message.
func (s *surface) Empty() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.host.surface == s {
		s.host.surface = nil
	}
	return nil
}

func (s *surface) value() string {
	if s.spec.MultiLine {
		return s.area.Value()
	}
	return s.input.Value()
}

func (s *surface) focusButton(focused bool) {
	s.buttonFocused = focused
	switch {
	case s.spec.MultiLine && focused:
		s.area.Blur()
	case s.spec.MultiLine:
		s.area.Focus()
	case focused:
		s.input.Blur()
	default:
		s.input.Focus()
	}
}

// update forwards msg to the bubbles component.
func (s *surface) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if s.spec.MultiLine {
		s.area, cmd = s.area.Update(msg)
	} else {
		s.input, cmd = s.input.Update(msg)
	}
	return cmd
}

func (s *surface) view(st styles) string {
	var b strings.Builder
	if s.title != "" {
		b.WriteString(st.title.Width(s.host.width).Render(s.title))
		b.WriteString("\n")
	}
	if s.spec.MultiLine {
		b.WriteString(s.area.View())
	} else {
		b.WriteString(s.input.View())
	}
	if s.onClick != nil {
		button := st.button
		if s.buttonFocused {
			button = st.buttonFocused
		}
		b.WriteString("\n")
		b.WriteString(button.Render("[ " + s.button + " ]"))
	}
	b.WriteString("\n")
	return b.String()
}

// model drives one dialog in a Bubble Tea program.
type model struct {
	host        *Host
	dialog      *modalprompt.Dialog
	surface     *surface
	interrupted bool
}

func newModel(h *Host, d *modalprompt.Dialog) *model {
	return &model{host: h, dialog: d, surface: h.surface}
}

func (m *model) Init() tea.Cmd {
	if m.surface.spec.MultiLine {
		return textarea.Blink
	}
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := m.surface
	if s.closed {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		width := min(msg.Width, m.host.width)
		if s.spec.MultiLine {
			s.area.SetWidth(width)
		} else {
			s.input.Width = width
		}
		return m, nil
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		if s.closed {
			return m, tea.Quit
		}
		return m, cmd
	}
	return m, s.update(msg)
}

func (m *model) View() string {
	if m.surface.closed {
		return ""
	}
	return m.surface.view(m.host.styles)
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := m.surface

	switch msg.Type {
	case tea.KeyCtrlC:
		m.interrupted = true
		m.dismiss()
		return nil
	case tea.KeyEsc:
		m.dismiss()
		return nil
	case tea.KeyTab, tea.KeyShiftTab:
		if s.onClick != nil && !msg.Paste {
			s.focusButton(!s.buttonFocused)
			return nil
		}
	}

	if s.buttonFocused {
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeySpace {
			s.onClick(&modalprompt.Event{})
			return nil
		}
		s.focusButton(false)
	}
	if !s.hasInput {
		return nil
	}

	ev := keyEvent(msg)
	if s.listeners.KeyDown != nil {
		s.listeners.KeyDown(ev)
	}
	if s.closed || ev.DefaultPrevented() {
		return nil
	}

	before := s.value()
	var cmd tea.Cmd
	if ev.Key == modalprompt.KeyEnter && !ev.IsComposing() {
		// The component never sees Enter: a newline is only inserted for
		// the newline chord in a text area.
		if s.spec.MultiLine {
			s.area.InsertString("\n")
		}
	} else {
		cmd = s.update(msg)
	}
	if after := s.value(); after != before && s.listeners.Change != nil {
		s.listeners.Change(after)
	}
	return cmd
}

func (m *model) dismiss() {
	// Empty never fails on this host.
	_ = m.dialog.Close()
}

// keyEvent translates a Bubble Tea key into the event a Dialog listens to.
func keyEvent(msg tea.KeyMsg) *modalprompt.KeyEvent {
	ev := &modalprompt.KeyEvent{
		Alt:       msg.Alt,
		Composing: msg.Paste,
	}

	switch msg.Type {
	case tea.KeyEnter:
		ev.Key = modalprompt.KeyEnter
		if msg.Alt {
			ev.Shift, ev.Alt = true, false
		}
	case tea.KeyEsc:
		ev.Key = modalprompt.KeyEscape
	case tea.KeyTab:
		ev.Key = modalprompt.KeyTab
	case tea.KeyShiftTab:
		ev.Key, ev.Shift = modalprompt.KeyTab, true
	case tea.KeyBackspace:
		ev.Key = modalprompt.KeyBackspace
	case tea.KeyDelete:
		ev.Key = modalprompt.KeyDelete
	case tea.KeyLeft:
		ev.Key = modalprompt.KeyArrowLeft
	case tea.KeyRight:
		ev.Key = modalprompt.KeyArrowRight
	case tea.KeyUp:
		ev.Key = modalprompt.KeyArrowUp
	case tea.KeyDown:
		ev.Key = modalprompt.KeyArrowDown
	case tea.KeyCtrlLeft:
		ev.Key, ev.Ctrl = modalprompt.KeyArrowLeft, true
	case tea.KeyCtrlRight:
		ev.Key, ev.Ctrl = modalprompt.KeyArrowRight, true
	case tea.KeyHome:
		ev.Key = modalprompt.KeyHome
	case tea.KeyEnd:
		ev.Key = modalprompt.KeyEnd
	case tea.KeySpace:
		ev.Key = " "
	case tea.KeyRunes:
		ev.Key = string(msg.Runes)
	default:
		name := msg.String()
		if rest, ok := strings.CutPrefix(name, "ctrl+"); ok {
			ev.Key, ev.Ctrl = rest, true
		} else {
			ev.Key = name
		}
	}
	return ev
}
