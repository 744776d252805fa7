package teahost

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/modalprompt"
)

type recorder struct {
	values []string
}

func (r *recorder) Consume(value string) {
	r.values = append(r.values, value)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// newTestModel opens a dialog on a fresh host and returns its model.
func newTestModel(t *testing.T, opts ...modalprompt.Option) (*model, *modalprompt.Dialog, *recorder) {
	t.Helper()
	h := New(WithWidth(40))
	rec := &recorder{}
	d, err := modalprompt.New(h, rec, "Title", opts...)
	require.NoError(t, err)
	require.NoError(t, d.Open())
	return newModel(h, d), d, rec
}

func send(m *model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestSingleLine(t *testing.T) {
	t.Parallel()

	t.Run("typing updates value and enter confirms", func(t *testing.T) {
		t.Parallel()
		m, d, rec := newTestModel(t)

		send(m, runes("h"), runes("i"))
		assert.Equal(t, "hi", d.Value())

		cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
		assert.True(t, isQuit(t, cmd))
		assert.Equal(t, []string{"hi"}, rec.values)
		assert.Equal(t, modalprompt.StateSubmitted, d.State())
		assert.Empty(t, m.View())
	})

	t.Run("default value is confirmed", func(t *testing.T) {
		t.Parallel()
		m, _, rec := newTestModel(t, modalprompt.WithDefault("hello"))
		assert.Contains(t, m.View(), "hello")

		send(m, tea.KeyMsg{Type: tea.KeyEnter})
		assert.Equal(t, []string{"hello"}, rec.values)
	})

	t.Run("escape dismisses", func(t *testing.T) {
		t.Parallel()
		m, d, rec := newTestModel(t)

		cmd := send(m, runes("x"), tea.KeyMsg{Type: tea.KeyEsc})
		assert.True(t, isQuit(t, cmd))
		assert.Empty(t, rec.values)
		assert.Equal(t, modalprompt.StateDismissed, d.State())
		assert.False(t, m.interrupted)
	})

	t.Run("ctrl+c interrupts", func(t *testing.T) {
		t.Parallel()
		m, d, rec := newTestModel(t)

		cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlC})
		assert.True(t, isQuit(t, cmd))
		assert.True(t, m.interrupted)
		assert.Empty(t, rec.values)
		assert.False(t, d.Submitted())
	})

	t.Run("pasted text never confirms", func(t *testing.T) {
		t.Parallel()
		m, d, rec := newTestModel(t)

		send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pasted"), Paste: true})
		assert.Equal(t, "pasted", d.Value())
		assert.Empty(t, rec.values)
	})
}

func TestMultiLine(t *testing.T) {
	t.Parallel()

	t.Run("desktop alt+enter inserts newline and enter confirms", func(t *testing.T) {
		t.Parallel()
		m, d, rec := newTestModel(t, modalprompt.WithMultiLine(true))

		send(m, runes("a"), tea.KeyMsg{Type: tea.KeyEnter, Alt: true}, runes("b"))
		assert.Equal(t, "a\nb", d.Value())
		assert.Empty(t, rec.values)

		send(m, tea.KeyMsg{Type: tea.KeyEnter})
		assert.Equal(t, []string{"a\nb"}, rec.values)
	})

	t.Run("touch enter does nothing and submit confirms", func(t *testing.T) {
		t.Parallel()
		m, d, rec := newTestModel(t,
			modalprompt.WithMultiLine(true),
			modalprompt.WithPlatform(modalprompt.PlatformTouch),
		)

		send(m, runes("a"), tea.KeyMsg{Type: tea.KeyEnter})
		assert.Equal(t, "a", d.Value())
		assert.Empty(t, rec.values)

		send(m, tea.KeyMsg{Type: tea.KeyTab})
		assert.True(t, m.surface.buttonFocused)
		assert.Contains(t, m.View(), "[ Submit ]")

		cmd := send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		assert.True(t, isQuit(t, cmd))
		assert.Equal(t, []string{"a"}, rec.values)
	})

	t.Run("typing on the button returns focus to the input", func(t *testing.T) {
		t.Parallel()
		m, d, _ := newTestModel(t, modalprompt.WithMultiLine(true))

		send(m, tea.KeyMsg{Type: tea.KeyTab}, runes("z"))
		assert.False(t, m.surface.buttonFocused)
		assert.Equal(t, "z", d.Value())
	})
}

func TestMount(t *testing.T) {
	t.Parallel()

	h := New()
	_, err := h.Mount("first")
	require.NoError(t, err)
	_, err = h.Mount("second")
	assert.ErrorIs(t, err, ErrHostBusy)
}

func TestKeyEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want modalprompt.KeyEvent
	}{
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, modalprompt.KeyEvent{Key: modalprompt.KeyEnter}},
		{"alt+enter is the newline chord", tea.KeyMsg{Type: tea.KeyEnter, Alt: true}, modalprompt.KeyEvent{Key: modalprompt.KeyEnter, Shift: true}},
		{"shift+tab", tea.KeyMsg{Type: tea.KeyShiftTab}, modalprompt.KeyEvent{Key: modalprompt.KeyTab, Shift: true}},
		{"rune", runes("é"), modalprompt.KeyEvent{Key: "é"}},
		{"paste composes", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x\ny"), Paste: true}, modalprompt.KeyEvent{Key: "x\ny", Composing: true}},
		{"ctrl chord", tea.KeyMsg{Type: tea.KeyCtrlW}, modalprompt.KeyEvent{Key: "w", Ctrl: true}},
		{"ctrl+left", tea.KeyMsg{Type: tea.KeyCtrlLeft}, modalprompt.KeyEvent{Key: modalprompt.KeyArrowLeft, Ctrl: true}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, modalprompt.KeyEvent{Key: " "}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := keyEvent(tt.msg)
			assert.Equal(t, tt.want, *got)
		})
	}
}
