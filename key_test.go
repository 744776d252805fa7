package modalprompt

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readKeys decodes input until it runs out.
func readKeys(t *testing.T, input string, keyMap *KeyMap) []KeyEvent {
	t.Helper()
	kr := newKeyReader(newMockTerminal(input), keyMap)
	var events []KeyEvent
	for {
		ev, err := kr.next()
		if errors.Is(err, io.EOF) {
			return events
		}
		require.NoError(t, err)
		events = append(events, *ev)
	}
}

func TestKeyReader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []KeyEvent
	}{
		{
			name:  "printable runes",
			input: "aé ",
			want:  []KeyEvent{{Key: "a"}, {Key: "é"}, {Key: " "}},
		},
		{
			name:  "enter and control keys",
			input: "\r\n\t\x7f\b",
			want: []KeyEvent{
				{Key: KeyEnter}, {Key: KeyEnter}, {Key: KeyTab},
				{Key: KeyBackspace}, {Key: KeyBackspace},
			},
		},
		{
			name:  "ctrl chords",
			input: "\x01\x03\x04\x17",
			want: []KeyEvent{
				{Key: "a", Ctrl: true}, {Key: "c", Ctrl: true},
				{Key: "d", Ctrl: true}, {Key: "w", Ctrl: true},
			},
		},
		{
			name:  "arrows csi and ss3",
			input: "\x1b[A\x1b[B\x1bOC\x1bOD",
			want: []KeyEvent{
				{Key: KeyArrowUp}, {Key: KeyArrowDown},
				{Key: KeyArrowRight}, {Key: KeyArrowLeft},
			},
		},
		{
			name:  "home end delete",
			input: "\x1b[H\x1b[4~\x1b[3~",
			want:  []KeyEvent{{Key: KeyHome}, {Key: KeyEnd}, {Key: KeyDelete}},
		},
		{
			name:  "ctrl arrows",
			input: "\x1b[1;5D\x1b[1;5C",
			want: []KeyEvent{
				{Key: KeyArrowLeft, Ctrl: true}, {Key: KeyArrowRight, Ctrl: true},
			},
		},
		{
			name:  "shift+tab",
			input: "\x1b[Z",
			want:  []KeyEvent{{Key: KeyTab, Shift: true}},
		},
		{
			name:  "shift+enter encodings",
			input: "\x1b[13;2u\x1b[27;2;13~\x1b\r",
			want: []KeyEvent{
				{Key: KeyEnter, Shift: true},
				{Key: KeyEnter, Shift: true},
				{Key: KeyEnter, Shift: true},
			},
		},
		{
			name:  "alt chord",
			input: "\x1bx",
			want:  []KeyEvent{{Key: "x", Alt: true}},
		},
		{
			name:  "lone escape at end of input",
			input: "a\x1b",
			want:  []KeyEvent{{Key: "a"}, {Key: KeyEscape}},
		},
		{
			name:  "unknown sequence dropped",
			input: "\x1b[99;9q" + "b",
			want:  []KeyEvent{{Key: "b"}},
		},
		{
			name:  "bracketed paste composes",
			input: "\x1b[200~x\ry\x1b[201~\r",
			want: []KeyEvent{
				{Key: "x", Composing: true},
				{Key: KeyEnter, Composing: true},
				{Key: "y", Composing: true},
				{Key: KeyEnter},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := readKeys(t, tt.input, nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyReaderTruncatedSequence(t *testing.T) {
	t.Parallel()

	kr := newKeyReader(newMockTerminal("\x1b[1;"), nil)
	_, err := kr.next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestKeyMapCustomBindings(t *testing.T) {
	t.Parallel()

	km := NewDefaultKeyMap()
	// F2 as an extra confirm key, Ctrl+J as newline chord
	km.BindSequence("OQ", KeyEvent{Key: KeyEnter})
	km.Bind('\n', KeyEvent{Key: KeyEnter, Shift: true})

	got := readKeys(t, "\x1bOQ\n", km)
	assert.Equal(t, []KeyEvent{{Key: KeyEnter}, {Key: KeyEnter, Shift: true}}, got)

	ev, ok := km.Lookup('\n')
	assert.True(t, ok)
	assert.True(t, ev.Shift)
	_, ok = km.LookupSequence("[999~")
	assert.False(t, ok)
}

func TestKeyMapNil(t *testing.T) {
	t.Parallel()

	var km *KeyMap
	_, ok := km.Lookup('\r')
	assert.False(t, ok)
	_, ok = km.LookupSequence("[A")
	assert.False(t, ok)
}

func TestKeyEventString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ev   KeyEvent
		want string
	}{
		{KeyEvent{Key: KeyEnter}, "Enter"},
		{KeyEvent{Key: KeyEnter, Shift: true}, "shift+Enter"},
		{KeyEvent{Key: "c", Ctrl: true}, "ctrl+c"},
		{KeyEvent{Key: "x", Alt: true, Ctrl: true}, "ctrl+alt+x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ev.String())
	}
}

func TestKeyEventComposition(t *testing.T) {
	t.Parallel()

	assert.False(t, (&KeyEvent{Key: KeyEnter}).IsComposing())
	assert.True(t, (&KeyEvent{Key: KeyEnter, Composing: true}).IsComposing())
	assert.True(t, (&KeyEvent{Key: KeyEnter, KeyCode: KeyCodeIMEProcess}).IsComposing())

	ev := &KeyEvent{Key: KeyEnter}
	assert.False(t, ev.DefaultPrevented())
	ev.PreventDefault()
	assert.True(t, ev.DefaultPrevented())
}
