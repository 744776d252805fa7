package modalprompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererRender(t *testing.T) {
	t.Parallel()

	th := ThemeDefault
	tests := []struct {
		name          string
		frame         frame
		want          string
		wantCursorRow int
	}{
		{
			name:  "title and single line",
			frame: frame{title: "Name", width: 80, text: "ab", cursor: 1},
			want: th.Title.ToANSI() + "Name" + Reset() + "\r\n" +
				"> " + th.Input.ToANSI() + "ab" + Reset() +
				"\r\x1b[3C",
			wantCursorRow: 1,
		},
		{
			name:  "placeholder when empty",
			frame: frame{width: 80, placeholder: "Type text here"},
			want: "> " + th.Placeholder.ToANSI() + "Type text here" + Reset() +
				"\r\x1b[2C",
		},
		{
			name:  "multi line cursor on first line",
			frame: frame{width: 80, text: "a\nb", cursor: 1, button: "Submit"},
			want: "> " + th.Input.ToANSI() + "a" + Reset() +
				"\r\n  " + th.Input.ToANSI() + "b" + Reset() +
				"\r\n" + th.Button.ToANSI() + "[ Submit ]" + Reset() +
				"\x1b[2A\r\x1b[3C",
		},
		{
			name:  "focused button holds the cursor",
			frame: frame{width: 80, text: "a\nb", cursor: 3, button: "Submit", buttonFocused: true},
			want: "> " + th.Input.ToANSI() + "a" + Reset() +
				"\r\n  " + th.Input.ToANSI() + "b" + Reset() +
				"\r\n" + th.ButtonFocused.ToANSI() + "[ Submit ]" + Reset() +
				"\r",
			wantCursorRow: 2,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var output bytes.Buffer
			r := newRenderer(&output, nil)

			require.NoError(t, r.render(tt.frame))
			assert.Equal(t, tt.want, output.String())
			assert.Equal(t, tt.wantCursorRow, r.cursorRow)
			assert.True(t, r.drawn)
		})
	}
}

func TestRendererRepaintClearsPreviousBlock(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer
	r := newRenderer(&output, ThemeDefault)

	require.NoError(t, r.render(frame{title: "T", width: 80, text: "x", cursor: 1}))
	output.Reset()

	require.NoError(t, r.render(frame{title: "T", width: 80, text: "xy", cursor: 2}))
	assert.True(t, strings.HasPrefix(output.String(), "\x1b[1A\r\x1b[J"),
		"repaint should start by clearing from the block top, got %q", output.String())

	output.Reset()
	require.NoError(t, r.clear())
	assert.Equal(t, "\x1b[1A\r\x1b[J", output.String())
	assert.False(t, r.drawn)

	output.Reset()
	require.NoError(t, r.clear())
	assert.Empty(t, output.String(), "clearing twice writes nothing")
}

func TestRendererWrapsTitle(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer
	r := newRenderer(&output, ThemeDefault)

	require.NoError(t, r.render(frame{title: "aaaa bbbb cccc", width: 11}))
	result := output.String()
	assert.Contains(t, result, "aaaa bbbb"+Reset()+"\r\n")
	assert.Contains(t, result, "cccc"+Reset()+"\r\n")
	assert.Equal(t, 2, r.cursorRow, "input sits below the two title lines")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestRendererWriteError(t *testing.T) {
	t.Parallel()

	r := newRenderer(failingWriter{}, ThemeDefault)
	assert.Error(t, r.render(frame{text: "x"}))
	assert.False(t, r.drawn)
}

func TestRendererSplitIntoLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "single line", input: "hello world", expected: 1},
		{name: "multi line", input: "line1\nline2\nline3", expected: 3},
		{name: "empty string", input: "", expected: 1},
		{name: "trailing newline", input: "line1\nline2\n", expected: 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lines := splitIntoLines(tt.input)
			if len(lines) != tt.expected {
				t.Errorf("splitIntoLines(%q) returned %d lines, want %d",
					tt.input, len(lines), tt.expected)
			}
		})
	}
}

func TestRendererFindCursorPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		cursor   int
		wantLine int
		wantCol  int
	}{
		{name: "simple case", input: "hello", cursor: 3, wantLine: 0, wantCol: 3},
		{name: "cursor at start", input: "hello", cursor: 0, wantLine: 0, wantCol: 0},
		{name: "multiline input", input: "line1\nline2", cursor: 7, wantLine: 1, wantCol: 1},
		{name: "right after newline", input: "ab\n", cursor: 3, wantLine: 1, wantCol: 0},
		{name: "cursor past end", input: "ab", cursor: 10, wantLine: 0, wantCol: 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			line, col := findCursorPosition([]rune(tt.input), tt.cursor)
			if line != tt.wantLine {
				t.Errorf("Expected line %d, got %d", tt.wantLine, line)
			}
			if col != tt.wantCol {
				t.Errorf("Expected col %d, got %d", tt.wantCol, col)
			}
		})
	}
}
