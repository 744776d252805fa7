package modalprompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

const (
	inputPrefix        = "> "
	continuationPrefix = "  "
	minTitleWidth      = 10
)

// frame is everything the renderer needs to draw one state of a surface.
type frame struct {
	title         string
	width         int
	text          string
	cursor        int
	placeholder   string
	button        string
	buttonFocused bool
}

// renderer draws a prompt dialog as a block of terminal lines and repaints
// it in place.
//
// The block is: the title (word-wrapped to the terminal width), the input
// lines with a "> " prefix and an indent on continuation lines, and the
// Submit button when the surface has one. Each repaint moves back to the
// top of the previous block and clears to the end of the screen, so the
// renderer only has to remember how far the cursor sits below that top.
type renderer struct {
	output    io.Writer
	theme     *Theme
	cursorRow int  // Row of the cursor within the last block
	drawn     bool // Whether a block is currently on screen
}

func newRenderer(output io.Writer, theme *Theme) *renderer {
	if theme == nil {
		theme = ThemeDefault
	}
	return &renderer{
		output: output,
		theme:  theme,
	}
}

// render repaints the block for f and leaves the terminal cursor at the
// edit position (or on the button when it has focus).
func (r *renderer) render(f frame) error {
	if err := r.clear(); err != nil {
		return err
	}

	var b strings.Builder
	row := 0

	if f.title != "" {
		width := max(f.width-1, minTitleWidth)
		for _, line := range strings.Split(wordwrap.String(f.title, width), "\n") {
			b.WriteString(r.theme.Title.ToANSI())
			b.WriteString(line)
			b.WriteString(Reset())
			b.WriteString("\r\n")
			row++
		}
	}

	inputTop := row
	lines := splitIntoLines(f.text)
	for i, line := range lines {
		if i == 0 {
			b.WriteString(inputPrefix)
		} else {
			b.WriteString("\r\n")
			b.WriteString(continuationPrefix)
			row++
		}
		if f.text == "" && f.placeholder != "" {
			b.WriteString(r.theme.Placeholder.ToANSI())
			b.WriteString(f.placeholder)
		} else {
			b.WriteString(r.theme.Input.ToANSI())
			b.WriteString(line)
		}
		b.WriteString(Reset())
	}

	if f.button != "" {
		color := r.theme.Button
		if f.buttonFocused {
			color = r.theme.ButtonFocused
		}
		b.WriteString("\r\n")
		b.WriteString(color.ToANSI())
		b.WriteString("[ " + f.button + " ]")
		b.WriteString(Reset())
		row++
	}

	lastRow := row
	targetRow, targetCol := lastRow, 0
	if !f.buttonFocused {
		line, col := findCursorPosition([]rune(f.text), f.cursor)
		targetRow = inputTop + line
		targetCol = len(inputPrefix) + col
	}

	if up := lastRow - targetRow; up > 0 {
		fmt.Fprintf(&b, "\x1b[%dA", up)
	}
	b.WriteString("\r")
	if targetCol > 0 {
		fmt.Fprintf(&b, "\x1b[%dC", targetCol)
	}

	if _, err := io.WriteString(r.output, b.String()); err != nil {
		return err
	}
	r.cursorRow = targetRow
	r.drawn = true
	return nil
}

// clear erases the last block and leaves the cursor where it began.
func (r *renderer) clear() error {
	if !r.drawn {
		return nil
	}
	seq := "\r\x1b[J"
	if r.cursorRow > 0 {
		seq = fmt.Sprintf("\x1b[%dA", r.cursorRow) + seq
	}
	if _, err := io.WriteString(r.output, seq); err != nil {
		return err
	}
	r.cursorRow = 0
	r.drawn = false
	return nil
}

// splitIntoLines splits input on newlines; empty input is one empty line.
func splitIntoLines(input string) []string {
	if input == "" {
		return []string{""}
	}
	return strings.Split(input, "\n")
}

// findCursorPosition returns the 0-indexed line and column of cursor
// within inputRunes.
func findCursorPosition(inputRunes []rune, cursor int) (line, col int) {
	if cursor <= 0 {
		return 0, 0
	}
	cursor = min(cursor, len(inputRunes))
	col = cursor
	for i := 0; i < cursor; i++ {
		if inputRunes[i] == '\n' {
			line++
			col = cursor - i - 1
		}
	}
	return line, col
}
