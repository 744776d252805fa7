package modalprompt

// editBuffer is the text and cursor of a terminal input surface.
type editBuffer struct {
	runes  []rune
	cursor int
}

func newEditBuffer(text string) *editBuffer {
	b := &editBuffer{}
	b.set(text)
	return b
}

func (b *editBuffer) String() string {
	return string(b.runes)
}

func (b *editBuffer) set(text string) {
	b.runes = []rune(text)
	b.cursor = len(b.runes)
}

func (b *editBuffer) insert(r ...rune) {
	tail := append([]rune{}, b.runes[b.cursor:]...)
	b.runes = append(append(b.runes[:b.cursor], r...), tail...)
	b.cursor += len(r)
}

func (b *editBuffer) backspace() {
	if b.cursor == 0 {
		return
	}
	b.runes = append(b.runes[:b.cursor-1], b.runes[b.cursor:]...)
	b.cursor--
}

func (b *editBuffer) deleteForward() {
	if b.cursor >= len(b.runes) {
		return
	}
	b.runes = append(b.runes[:b.cursor], b.runes[b.cursor+1:]...)
}

func (b *editBuffer) deleteToLineEnd() {
	end := b.lineEnd()
	b.runes = append(b.runes[:b.cursor], b.runes[end:]...)
}

func (b *editBuffer) deleteWordBack() {
	if b.cursor == 0 {
		return
	}
	start := b.wordBoundary(-1)
	b.runes = append(b.runes[:start], b.runes[b.cursor:]...)
	b.cursor = start
}

func (b *editBuffer) clear() {
	b.runes = b.runes[:0]
	b.cursor = 0
}

func (b *editBuffer) left() {
	if b.cursor > 0 {
		b.cursor--
	}
}

func (b *editBuffer) right() {
	if b.cursor < len(b.runes) {
		b.cursor++
	}
}

func (b *editBuffer) lineStart() int {
	pos := b.cursor
	for pos > 0 && b.runes[pos-1] != '\n' {
		pos--
	}
	return pos
}

func (b *editBuffer) lineEnd() int {
	pos := b.cursor
	for pos < len(b.runes) && b.runes[pos] != '\n' {
		pos++
	}
	return pos
}

// up moves the cursor to the same column on the previous line and reports
// whether it moved.
func (b *editBuffer) up() bool {
	start := b.lineStart()
	if start == 0 {
		return false
	}
	column := b.cursor - start

	prevEnd := start - 1
	prevStart := prevEnd
	for prevStart > 0 && b.runes[prevStart-1] != '\n' {
		prevStart--
	}
	b.cursor = min(prevStart+column, prevEnd)
	return true
}

// down moves the cursor to the same column on the next line and reports
// whether it moved.
func (b *editBuffer) down() bool {
	end := b.lineEnd()
	if end >= len(b.runes) {
		return false
	}
	column := b.cursor - b.lineStart()

	nextStart := end + 1
	nextEnd := nextStart
	for nextEnd < len(b.runes) && b.runes[nextEnd] != '\n' {
		nextEnd++
	}
	b.cursor = min(nextStart+column, nextEnd)
	return true
}

// wordBoundary finds the next word boundary in the given direction.
// Words are runs of letters, digits and underscores.
func (b *editBuffer) wordBoundary(direction int) int {
	if direction > 0 {
		pos := b.cursor
		for pos < len(b.runes) && !isWordChar(b.runes[pos]) {
			pos++
		}
		for pos < len(b.runes) && isWordChar(b.runes[pos]) {
			pos++
		}
		return pos
	}
	pos := b.cursor
	for pos > 0 && !isWordChar(b.runes[pos-1]) {
		pos--
	}
	for pos > 0 && isWordChar(b.runes[pos-1]) {
		pos--
	}
	return pos
}

func isWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}
