package modalprompt

import "io"

// mockTerminal implements terminalInterface with scripted input.
//
// Input is replayed rune by rune and io.EOF is returned once it runs out.
// Buffered reports whether scripted input remains, so an ESC at the very
// end of the script decodes as the Escape key while ESC followed by more
// input decodes as an escape sequence. Raw mode and close calls are counted
// for test verification.
type mockTerminal struct {
	input        []rune
	inputPos     int
	rawMode      bool
	rawCalls     int
	closeCalls   int
	terminalSize [2]int
}

func newMockTerminal(input string) *mockTerminal {
	return &mockTerminal{
		input:        []rune(input),
		terminalSize: [2]int{80, 24},
	}
}

func (m *mockTerminal) SetRaw() error {
	m.rawMode = true
	m.rawCalls++
	return nil
}

func (m *mockTerminal) Restore() error {
	m.rawMode = false
	return nil
}

func (m *mockTerminal) Size() (width, height int, err error) {
	return m.terminalSize[0], m.terminalSize[1], nil
}

func (m *mockTerminal) ReadRune() (rune, int, error) {
	if m.inputPos >= len(m.input) {
		return 0, 0, io.EOF
	}
	r := m.input[m.inputPos]
	m.inputPos++
	return r, 1, nil
}

func (m *mockTerminal) Buffered() bool {
	return m.inputPos < len(m.input)
}

func (m *mockTerminal) Close() error {
	m.closeCalls++
	return nil
}
