package modalprompt

// Bracketed paste markers, without the leading ESC.
const (
	pasteStart = "[200~"
	pasteEnd   = "[201~"
)

// maxEscapeSequenceLen bounds how many runes are read after "ESC [".
const maxEscapeSequenceLen = 16

// KeyMap translates raw terminal input into key events.
//
// Single runes (control characters) and escape sequences (without the
// leading ESC) are bound to KeyEvent templates. Runes without a binding are
// reported as printable keys, or as Ctrl chords for C0 control characters.
type KeyMap struct {
	bindings  map[rune]KeyEvent
	sequences map[string]KeyEvent
}

// NewDefaultKeyMap creates the default terminal key bindings.
//
// Shift+Enter is recognised in the three forms terminals commonly send:
// the CSI-u encoding (ESC [13;2u), xterm's modifyOtherKeys encoding
// (ESC [27;2;13~) and ESC followed by CR, which is what most terminals
// emit for Alt+Enter or for Shift+Enter when configured to. All three are
// reported as shift+Enter, the newline chord of multi-line prompts.
//
// Example:
//
//	keyMap := modalprompt.NewDefaultKeyMap()
//	// Treat F2 as the Submit shortcut
//	keyMap.BindSequence("OQ", modalprompt.KeyEvent{Key: modalprompt.KeyEnter})
func NewDefaultKeyMap() *KeyMap {
	km := &KeyMap{
		bindings:  make(map[rune]KeyEvent),
		sequences: make(map[string]KeyEvent),
	}

	km.bindings['\r'] = KeyEvent{Key: KeyEnter}
	km.bindings['\n'] = KeyEvent{Key: KeyEnter}
	km.bindings['\t'] = KeyEvent{Key: KeyTab}
	km.bindings['\x7f'] = KeyEvent{Key: KeyBackspace}
	km.bindings['\b'] = KeyEvent{Key: KeyBackspace}

	km.sequences["[A"] = KeyEvent{Key: KeyArrowUp}
	km.sequences["[B"] = KeyEvent{Key: KeyArrowDown}
	km.sequences["[C"] = KeyEvent{Key: KeyArrowRight}
	km.sequences["[D"] = KeyEvent{Key: KeyArrowLeft}
	km.sequences["OA"] = KeyEvent{Key: KeyArrowUp}
	km.sequences["OB"] = KeyEvent{Key: KeyArrowDown}
	km.sequences["OC"] = KeyEvent{Key: KeyArrowRight}
	km.sequences["OD"] = KeyEvent{Key: KeyArrowLeft}
	km.sequences["[H"] = KeyEvent{Key: KeyHome}
	km.sequences["[F"] = KeyEvent{Key: KeyEnd}
	km.sequences["OH"] = KeyEvent{Key: KeyHome}
	km.sequences["OF"] = KeyEvent{Key: KeyEnd}
	km.sequences["[1~"] = KeyEvent{Key: KeyHome}
	km.sequences["[4~"] = KeyEvent{Key: KeyEnd}
	km.sequences["[3~"] = KeyEvent{Key: KeyDelete}
	km.sequences["[Z"] = KeyEvent{Key: KeyTab, Shift: true}
	km.sequences["[1;5C"] = KeyEvent{Key: KeyArrowRight, Ctrl: true}
	km.sequences["[1;5D"] = KeyEvent{Key: KeyArrowLeft, Ctrl: true}

	km.sequences["[13;2u"] = KeyEvent{Key: KeyEnter, Shift: true}
	km.sequences["[27;2;13~"] = KeyEvent{Key: KeyEnter, Shift: true}
	km.sequences["\r"] = KeyEvent{Key: KeyEnter, Shift: true}

	return km
}

// Bind adds or updates the event produced by a single rune.
func (km *KeyMap) Bind(key rune, ev KeyEvent) {
	km.bindings[key] = ev
}

// BindSequence adds or updates the event produced by an escape sequence.
// The sequence should not include the initial ESC character.
func (km *KeyMap) BindSequence(seq string, ev KeyEvent) {
	km.sequences[seq] = ev
}

// Lookup returns the event bound to a rune.
func (km *KeyMap) Lookup(key rune) (KeyEvent, bool) {
	if km == nil || km.bindings == nil {
		return KeyEvent{}, false
	}
	ev, ok := km.bindings[key]
	return ev, ok
}

// LookupSequence returns the event bound to an escape sequence.
func (km *KeyMap) LookupSequence(seq string) (KeyEvent, bool) {
	if km == nil || km.sequences == nil {
		return KeyEvent{}, false
	}
	ev, ok := km.sequences[seq]
	return ev, ok
}

// keyReader decodes terminal input into key events. It tracks bracketed
// paste so every key that arrives inside a paste is marked as composing.
type keyReader struct {
	terminal terminalInterface
	keyMap   *KeyMap
	pasting  bool
}

func newKeyReader(terminal terminalInterface, keyMap *KeyMap) *keyReader {
	if keyMap == nil {
		keyMap = NewDefaultKeyMap()
	}
	return &keyReader{terminal: terminal, keyMap: keyMap}
}

// next blocks until a complete key event is available.
func (kr *keyReader) next() (*KeyEvent, error) {
	for {
		r, _, err := kr.terminal.ReadRune()
		if err != nil {
			return nil, err
		}

		if r == '\x1b' {
			// Sequences arrive in a single write; a lone ESC is the Escape key.
			if !kr.terminal.Buffered() {
				return kr.event(KeyEvent{Key: KeyEscape}), nil
			}
			seq, err := kr.readEscapeSequence()
			if err != nil {
				return nil, err
			}
			switch seq {
			case pasteStart:
				kr.pasting = true
				continue
			case pasteEnd:
				kr.pasting = false
				continue
			}
			if ev, ok := kr.keyMap.LookupSequence(seq); ok {
				return kr.event(ev), nil
			}
			if runes := []rune(seq); len(runes) == 1 {
				return kr.event(KeyEvent{Key: seq, Alt: true}), nil
			}
			// Unknown sequences are dropped.
			continue
		}

		if ev, ok := kr.keyMap.Lookup(r); ok {
			return kr.event(ev), nil
		}
		if r >= 0x01 && r <= 0x1a {
			return kr.event(KeyEvent{Key: string('a' + r - 1), Ctrl: true}), nil
		}
		return kr.event(KeyEvent{Key: string(r)}), nil
	}
}

func (kr *keyReader) event(ev KeyEvent) *KeyEvent {
	ev.Composing = ev.Composing || kr.pasting
	return &ev
}

// readEscapeSequence reads what follows an ESC: a CSI sequence up to and
// including its final byte, an SS3 sequence, or a single rune.
func (kr *keyReader) readEscapeSequence() (string, error) {
	r, _, err := kr.terminal.ReadRune()
	if err != nil {
		return "", err
	}

	switch r {
	case '[':
		seq := make([]rune, 1, maxEscapeSequenceLen)
		seq[0] = '['
		for i := 0; i < maxEscapeSequenceLen; i++ {
			r, _, err := kr.terminal.ReadRune()
			if err != nil {
				return "", err
			}
			seq = append(seq, r)
			// Parameter and intermediate bytes are 0x20-0x3F; the final
			// byte ends the sequence.
			if r >= 0x40 && r <= 0x7e {
				break
			}
		}
		return string(seq), nil
	case 'O':
		next, _, err := kr.terminal.ReadRune()
		if err != nil {
			return "", err
		}
		return string([]rune{'O', next}), nil
	default:
		return string(r), nil
	}
}
