package greeter

// KeyKind identifies a key event delivered by a frontend.
type KeyKind int

const (
	KeyNone KeyKind = iota
	KeyRune
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyDelete
	KeyBackspace
	KeySpace
	KeyEnter
	KeyTab
	KeyBacktab
	KeyInterrupt
)

var keyNames = map[KeyKind]string{
	KeyNone:      "none",
	KeyRune:      "rune",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyDelete:    "delete",
	KeyBackspace: "backspace",
	KeySpace:     "space",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyInterrupt: "interrupt",
}

func (k KeyKind) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// Key is a frontend-neutral key event. Rune is only meaningful for KeyRune.
type Key struct {
	Kind KeyKind
	Rune rune
}

// RuneKey builds a KeyRune event.
func RuneKey(r rune) Key {
	return Key{Kind: KeyRune, Rune: r}
}

// printable reports whether r can be stored in a text field.
func printable(r rune) bool {
	return r >= 32 && r <= 126
}
