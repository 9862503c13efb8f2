package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tui-greeter/internal/greeter"
)

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Delete    key.Binding
	Backspace key.Binding
	Space     key.Binding
	Enter     key.Binding
	Tab       key.Binding
	Backtab   key.Binding
	Interrupt key.Binding
}

var keys = keyMap{
	Left:      key.NewBinding(key.WithKeys("left")),
	Right:     key.NewBinding(key.WithKeys("right")),
	Up:        key.NewBinding(key.WithKeys("up")),
	Down:      key.NewBinding(key.WithKeys("down")),
	Delete:    key.NewBinding(key.WithKeys("delete")),
	Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
	Space:     key.NewBinding(key.WithKeys(" ")),
	Enter:     key.NewBinding(key.WithKeys("enter")),
	Tab:       key.NewBinding(key.WithKeys("tab")),
	Backtab:   key.NewBinding(key.WithKeys("shift+tab")),
	Interrupt: key.NewBinding(key.WithKeys("ctrl+c")),
}

// bindings is checked in order; the first match wins.
var bindings = []struct {
	binding *key.Binding
	kind    greeter.KeyKind
}{
	{&keys.Left, greeter.KeyLeft},
	{&keys.Right, greeter.KeyRight},
	{&keys.Up, greeter.KeyUp},
	{&keys.Down, greeter.KeyDown},
	{&keys.Delete, greeter.KeyDelete},
	{&keys.Backspace, greeter.KeyBackspace},
	{&keys.Space, greeter.KeySpace},
	{&keys.Enter, greeter.KeyEnter},
	{&keys.Tab, greeter.KeyTab},
	{&keys.Backtab, greeter.KeyBacktab},
	{&keys.Interrupt, greeter.KeyInterrupt},
}

// translateKey converts a Bubble Tea key press into greeter keys. Pasted
// text arrives as one message and yields one key per rune.
func translateKey(msg tea.KeyMsg) []greeter.Key {
	for _, b := range bindings {
		if key.Matches(msg, *b.binding) {
			return []greeter.Key{{Kind: b.kind}}
		}
	}
	if msg.Type != tea.KeyRunes || msg.Alt {
		return nil
	}
	out := make([]greeter.Key, 0, len(msg.Runes))
	for _, r := range msg.Runes {
		if r == ' ' {
			out = append(out, greeter.Key{Kind: greeter.KeySpace})
			continue
		}
		out = append(out, greeter.RuneKey(r))
	}
	return out
}
