package widget

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the widget's bindings. Printable keys not bound here go to
// the search input while the modal is open.
type KeyMap struct {
	Open   key.Binding
	Change key.Binding
	Close  key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open:   key.NewBinding(key.WithKeys("enter", "o"), key.WithHelp("enter", "choose")),
		Change: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "change")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Up:     key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	}
}
