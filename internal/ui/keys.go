package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
}

var Keys = KeyMap{
	Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("S-tab", "prev field")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next / run")),
}

// HelpLine renders the key hints shown under the prompt form.
func HelpLine() string {
	bindings := []key.Binding{Keys.Submit, Keys.Next, Keys.Prev, Keys.Quit}
	var out string
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += h.Key + ": " + h.Desc
	}
	return out
}
