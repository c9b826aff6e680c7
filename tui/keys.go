package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/njyeung/pioauth/auth"
)

type keyMap struct {
	Submit   key.Binding
	Next     key.Binding
	Prev     key.Binding
	Register key.Binding
	Forgot   key.Binding
	Login    key.Binding
	Skip     key.Binding
	Cancel   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Next:     key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Register: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "create account")),
		Forgot:   key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "forgot password")),
		Login:    key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "back to login")),
		Skip:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "skip")),
		Cancel:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// forMode returns the bindings worth showing in the help line for mode
func (k keyMap) forMode(mode auth.Mode) []key.Binding {
	switch mode {
	case auth.ModeLogin:
		return []key.Binding{k.Submit, k.Next, k.Register, k.Forgot, k.Skip}
	case auth.ModeForgot:
		return []key.Binding{k.Submit, k.Register, k.Login, k.Skip}
	default:
		return []key.Binding{k.Submit, k.Login, k.Skip}
	}
}
