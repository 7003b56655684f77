package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the chat keybindings. It implements help.KeyMap.
type KeyMap struct {
	Send    key.Binding
	NewChat key.Binding
	Sidebar key.Binding
	Up      key.Binding
	Down    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎", "enviar / abrir"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "nova conversa"),
		),
		Sidebar: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "conversas"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "anterior"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "próxima"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "voltar"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "sair"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.NewChat, k.Sidebar, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.NewChat, k.Quit},
		{k.Sidebar, k.Up, k.Down, k.Back},
	}
}

// sidebarHelp lists the bindings active while the sidebar has focus.
func (k KeyMap) sidebarHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Send, k.Back}
}
