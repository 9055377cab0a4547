package tui

import "github.com/charmbracelet/bubbles/key"

// browseKeyMap defines key bindings for the device table
type browseKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Bigger   key.Binding
	Smaller  key.Binding
	Edit     key.Binding
	Search   key.Binding
	Location key.Binding
	Status   key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Search, k.PrevPage, k.NextPage, k.Reload, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage},
		{k.Bigger, k.Smaller, k.Edit},
		{k.Search, k.Location, k.Status},
		{k.Reload, k.Help, k.Quit},
	}
}

// filterKeyMap defines key bindings while a filter input has focus
type filterKeyMap struct {
	Done  key.Binding
	Clear key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k filterKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Done, k.Clear}
}

// FullHelp returns keybindings for the expanded help view
func (k filterKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Done, k.Clear}}
}

// dialogKeyMap defines key bindings for the status dialog
type dialogKeyMap struct {
	Toggle key.Binding
	Save   key.Binding
	Cancel key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k dialogKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Save, k.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (k dialogKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Toggle, k.Save, k.Cancel}}
}

// failedKeyMap defines key bindings for the fetch failure screen
type failedKeyMap struct {
	Reload key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k failedKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reload, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k failedKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Reload, k.Quit}}
}

type keyMaps struct {
	Browse browseKeyMap
	Filter filterKeyMap
	Dialog dialogKeyMap
	Failed failedKeyMap
}

func newKeyMaps() keyMaps {
	quit := key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	)
	reload := key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	)

	return keyMaps{
		Browse: browseKeyMap{
			Up: key.NewBinding(
				key.WithKeys("up", "k"),
				key.WithHelp("↑/k", "up"),
			),
			Down: key.NewBinding(
				key.WithKeys("down", "j"),
				key.WithHelp("↓/j", "down"),
			),
			PrevPage: key.NewBinding(
				key.WithKeys("left", "h"),
				key.WithHelp("←/h", "prev page"),
			),
			NextPage: key.NewBinding(
				key.WithKeys("right", "l"),
				key.WithHelp("→/l", "next page"),
			),
			Bigger: key.NewBinding(
				key.WithKeys("+", "="),
				key.WithHelp("+", "more rows"),
			),
			Smaller: key.NewBinding(
				key.WithKeys("-", "_"),
				key.WithHelp("-", "fewer rows"),
			),
			Edit: key.NewBinding(
				key.WithKeys("enter", "e"),
				key.WithHelp("enter/e", "edit status"),
			),
			Search: key.NewBinding(
				key.WithKeys("/"),
				key.WithHelp("/", "search"),
			),
			Location: key.NewBinding(
				key.WithKeys("L"),
				key.WithHelp("L", "location"),
			),
			Status: key.NewBinding(
				key.WithKeys("S"),
				key.WithHelp("S", "status"),
			),
			Reload: reload,
			Help: key.NewBinding(
				key.WithKeys("?"),
				key.WithHelp("?", "help"),
			),
			Quit: quit,
		},
		Filter: filterKeyMap{
			Done: key.NewBinding(
				key.WithKeys("enter", "esc", "tab"),
				key.WithHelp("enter/esc", "done"),
			),
			Clear: key.NewBinding(
				key.WithKeys("ctrl+u"),
				key.WithHelp("ctrl+u", "clear"),
			),
		},
		Dialog: dialogKeyMap{
			Toggle: key.NewBinding(
				key.WithKeys("left", "right", "h", "l", "tab", "shift+tab", " "),
				key.WithHelp("←/→/tab", "choose"),
			),
			Save: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "save"),
			),
			Cancel: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", "cancel"),
			),
		},
		Failed: failedKeyMap{
			Reload: reload,
			Quit:   quit,
		},
	}
}
