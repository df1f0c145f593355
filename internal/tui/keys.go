// ABOUTME: Key bindings for the list and edit screens.
// ABOUTME: Also renders the one-line help footer.

package tui

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	up     key.Binding
	down   key.Binding
	open   key.Binding
	create key.Binding
	search key.Binding
	sort   key.Binding
	blur   key.Binding
	quit   key.Binding
}

func newListKeyMap() listKeyMap {
	return listKeyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "open"),
		),
		create: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new note"),
		),
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "change sort"),
		),
		blur: key.NewBinding(
			key.WithKeys("esc", "enter"),
			key.WithHelp("esc", "done"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k listKeyMap) shortHelp() []key.Binding {
	return []key.Binding{k.up, k.down, k.open, k.create, k.search, k.sort, k.quit}
}

type editKeyMap struct {
	switchField key.Binding
	back        key.Binding
	remove      key.Binding
	confirm     key.Binding
	quit        key.Binding
}

func newEditKeyMap() editKeyMap {
	return editKeyMap{
		switchField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "title/body"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to list"),
		),
		// ctrl+d deletes forward in the textarea.
		remove: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "remove note"),
		),
		confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k editKeyMap) shortHelp() []key.Binding {
	return []key.Binding{k.switchField, k.back, k.remove, k.quit}
}

type splitKeyMap struct {
	switchPane key.Binding
}

func newSplitKeyMap() splitKeyMap {
	return splitKeyMap{
		switchPane: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "other pane"),
		),
	}
}

func helpLine(bindings []key.Binding) string {
	var out string
	for i, b := range bindings {
		if i > 0 {
			out += " • "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
