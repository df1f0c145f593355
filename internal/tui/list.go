// ABOUTME: List screen: search input, sort label and selectable rows.
// ABOUTME: Delegates every event to the list controller.

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harper/jot/internal/app"
	"github.com/harper/jot/internal/render"
)

// listView wraps a ListController with a search box and a row cursor.
type listView struct {
	ctrl      *app.ListController
	keys      listKeyMap
	search    textinput.Model
	searching bool
	cursor    int
}

func newListView(deps app.Deps, filters app.Filters) *listView {
	search := textinput.New()
	search.Placeholder = "Search titles"
	search.Prompt = "/ "
	search.SetValue(filters.SearchText)

	return &listView{
		ctrl:   app.NewListController(deps, filters),
		keys:   newListKeyMap(),
		search: search,
	}
}

// update handles a key press. It reports whether the program should quit.
func (v *listView) update(msg tea.KeyMsg, nav app.Navigator) (tea.Cmd, bool) {
	if v.searching {
		return v.updateSearch(msg), false
	}

	switch {
	case key.Matches(msg, v.keys.quit):
		return tea.Quit, true
	case key.Matches(msg, v.keys.up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, v.keys.down):
		if v.cursor < len(v.ctrl.View().Rows)-1 {
			v.cursor++
		}
	case key.Matches(msg, v.keys.open):
		if row, ok := v.selected(); ok {
			nav.Navigate(app.EditLocation(row.ID))
		}
	case key.Matches(msg, v.keys.create):
		v.ctrl.OnCreate()
	case key.Matches(msg, v.keys.search):
		v.searching = true
		return v.search.Focus(), false
	case key.Matches(msg, v.keys.sort):
		next := v.ctrl.Filters().SortBy.Next()
		_ = v.ctrl.OnSortChange(string(next))
		v.clampCursor()
	}
	return nil, false
}

func (v *listView) updateSearch(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, v.keys.blur) {
		v.searching = false
		v.search.Blur()
		return nil
	}
	before := v.search.Value()
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	if v.search.Value() != before {
		v.ctrl.OnSearchInput(v.search.Value())
		v.cursor = 0
	}
	return cmd
}

func (v *listView) selected() (render.Row, bool) {
	rows := v.ctrl.View().Rows
	if v.cursor < 0 || v.cursor >= len(rows) {
		return render.Row{}, false
	}
	return rows[v.cursor], true
}

func (v *listView) clampCursor() {
	n := len(v.ctrl.View().Rows)
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *listView) setWidth(width int) {
	v.search.Width = max(width-8, 10)
}

func (v *listView) view() string {
	var b strings.Builder
	rendered := v.ctrl.View()

	b.WriteString(titleStyle.Render("jot"))
	b.WriteString("  ")
	b.WriteString(sortStyle.Render(rendered.SortBy.Label()))
	b.WriteString("\n")

	style := inputStyle
	if v.searching {
		style = focusedInputStyle
	}
	b.WriteString(style.Render(v.search.View()))
	b.WriteString("\n\n")

	if rendered.Empty {
		b.WriteString(placeholderStyle.Render(rendered.Placeholder))
		b.WriteString("\n")
	}
	for i, row := range rendered.Rows {
		title := rowTitleStyle.Render(row.Title)
		if i == v.cursor {
			title = selectedRowStyle.Render("> " + row.Title)
		} else {
			title = "  " + title
		}
		b.WriteString(title)
		b.WriteString("\n    ")
		b.WriteString(rowStatusStyle.Render(row.Status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpLine(v.keys.shortHelp())))
	return b.String()
}
