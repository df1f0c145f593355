// ABOUTME: Edit screen: title input and body textarea for one note.
// ABOUTME: Forwards changed values to the edit controller.

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harper/jot/internal/app"
	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/render"
)

type editField int

const (
	fieldTitle editField = iota
	fieldBody
)

// editView wraps an EditController with a title input and body textarea.
type editView struct {
	ctrl  *app.EditController
	keys  editKeyMap
	title textinput.Model
	body  textarea.Model
	field editField
	// confirming is set while the remove prompt waits for an answer.
	confirming bool
}

// newEditView resolves id. The returned error is app.ErrNoteNotFound when
// the controller redirected to the list.
func newEditView(deps app.Deps, id string) (*editView, error) {
	ctrl, err := app.NewEditController(deps, id)
	if err != nil {
		return nil, err
	}

	title := textinput.New()
	title.Placeholder = render.UnnamedTitle
	title.Prompt = ""

	body := textarea.New()
	body.Placeholder = "Write something..."
	body.ShowLineNumbers = false

	v := &editView{
		ctrl:  ctrl,
		keys:  newEditKeyMap(),
		title: title,
		body:  body,
	}
	if n, ok := ctrl.Note(); ok {
		v.fill(n)
	}
	ctrl.OnRefresh = func(n models.Note, _ string) { v.fill(n) }
	v.title.Focus()
	return v, nil
}

// fill copies note fields into the inputs when they differ.
func (v *editView) fill(n models.Note) {
	if v.title.Value() != n.Title {
		v.title.SetValue(n.Title)
	}
	if v.body.Value() != n.Body {
		v.body.SetValue(n.Body)
	}
}

func (v *editView) update(msg tea.KeyMsg, nav app.Navigator) (tea.Cmd, bool) {
	if key.Matches(msg, v.keys.quit) {
		return tea.Quit, true
	}
	if v.confirming {
		v.confirming = false
		if key.Matches(msg, v.keys.confirm) {
			v.ctrl.OnRemove()
		}
		return nil, false
	}

	switch {
	case key.Matches(msg, v.keys.back):
		nav.Navigate(app.ListLocation)
		return nil, false
	case key.Matches(msg, v.keys.remove):
		v.confirming = true
		return nil, false
	case key.Matches(msg, v.keys.switchField):
		return v.toggleField(), false
	}

	var cmd tea.Cmd
	switch v.field {
	case fieldTitle:
		before := v.title.Value()
		v.title, cmd = v.title.Update(msg)
		if v.title.Value() != before {
			v.ctrl.OnTitleInput(v.title.Value())
		}
	case fieldBody:
		before := v.body.Value()
		v.body, cmd = v.body.Update(msg)
		if v.body.Value() != before {
			v.ctrl.OnBodyInput(v.body.Value())
		}
	}
	return cmd, false
}

func (v *editView) toggleField() tea.Cmd {
	if v.field == fieldTitle {
		v.field = fieldBody
		v.title.Blur()
		return v.body.Focus()
	}
	v.field = fieldTitle
	v.body.Blur()
	return v.title.Focus()
}

func (v *editView) setSize(width, height int) {
	v.title.Width = max(width-8, 10)
	v.body.SetWidth(max(width-6, 10))
	v.body.SetHeight(max(height-12, 3))
}

func (v *editView) view() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("jot"))
	b.WriteString("  ")
	b.WriteString(rowStatusStyle.Render(v.ctrl.LastEdited()))
	b.WriteString("\n")

	titleBox, bodyBox := inputStyle, inputStyle
	if v.field == fieldTitle {
		titleBox = focusedInputStyle
	} else {
		bodyBox = focusedInputStyle
	}
	b.WriteString(titleBox.Render(v.title.View()))
	b.WriteString("\n")
	b.WriteString(bodyBox.Render(v.body.View()))
	b.WriteString("\n\n")
	if v.confirming {
		b.WriteString(statusStyle.Render("Remove this note? (y/n)"))
	} else {
		b.WriteString(helpStyle.Render(helpLine(v.keys.shortHelp())))
	}
	return b.String()
}
