// ABOUTME: Bubbletea program hosting the list and edit views.
// ABOUTME: Store notifications from other views arrive as messages on the UI loop.

package tui

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/harper/jot/internal/app"
	"github.com/harper/jot/internal/persist"
	"github.com/harper/jot/internal/storage"
	"github.com/harper/jot/internal/sync"
)

// refreshInterval re-renders relative timestamps.
const refreshInterval = 30 * time.Second

// Messages carry their source so that several models can share a program.
type changeMsg struct {
	src    <-chan storage.Change
	change storage.Change
}

type watchClosedMsg struct {
	src <-chan storage.Change
}

type tickMsg struct {
	owner *Model
}

// router records navigation requests made by controllers during an update.
type router struct {
	next []app.Location
}

func (r *router) Navigate(l app.Location) {
	r.next = append(r.next, l)
}

func (r *router) pop() (app.Location, bool) {
	if len(r.next) == 0 {
		return app.Location{}, false
	}
	l := r.next[0]
	r.next = r.next[1:]
	return l, true
}

// Options configure a Model.
type Options struct {
	Filters app.Filters
	Start   app.Location
	Now     func() time.Time
	NewID   func() string
	Logger  *log.Logger
}

// Model is the root bubbletea model.
type Model struct {
	deps    app.Deps
	router  *router
	changes <-chan storage.Change
	filters app.Filters

	list *listView
	edit *editView

	width, height int
	status        string
}

// New builds a model over adapter starting at opts.Start.
func New(adapter *persist.Adapter, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	r := &router{}
	m := &Model{
		router: r,
		deps: app.Deps{
			Store:     adapter,
			Navigator: r,
			Now:       opts.Now,
			NewID:     opts.NewID,
			Logger:    opts.Logger,
		},
		filters: opts.Filters,
	}
	m.list = newListView(m.deps, m.filters)
	if opts.Start.IsEdit() {
		r.Navigate(opts.Start)
		m.navigate()
	}
	return m
}

// Watch delivers external changes from ch into the program.
func (m *Model) Watch(ch <-chan storage.Change) {
	m.changes = ch
}

// Location reports which view is active.
func (m *Model) Location() app.Location {
	if m.edit != nil {
		return app.EditLocation(m.edit.ctrl.ID())
	}
	return app.ListLocation
}

// Status returns the last error shown to the user.
func (m *Model) Status() string {
	return m.status
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForChange(), m.tick())
}

func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return watchClosedMsg{src: ch}
		}
		return changeMsg{src: ch, change: c}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return tickMsg{owner: m} })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()

	case tea.KeyMsg:
		var cmd tea.Cmd
		var quit bool
		if m.edit != nil {
			cmd, quit = m.edit.update(msg, m.router)
		} else {
			cmd, quit = m.list.update(msg, m.router)
		}
		if quit {
			return m, cmd
		}
		cmds = append(cmds, cmd)

	case changeMsg:
		if msg.src != m.changes {
			return m, nil
		}
		if m.edit != nil {
			m.edit.ctrl.OnExternalSync(msg.change.NewValue)
		} else {
			m.list.ctrl.OnExternalSync(msg.change.NewValue)
			m.list.clampCursor()
		}
		cmds = append(cmds, m.waitForChange())

	case watchClosedMsg:
		if msg.src == m.changes {
			m.deps.Logger.Debug("change watch closed")
		}

	case tickMsg:
		if msg.owner != m {
			return m, nil
		}
		if m.edit != nil {
			m.edit.ctrl.Refresh()
		} else {
			m.list.ctrl.Refresh()
		}
		cmds = append(cmds, m.tick())
	}

	if cmd := m.navigate(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// navigate applies pending navigation requests in order.
func (m *Model) navigate() tea.Cmd {
	var cmd tea.Cmd
	for {
		loc, ok := m.router.pop()
		if !ok {
			return cmd
		}
		if !loc.IsEdit() {
			if m.list != nil {
				m.filters = m.list.ctrl.Filters()
			}
			m.edit = nil
			m.list = newListView(m.deps, m.filters)
			m.resize()
			continue
		}

		edit, err := newEditView(m.deps, loc.NoteID)
		if err != nil {
			if errors.Is(err, app.ErrNoteNotFound) {
				m.status = "Note not found"
			}
			continue
		}
		m.status = ""
		m.edit = edit
		m.resize()
		cmd = edit.title.Focus()
	}
}

func (m *Model) resize() {
	if m.width == 0 {
		return
	}
	if m.edit != nil {
		m.edit.setSize(m.width, m.height)
	}
	if m.list != nil {
		m.list.setWidth(m.width)
	}
}

func (m *Model) View() string {
	var body string
	if m.edit != nil {
		body = m.edit.view()
	} else {
		body = m.list.view()
	}
	if m.status != "" {
		body += "\n" + statusStyle.Render(m.status)
	}
	return appStyle.Render(body)
}

// Run starts the full-screen program and returns when the user quits.
func Run(ctx context.Context, adapter *persist.Adapter, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(adapter, opts)
	m.Watch(sync.Watch(ctx, adapter.Store(), adapter.Key()))
	return runProgram(ctx, m)
}

// RunSplit shows two views side by side. Each adapter should sit on its own
// store handle so that edits in one pane reach the other as changes.
func RunSplit(ctx context.Context, left, right *persist.Adapter, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l := New(left, opts)
	l.Watch(sync.Watch(ctx, left.Store(), left.Key()))
	ropts := opts
	ropts.Start = app.ListLocation
	r := New(right, ropts)
	r.Watch(sync.Watch(ctx, right.Store(), right.Key()))
	return runProgram(ctx, NewSplit(l, r))
}

func runProgram(ctx context.Context, m tea.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
