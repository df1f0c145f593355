// ABOUTME: MCP tools for listing, reading, creating, updating and deleting notes.
// ABOUTME: Each call drives the same controllers the terminal views use.

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/jot/internal/app"
	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/notes"
	"github.com/harper/jot/internal/render"
)

func (s *Server) registerTools() {
	// list_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "list_notes",
		Description: "List notes, optionally filtered by title and sorted",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"search": {"type": "string", "description": "Case-insensitive title filter"},
				"sort": {"type": "string", "enum": ["byEdited", "byCreated", "alphabetical"], "default": "byEdited"},
				"limit": {"type": "integer", "description": "Max results, 0 for all", "default": 0}
			}
		}`),
	}, s.handleListNotes)

	// get_note
	s.server.AddTool(&mcp.Tool{
		Name:        "get_note",
		Description: "Get a note by ID or unique ID prefix",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetNote)

	// add_note
	s.server.AddTool(&mcp.Tool{
		Name:        "add_note",
		Description: "Create a new note",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Note title"},
				"body": {"type": "string", "description": "Note body (markdown)"}
			}
		}`),
	}, s.handleAddNote)

	// update_note
	s.server.AddTool(&mcp.Tool{
		Name:        "update_note",
		Description: "Update a note's title or body",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"},
				"title": {"type": "string", "description": "New title"},
				"body": {"type": "string", "description": "New body"}
			},
			"required": ["id"]
		}`),
	}, s.handleUpdateNote)

	// delete_note
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_note",
		Description: "Delete a note",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteNote)
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return textResult(string(data))
}

func decodeArgs(req *mcp.CallToolRequest, v any) error {
	if req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, v)
}

// listEntry is one row of list_notes output.
type listEntry struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

func (s *Server) handleListNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Search string `json:"search"`
		Sort   string `json:"sort"`
		Limit  int    `json:"limit"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	filters := app.Filters{SearchText: params.Search, SortBy: notes.DefaultSort}
	if params.Sort != "" {
		by, err := notes.ParseSortBy(params.Sort)
		if err != nil {
			return errorResult("invalid sort: %v", err), nil
		}
		filters.SortBy = by
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	view := app.NewListController(s.deps(), filters).View()
	if view.Empty {
		return textResult(view.Placeholder), nil
	}

	rows := view.Rows
	if params.Limit > 0 && len(rows) > params.Limit {
		rows = rows[:params.Limit]
	}
	out := make([]listEntry, len(rows))
	for i, r := range rows {
		out[i] = listEntry{ID: r.ID, Title: r.Title, Status: r.Status}
	}
	return jsonResult(out), nil
}

func (s *Server) handleGetNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note, err := notes.Resolve(s.store.Load(), params.ID)
	if err != nil {
		return errorResult("failed to get note: %v", err), nil
	}
	return jsonResult(note), nil
}

func (s *Server) handleAddNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := app.NewListController(s.deps(), app.DefaultFilters()).OnCreate()
	if params.Title != "" || params.Body != "" {
		edit, err := app.NewEditController(s.deps(), created.ID)
		if err != nil {
			return errorResult("failed to create note: %v", err), nil
		}
		if params.Title != "" {
			edit.OnTitleInput(params.Title)
		}
		if params.Body != "" {
			edit.OnBodyInput(params.Body)
		}
	}

	return textResult(fmt.Sprintf("Created note %s", created.ID)), nil
}

func (s *Server) handleUpdateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID    string  `json:"id"`
		Title *string `json:"title"`
		Body  *string `json:"body"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}
	if params.Title == nil && params.Body == nil {
		return errorResult("nothing to update: pass title or body"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	edit, err := s.openEditor(params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}
	if params.Title != nil {
		edit.OnTitleInput(*params.Title)
	}
	if params.Body != nil {
		edit.OnBodyInput(*params.Body)
	}

	note, _ := edit.Note()
	return jsonResult(note), nil
}

func (s *Server) handleDeleteNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	edit, err := s.openEditor(params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}
	edit.OnRemove()

	return textResult(fmt.Sprintf("Deleted note %s", edit.ID())), nil
}

// openEditor resolves ref to a full id and opens an edit view on it.
func (s *Server) openEditor(ref string) (*app.EditController, error) {
	note, err := notes.Resolve(s.store.Load(), ref)
	if err != nil {
		return nil, err
	}
	edit, err := app.NewEditController(s.deps(), note.ID)
	if errors.Is(err, app.ErrNoteNotFound) {
		return nil, notes.ErrNotFound
	}
	return edit, err
}

// noteMarkdown renders a note for resources.
func noteMarkdown(n models.Note) string {
	return fmt.Sprintf("# %s\n\n%s", render.DisplayTitle(n.Title), n.Body)
}
