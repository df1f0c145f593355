// ABOUTME: MCP prompts for common note-taking workflows.
// ABOUTME: Each prompt steers the agent toward the jot tools.

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "create-meeting-notes",
		Description: "Create structured meeting notes with attendees, agenda, and action items",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "meeting_title",
				Description: "Title of the meeting",
				Required:    true,
			},
		},
	}, s.getMeetingNotesPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-note",
		Description: "Generate a summary of an existing note",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "note_id",
				Description: "ID of the note to summarize",
				Required:    true,
			},
		},
	}, s.getSummarizeNotePrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "tidy-notes",
		Description: "Find untitled, empty, or stale notes worth cleaning up",
	}, s.getTidyNotesPrompt)
}

func userPrompt(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}

func (s *Server) getMeetingNotesPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	meetingTitle, ok := req.Params.Arguments["meeting_title"]
	if !ok || meetingTitle == "" {
		meetingTitle = "Meeting"
	}

	return userPrompt(fmt.Sprintf(`Create meeting notes for: %s

Structure the body with these sections:

## Attendees
## Agenda
## Decisions
## Action Items
- [ ] [Action] - @owner

Use the add_note tool with the meeting name as the title.`, meetingTitle)), nil
}

func (s *Server) getSummarizeNotePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	noteID, ok := req.Params.Arguments["note_id"]
	if !ok || noteID == "" {
		return nil, fmt.Errorf("note_id argument is required")
	}

	return userPrompt(fmt.Sprintf(`Summarize the note with ID: %s

1. Use the get_note tool to read it
2. Write a short summary of its main points and any action items
3. Use the update_note tool to put a "Summary" section at the top of the body`, noteID)), nil
}

func (s *Server) getTidyNotesPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return userPrompt(`Help me tidy my notes:

1. Use list_notes with sort "byEdited" to see everything, most recent first
2. Point out notes shown as "Unnamed Note" and suggest titles from their bodies
3. Point out notes with empty bodies that could be deleted
4. Point out notes that look like duplicates of each other

Reference notes by ID. Ask before calling update_note or delete_note.`), nil
}
