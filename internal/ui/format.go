// ABOUTME: Terminal formatting for jot command output.
// ABOUTME: Uses glamour for note bodies and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/render"
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

const timeLayout = "2006-01-02 15:04"

func shortID(id string) string {
	if len(id) > 6 {
		return id[:6]
	}
	return id
}

// FormatRow prints one rendered list row.
func FormatRow(row render.Row) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  %s  %s\n", faint(shortID(row.ID)), bold(row.Title)))
	sb.WriteString(fmt.Sprintf("          %s\n", faint(row.Status)))
	return sb.String()
}

// FormatView prints a rendered list, or its placeholder when empty.
func FormatView(v render.View) string {
	if v.Empty {
		return faint(v.Placeholder) + "\n"
	}
	var sb strings.Builder
	for _, row := range v.Rows {
		sb.WriteString(FormatRow(row))
	}
	return sb.String()
}

// FormatViewHeader describes the active sort and search.
func FormatViewHeader(v render.View) string {
	s := cyan(v.SortBy.Label())
	if v.SearchText != "" {
		s += fmt.Sprintf("  %s %s", faint("matching"), cyan(fmt.Sprintf("%q", v.SearchText)))
	}
	return s + "\n"
}

func FormatNoteContent(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content, nil //nolint:nilerr // fall back to raw content
	}

	out, err := renderer.Render(content)
	if err != nil {
		return content, nil //nolint:nilerr // fall back to raw content
	}
	return out, nil
}

func FormatNoteHeader(note models.Note, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(render.DisplayTitle(note.Title))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(note.ID)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(note.Created().Format(timeLayout))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Updated:"), faint(note.Updated().Format(timeLayout))))
	sb.WriteString(faint(render.LastEdited(note.UpdatedAt, now)) + "\n")

	sb.WriteString(Separator())
	return sb.String()
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}

func Warn(msg string) string {
	return color.New(color.FgYellow).Sprint("! ") + msg
}
