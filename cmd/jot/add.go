// ABOUTME: Add command for creating new notes.
// ABOUTME: Creates a blank note, then applies title and body as edits.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harper/jot/internal/app"
	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/ui"
)

func newAddCmd(e *env) *cobra.Command {
	var title, body, file string
	var useEditor bool

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new note",
		Long:  `Create a new note. The body can come from --body, --file, or $EDITOR with --editor. With no content the note starts blank.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && title == "" {
				title = args[0]
			}

			switch {
			case body != "":
			case file != "":
				data, err := os.ReadFile(file) //nolint:gosec // User-specified file path is expected CLI behavior
				if err != nil {
					return fmt.Errorf("failed to read file: %w", err)
				}
				body = string(data)
			case useEditor:
				content, err := openEditor(cmd, "")
				if err != nil {
					return fmt.Errorf("failed to open editor: %w", err)
				}
				body = content
			}

			note, loc, err := addNote(e, title, body)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Success(fmt.Sprintf("Created note %s", note.ShortID())))
			fmt.Fprintln(out, loc.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "note title")
	cmd.Flags().StringVarP(&body, "body", "b", "", "note body (inline)")
	cmd.Flags().StringVar(&file, "file", "", "read body from file")
	cmd.Flags().BoolVarP(&useEditor, "editor", "e", false, "write the body in $EDITOR")
	return cmd
}

// addNote runs the list view's create action and the edit view's inputs.
// It returns the stored note and where the list view navigated.
func addNote(e *env, title, body string) (models.Note, app.Location, error) {
	history := &app.History{}
	deps := e.deps()
	deps.Navigator = history

	created := app.NewListController(deps, app.DefaultFilters()).OnCreate()
	loc, _ := history.Last()

	if title == "" && body == "" {
		return created, loc, nil
	}

	edit, err := app.NewEditController(deps, created.ID)
	if err != nil {
		return models.Note{}, loc, fmt.Errorf("failed to create note: %w", err)
	}
	if title != "" {
		edit.OnTitleInput(title)
	}
	if body != "" {
		edit.OnBodyInput(body)
	}
	note, _ := edit.Note()
	return note, loc, nil
}
