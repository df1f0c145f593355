// ABOUTME: Edit command for modifying existing notes.
// ABOUTME: Applies --title/--body, or opens the body in $EDITOR.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/jot/internal/app"
	"github.com/harper/jot/internal/notes"
	"github.com/harper/jot/internal/ui"
)

func newEditCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id-prefix>",
		Short: "Edit a note",
		Long:  `Change a note's title or body. Without --title or --body the body opens in $EDITOR.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edit, err := openEdit(e, args[0])
			if err != nil {
				return err
			}
			note, _ := edit.Note()

			titleSet := cmd.Flags().Changed("title")
			bodySet := cmd.Flags().Changed("body")
			title, _ := cmd.Flags().GetString("title")
			body, _ := cmd.Flags().GetString("body")

			if !titleSet && !bodySet {
				content, err := openEditor(cmd, note.Body)
				if err != nil {
					return fmt.Errorf("failed to open editor: %w", err)
				}
				if content == note.Body {
					fmt.Fprintln(cmd.OutOrStdout(), "No changes made.")
					return nil
				}
				body, bodySet = content, true
			}

			if titleSet {
				edit.OnTitleInput(title)
			}
			if bodySet {
				edit.OnBodyInput(body)
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Updated note %s", note.ShortID())))
			return nil
		},
	}

	cmd.Flags().StringP("title", "t", "", "new title")
	cmd.Flags().StringP("body", "b", "", "new body")
	return cmd
}

// openEdit resolves an id prefix and opens an edit controller on it.
func openEdit(e *env, ref string) (*app.EditController, error) {
	note, err := notes.Resolve(e.notes.Load(), ref)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	edit, err := app.NewEditController(e.deps(), note.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return edit, nil
}
