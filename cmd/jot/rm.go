// ABOUTME: Remove command for deleting notes.
// ABOUTME: Includes confirmation prompt before deletion.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/jot/internal/render"
	"github.com/harper/jot/internal/ui"
)

func newRmCmd(e *env) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rm <id-prefix>",
		Short: "Remove a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edit, err := openEdit(e, args[0])
			if err != nil {
				return err
			}
			note, _ := edit.Note()

			if !force {
				question := fmt.Sprintf("Delete note %q (%s)?", render.DisplayTitle(note.Title), note.ShortID())
				if !confirm(cmd, question) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			edit.OnRemove()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Deleted note %s", note.ShortID())))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")
	return cmd
}
