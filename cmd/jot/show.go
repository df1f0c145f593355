// ABOUTME: Show command for displaying a single note.
// ABOUTME: Renders the body as markdown with glamour.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/jot/internal/notes"
	"github.com/harper/jot/internal/sync"
	"github.com/harper/jot/internal/ui"
)

func newShowCmd(e *env) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <id-prefix>",
		Short: "Show a note",
		Long:  `Display a note's header and its body with rendered markdown.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sync.TrySync(e.store, e.logger)

			note, err := notes.Resolve(e.notes.Load(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get note: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, ui.FormatNoteHeader(note, e.now()))
			if raw {
				fmt.Fprintln(out, note.Body)
				return nil
			}
			content, _ := ui.FormatNoteContent(note.Body)
			fmt.Fprint(out, content)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the body without markdown rendering")
	return cmd
}
