// ABOUTME: UI command for the interactive list and edit views.
// ABOUTME: Pulls stale remote data first, then hands the terminal to bubbletea.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/jot/internal/app"
	"github.com/harper/jot/internal/notes"
	"github.com/harper/jot/internal/persist"
	"github.com/harper/jot/internal/storage"
	"github.com/harper/jot/internal/sync"
	"github.com/harper/jot/internal/tui"
)

func newUICmd(e *env) *cobra.Command {
	var (
		editID string
		split  bool
	)

	cmd := &cobra.Command{
		Use:         "ui",
		Short:       "Open the interactive view",
		Long:        `Open the interactive list view, or the edit view with --edit. Other open views pick up every change as it is saved.
With --split two views share the screen; the badger backend allows only one
jot process at a time, so use --split there for a second view.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{logToFile: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			start := app.ListLocation
			if editID != "" {
				start = app.EditLocation(resolveOrRaw(e, editID))
			}
			return runUI(cmd, e, start, split)
		},
	}

	cmd.Flags().StringVar(&editID, "edit", "", "open the edit view for this note id or prefix")
	cmd.Flags().BoolVar(&split, "split", false, "show two views side by side, each on its own store handle")
	return cmd
}

func runUI(cmd *cobra.Command, e *env, start app.Location, split bool) error {
	sync.TrySync(e.store, e.logger)

	opts := tui.Options{
		Filters: app.Filters{SortBy: e.cfg.SortBy()},
		Start:   start,
		Now:     e.now,
		Logger:  e.logger,
	}
	if !split {
		return tui.Run(cmd.Context(), e.notes, opts)
	}

	other, err := storage.Share(e.store)
	if err != nil {
		return fmt.Errorf("split view on %s backend: %w", e.cfg.Backend, err)
	}
	defer func() { _ = other.Close() }()
	return tui.RunSplit(cmd.Context(), e.notes, persist.New(other, e.logger), opts)
}

// resolveOrRaw expands an id prefix. Unknown ids are passed through so the
// edit view can redirect on its own.
func resolveOrRaw(e *env, ref string) string {
	note, err := notes.Resolve(e.notes.Load(), ref)
	if err != nil {
		return ref
	}
	return note.ID
}
