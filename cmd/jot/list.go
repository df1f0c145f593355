// ABOUTME: List command for displaying notes.
// ABOUTME: Prints the same rendering the list view shows, with search and sort.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/jot/internal/app"
	"github.com/harper/jot/internal/render"
	"github.com/harper/jot/internal/sync"
	"github.com/harper/jot/internal/ui"
)

type listFlags struct {
	search string
	sort   string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "case-insensitive title filter")
	cmd.Flags().StringVar(&f.sort, "sort", "", "byEdited, byCreated or alphabetical (default from config)")
}

// controller builds a list controller with the flags applied.
func (f *listFlags) controller(e *env) (*app.ListController, error) {
	ctrl := app.NewListController(e.deps(), app.Filters{SortBy: e.cfg.SortBy()})
	if f.sort != "" {
		if err := ctrl.OnSortChange(f.sort); err != nil {
			return nil, err
		}
	}
	if f.search != "" {
		ctrl.OnSearchInput(f.search)
	}
	return ctrl, nil
}

func newListCmd(e *env) *cobra.Command {
	var flags listFlags
	var limit int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes",
		Long:    `List notes with their last-edited time, optionally filtered by title and sorted.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sync.TrySync(e.store, e.logger)

			ctrl, err := flags.controller(e)
			if err != nil {
				return err
			}

			view := ctrl.View()
			if limit > 0 && len(view.Rows) > limit {
				view.Rows = view.Rows[:limit]
			}
			printView(cmd, view)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of results (0 for all)")
	return cmd
}

func printView(cmd *cobra.Command, view render.View) {
	out := cmd.OutOrStdout()
	fmt.Fprint(out, ui.FormatViewHeader(view))
	fmt.Fprint(out, ui.FormatView(view))
}
