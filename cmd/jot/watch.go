// ABOUTME: Watch command: a headless list view that follows other views.
// ABOUTME: Re-prints the rendering every time another view saves.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/jot/internal/render"
	"github.com/harper/jot/internal/sync"
	"github.com/harper/jot/internal/ui"
)

func newWatchCmd(e *env) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the list and reprint it on every change",
		Long:  `Print the list, then keep running and print it again whenever another view saves. Stop with Ctrl-C.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := flags.controller(e)
			if err != nil {
				return err
			}
			printView(cmd, ctrl.View())

			ctrl.OnRender = func(v render.View) {
				fmt.Fprint(cmd.OutOrStdout(), ui.Separator())
				printView(cmd, v)
			}

			l := &sync.Listener{
				Store:  e.store,
				Key:    e.notes.Key(),
				Target: ctrl,
				Logger: e.logger,
			}
			return l.Run(cmd.Context())
		},
	}

	flags.register(cmd)
	return cmd
}
