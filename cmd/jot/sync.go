// ABOUTME: Sync subcommand for charm replication.
// ABOUTME: Provides status, now, link, repair, reset and wipe.

package main

import (
	"fmt"
	"strings"

	charmkv "github.com/charmbracelet/charm/kv"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/jot/internal/config"
	"github.com/harper/jot/internal/storage"
	"github.com/harper/jot/internal/sync"
	"github.com/harper/jot/internal/ui"
)

func newSyncCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Manage charm replication",
		Long: `Replicate your notes through a charm server with the charm backend.

Charm uses SSH key authentication - no passwords needed.
With auto_sync enabled, every save is pushed right away.

Examples:
  jot sync status
  jot sync now
  jot sync link --host charm.example.com`,
	}

	cmd.AddCommand(
		newSyncStatusCmd(e),
		newSyncNowCmd(e),
		newSyncLinkCmd(e),
		newSyncRepairCmd(e),
		newSyncResetCmd(e),
		newSyncWipeCmd(e),
	)
	return cmd
}

// charmStore returns the open charm store, or a new one from config when
// another backend is active.
func (e *env) charmStore() (*storage.CharmStore, error) {
	if cs, ok := e.store.(*storage.CharmStore); ok {
		return cs, nil
	}
	return storage.NewCharmStore(
		storage.WithCharmHost(e.cfg.CharmHost),
		storage.WithAutoSync(e.cfg.AutoSync),
	)
}

func newSyncStatusCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Sync Status")
			fmt.Fprintln(out, strings.Repeat("-", 40))

			path := e.configPath
			if path == "" {
				path = config.ConfigPath()
			}
			fmt.Fprintf(out, "Config:    %s\n", path)
			fmt.Fprintf(out, "Backend:   %s\n", e.cfg.Backend)
			fmt.Fprintf(out, "Host:      %s\n", valueOrNone(e.cfg.CharmHost))
			if e.cfg.AutoSync {
				fmt.Fprintf(out, "Auto-sync: %s\n", color.GreenString("enabled"))
			} else {
				fmt.Fprintf(out, "Auto-sync: %s\n", color.YellowString("disabled"))
			}

			st := sync.StatusOf(e.store)
			if !st.Supported {
				fmt.Fprintf(out, "Status:    %s\n", color.New(color.Faint).Sprint("local only"))
				fmt.Fprintln(out, "\nSet backend to \"charm\" to replicate notes.")
				return nil
			}

			last := "never"
			if !st.LastSync.IsZero() {
				last = humanize.RelTime(st.LastSync, e.now(), "ago", "from now")
			}
			fmt.Fprintf(out, "Last sync: %s\n", last)
			if st.Stale {
				fmt.Fprintf(out, "Data:      %s\n", color.YellowString("stale"))
			}

			cs, err := e.charmStore()
			if err != nil {
				return err
			}
			user, err := cs.User()
			if err != nil || user == nil {
				fmt.Fprintf(out, "Status:    %s\n", color.YellowString("not linked"))
				fmt.Fprintln(out, "\nRun 'jot sync link' to connect.")
				return nil
			}
			fmt.Fprintf(out, "User ID:   %s\n", user.CharmID)
			fmt.Fprintf(out, "Name:      %s\n", valueOrNone(user.Name))
			fmt.Fprintf(out, "Status:    %s\n", color.GreenString("connected"))
			return nil
		},
	}
}

func newSyncNowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Push and pull right away",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sync.Now(e.store); err != nil {
				return fmt.Errorf("sync: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Synced"))
			return nil
		},
	}
}

func newSyncLinkCmd(e *env) *cobra.Command {
	var host string

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Connect to a charm server",
		Long: `Link this device to a charm server.

Charm uses SSH key authentication. Your SSH keys are used automatically.
With --host the server is saved to the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if host != "" {
				if err := saveCharmHost(e, host); err != nil {
					return err
				}
				e.cfg.CharmHost = host
			}

			cs, err := storage.NewCharmStore(storage.WithCharmHost(e.cfg.CharmHost))
			if err != nil {
				return err
			}
			if err := cs.Link(); err != nil {
				return fmt.Errorf("link failed: %w", err)
			}
			user, err := cs.User()
			if err != nil {
				return fmt.Errorf("get user: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Success("Linked to "+e.cfg.CharmHost))
			fmt.Fprintf(out, "  User ID: %s\n", user.CharmID)
			if user.Name != "" {
				fmt.Fprintf(out, "  Name:    %s\n", user.Name)
			}
			if e.cfg.Backend != storage.BackendCharm {
				fmt.Fprintln(out, "\nSet backend to \"charm\" to replicate notes.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "charm server host")
	return cmd
}

func newSyncRepairCmd(e *env) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Repair local charm database corruption",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := e.charmStore()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Repairing database...")
			result, err := charmkv.Repair(cs.DBName(), force)
			if err != nil {
				return fmt.Errorf("repair failed: %w", err)
			}

			if result.WalCheckpointed {
				fmt.Fprintln(out, "  ✓ WAL checkpointed")
			}
			if result.ShmRemoved {
				fmt.Fprintln(out, "  ✓ SHM file removed")
			}
			if result.Vacuumed {
				fmt.Fprintln(out, "  ✓ Database vacuumed")
			}
			if !result.IntegrityOK {
				fmt.Fprintln(out, ui.Warn("Repair completed but integrity issues remain"))
				fmt.Fprintln(out, "Consider running 'jot sync reset'")
				return nil
			}
			fmt.Fprintln(out, ui.Success("Database repaired"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "repair even if the integrity check fails")
	return cmd
}

func newSyncResetCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset local charm data, keeping server data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm(cmd, "Reset local sync data? Server data is kept and re-synced.") {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}

			cs, err := e.charmStore()
			if err != nil {
				return err
			}
			if err := cs.Reset(); err != nil {
				return fmt.Errorf("reset failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Local sync data reset"))
			return nil
		},
	}
}

func newSyncWipeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "wipe",
		Short: "Delete all charm data, local and on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm(cmd, "Delete ALL synced notes on the server and locally? This cannot be undone.") {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}

			cs, err := e.charmStore()
			if err != nil {
				return err
			}
			result, err := charmkv.Wipe(cs.DBName())
			if err != nil {
				return fmt.Errorf("wipe failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "  Deleted %d server backups\n", result.CloudBackupsDeleted)
			fmt.Fprintf(out, "  Deleted %d local files\n", result.LocalFilesDeleted)
			fmt.Fprintln(out, ui.Success("All sync data wiped"))
			return nil
		},
	}
}

// saveCharmHost records host in the config file. The file is re-read so
// flag and environment overrides of this run are not persisted.
func saveCharmHost(e *env, host string) error {
	path := e.configPath
	if path == "" {
		path = config.ConfigPath()
	}
	stored, err := config.Read(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	stored.CharmHost = host
	if err := config.Save(stored, path); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// valueOrNone returns "(not set)" if the string is empty.
func valueOrNone(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
