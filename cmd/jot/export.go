// ABOUTME: Export command for backing up notes.
// ABOUTME: Supports JSON, YAML and markdown-with-front-matter formats.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/notes"
	"github.com/harper/jot/internal/ui"
)

const exportVersion = "1.0"

type ExportData struct {
	ExportedAt time.Time     `json:"exported_at" yaml:"exported_at"`
	Version    string        `json:"version" yaml:"version"`
	Notes      []models.Note `json:"notes" yaml:"notes"`
}

// frontMatter heads each exported markdown file.
type frontMatter struct {
	ID        string    `yaml:"id"`
	Title     string    `yaml:"title"`
	CreatedAt time.Time `yaml:"created"`
	UpdatedAt time.Time `yaml:"updated"`
}

func newExportCmd(e *env) *cobra.Command {
	var format, outputPath, noteRef string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export notes",
		Long:  `Export notes to JSON, YAML, or a directory of markdown files.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := e.notes.Load()
			if noteRef != "" {
				note, err := notes.Resolve(list, noteRef)
				if err != nil {
					return fmt.Errorf("failed to get note: %w", err)
				}
				list = []models.Note{note}
			}

			export := ExportData{
				ExportedAt: e.now().UTC(),
				Version:    exportVersion,
				Notes:      list,
			}

			var data []byte
			var err error
			switch format {
			case "json":
				data, err = json.MarshalIndent(export, "", "  ")
			case "yaml", "yml":
				data, err = yaml.Marshal(export)
			case "md":
				return exportMarkdown(cmd, list, outputPath)
			default:
				return fmt.Errorf("unknown format: %s", format)
			}
			if err != nil {
				return err
			}

			if outputPath == "" || outputPath == "-" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(outputPath, data, 0o600); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Exported %d notes to %s", len(list), outputPath)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "export format (json|yaml|md)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path (directory for md)")
	cmd.Flags().StringVarP(&noteRef, "note", "n", "", "single note ID to export")
	return cmd
}

func exportMarkdown(cmd *cobra.Command, list []models.Note, outputDir string) error {
	if outputDir == "" {
		outputDir = "export"
	}

	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return err
	}

	for _, n := range list {
		fm, err := yaml.Marshal(frontMatter{
			ID:        n.ID,
			Title:     n.Title,
			CreatedAt: n.Created().UTC(),
			UpdatedAt: n.Updated().UTC(),
		})
		if err != nil {
			return err
		}

		var sb strings.Builder
		sb.WriteString("---\n")
		sb.Write(fm)
		sb.WriteString("---\n\n")
		sb.WriteString(n.Body)

		filename := sanitizeFilename(n.Title) + "-" + n.ShortID() + ".md"
		if err := os.WriteFile(filepath.Join(outputDir, filename), []byte(sb.String()), 0o600); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Exported %d notes to %s", len(list), outputDir)))
	return nil
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
	)
	name = strings.TrimSpace(replacer.Replace(name))
	if name == "" {
		name = "untitled"
	}
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}
