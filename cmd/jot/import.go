// ABOUTME: Import command for restoring notes from backup.
// ABOUTME: Merges by id; the copy with the newer update time wins.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/notes"
	"github.com/harper/jot/internal/ui"
)

func newImportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Import notes",
		Long: `Import notes from a JSON or YAML export, a markdown file, or a directory of
markdown files. Notes whose id already exists replace the stored copy only if
they were updated more recently.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			incoming, err := readImport(args[0], e.now)
			if err != nil {
				return err
			}

			merged, added, updated := notes.Merge(e.notes.Load(), incoming)
			if added+updated > 0 {
				if err := e.notes.Save(merged); err != nil {
					return fmt.Errorf("save notes: %w", err)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Imported %d new, %d updated", added, updated)))
			return nil
		},
	}
}

// readImport parses path and gives every record an id and timestamps, so
// records lacking them are added as distinct notes.
func readImport(path string, now func() time.Time) ([]models.Note, error) {
	list, err := readImportFile(path, now)
	if err != nil {
		return nil, err
	}
	stamp := now().UnixMilli()
	for i := range list {
		n := &list[i]
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if n.CreatedAt == 0 {
			n.CreatedAt = stamp
		}
		if n.UpdatedAt < n.CreatedAt {
			n.UpdatedAt = n.CreatedAt
		}
	}
	return list, nil
}

func readImportFile(path string, now func() time.Time) ([]models.Note, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}
	if info.IsDir() {
		return readMarkdownDir(path, now)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return readJSON(path)
	case ".yaml", ".yml":
		return readYAML(path)
	default:
		n, err := readMarkdownFile(path, now)
		if err != nil {
			return nil, err
		}
		return []models.Note{n}, nil
	}
}

// readJSON accepts an export envelope or a bare stored collection.
func readJSON(path string) ([]models.Note, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return nil, err
	}

	var list []models.Note
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return export.Notes, nil
}

func readYAML(path string) ([]models.Note, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return nil, err
	}

	var export ExportData
	if err := yaml.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return export.Notes, nil
}

func readMarkdownDir(dir string, now func() time.Time) ([]models.Note, error) {
	var list []models.Note
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		n, err := readMarkdownFile(path, now)
		if err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		list = append(list, n)
		return nil
	})
	return list, err
}

// readMarkdownFile parses optional front matter. Without it the file name is
// the title. Files without an id get a fresh one; missing times default to now.
func readMarkdownFile(path string, now func() time.Time) (models.Note, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return models.Note{}, err
	}

	content := string(data)
	var fm frontMatter
	parsed := false
	if strings.HasPrefix(content, "---\n") {
		parts := strings.SplitN(content, "---\n", 3)
		if len(parts) >= 3 {
			if err := yaml.Unmarshal([]byte(parts[1]), &fm); err == nil {
				content = parts[2]
				parsed = true
			}
		}
	}

	if !parsed {
		fm.Title = strings.TrimSuffix(filepath.Base(path), ".md")
	}

	n := models.NewNoteAt(uuid.NewString(), now())
	if fm.ID != "" {
		n.ID = fm.ID
	}
	n.Title = fm.Title
	n.Body = strings.TrimLeft(content, "\n")
	if !fm.CreatedAt.IsZero() {
		n.CreatedAt = fm.CreatedAt.UnixMilli()
	}
	if !fm.UpdatedAt.IsZero() {
		n.UpdatedAt = fm.UpdatedAt.UnixMilli()
	}
	return *n, nil
}
