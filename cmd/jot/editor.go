// ABOUTME: $EDITOR integration for add and edit.
// ABOUTME: Round-trips note text through a temp file and the user's editor.

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
)

var errNoEditor = errors.New("no editor configured")

// editorCommand returns the editor argv, preferring $VISUAL over $EDITOR.
func editorCommand() ([]string, error) {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(name)); len(fields) > 0 {
			return fields, nil
		}
	}
	if path, err := exec.LookPath("vi"); err == nil {
		return []string{path}, nil
	}
	return nil, errNoEditor
}

func openEditor(cmd *cobra.Command, initial string) (string, error) {
	argv, err := editorCommand()
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", "jot-*.md")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()

	_, werr := f.WriteString(initial)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return "", fmt.Errorf("write temp file: %w", werr)
	}

	argv = append(argv, path)
	ed := exec.CommandContext(cmd.Context(), argv[0], argv[1:]...) //nolint:gosec // user-chosen editor
	ed.Stdin = cmd.InOrStdin()
	ed.Stdout = cmd.OutOrStdout()
	ed.Stderr = cmd.ErrOrStderr()
	if err := ed.Run(); err != nil {
		return "", fmt.Errorf("run %s: %w", argv[0], err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read temp file: %w", err)
	}
	// Editors append a final newline the note never had.
	return strings.TrimSuffix(string(data), "\n"), nil
}
