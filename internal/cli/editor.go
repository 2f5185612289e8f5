package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// titleTemplate is shown when composing a task title in an editor.
const titleTemplate = `
# Enter the task title on the first non-comment line.
# Lines starting with '#' are ignored. An empty title aborts.
`

// EditInEditor opens content in $VISUAL or $EDITOR and returns the saved file.
// suffix names the temp file extension, e.g. ".txt".
func EditInEditor(content []byte, suffix string) ([]byte, error) {
	editor := getEditor()
	if editor == "" {
		return nil, fmt.Errorf("EDITOR not set; pass the title as an argument instead")
	}

	tmp, err := os.CreateTemp("", "todo-*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := runEditor(editor, path); err != nil {
		return nil, err
	}

	out, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}
	return out, nil
}

// EditTitle composes a task title in the editor, starting from initial.
func EditTitle(initial string) (string, error) {
	out, err := EditInEditor([]byte(initial+"\n"+titleTemplate), ".txt")
	if err != nil {
		return "", err
	}
	return ParseTitle(out), nil
}

// ParseTitle returns the first line of text that is neither blank nor a
// '#' comment, trimmed.
func ParseTitle(text []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line
	}
	return ""
}

// getEditor prefers VISUAL over EDITOR.
func getEditor() string {
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	return os.Getenv("EDITOR")
}

// runEditor runs editor on path. editor may carry arguments, e.g. "code --wait".
func runEditor(editor, path string) error {
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("empty editor command")
	}

	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run editor: %w", err)
	}
	return nil
}
