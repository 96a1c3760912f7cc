package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer finalizes a rendered report on disk. The content is staged in a
// temporary file and renamed into place, so a failed run never leaves a
// partial report behind.
type Writer struct{}

// NewWriter creates a report writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write stores content at path, creating parent directories as needed.
func (w *Writer) Write(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".routedoc-*")
	if err != nil {
		return fmt.Errorf("failed to create report staging file: %w", err)
	}

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to finalize report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move report into place: %w", err)
	}
	return nil
}
