package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer persists reports under a single output directory
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at dir. The directory is created
// lazily on first write.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write stores one report and returns the path written.
// Creating the directory is idempotent across runs.
func (w *Writer) Write(rep Report) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(w.dir, rep.Filename)
	if err := os.WriteFile(path, []byte(rep.Body), 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return path, nil
}

// WriteAll stores every report, returning the paths written
func (w *Writer) WriteAll(reports []Report) ([]string, error) {
	paths := make([]string, 0, len(reports))
	for _, rep := range reports {
		path, err := w.Write(rep)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
