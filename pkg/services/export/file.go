package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const timestampLayout = "20060102_150405"

// FileName builds the workbook name from a base name and the generation time.
func FileName(base string, at time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", base, at.Format(timestampLayout))
}

// writeAtomic writes through a temp file in dir and renames it into place, so a
// failed render never leaves a partial file behind.
func writeAtomic(dir, name string, write func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := renameFile(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}

func renameFile(from, to string) error {
	if err := os.Rename(from, to); err != nil {
		os.Remove(from)
		return fmt.Errorf("move output into place: %w", err)
	}
	return nil
}
