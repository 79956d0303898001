package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// atomicWrite writes content to a temp file in targetPath's directory and
// renames it into place, matching the source's
// tempfile.NamedTemporaryFile(...)+os.replace pattern so a crash mid-write
// never leaves a half-written output file (spec §4.8, §4.9).
func atomicWrite(targetPath string, write func(f *os.File) error) error {
	dir := filepath.Dir(targetPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("writer: creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(targetPath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("writer: creating temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writer: closing temp file %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, targetPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writer: renaming %s to %s: %w", tmpPath, targetPath, err)
	}
	return nil
}
