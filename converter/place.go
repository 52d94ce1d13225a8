package converter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// writeFileAtomic streams write into a temp file next to dstPath and moves it
// into place, so a failed run never leaves a truncated workbook behind.
func writeFileAtomic(dstPath string, write func(io.Writer) error) error {
	if strings.TrimSpace(dstPath) == "" {
		return fmt.Errorf("output path is empty")
	}
	dir := filepath.Dir(dstPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dstPath)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	writeErr := write(tmp)
	closeErr := tmp.Close()
	if writeErr != nil {
		_ = os.Remove(tmpPath)
		return writeErr
	}
	if closeErr != nil {
		_ = os.Remove(tmpPath)
		return closeErr
	}
	if err := placeFile(tmpPath, dstPath); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// placeFile moves srcPath to dstPath, replacing dstPath if it exists.
func placeFile(srcPath string, dstPath string) error {
	// Try fast rename first.
	if err := os.Rename(srcPath, dstPath); err == nil {
		return nil
	}

	// Fallback: copy + remove (handles cross-device moves).
	in, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()
	if copyErr != nil {
		_ = os.Remove(dstPath)
		return copyErr
	}
	if closeErr != nil {
		_ = os.Remove(dstPath)
		return closeErr
	}
	return os.Remove(srcPath)
}
