package converter

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic_EmptyPathErrors(t *testing.T) {
	if err := writeFileAtomic("", func(io.Writer) error { return nil }); err == nil {
		t.Fatalf("expected error for empty output path")
	}
}

func TestWriteFileAtomic_ReplacesExistingFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out", "book.xlsx")
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := writeFileAtomic(dst, func(w io.Writer) error {
		_, err := io.WriteString(w, "payload")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "payload" {
		t.Fatalf("unexpected content: %q", string(b))
	}
	assertNoTempFiles(t, filepath.Dir(dst))
}

func TestWriteFileAtomic_FailedWriteKeepsOldFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "book.xlsx")
	if err := os.WriteFile(dst, []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err := writeFileAtomic(dst, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "existing" {
		t.Fatalf("old file should survive, got %q", string(b))
	}
	assertNoTempFiles(t, filepath.Dir(dst))
}

func TestPlaceFile_MovesContent(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src.tmp")
	dst := filepath.Join(tmp, "dst.xlsx")
	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := placeFile(src, dst); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(src); err == nil {
		t.Fatalf("expected source removed: %s", src)
	}
	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "payload" {
		t.Fatalf("unexpected content: %q", string(b))
	}
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Fatalf("temp files left behind: %v", matches)
	}
}
