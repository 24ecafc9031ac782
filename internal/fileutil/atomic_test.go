package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "game.toml")
	testData := "session = \"abc\"\n"

	if err := writeString(testFile, testData); err != nil {
		t.Fatalf("WriteAtomic failed: %v", err)
	}

	data, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != testData {
		t.Errorf("File content mismatch: got %q, want %q", string(data), testData)
	}

	info, err := os.Stat(testFile)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("File permissions mismatch: got %o, want %o", info.Mode().Perm(), 0644)
	}

	assertOnlyFile(t, tmpDir, "game.toml")
}

func TestWriteAtomicOverwrite(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "game.toml")

	if err := writeString(testFile, "initial"); err != nil {
		t.Fatalf("Initial write failed: %v", err)
	}
	if err := writeString(testFile, "updated content"); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}

	data, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "updated content" {
		t.Errorf("File content mismatch: got %q", string(data))
	}
}

func TestWriteAtomicCallbackErrorLeavesOldFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "game.toml")
	if err := writeString(testFile, "original"); err != nil {
		t.Fatalf("Initial write failed: %v", err)
	}

	boom := errors.New("encode failed")
	err := WriteAtomic(testFile, 0644, func(w io.Writer) error {
		fmt.Fprint(w, "half written")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}

	data, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "original" {
		t.Errorf("old file was replaced: %q", string(data))
	}
	assertOnlyFile(t, tmpDir, "game.toml")
}

func TestWriteAtomicInvalidDir(t *testing.T) {
	t.Parallel()

	err := writeString("/nonexistent/dir/test.txt", "data")
	if err == nil {
		t.Error("Expected error when writing to non-existent directory")
	}
}

// writeString writes s to filename through WriteAtomic
func writeString(filename, s string) error {
	return WriteAtomic(filename, 0644, func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func assertOnlyFile(t *testing.T, dir, name string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != name {
			t.Errorf("Unexpected file in directory: %s", entry.Name())
		}
	}
}
