package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	t.Run("creates new file with content and permissions", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config")

		if err := AtomicWriteFile(path, []byte("direction reading-order\n"), 0600); err != nil {
			t.Fatalf("AtomicWriteFile failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading back: %v", err)
		}
		if got := string(data); got != "direction reading-order\n" {
			t.Errorf("content = %q", got)
		}

		if runtime.GOOS != "windows" {
			fi, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if fi.Mode().Perm() != 0600 {
				t.Errorf("perm = %v, want 0600", fi.Mode().Perm())
			}
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config")
		if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
			t.Fatal(err)
		}

		if err := AtomicWriteFile(path, []byte("new"), 0644); err != nil {
			t.Fatalf("AtomicWriteFile failed: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "new" {
			t.Errorf("content = %q, want %q", data, "new")
		}
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "a", "b", "config")

		if err := AtomicWriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("AtomicWriteFile failed: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("file not created: %v", err)
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config")
		if err := AtomicWriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), ".tmp-") {
				t.Errorf("leftover temp file: %s", e.Name())
			}
		}
	})
}
