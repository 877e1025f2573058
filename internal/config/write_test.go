package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetKeyInFile(t *testing.T) {
	t.Run("creates file and key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config")

		if err := SetKeyInFile(path, "direction", "left-to-right"); err != nil {
			t.Fatalf("SetKeyInFile failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if got := strings.TrimSpace(string(data)); got != "direction left-to-right" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("replaces existing key in place", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config")
		initial := "# my config\ndirection reading-order\nmouse off\n"
		if err := os.WriteFile(path, []byte(initial), 0644); err != nil {
			t.Fatal(err)
		}

		if err := SetKeyInFile(path, "direction", "bottom-to-top"); err != nil {
			t.Fatalf("SetKeyInFile failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		content := string(data)
		if !strings.Contains(content, "direction bottom-to-top") {
			t.Errorf("key not replaced: %q", content)
		}
		if strings.Contains(content, "reading-order") {
			t.Errorf("old value survived: %q", content)
		}
		// Comments and unrelated keys preserved.
		if !strings.Contains(content, "# my config") || !strings.Contains(content, "mouse off") {
			t.Errorf("unrelated content lost: %q", content)
		}
	})

	t.Run("inserts new key before first section", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config")
		initial := "mouse on\n\n[edit]\nstdio true\n"
		if err := os.WriteFile(path, []byte(initial), 0644); err != nil {
			t.Fatal(err)
		}

		if err := SetKeyInFile(path, "listen", "127.0.0.1:9000"); err != nil {
			t.Fatalf("SetKeyInFile failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		content := string(data)
		keyIdx := strings.Index(content, "listen 127.0.0.1:9000")
		secIdx := strings.Index(content, "[edit]")
		if keyIdx < 0 || secIdx < 0 || keyIdx > secIdx {
			t.Errorf("key not inserted before section: %q", content)
		}
	})

	t.Run("never touches section keys of the same name", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config")
		initial := "[edit]\nlisten 127.0.0.1:9000\n"
		if err := os.WriteFile(path, []byte(initial), 0644); err != nil {
			t.Fatal(err)
		}

		if err := SetKeyInFile(path, "listen", "0.0.0.0:7345"); err != nil {
			t.Fatalf("SetKeyInFile failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		content := string(data)
		if !strings.Contains(content, "listen 127.0.0.1:9000") {
			t.Errorf("section key was modified: %q", content)
		}
		if !strings.Contains(content, "listen 0.0.0.0:7345") {
			t.Errorf("global key not added: %q", content)
		}
	})

	t.Run("valueless key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config")
		if err := SetKeyInFile(path, "debug-log", ""); err != nil {
			t.Fatalf("SetKeyInFile failed: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if got := strings.TrimSpace(string(data)); got != "debug-log" {
			t.Errorf("content = %q", got)
		}
	})
}
