package command

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/namegrid/namegrid/internal/config"
)

func testRegistry(cfg *config.Config) *Registry {
	r := NewRegistry()
	help := NewHelpCommand(r)
	r.Register(help)
	r.Register(NewVersionCommand("1.2.3"))
	r.Register(NewConfigCommand(cfg))
	r.Register(NewInitCommand())
	r.Register(NewEditCommand(cfg))
	r.Register(NewDemoCommand(cfg))
	return r
}

func TestHelpListsCommands(t *testing.T) {
	cfg := config.NewConfig()
	r := testRegistry(cfg)
	help, err := r.Get("help")
	if err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if err := help.Execute(nil, &stdout, &stderr); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	out := stdout.String()
	for _, name := range []string{"help", "version", "config", "init", "edit", "demo"} {
		if !strings.Contains(out, name) {
			t.Errorf("help output missing command %q:\n%s", name, out)
		}
	}
}

func TestHelpShowsCommandFlags(t *testing.T) {
	cfg := config.NewConfig()
	r := testRegistry(cfg)
	help, err := r.Get("help")
	if err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if err := help.Execute([]string{"edit"}, &stdout, &stderr); err != nil {
		t.Fatalf("help edit failed: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "edit [options]") {
		t.Errorf("help should show usage, got:\n%s", out)
	}
	if !strings.Contains(out, "-listen") || !strings.Contains(out, "-stdio") {
		t.Errorf("help should list the edit flags, got:\n%s", out)
	}
}

func TestHelpUnknownCommand(t *testing.T) {
	r := testRegistry(config.NewConfig())
	help, _ := r.Get("help")

	var stdout, stderr bytes.Buffer
	if err := help.Execute([]string{"bogus"}, &stdout, &stderr); err == nil {
		t.Error("expected error for unknown command")
	}
	if !strings.Contains(stderr.String(), "bogus") {
		t.Errorf("stderr should name the unknown command, got: %s", stderr.String())
	}
}

func TestVersionOutput(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute(nil, &stdout, &stderr); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if got := stdout.String(); got != "namegrid version 1.2.3\n" {
		t.Errorf("version output = %q", got)
	}
}

func TestVersionRejectsArgs(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute([]string{"extra"}, &stdout, &stderr); err == nil {
		t.Error("expected error for unexpected arguments")
	}
}

func TestConfigGet(t *testing.T) {
	cfg := config.NewConfig()
	cfg.SetGlobalOption("direction", "top-to-bottom")
	cmd := NewConfigCommand(cfg)

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute([]string{"direction"}, &stdout, &stderr); err != nil {
		t.Fatalf("config get failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "direction: top-to-bottom") {
		t.Errorf("unexpected output: %s", stdout.String())
	}
}

func TestConfigGetFallsBackToDefault(t *testing.T) {
	cmd := NewConfigCommand(config.NewConfig())

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute([]string{"direction"}, &stdout, &stderr); err != nil {
		t.Fatalf("config get failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "direction: reading-order") {
		t.Errorf("expected schema default, got: %s", stdout.String())
	}
}

func TestConfigSetPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	cfg := config.NewConfig()
	cmd := NewConfigCommand(cfg, path)

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute([]string{"direction", "left-to-right"}, &stdout, &stderr); err != nil {
		t.Fatalf("config set failed: %v", err)
	}

	if v, ok := cfg.GetGlobalOption("direction"); !ok || v != "left-to-right" {
		t.Errorf("in-memory config not updated: %q %v", v, ok)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "direction left-to-right") {
		t.Errorf("config file missing option:\n%s", data)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := config.NewConfig()
	cfg.SetGlobalOption("debounce-ms", "fast")
	cfg.SetGlobalOption("no-such-option", "1")
	cmd := NewConfigCommand(cfg)

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute([]string{"validate"}, &stdout, &stderr); err != nil {
		t.Fatalf("config validate failed: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "2 issue(s)") {
		t.Errorf("expected two issues, got:\n%s", out)
	}
	if !strings.Contains(out, "debounce-ms") || !strings.Contains(out, "no-such-option") {
		t.Errorf("issues should name the offending keys:\n%s", out)
	}
}

func TestConfigValidateClean(t *testing.T) {
	cmd := NewConfigCommand(config.NewConfig())

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute([]string{"validate"}, &stdout, &stderr); err != nil {
		t.Fatalf("config validate failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "valid") {
		t.Errorf("unexpected output: %s", stdout.String())
	}
}

func TestConfigSchemaSubcommand(t *testing.T) {
	cmd := NewConfigCommand(config.NewConfig())

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute([]string{"schema"}, &stdout, &stderr); err != nil {
		t.Fatalf("config schema failed: %v", err)
	}

	out := stdout.String()
	for _, key := range []string{"direction", "listen", "debounce-ms", "mouse", "dictionary", "debug-log"} {
		if !strings.Contains(out, key) {
			t.Errorf("schema output missing %q:\n%s", key, out)
		}
	}
}

func TestInitWritesStarterConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config")
	t.Setenv("NAMEGRID_CONFIG", path)

	cmd := NewInitCommand()

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute(nil, &stdout, &stderr); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "direction reading-order") {
		t.Errorf("starter config missing direction:\n%s", content)
	}
	if !strings.Contains(content, "[edit]") {
		t.Errorf("starter config missing [edit] section:\n%s", content)
	}

	// Second run without --force must not overwrite.
	stdout.Reset()
	if err := cmd.Execute(nil, &stdout, &stderr); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "already exists") {
		t.Errorf("second init should refuse to overwrite, got: %s", stdout.String())
	}
}

func TestEditRejectsArgs(t *testing.T) {
	cmd := NewEditCommand(config.NewConfig())

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute([]string{"extra"}, &stdout, &stderr); err == nil {
		t.Error("expected error for unexpected arguments")
	}
}
