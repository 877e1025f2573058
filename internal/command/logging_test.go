package command

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/namegrid/namegrid/internal/config"
	"github.com/namegrid/namegrid/internal/spatial"
)

func TestSortDirection(t *testing.T) {
	if got := sortDirection("bottom-to-top"); got != spatial.BottomToTop {
		t.Errorf("sortDirection(bottom-to-top) = %v", got)
	}
	if got := sortDirection(""); got != spatial.ReadingOrder {
		t.Errorf("sortDirection(empty) = %v, want reading order", got)
	}
	if got := sortDirection("diagonal"); got != spatial.ReadingOrder {
		t.Errorf("sortDirection(unknown) = %v, want reading order", got)
	}
}

func TestTUIOptionsDefaults(t *testing.T) {
	t.Setenv("NAMEGRID_DEBUG", "")
	cfg := config.NewConfig()
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer closeLog()

	opts := tuiOptions(cfg, logger)
	if opts.Direction != spatial.ReadingOrder {
		t.Errorf("Direction = %v", opts.Direction)
	}
	if opts.Debounce != 150*time.Millisecond {
		t.Errorf("Debounce = %v", opts.Debounce)
	}
	if opts.DisableMouse {
		t.Error("mouse should default on")
	}
	if opts.Logger == nil {
		t.Error("Logger must not be nil")
	}
}

func TestTUIOptionsFromConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.SetGlobalOption("direction", "top-to-bottom")
	cfg.SetGlobalOption("debounce-ms", "300")
	cfg.SetGlobalOption("mouse", "off")

	opts := tuiOptions(cfg, nil)
	if opts.Direction != spatial.TopToBottom {
		t.Errorf("Direction = %v", opts.Direction)
	}
	if opts.Debounce != 300*time.Millisecond {
		t.Errorf("Debounce = %v", opts.Debounce)
	}
	if !opts.DisableMouse {
		t.Error("mouse off should disable mouse tracking")
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	t.Setenv("NAMEGRID_DEBUG", path)

	logger, closeLog, err := newLogger(config.NewConfig())
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("session start", "command", "edit")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "session start") {
		t.Errorf("log file missing record:\n%s", data)
	}
}
