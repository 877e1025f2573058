package command

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/namegrid/namegrid/internal/config"
	"github.com/namegrid/namegrid/internal/spatial"
	"github.com/namegrid/namegrid/internal/tui"
)

// newLogger builds the session logger. The interactive commands cannot
// log to stdout (the TUI owns it), so `debug-log` (or NAMEGRID_DEBUG)
// names a JSON-lines file; without it, logs are discarded.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	path := config.DefaultSchema().Resolve(cfg, "debug-log")
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}

// tuiOptions maps config onto the front-end options shared by the edit
// and demo commands.
func tuiOptions(cfg *config.Config, logger *slog.Logger) tui.Options {
	return tui.Options{
		Direction:    sortDirection(cfg.GetString("direction")),
		Debounce:     time.Duration(cfg.GetIntDefault("debounce-ms", 150)) * time.Millisecond,
		DisableMouse: !cfg.GetBoolDefault("mouse", true),
		Logger:       logger,
	}
}

// sortDirection validates a configured direction, falling back to reading
// order for unknown values (config validation already warned).
func sortDirection(v string) spatial.Direction {
	for _, d := range spatial.Directions {
		if string(d) == v {
			return d
		}
	}
	return spatial.ReadingOrder
}
