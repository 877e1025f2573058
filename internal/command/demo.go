package command

import (
	"fmt"
	"io"

	"github.com/namegrid/namegrid/internal/config"
	"github.com/namegrid/namegrid/internal/host"
	"github.com/namegrid/namegrid/internal/nameparse"
	"github.com/namegrid/namegrid/internal/tui"
)

// DemoCommand runs the renamer against the built-in demo host, so the
// grid can be explored without a design tool attached.
type DemoCommand struct {
	*BaseCommand
	config *config.Config
}

// NewDemoCommand creates a new demo command.
func NewDemoCommand(cfg *config.Config) *DemoCommand {
	return &DemoCommand{
		BaseCommand: NewBaseCommand(
			"demo",
			"Explore the rename grid against a built-in demo layer tree",
			"demo",
		),
		config: cfg,
	}
}

// Execute runs the demo session until the UI quits.
func (c *DemoCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected arguments: %v\n", args)
		return fmt.Errorf("unexpected arguments")
	}

	logger, closeLog, err := newLogger(c.config)
	if err != nil {
		return err
	}
	defer closeLog()

	nameparse.AddWords(c.config.DictionaryWords())

	engineSide, hostSide := host.Pipe()
	demo := host.NewDemoHost(hostSide, logger)
	go demo.Run()

	return tui.Run(host.NewConn(engineSide, logger), tuiOptions(c.config, logger))
}
