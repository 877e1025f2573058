package command

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/namegrid/namegrid/internal/config"
	"github.com/namegrid/namegrid/internal/host"
	"github.com/namegrid/namegrid/internal/nameparse"
	"github.com/namegrid/namegrid/internal/tui"
)

// EditCommand runs the interactive renamer against a live host: it waits
// for a design-tool plugin on the websocket bridge, or speaks the
// protocol on stdin/stdout with --stdio.
type EditCommand struct {
	*BaseCommand
	config *config.Config
	listen string
	stdio  bool
}

// NewEditCommand creates a new edit command.
func NewEditCommand(cfg *config.Config) *EditCommand {
	return &EditCommand{
		BaseCommand: NewBaseCommand(
			"edit",
			"Rename the host's selected layers interactively",
			"edit [options]",
		),
		config: cfg,
	}
}

// SetupFlags configures the flags for the edit command.
func (c *EditCommand) SetupFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listen, "listen", "", "bridge listen address (host:port)")
	fs.BoolVar(&c.stdio, "stdio", false, "speak the bridge protocol on stdin/stdout")
}

// Execute runs the edit session until the UI quits or the host goes away.
func (c *EditCommand) Execute(args []string, stdout, stderr io.Writer) error {
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
	opts := tuiOptions(c.config, logger)

	if c.useStdio() {
		return c.runStdio(opts)
	}

	addr := c.listen
	if addr == "" {
		addr = config.DefaultSchema().Resolve(c.config, "listen")
	}
	listener, err := host.Listen(addr, logger)
	if err != nil {
		return err
	}
	defer func() { _ = listener.Close() }()

	_, _ = fmt.Fprintf(stdout, "Waiting for a host connection on ws://%s%s ...\n",
		listener.Addr(), host.BridgePath)
	transport := <-listener.Sessions()

	return tui.Run(host.NewConn(transport, logger), opts)
}

func (c *EditCommand) useStdio() bool {
	if c.stdio {
		return true
	}
	v, ok := c.config.GetCommandOption("edit", "stdio")
	if !ok {
		return false
	}
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

// runStdio speaks envelopes on stdin/stdout, so the UI must render to the
// controlling terminal instead.
func (c *EditCommand) runStdio(opts tui.Options) error {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("stdio bridge needs a controlling terminal: %w", err)
	}
	defer func() { _ = tty.Close() }()

	transport := host.NewStreamTransport(os.Stdin, os.Stdout, nil)
	conn := host.NewConn(transport, opts.Logger)
	return tui.Run(conn, opts, tea.WithInput(tty), tea.WithOutput(tty))
}
