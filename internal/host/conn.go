package host

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Transport moves opaque envelopes. Implementations: newline-delimited
// streams (stdio), websocket text frames, and the in-process pipe.
type Transport interface {
	// ReadEnvelope blocks for the next envelope. io.EOF signals an orderly
	// close.
	ReadEnvelope() ([]byte, error)
	// WriteEnvelope sends one envelope.
	WriteEnvelope([]byte) error
	Close() error
}

// maxEnvelope bounds a single envelope; a full batch rename of a very
// large selection stays well under this.
const maxEnvelope = 4 << 20

// streamTransport frames envelopes as newline-delimited JSON over a byte
// stream (the stdio bridge).
type streamTransport struct {
	scanner *bufio.Scanner
	w       io.Writer
	closer  io.Closer
}

// NewStreamTransport frames envelopes over r/w, one JSON object per line.
// closer may be nil when the caller owns the stream lifetime (stdin).
func NewStreamTransport(r io.Reader, w io.Writer, closer io.Closer) Transport {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxEnvelope)
	return &streamTransport{scanner: scanner, w: w, closer: closer}
}

func (t *streamTransport) ReadEnvelope() ([]byte, error) {
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	// Copy out: the scanner reuses its buffer on the next Scan.
	line := t.scanner.Bytes()
	out := make([]byte, len(line))
	copy(out, line)
	return out, nil
}

func (t *streamTransport) WriteEnvelope(data []byte) error {
	if _, err := t.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write envelope: %w", err)
	}
	return nil
}

func (t *streamTransport) Close() error {
	if t.closer == nil {
		return nil
	}
	return t.closer.Close()
}

// Conn is the engine's side of the bridge: it sends Outbound messages and
// receives Inbound ones. Sends are serialized by a mutex and
// fire-and-forget: failures are logged, never returned to the interaction
// layer, because the grid's in-memory state is the source of truth while
// editing.
type Conn struct {
	t      Transport
	logger *slog.Logger

	mu sync.Mutex
}

// NewConn wraps a transport. logger may be nil for a silent connection.
func NewConn(t Transport, logger *slog.Logger) *Conn {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Conn{t: t, logger: logger}
}

// Send encodes and writes one message, logging and swallowing failures.
func (c *Conn) Send(m Outbound) {
	data, err := EncodeOutbound(m)
	if err != nil {
		c.logger.Error("encode outbound message", "error", err)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.t.WriteEnvelope(data); err != nil {
		c.logger.Warn("send to host failed", "error", err)
	}
}

// Receive blocks for the next well-formed inbound message, dropping (and
// logging) envelopes it cannot decode. io.EOF means the host went away.
func (c *Conn) Receive() (Inbound, error) {
	for {
		data, err := c.t.ReadEnvelope()
		if err != nil {
			return nil, err
		}
		m, err := DecodeInbound(data)
		if err != nil {
			c.logger.Warn("dropping inbound envelope", "error", err)
			continue
		}
		return m, nil
	}
}

// Close tears down the transport.
func (c *Conn) Close() error { return c.t.Close() }

// HostConn is the host's side of the bridge, the mirror of Conn. Only the
// in-process demo host (and tests) use it; a real host speaks the wire
// format directly.
type HostConn struct {
	t      Transport
	logger *slog.Logger

	mu sync.Mutex
}

// NewHostConn wraps a transport for the host side.
func NewHostConn(t Transport, logger *slog.Logger) *HostConn {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &HostConn{t: t, logger: logger}
}

// Send encodes and writes one host→engine message.
func (c *HostConn) Send(m Inbound) {
	data, err := EncodeInbound(m)
	if err != nil {
		c.logger.Error("encode inbound message", "error", err)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.t.WriteEnvelope(data); err != nil {
		c.logger.Warn("send to engine failed", "error", err)
	}
}

// Receive blocks for the next engine→host message.
func (c *HostConn) Receive() (Outbound, error) {
	for {
		data, err := c.t.ReadEnvelope()
		if err != nil {
			return nil, err
		}
		m, err := DecodeOutbound(data)
		if err != nil {
			c.logger.Warn("dropping outbound envelope", "error", err)
			continue
		}
		return m, nil
	}
}

// Close tears down the transport.
func (c *HostConn) Close() error { return c.t.Close() }
