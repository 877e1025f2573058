package host

import (
	"io"
	"sync"
)

// Pipe returns two connected in-process transports. Envelopes written to
// one side are read from the other. Closing either side unblocks both.
// It backs the demo host and the codec round-trip tests.
func Pipe() (a, b Transport) {
	ab := make(chan []byte, 16)
	ba := make(chan []byte, 16)
	done := make(chan struct{})
	var once sync.Once
	closeDone := func() error { once.Do(func() { close(done) }); return nil }
	return &pipeTransport{in: ba, out: ab, done: done, close: closeDone},
		&pipeTransport{in: ab, out: ba, done: done, close: closeDone}
}

type pipeTransport struct {
	in    <-chan []byte
	out   chan<- []byte
	done  <-chan struct{}
	close func() error
}

func (t *pipeTransport) ReadEnvelope() ([]byte, error) {
	select {
	case data := <-t.in:
		return data, nil
	case <-t.done:
		// Drain anything queued before the close.
		select {
		case data := <-t.in:
			return data, nil
		default:
			return nil, io.EOF
		}
	}
}

func (t *pipeTransport) WriteEnvelope(data []byte) error {
	select {
	case t.out <- data:
		return nil
	case <-t.done:
		return io.ErrClosedPipe
	}
}

func (t *pipeTransport) Close() error { return t.close() }
