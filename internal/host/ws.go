package host

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultListenAddr is the loopback bridge a design-tool plugin connects
// to when no --listen override is given.
const DefaultListenAddr = "127.0.0.1:7345"

// BridgePath is the websocket endpoint path on the bridge listener.
const BridgePath = "/bridge"

// wsTransport frames envelopes as websocket text messages, one envelope
// per frame.
type wsTransport struct {
	conn *websocket.Conn
}

func (t *wsTransport) ReadEnvelope() ([]byte, error) {
	_, data, err := t.conn.ReadMessage()
	return data, err
}

func (t *wsTransport) WriteEnvelope(data []byte) error {
	return t.conn.WriteMessage(websocket.TextMessage, data)
}

func (t *wsTransport) Close() error {
	deadline := time.Now().Add(time.Second)
	_ = t.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return t.conn.Close()
}

// Listener accepts design-tool plugin connections on a local websocket
// endpoint. The first connection becomes the session; later connection
// attempts are refused until it ends.
type Listener struct {
	server   *http.Server
	addr     net.Addr
	logger   *slog.Logger
	sessions chan Transport

	mu     sync.Mutex
	active bool
}

// Listen binds addr and starts serving the bridge endpoint. Connections
// arrive on Sessions.
func Listen(addr string, logger *slog.Logger) (*Listener, error) {
	if addr == "" {
		addr = DefaultListenAddr
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("bind bridge listener: %w", err)
	}

	l := &Listener{
		addr:     ln.Addr(),
		logger:   logger,
		sessions: make(chan Transport, 1),
	}
	upgrader := websocket.Upgrader{
		ReadBufferSize:  64 * 1024,
		WriteBufferSize: 64 * 1024,
		// Hosts are local plugin processes; the listener only binds
		// loopback addresses, so origin checking adds nothing here.
		CheckOrigin: func(*http.Request) bool { return true },
	}

	mux := http.NewServeMux()
	mux.HandleFunc(BridgePath, func(w http.ResponseWriter, r *http.Request) {
		l.mu.Lock()
		if l.active {
			l.mu.Unlock()
			http.Error(w, "a session is already connected", http.StatusConflict)
			return
		}
		l.active = true
		l.mu.Unlock()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			l.logger.Warn("bridge upgrade failed", "error", err)
			l.release()
			return
		}
		l.logger.Info("host connected", "remote", conn.RemoteAddr().String())
		l.sessions <- &sessionTransport{wsTransport: wsTransport{conn: conn}, release: l.release}
	})

	l.server = &http.Server{Handler: mux}
	go func() {
		if err := l.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.logger.Error("bridge listener stopped", "error", err)
		}
	}()
	return l, nil
}

// Sessions delivers each accepted host connection, one at a time.
func (l *Listener) Sessions() <-chan Transport { return l.sessions }

// Addr returns the bound address, useful when listening on port 0.
func (l *Listener) Addr() net.Addr { return l.addr }

// Close stops accepting connections. Established sessions keep running.
func (l *Listener) Close() error { return l.server.Close() }

func (l *Listener) release() {
	l.mu.Lock()
	l.active = false
	l.mu.Unlock()
}

// sessionTransport frees the single-session slot when the host goes away.
type sessionTransport struct {
	wsTransport
	release func()
	once    sync.Once
}

func (t *sessionTransport) Close() error {
	err := t.wsTransport.Close()
	t.once.Do(t.release)
	return err
}

func (t *sessionTransport) ReadEnvelope() ([]byte, error) {
	data, err := t.wsTransport.ReadEnvelope()
	if err != nil {
		t.once.Do(t.release)
	}
	return data, err
}

// Dial connects to a bridge listener as the host side. Tests use it; a
// real plugin dials from its own runtime.
func Dial(addr string) (Transport, error) {
	if addr == "" {
		addr = DefaultListenAddr
	}
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+BridgePath, nil)
	if err != nil {
		return nil, fmt.Errorf("dial bridge: %w", err)
	}
	return &wsTransport{conn: conn}, nil
}
