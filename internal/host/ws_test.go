package host

import (
	"testing"
)

func TestListenDialRoundTrip(t *testing.T) {
	listener, err := Listen("127.0.0.1:0", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = listener.Close() }()

	plugin, err := Dial(listener.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = plugin.Close() }()

	session := <-listener.Sessions()

	if err := plugin.WriteEnvelope([]byte(`{"type":"selection","count":2}`)); err != nil {
		t.Fatal(err)
	}
	data, err := session.ReadEnvelope()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"type":"selection","count":2}` {
		t.Errorf("session read %s", data)
	}

	if err := session.WriteEnvelope([]byte(`{"type":"rename","name":"hero"}`)); err != nil {
		t.Fatal(err)
	}
	data, err = plugin.ReadEnvelope()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"type":"rename","name":"hero"}` {
		t.Errorf("plugin read %s", data)
	}
}

func TestListenerRefusesSecondSession(t *testing.T) {
	listener, err := Listen("127.0.0.1:0", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = listener.Close() }()

	first, err := Dial(listener.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = first.Close() }()
	session := <-listener.Sessions()

	if _, err := Dial(listener.Addr().String()); err == nil {
		t.Fatal("second dial should be refused while a session is active")
	}

	// Ending the session frees the slot for the next host.
	_ = first.Close()
	if _, err := session.ReadEnvelope(); err == nil {
		t.Fatal("session read should fail after the host closes")
	}

	second, err := Dial(listener.Addr().String())
	if err != nil {
		t.Fatalf("dial after session end: %v", err)
	}
	_ = second.Close()
	<-listener.Sessions()
}
