package host

import (
	"io"
	"testing"
	"time"
)

// startDemo runs a demo host over a pipe and returns the engine's Conn.
func startDemo(t *testing.T) (*Conn, *DemoHost) {
	t.Helper()
	engineT, hostT := Pipe()
	demo := NewDemoHost(hostT, nil)
	go demo.Run()
	conn := NewConn(engineT, nil)
	t.Cleanup(func() { _ = conn.Close() })
	return conn, demo
}

func receive(t *testing.T, conn *Conn) Inbound {
	t.Helper()
	type result struct {
		m   Inbound
		err error
	}
	ch := make(chan result, 1)
	go func() {
		m, err := conn.Receive()
		ch <- result{m, err}
	}()
	select {
	case r := <-ch:
		if r.err != nil {
			t.Fatalf("Receive: %v", r.err)
		}
		return r.m
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a host message")
		return nil
	}
}

func TestDemoHostInitReportsSelection(t *testing.T) {
	conn, _ := startDemo(t)
	conn.Send(Init{})

	sel, ok := receive(t, conn).(Selection)
	if !ok {
		t.Fatal("init did not answer with a selection snapshot")
	}
	if sel.Count != 4 || len(sel.NodeIDs) != 4 {
		t.Fatalf("selection = %+v, want the 4 button children", sel)
	}
	if !sel.HasLocked {
		t.Error("HasLocked = false, one button is locked")
	}
}

func TestDemoHostBatchRenameSkipsLockedAndUnknown(t *testing.T) {
	conn, demo := startDemo(t)
	conn.Send(BatchRename{Renames: []NodeRename{
		{NodeID: "btn-1", NewName: "renamed_1"},
		{NodeID: "btn-4", NewName: "renamed_locked"},
		{NodeID: "no-such-node", NewName: "whatever"},
		{NodeID: "btn-2", NewName: "renamed_2"},
	}})
	// Positions request doubles as a barrier: its answer proves the batch
	// was handled.
	conn.Send(GetLayerPositions{})
	receive(t, conn)

	if name, _ := demo.NodeName("btn-1"); name != "renamed_1" {
		t.Errorf("btn-1 = %q, want renamed_1", name)
	}
	if name, _ := demo.NodeName("btn-2"); name != "renamed_2" {
		t.Errorf("btn-2 = %q, want renamed_2 (batch continues past skipped items)", name)
	}
	if name, _ := demo.NodeName("btn-4"); name != "btn_secondary_pressed" {
		t.Errorf("locked btn-4 was renamed to %q", name)
	}
}

func TestDemoHostSelectNextWraps(t *testing.T) {
	conn, demo := startDemo(t)

	// Collapse to a single node first.
	conn.Send(SelectNext{})
	receive(t, conn)
	if got := demo.SelectedIDs(); len(got) != 1 || got[0] != "btn-2" {
		t.Fatalf("selection after first next = %v, want [btn-2]", got)
	}
	for i := 0; i < 3; i++ {
		conn.Send(SelectNext{})
		receive(t, conn)
	}
	if got := demo.SelectedIDs(); len(got) != 1 || got[0] != "btn-1" {
		t.Errorf("selection did not wrap: %v, want [btn-1]", got)
	}

	conn.Send(SelectPrevious{})
	receive(t, conn)
	if got := demo.SelectedIDs(); len(got) != 1 || got[0] != "btn-4" {
		t.Errorf("previous did not wrap backwards: %v, want [btn-4]", got)
	}
}

func TestDemoHostEnterFrame(t *testing.T) {
	conn, demo := startDemo(t)

	conn.Send(SelectNext{}) // collapse to single
	receive(t, conn)

	// A leaf has no children: enterFrame is a silent no-op.
	conn.Send(EnterFrame{})
	conn.Send(GetLayerPositions{})
	if _, ok := receive(t, conn).(LayerPositions); !ok {
		t.Fatal("expected the positions answer, not a selection change")
	}

	// Reaching a frame and entering it selects its children.
	demo.mu.Lock()
	demo.selection = []string{"frame-icons"}
	demo.mu.Unlock()
	conn.Send(EnterFrame{})
	sel, ok := receive(t, conn).(Selection)
	if !ok {
		t.Fatal("enterFrame on a frame did not report the new selection")
	}
	if sel.Count != 4 {
		t.Errorf("selection count = %d, want the 4 icon children", sel.Count)
	}
}

func TestDemoHostQuickRename(t *testing.T) {
	conn, demo := startDemo(t)
	conn.Send(SelectNext{})
	receive(t, conn)

	conn.Send(Rename{Name: "renamed_live"})
	conn.Send(GetLayerPositions{})
	receive(t, conn)

	if name, _ := demo.NodeName("btn-2"); name != "renamed_live" {
		t.Errorf("quick rename did not apply: %q", name)
	}
}

func TestDemoHostGetLayerPositions(t *testing.T) {
	conn, _ := startDemo(t)
	conn.Send(GetLayerPositions{})
	pos, ok := receive(t, conn).(LayerPositions)
	if !ok {
		t.Fatal("expected layerPositions")
	}
	if len(pos.Layers) != 4 {
		t.Fatalf("got %d layers, want 4", len(pos.Layers))
	}
	if pos.Layers[1].Y != 48 {
		t.Errorf("positions not carried: %+v", pos.Layers[1])
	}
}

func TestPipeCloseUnblocksReader(t *testing.T) {
	a, b := Pipe()
	done := make(chan error, 1)
	go func() {
		_, err := a.ReadEnvelope()
		done <- err
	}()
	_ = b.Close()
	select {
	case err := <-done:
		if err != io.EOF {
			t.Errorf("ReadEnvelope after close = %v, want io.EOF", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("reader still blocked after close")
	}
}
