package host

import (
	"io"
	"log/slog"
	"sync"

	"github.com/namegrid/namegrid/internal/layer"
)

// DemoHost is an in-process host with a small in-memory layer tree. It
// implements the full message contract so the TUI can be exercised
// without a design tool on the other end. Rename application is
// at-least-effort: locked layers and unknown node IDs are skipped
// silently and the rest of a batch still applies.
type DemoHost struct {
	conn   *HostConn
	logger *slog.Logger

	mu        sync.Mutex
	nodes     []*demoNode
	selection []string
}

type demoNode struct {
	id     string
	name   string
	x, y   float64
	kind   layer.Kind
	locked bool
	parent string // "" at the root
}

// NewDemoHost wires a demo host to its side of a transport, seeded with a
// small layer tree and the first frame's children selected.
func NewDemoHost(t Transport, logger *slog.Logger) *DemoHost {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &DemoHost{
		conn:   NewHostConn(t, logger),
		logger: logger,
		nodes:  demoTree(),
	}
	h.selection = h.childrenOf("frame-buttons")
	return h
}

// demoTree is the seed document: two frames of layers whose names
// exercise every parser strategy, one of them locked.
func demoTree() []*demoNode {
	return []*demoNode{
		{id: "frame-buttons", name: "Buttons", kind: layer.KindFrame},
		{id: "btn-1", name: "btn_primary_hover", x: 0, y: 0, kind: layer.KindComponent, parent: "frame-buttons"},
		{id: "btn-2", name: "btn_secondary_hover", x: 0, y: 48, kind: layer.KindComponent, parent: "frame-buttons"},
		{id: "btn-3", name: "btn_primary_pressed", x: 0, y: 96, kind: layer.KindComponent, parent: "frame-buttons"},
		{id: "btn-4", name: "btn_secondary_pressed", x: 0, y: 144, kind: layer.KindComponent, locked: true, parent: "frame-buttons"},

		{id: "frame-icons", name: "Icons", x: 400, kind: layer.KindFrame},
		{id: "icon-1", name: "iconHome", x: 400, y: 0, kind: layer.KindVector, parent: "frame-icons"},
		{id: "icon-2", name: "iconSearch", x: 440, y: 0, kind: layer.KindVector, parent: "frame-icons"},
		{id: "icon-3", name: "image01", x: 480, y: 0, kind: layer.KindImage, parent: "frame-icons"},
		{id: "icon-4", name: "image02", x: 520, y: 0, kind: layer.KindImage, parent: "frame-icons"},
	}
}

// Run services the engine until it closes the transport.
func (h *DemoHost) Run() {
	for {
		msg, err := h.conn.Receive()
		if err != nil {
			if err != io.EOF {
				h.logger.Warn("demo host read failed", "error", err)
			}
			return
		}
		h.handle(msg)
	}
}

func (h *DemoHost) handle(msg Outbound) {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch m := msg.(type) {
	case Init:
		h.sendSelectionLocked()
	case Rename:
		for _, id := range h.selection {
			if n := h.find(id); n != nil && !n.locked {
				n.name = m.Name
			}
		}
	case SelectNext:
		h.moveSelectionLocked(1)
	case SelectPrevious:
		h.moveSelectionLocked(-1)
	case EnterFrame:
		if len(h.selection) != 1 {
			return
		}
		if children := h.childrenOf(h.selection[0]); len(children) > 0 {
			h.selection = children
			h.sendSelectionLocked()
		}
	case GetLayerPositions:
		layers := make([]layer.Ref, 0, len(h.selection))
		for _, id := range h.selection {
			if n := h.find(id); n != nil {
				layers = append(layers, layer.Ref{ID: n.id, Name: n.name, X: n.x, Y: n.y, Kind: n.kind})
			}
		}
		h.conn.Send(LayerPositions{Layers: layers})
	case BatchRename:
		for _, r := range m.Renames {
			n := h.find(r.NodeID)
			if n == nil || n.locked {
				continue
			}
			n.name = r.NewName
		}
	case ResizeUI, ZoomToLayer, ZoomToSelection, HighlightLayer, RemoveHighlight:
		// Viewport affordances have no terminal equivalent.
	}
}

// moveSelectionLocked collapses the selection to the first selected
// node's next (or previous) sibling, wrapping at the ends.
func (h *DemoHost) moveSelectionLocked(step int) {
	if len(h.selection) == 0 {
		return
	}
	current := h.find(h.selection[0])
	if current == nil {
		return
	}
	siblings := h.childrenOf(current.parent)
	if len(siblings) == 0 {
		return
	}
	at := 0
	for i, id := range siblings {
		if id == current.id {
			at = i
			break
		}
	}
	next := ((at+step)%len(siblings) + len(siblings)) % len(siblings)
	h.selection = []string{siblings[next]}
	h.sendSelectionLocked()
}

func (h *DemoHost) sendSelectionLocked() {
	snap := Selection{Count: len(h.selection)}
	var kind layer.Kind
	for i, id := range h.selection {
		n := h.find(id)
		if n == nil {
			continue
		}
		snap.Names = append(snap.Names, n.name)
		snap.NodeIDs = append(snap.NodeIDs, n.id)
		if n.locked {
			snap.HasLocked = true
		}
		if i == 0 {
			kind = n.kind
		} else if n.kind != kind {
			kind = "mixed"
		}
	}
	snap.LayerType = kind
	h.conn.Send(snap)
}

func (h *DemoHost) find(id string) *demoNode {
	for _, n := range h.nodes {
		if n.id == id {
			return n
		}
	}
	return nil
}

func (h *DemoHost) childrenOf(parent string) []string {
	var out []string
	for _, n := range h.nodes {
		if n.parent == parent {
			out = append(out, n.id)
		}
	}
	return out
}

// NodeName reports a node's current name, for tests and the demo banner.
func (h *DemoHost) NodeName(id string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n := h.find(id); n != nil {
		return n.name, true
	}
	return "", false
}

// SelectedIDs returns a copy of the current selection.
func (h *DemoHost) SelectedIDs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.selection...)
}
