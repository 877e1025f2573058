// Package host carries the message contract between the rename engine and
// the design-tool host: closed tagged unions per direction, a
// newline-delimited JSON codec, and the transports the envelopes ride on
// (websocket bridge, stdio, in-process pipe).
package host

import (
	"github.com/namegrid/namegrid/internal/layer"
)

// Inbound is a message from the host to the engine. The union is closed:
// adding a message type means adding a case to every exhaustive switch
// over it, checked at compile time.
type Inbound interface{ inbound() }

// Selection is the host's current selection snapshot.
type Selection struct {
	Count     int        `json:"count"`
	Names     []string   `json:"names"`
	HasLocked bool       `json:"hasLocked"`
	NodeIDs   []string   `json:"nodeIds"`
	LayerType layer.Kind `json:"layerType"`
}

// LayerPositions answers GetLayerPositions with position data for the
// current selection; it seeds (or re-seeds) the grid.
type LayerPositions struct {
	Layers []layer.Ref `json:"layers"`
}

func (Selection) inbound()      {}
func (LayerPositions) inbound() {}

// Outbound is a message from the engine to the host. All sends are
// fire-and-forget; no acknowledgment is ever awaited.
type Outbound interface{ outbound() }

// Init requests the current selection on startup.
type Init struct{}

// Rename applies one name to every currently selected host layer (the
// quick-mode path).
type Rename struct {
	Name string `json:"name"`
}

// SelectNext asks the host to move its selection to the next sibling,
// wrapping at tree boundaries.
type SelectNext struct{}

// SelectPrevious is the SelectNext mirror.
type SelectPrevious struct{}

// EnterFrame asks the host to replace the selection with the children of
// the single selected container.
type EnterFrame struct{}

// GetLayerPositions requests position data for the current selection.
type GetLayerPositions struct{}

// BatchRename applies the grid's computed names in one batch. The host
// skips locked layers and unknown node IDs silently; application is
// at-least-effort, never all-or-nothing.
type BatchRename struct {
	Renames []NodeRename `json:"renames"`
}

// NodeRename is one item of a BatchRename.
type NodeRename struct {
	NodeID  string `json:"nodeId"`
	NewName string `json:"newName"`
}

// ResizeUI requests a host-side UI viewport resize.
type ResizeUI struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ZoomToLayer scrolls the host viewport to one layer.
type ZoomToLayer struct {
	NodeID string `json:"nodeId"`
}

// ZoomToSelection scrolls the host viewport to the whole selection.
type ZoomToSelection struct{}

// HighlightLayer draws the host's hover highlight on one layer.
type HighlightLayer struct {
	NodeID string `json:"nodeId"`
}

// RemoveHighlight clears any highlight drawn by HighlightLayer.
type RemoveHighlight struct{}

func (Init) outbound()              {}
func (Rename) outbound()            {}
func (SelectNext) outbound()        {}
func (SelectPrevious) outbound()    {}
func (EnterFrame) outbound()        {}
func (GetLayerPositions) outbound() {}
func (BatchRename) outbound()       {}
func (ResizeUI) outbound()          {}
func (ZoomToLayer) outbound()       {}
func (ZoomToSelection) outbound()   {}
func (HighlightLayer) outbound()    {}
func (RemoveHighlight) outbound()   {}
