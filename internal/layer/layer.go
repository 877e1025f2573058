// Package layer defines the read-only layer snapshot shared by the rename
// engine and the host bridge.
package layer

// Kind identifies the host-side node type of a layer. The set mirrors the
// node types design tools commonly report; values outside it are passed
// through verbatim rather than rejected, so a host with exotic node types
// still works.
type Kind string

const (
	KindFrame     Kind = "frame"
	KindGroup     Kind = "group"
	KindComponent Kind = "component"
	KindInstance  Kind = "instance"
	KindText      Kind = "text"
	KindVector    Kind = "vector"
	KindRectangle Kind = "rectangle"
	KindEllipse   Kind = "ellipse"
	KindLine      Kind = "line"
	KindImage     Kind = "image"
	KindUnknown   Kind = "unknown"
)

// Ref is an immutable snapshot of one host layer, valid for the duration of
// a single grid session. Position is the layer's top-left corner in host
// canvas coordinates.
type Ref struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Kind Kind    `json:"type"`
}
