package host

import (
	"encoding/json"
	"fmt"
)

// Envelope tags. One constant per message type, per direction.
const (
	tagSelection      = "selection"
	tagLayerPositions = "layerPositions"

	tagInit              = "init"
	tagRename            = "rename"
	tagSelectNext        = "selectNext"
	tagSelectPrevious    = "selectPrevious"
	tagEnterFrame        = "enterFrame"
	tagGetLayerPositions = "getLayerPositions"
	tagBatchRename       = "batchRename"
	tagResizeUI          = "resizeUI"
	tagZoomToLayer       = "zoomToLayer"
	tagZoomToSelection   = "zoomToSelection"
	tagHighlightLayer    = "highlightLayer"
	tagRemoveHighlight   = "removeHighlight"
)

// EncodeInbound serializes a host→engine message as one JSON envelope with
// the type tag inlined next to the payload fields.
func EncodeInbound(m Inbound) ([]byte, error) {
	var tag string
	switch m.(type) {
	case Selection:
		tag = tagSelection
	case LayerPositions:
		tag = tagLayerPositions
	default:
		return nil, fmt.Errorf("unencodable inbound message %T", m)
	}
	return encodeEnvelope(tag, m)
}

// EncodeOutbound serializes an engine→host message as one JSON envelope.
func EncodeOutbound(m Outbound) ([]byte, error) {
	var tag string
	switch m.(type) {
	case Init:
		tag = tagInit
	case Rename:
		tag = tagRename
	case SelectNext:
		tag = tagSelectNext
	case SelectPrevious:
		tag = tagSelectPrevious
	case EnterFrame:
		tag = tagEnterFrame
	case GetLayerPositions:
		tag = tagGetLayerPositions
	case BatchRename:
		tag = tagBatchRename
	case ResizeUI:
		tag = tagResizeUI
	case ZoomToLayer:
		tag = tagZoomToLayer
	case ZoomToSelection:
		tag = tagZoomToSelection
	case HighlightLayer:
		tag = tagHighlightLayer
	case RemoveHighlight:
		tag = tagRemoveHighlight
	default:
		return nil, fmt.Errorf("unencodable outbound message %T", m)
	}
	return encodeEnvelope(tag, m)
}

// DecodeInbound parses one host→engine envelope. Unknown type tags are an
// error the reader loop logs and drops: reads are tolerant, writes are
// closed.
func DecodeInbound(data []byte) (Inbound, error) {
	tag, err := envelopeTag(data)
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagSelection:
		var m Selection
		return m, json.Unmarshal(data, &m)
	case tagLayerPositions:
		var m LayerPositions
		return m, json.Unmarshal(data, &m)
	default:
		return nil, fmt.Errorf("unknown inbound message type %q", tag)
	}
}

// DecodeOutbound parses one engine→host envelope. Only a host (the demo
// host, or a test standing in for one) decodes this direction.
func DecodeOutbound(data []byte) (Outbound, error) {
	tag, err := envelopeTag(data)
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagInit:
		return Init{}, nil
	case tagRename:
		var m Rename
		return m, json.Unmarshal(data, &m)
	case tagSelectNext:
		return SelectNext{}, nil
	case tagSelectPrevious:
		return SelectPrevious{}, nil
	case tagEnterFrame:
		return EnterFrame{}, nil
	case tagGetLayerPositions:
		return GetLayerPositions{}, nil
	case tagBatchRename:
		var m BatchRename
		return m, json.Unmarshal(data, &m)
	case tagResizeUI:
		var m ResizeUI
		return m, json.Unmarshal(data, &m)
	case tagZoomToLayer:
		var m ZoomToLayer
		return m, json.Unmarshal(data, &m)
	case tagZoomToSelection:
		return ZoomToSelection{}, nil
	case tagHighlightLayer:
		var m HighlightLayer
		return m, json.Unmarshal(data, &m)
	case tagRemoveHighlight:
		return RemoveHighlight{}, nil
	default:
		return nil, fmt.Errorf("unknown outbound message type %q", tag)
	}
}

// encodeEnvelope flattens the payload fields and the type tag into one
// JSON object.
func encodeEnvelope(tag string, payload any) ([]byte, error) {
	fields := make(map[string]json.RawMessage)
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %q payload: %w", tag, err)
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("flatten %q payload: %w", tag, err)
	}
	fields["type"], _ = json.Marshal(tag)
	return json.Marshal(fields)
}

// envelopeTag extracts the type tag without committing to a payload shape.
func envelopeTag(data []byte) (string, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return "", fmt.Errorf("malformed envelope: %w", err)
	}
	if head.Type == "" {
		return "", fmt.Errorf("envelope missing type tag")
	}
	return head.Type, nil
}
