package flow

import (
	"encoding/json"
	"fmt"
)

// TypeText is the node type whose payload is modelled as [TextData].
const TypeText = "text"

// =============================================================================
// Graph
// =============================================================================

// Graph is a visual-editor graph: nodes and edges in render order.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// =============================================================================
// Node
// =============================================================================

// Position is a node's top-left corner in editor coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dimensions is a node's measured size. A zero field means "not measured".
type Dimensions struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Node is a positioned editor node.
type Node struct {
	ID       string
	Type     string
	Position Position
	Measured *Dimensions // nil until the editor has measured the node
	Data     NodeData    // nil when the node has no payload
}

type nodeJSON struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Position Position        `json:"position"`
	Measured *Dimensions     `json:"measured,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (n Node) MarshalJSON() ([]byte, error) {
	w := nodeJSON{
		ID:       n.ID,
		Type:     n.Type,
		Position: n.Position,
		Measured: n.Measured,
	}
	if td, ok := n.Data.(*TextData); ok && td == nil {
		return json.Marshal(w)
	}
	if n.Data != nil {
		data, err := json.Marshal(n.Data)
		if err != nil {
			return nil, fmt.Errorf("node %s data: %w", n.ID, err)
		}
		w.Data = data
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler. The payload variant is chosen
// by the node type: [*TextData] for text nodes, [OpaqueData] otherwise.
func (n *Node) UnmarshalJSON(data []byte) error {
	var w nodeJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*n = Node{
		ID:       w.ID,
		Type:     w.Type,
		Position: w.Position,
		Measured: w.Measured,
	}
	if len(w.Data) == 0 || string(w.Data) == "null" {
		return nil
	}

	if w.Type == TypeText {
		var td TextData
		if err := json.Unmarshal(w.Data, &td); err != nil {
			return fmt.Errorf("node %s data: %w", w.ID, err)
		}
		n.Data = &td
		return nil
	}

	var od OpaqueData
	if err := json.Unmarshal(w.Data, &od); err != nil {
		return fmt.Errorf("node %s data: %w", w.ID, err)
	}
	n.Data = od
	return nil
}

// =============================================================================
// Node Payloads
// =============================================================================

// NodeData is the payload of a [Node]. The set of implementations is closed:
// [*TextData] and [OpaqueData].
type NodeData interface {
	nodeData()
}

// TextData is the payload of a text node.
type TextData struct {
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
}

func (*TextData) nodeData() {}

// OpaqueData is the payload of any node type the editor does not model. It
// is carried through untouched.
type OpaqueData map[string]any

func (OpaqueData) nodeData() {}

// String returns the value at key when it is a string, and "" otherwise.
func (d OpaqueData) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// =============================================================================
// Edge
// =============================================================================

// Edge connects Source to Target.
type Edge struct {
	ID     string    `json:"id"`
	Source string    `json:"source"`
	Target string    `json:"target"`
	Label  string    `json:"label,omitempty"`
	Data   *EdgeData `json:"data,omitempty"`
}

// EdgeData is the payload of an edge.
type EdgeData struct {
	Color string `json:"color,omitempty"`
}
