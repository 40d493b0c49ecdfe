package canvas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// =============================================================================
// Constants
// =============================================================================

// NodeType discriminates the node variants of a document.
type NodeType string

// Node types defined by JSON Canvas 1.0.
const (
	TypeText  NodeType = "text"
	TypeFile  NodeType = "file"
	TypeLink  NodeType = "link"
	TypeGroup NodeType = "group"
)

// Known reports whether t is one of the four JSON Canvas node types.
func (t NodeType) Known() bool {
	switch t {
	case TypeText, TypeFile, TypeLink, TypeGroup:
		return true
	}
	return false
}

// Edge sides and ends. These are carried through unchanged; nothing in this
// module attaches meaning to them.
const (
	SideTop    = "top"
	SideRight  = "right"
	SideBottom = "bottom"
	SideLeft   = "left"

	EndNone  = "none"
	EndArrow = "arrow"
)

// =============================================================================
// Document
// =============================================================================

// Document is a persisted canvas: nodes and edges in file order.
type Document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node returns the first node with the given id.
func (d *Document) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// =============================================================================
// Node
// =============================================================================

// Node is a tagged union over [NodeType]. Common fields are always present;
// the type-specific fields are only meaningful for their own variant.
//
// Width and Height use zero for "absent". JSON Canvas requires positive
// sizes, so a zero value never carries information.
type Node struct {
	ID     string
	Type   NodeType
	X      float64
	Y      float64
	Width  float64
	Height float64
	Color  string

	// text
	Text string

	// file
	File    string
	Subpath string

	// link
	URL string

	// group
	Label           string
	Background      string
	BackgroundStyle string

	// Extra holds every field not named above, keyed by its JSON name.
	Extra map[string]any
}

// nodeJSON is the wire layout of a node. Text is a pointer so text nodes
// always emit it, even when empty.
type nodeJSON struct {
	ID              string   `json:"id"`
	Type            NodeType `json:"type"`
	Text            *string  `json:"text,omitempty"`
	File            string   `json:"file,omitempty"`
	Subpath         string   `json:"subpath,omitempty"`
	URL             string   `json:"url,omitempty"`
	Label           string   `json:"label,omitempty"`
	Background      string   `json:"background,omitempty"`
	BackgroundStyle string   `json:"backgroundStyle,omitempty"`
	X               float64  `json:"x"`
	Y               float64  `json:"y"`
	Width           float64  `json:"width,omitempty"`
	Height          float64  `json:"height,omitempty"`
	Color           string   `json:"color,omitempty"`
}

var nodeKeys = map[string]bool{
	"id": true, "type": true, "text": true, "file": true, "subpath": true,
	"url": true, "label": true, "background": true, "backgroundStyle": true,
	"x": true, "y": true, "width": true, "height": true, "color": true,
}

// MarshalJSON implements json.Marshaler.
func (n Node) MarshalJSON() ([]byte, error) {
	w := nodeJSON{
		ID:              n.ID,
		Type:            n.Type,
		File:            n.File,
		Subpath:         n.Subpath,
		URL:             n.URL,
		Label:           n.Label,
		Background:      n.Background,
		BackgroundStyle: n.BackgroundStyle,
		X:               n.X,
		Y:               n.Y,
		Width:           n.Width,
		Height:          n.Height,
		Color:           n.Color,
	}
	if n.Type == TypeText || n.Text != "" {
		text := n.Text
		w.Text = &text
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return appendExtra(data, n.Extra, nodeKeys)
}

// UnmarshalJSON implements json.Unmarshaler. A known field whose value has
// the wrong JSON type is kept in Extra and the typed field stays zero.
func (n *Node) UnmarshalJSON(data []byte) error {
	var out Node
	var text *string
	extra, err := decodeFields(data, map[string]any{
		"id":              &out.ID,
		"type":            &out.Type,
		"text":            &text,
		"file":            &out.File,
		"subpath":         &out.Subpath,
		"url":             &out.URL,
		"label":           &out.Label,
		"background":      &out.Background,
		"backgroundStyle": &out.BackgroundStyle,
		"x":               &out.X,
		"y":               &out.Y,
		"width":           &out.Width,
		"height":          &out.Height,
		"color":           &out.Color,
	})
	if err != nil {
		return err
	}
	if text != nil {
		out.Text = *text
	}
	out.Extra = extra
	*n = out
	return nil
}

// Fields returns the node as a flat map keyed by JSON field name, including
// id, type and position. Absent optional fields are not present in the map.
// The map is a new allocation; Extra values are shared, not deep-copied.
func (n Node) Fields() map[string]any {
	m := make(map[string]any, len(n.Extra)+8)
	for k, v := range n.Extra {
		m[k] = v
	}
	// Required keys that failed to decode are carried in Extra.
	required := map[string]any{"id": n.ID, "type": string(n.Type), "x": n.X, "y": n.Y}
	for k, v := range required {
		if _, carried := n.Extra[k]; carried && reflect.ValueOf(v).IsZero() {
			continue
		}
		m[k] = v
	}
	if n.Width != 0 {
		m["width"] = n.Width
	}
	if n.Height != 0 {
		m["height"] = n.Height
	}
	if _, carried := n.Extra["text"]; n.Text != "" || (n.Type == TypeText && !carried) {
		m["text"] = n.Text
	}
	optional := map[string]string{
		"color":           n.Color,
		"file":            n.File,
		"subpath":         n.Subpath,
		"url":             n.URL,
		"label":           n.Label,
		"background":      n.Background,
		"backgroundStyle": n.BackgroundStyle,
	}
	for k, v := range optional {
		if v != "" {
			m[k] = v
		}
	}
	return m
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed connection between two nodes. FromNode and ToNode are
// references only; they may name nodes that do not exist.
type Edge struct {
	ID       string `json:"id"`
	FromNode string `json:"fromNode"`
	FromSide string `json:"fromSide,omitempty"`
	FromEnd  string `json:"fromEnd,omitempty"`
	ToNode   string `json:"toNode"`
	ToSide   string `json:"toSide,omitempty"`
	ToEnd    string `json:"toEnd,omitempty"`
	Color    string `json:"color,omitempty"`
	Label    string `json:"label,omitempty"`

	// Extra holds every field not named above, keyed by its JSON name.
	Extra map[string]any `json:"-"`
}

var edgeKeys = map[string]bool{
	"id": true, "fromNode": true, "fromSide": true, "fromEnd": true,
	"toNode": true, "toSide": true, "toEnd": true, "color": true, "label": true,
}

// edgeAlias drops the methods of Edge so the default encoder can be reused.
type edgeAlias Edge

// MarshalJSON implements json.Marshaler.
func (e Edge) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(edgeAlias(e))
	if err != nil {
		return nil, err
	}
	return appendExtra(data, e.Extra, edgeKeys)
}

// UnmarshalJSON implements json.Unmarshaler. Mistyped known fields are kept
// in Extra, as for nodes.
func (e *Edge) UnmarshalJSON(data []byte) error {
	var out Edge
	extra, err := decodeFields(data, map[string]any{
		"id":       &out.ID,
		"fromNode": &out.FromNode,
		"fromSide": &out.FromSide,
		"fromEnd":  &out.FromEnd,
		"toNode":   &out.ToNode,
		"toSide":   &out.ToSide,
		"toEnd":    &out.ToEnd,
		"color":    &out.Color,
		"label":    &out.Label,
	})
	if err != nil {
		return err
	}
	out.Extra = extra
	*e = out
	return nil
}

// =============================================================================
// Extension Fields
// =============================================================================

// decodeFields decodes a JSON object member by member into the targets
// keyed by field name. Members with no target, or whose value does not fit
// its target, are returned as extra. Returns a nil map when there are none.
func decodeFields(data []byte, targets map[string]any) (map[string]any, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var extra map[string]any
	for k, v := range raw {
		if target, ok := targets[k]; ok && json.Unmarshal(v, target) == nil {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = val
	}
	return extra, nil
}

// appendExtra splices extra members into an encoded JSON object. Keys are
// written in sorted order. A known key is only written when obj does not
// already carry it.
func appendExtra(obj []byte, extra map[string]any, known map[string]bool) ([]byte, error) {
	if len(extra) == 0 {
		return obj, nil
	}
	var present map[string]json.RawMessage
	if err := json.Unmarshal(obj, &present); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Write(obj[:len(obj)-1])
	for _, k := range slices.Sorted(maps.Keys(extra)) {
		if _, ok := present[k]; ok && known[k] {
			continue
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(extra[k])
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
