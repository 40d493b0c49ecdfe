package convert

import (
	"github.com/matzehuels/canvasflow/pkg/canvas"
	"github.com/matzehuels/canvasflow/pkg/flow"
)

// Sizes written for nodes that have no measured size.
const (
	DefaultWidth  = 250.0
	DefaultHeight = 60.0
)

// =============================================================================
// Canvas → Visual
// =============================================================================

// ToVisual converts a canvas document to a visual graph. Node and edge order
// is preserved. Nil node or edge slices produce empty, non-nil slices.
func ToVisual(doc canvas.Document) flow.Graph {
	g := flow.Graph{
		Nodes: make([]flow.Node, len(doc.Nodes)),
		Edges: make([]flow.Edge, len(doc.Edges)),
	}
	for i, n := range doc.Nodes {
		g.Nodes[i] = visualNode(n)
	}
	for i, e := range doc.Edges {
		g.Edges[i] = visualEdge(e)
	}
	return g
}

func visualNode(n canvas.Node) flow.Node {
	out := flow.Node{
		ID:       n.ID,
		Type:     string(n.Type),
		Position: flow.Position{X: n.X, Y: n.Y},
	}
	if n.Width != 0 && n.Height != 0 {
		out.Measured = &flow.Dimensions{Width: n.Width, Height: n.Height}
	}
	if n.Type == canvas.TypeText {
		out.Data = &flow.TextData{Text: n.Text, Color: n.Color}
	} else {
		out.Data = flow.OpaqueData(n.Fields())
	}
	return out
}

func visualEdge(e canvas.Edge) flow.Edge {
	out := flow.Edge{
		ID:     e.ID,
		Source: e.FromNode,
		Target: e.ToNode,
		Label:  e.Label,
	}
	if e.Color != "" {
		out.Data = &flow.EdgeData{Color: e.Color}
	}
	return out
}

// =============================================================================
// Visual → Canvas
// =============================================================================

// ToPersisted converts visual nodes and edges to a canvas document. Order is
// preserved. Every node is written as a text node; see [CoercedNodes].
func ToPersisted(nodes []flow.Node, edges []flow.Edge) canvas.Document {
	doc := canvas.Document{
		Nodes: make([]canvas.Node, len(nodes)),
		Edges: make([]canvas.Edge, len(edges)),
	}
	for i, n := range nodes {
		doc.Nodes[i] = persistedNode(n)
	}
	for i, e := range edges {
		doc.Edges[i] = persistedEdge(e)
	}
	return doc
}

func persistedNode(n flow.Node) canvas.Node {
	out := canvas.Node{
		ID:     n.ID,
		Type:   canvas.TypeText,
		X:      n.Position.X,
		Y:      n.Position.Y,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
	if m := n.Measured; m != nil {
		if m.Width != 0 {
			out.Width = m.Width
		}
		if m.Height != 0 {
			out.Height = m.Height
		}
	}
	out.Text, out.Color = textPayload(n.Data)
	return out
}

// textPayload extracts text and color from either payload variant.
func textPayload(d flow.NodeData) (text, color string) {
	switch d := d.(type) {
	case *flow.TextData:
		if d != nil {
			return d.Text, d.Color
		}
	case flow.OpaqueData:
		return d.String("text"), d.String("color")
	}
	return "", ""
}

func persistedEdge(e flow.Edge) canvas.Edge {
	out := canvas.Edge{
		ID:       e.ID,
		FromNode: e.Source,
		ToNode:   e.Target,
		Label:    e.Label,
	}
	if e.Data != nil {
		out.Color = e.Data.Color
	}
	return out
}

// CoercedNodes returns the ids of visual nodes whose type is not text, in
// order. [ToPersisted] writes these as text nodes and drops their
// type-specific fields.
func CoercedNodes(nodes []flow.Node) []string {
	var ids []string
	for _, n := range nodes {
		if n.Type != flow.TypeText {
			ids = append(ids, n.ID)
		}
	}
	return ids
}
