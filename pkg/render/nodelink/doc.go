// Package nodelink renders canvas documents as node-link diagrams.
//
// # Usage
//
// Convert a document to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Mapping
//
// Every canvas node becomes a rounded box. The label is the node's content:
// the first line of a text node, the path of a file node, the URL of a link
// node, or the label of a group. Nodes without content fall back to their ID.
//
// Canvas color presets "1" through "6" become the red, orange, yellow, green,
// cyan, and purple fills of the canvas palette. Hex colors are used as-is.
//
// Edge arrowheads follow fromEnd and toEnd. Graphviz positions nodes itself;
// the canvas x/y coordinates only appear in detailed labels.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no Graphviz installation is required.
package nodelink
