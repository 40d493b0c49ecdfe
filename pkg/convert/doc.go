// Package convert maps canvas documents to visual-editor graphs and back.
//
// # Overview
//
// A canvas document ([canvas.Document]) is what a vault stores on disk. A
// visual graph ([flow.Graph]) is what a node editor renders. The two formats
// describe the same graph but do not carry the same fields:
//
//	canvas.Node                     flow.Node
//	-----------                     ---------
//	id, type                  <->   id, type
//	x, y                      <->   position {x, y}
//	width, height             <->   measured {width, height}   (optional)
//	text, color               <->   data {text, color}         (text nodes)
//	every field               -->   data (opaque copy)         (file, link, group)
//
//	canvas.Edge                     flow.Edge
//	-----------                     ---------
//	id                        <->   id
//	fromNode, toNode          <->   source, target
//	label                     <->   label                      (optional)
//	color                     <->   data {color}               (optional)
//
// # Defaults
//
// [ToVisual] never invents a size: nodes without a width and height get no
// measured field. [ToPersisted] fills missing sizes with [DefaultWidth] and
// [DefaultHeight]. Every other optional field is omitted when absent, in both
// directions.
//
// # Round Trip
//
// For text nodes and for edges,
//
//	g := convert.ToVisual(doc)
//	convert.ToPersisted(g.Nodes, g.Edges)
//
// reproduces doc exactly, except that a node that had no size comes back
// as 250x60.
//
// # Node Types
//
// [ToPersisted] always writes text nodes. Visual nodes of any other type are
// saved as text nodes whose text and color come from the "text" and "color"
// keys of their opaque payload, when present. Use [CoercedNodes] to find
// the nodes this applies to before saving.
//
// # Concurrency
//
// Every function is pure: no I/O, no shared state, and inputs are never
// modified. Calls are safe from any number of goroutines.
package convert
