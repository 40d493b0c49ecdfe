// Package flow provides the in-memory graph shape consumed by visual flow
// editors: nodes with a position, an optional measured size and a payload,
// and edges with a source, a target, an optional label and a payload.
//
//	{
//	  "nodes": [
//	    {"id": "a", "type": "text", "position": {"x": 0, "y": 0},
//	     "measured": {"width": 250, "height": 60}, "data": {"text": "Hello"}}
//	  ],
//	  "edges": [
//	    {"id": "e1", "source": "a", "target": "b", "data": {"color": "4"}}
//	  ]
//	}
//
// # Node Payloads
//
// [NodeData] is a closed union keyed by the node type. Text nodes carry a
// [*TextData]; every other type carries an [OpaqueData] bag whose shape this
// package does not interpret. JSON decoding selects the variant from the
// node's "type" field.
//
// # Optional Fields
//
// Measured, Label and edge Data are omitted from JSON when absent.
package flow
