// Package canvas provides the persisted graph document used by .canvas files.
//
// The format follows the JSON Canvas 1.0 specification: a document holds an
// ordered list of nodes with geometric placement and a typed payload, plus an
// ordered list of directed, optionally labelled edges.
//
//	{
//	  "nodes": [
//	    {"id": "a", "type": "text", "text": "Hello", "x": 0, "y": 0, "width": 250, "height": 60},
//	    {"id": "b", "type": "file", "file": "notes/idea.md", "x": 300, "y": 0, "width": 400, "height": 400}
//	  ],
//	  "edges": [
//	    {"id": "e1", "fromNode": "a", "toNode": "b", "label": "see"}
//	  ]
//	}
//
// # Node Types
//
//   - text: inline markdown in Text
//   - file: a vault file reference in File (optionally Subpath)
//   - link: an external URL
//   - group: a labelled container with an optional background
//
// # Optional Fields
//
// Absent optional fields stay absent: a document read and written back does
// not gain null or zero-valued keys. Fields the model does not name (plugin
// extensions, future spec additions) are kept in Extra and written back
// verbatim.
//
// # Colors
//
// Color is an opaque string. The JSON Canvas presets "1" to "6" and hex
// values are both stored as-is; this package never interprets them.
//
// # Validation
//
// Decoding is permissive. [Validate] reports structural problems (duplicate
// ids, dangling edge endpoints, unknown types) as a list of [Issue] values
// without rejecting the document.
package canvas
