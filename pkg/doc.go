// Package pkg provides the core libraries for canvasflow.
//
// # Overview
//
// canvasflow moves diagrams between two JSON shapes: the JSON Canvas files
// that note-taking apps persist, and the node/edge graph that visual flow
// editors work with. The pkg directory is organized as:
//
//  1. [canvas] and [flow] - the two document models and their JSON codecs
//  2. [convert] - the field mapping between them
//  3. [render/nodelink] - Graphviz diagrams of a canvas
//  4. [pipeline] - orchestration with caching and hooks
//  5. [cache], [observability], [errors], [buildinfo] - supporting infrastructure
//
// # Data Flow
//
//	 .canvas file                visual graph JSON
//	      │                             │
//	canvas.Unmarshal              flow.Unmarshal
//	      │                             │
//	      └── convert.ToVisual ──►      │
//	          ◄── convert.ToPersisted ──┘
//	      │
//	nodelink.ToDOT ──► nodelink.RenderSVG
//
// # Quick Start
//
//	doc, err := canvas.ReadFile("board.canvas")
//	if err != nil {
//	    return err
//	}
//	g := convert.ToVisual(doc)
//	// ... edit g in a flow editor ...
//	back := convert.ToPersisted(g.Nodes, g.Edges)
//	return canvas.WriteFile(back, "board.canvas")
//
// Conversion never fails on well-formed JSON: unknown node types, dangling
// edges, and missing sizes are carried or defaulted rather than rejected.
// Use [canvas.Validate] to lint a document separately.
//
// [canvas]: https://pkg.go.dev/github.com/matzehuels/canvasflow/pkg/canvas
// [flow]: https://pkg.go.dev/github.com/matzehuels/canvasflow/pkg/flow
// [convert]: https://pkg.go.dev/github.com/matzehuels/canvasflow/pkg/convert
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/canvasflow/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/canvasflow/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/canvasflow/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/canvasflow/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/canvasflow/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/canvasflow/pkg/buildinfo
// [canvas.Validate]: https://pkg.go.dev/github.com/matzehuels/canvasflow/pkg/canvas#Validate
package pkg
