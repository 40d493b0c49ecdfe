package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/canvasflow/pkg/canvas"
	"github.com/matzehuels/canvasflow/pkg/render/nodelink"
)

// RenderDOT returns the Graphviz source for doc.
func RenderDOT(doc canvas.Document, opts RenderOptions) string {
	return nodelink.ToDOT(doc, nodelink.Options{Detailed: opts.Detailed})
}

// renderFormat produces a single artifact from DOT source.
func renderFormat(ctx context.Context, dot, format string) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
