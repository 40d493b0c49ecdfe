package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/canvasflow/pkg/canvas"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node ID, type, and canvas geometry to each label.
	// When false, only the node's content is shown.
	Detailed bool
}

// maxLabel bounds the content shown for text nodes.
const maxLabel = 48

// presetColors maps the canvas color presets to fill colors.
var presetColors = map[string]string{
	"1": "#fb464c", // red
	"2": "#e9973f", // orange
	"3": "#e0de71", // yellow
	"4": "#44cf6e", // green
	"5": "#53dfdd", // cyan
	"6": "#a882ff", // purple
}

var hexColorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ToDOT converts a canvas document to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
//
// Group nodes get dashed outlines. Edges that reference a missing node are
// skipped, since dangling references are legal in a canvas file.
func ToDOT(doc canvas.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=12];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	ids := make(map[string]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if ids[n.ID] {
			continue
		}
		ids[n.ID] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, e := range doc.Edges {
		if !ids[e.FromNode] || !ids[e.ToNode] {
			continue
		}
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.FromNode, e.ToNode)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.FromNode, e.ToNode, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n canvas.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", nodeLabel(n, detailed))}
	if n.Type == canvas.TypeGroup {
		attrs = append(attrs, "style=\"rounded,dashed\"")
	}
	if c, ok := fillColor(n.Color); ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", c))
	}
	if n.Type == canvas.TypeLink && n.URL != "" {
		attrs = append(attrs, fmt.Sprintf("URL=%q", n.URL))
	}
	return attrs
}

func nodeLabel(n canvas.Node, detailed bool) string {
	label := content(n)
	if label == "" {
		label = n.ID
	}
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\nid: %s\ntype: %s\n%g,%g %gx%g",
		label, n.ID, n.Type, n.X, n.Y, n.Width, n.Height)
}

// content is the human-readable part of a node.
func content(n canvas.Node) string {
	switch n.Type {
	case canvas.TypeText:
		return truncate(firstLine(n.Text), maxLabel)
	case canvas.TypeFile:
		return n.File + n.Subpath
	case canvas.TypeLink:
		return n.URL
	case canvas.TypeGroup:
		return n.Label
	}
	return truncate(firstLine(n.Text), maxLabel)
}

func edgeAttrs(e canvas.Edge) []string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	if c, ok := fillColor(e.Color); ok {
		attrs = append(attrs, fmt.Sprintf("color=%q", c), fmt.Sprintf("fontcolor=%q", c))
	}

	from := e.FromEnd == canvas.EndArrow
	to := e.ToEnd != canvas.EndNone
	switch {
	case from && to:
		attrs = append(attrs, "dir=both")
	case from:
		attrs = append(attrs, "dir=back")
	case !to:
		attrs = append(attrs, "dir=none")
	}
	return attrs
}

// fillColor resolves a canvas color to a DOT color. Presets map to the
// palette, hex values pass through, and anything else is ignored.
func fillColor(c string) (string, bool) {
	if p, ok := presetColors[c]; ok {
		return p, true
	}
	if hexColorRe.MatchString(c) {
		return c, true
	}
	return "", false
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// viewBox starts at the origin and whose width and height are unitless.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(header))
}
