package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/canvasflow/pkg/cache"
	"github.com/matzehuels/canvasflow/pkg/canvas"
	"github.com/matzehuels/canvasflow/pkg/errors"
	"github.com/matzehuels/canvasflow/pkg/flow"
	"github.com/matzehuels/canvasflow/pkg/observability"
)

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"dot", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "pdf"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"visual", DirectionVisual, false},
		{"canvas", DirectionCanvas, false},
		{"Visual", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDirection(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidDirection) {
			t.Errorf("ParseDirection(%q) code = %s", tt.in, errors.GetCode(err))
		}
	}
}

func TestDirectionForPath(t *testing.T) {
	tests := []struct {
		path string
		want Direction
	}{
		{"board.canvas", DirectionVisual},
		{"dir/Board.CANVAS", DirectionVisual},
		{"graph.json", DirectionCanvas},
		{"noext", DirectionCanvas},
	}
	for _, tt := range tests {
		if got := DirectionForPath(tt.path); got != tt.want {
			t.Errorf("DirectionForPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestRenderOptionsDefaults(t *testing.T) {
	var o RenderOptions
	if err := o.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", o.Formats)
	}
}

const sampleCanvas = `{
	"nodes": [
		{"id": "a", "type": "text", "text": "Hello", "x": 0, "y": 0, "width": 300, "height": 100, "color": "2"},
		{"id": "f", "type": "file", "file": "note.md", "x": 400, "y": 0, "width": 200, "height": 80}
	],
	"edges": [
		{"id": "e1", "fromNode": "a", "toNode": "f", "label": "see"}
	]
}`

func TestConvertToVisual(t *testing.T) {
	r := quietRunner(nil)
	res, err := r.Convert(context.Background(), []byte(sampleCanvas), DirectionVisual)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if res.Direction != DirectionVisual {
		t.Errorf("Direction = %q, want visual", res.Direction)
	}
	if res.Stats.NodeCount != 2 || res.Stats.EdgeCount != 1 {
		t.Errorf("Stats = %+v, want 2 nodes, 1 edge", res.Stats)
	}
	if res.Coerced != nil {
		t.Errorf("Coerced = %v, want nil for visual output", res.Coerced)
	}

	g, err := flow.Unmarshal(res.Output)
	if err != nil {
		t.Fatalf("output is not a visual graph: %v", err)
	}
	td, ok := g.Nodes[0].Data.(*flow.TextData)
	if !ok || td.Text != "Hello" || td.Color != "2" {
		t.Errorf("node a data = %#v", g.Nodes[0].Data)
	}
	if g.Edges[0].Source != "a" || g.Edges[0].Target != "f" || g.Edges[0].Label != "see" {
		t.Errorf("edge = %+v", g.Edges[0])
	}
}

func TestConvertRoundTripReportsCoercion(t *testing.T) {
	r := quietRunner(nil)
	ctx := context.Background()

	visual, err := r.Convert(ctx, []byte(sampleCanvas), DirectionVisual)
	if err != nil {
		t.Fatalf("Convert to visual: %v", err)
	}
	back, err := r.Convert(ctx, visual.Output, DirectionCanvas)
	if err != nil {
		t.Fatalf("Convert to canvas: %v", err)
	}

	if len(back.Coerced) != 1 || back.Coerced[0] != "f" {
		t.Errorf("Coerced = %v, want [f]", back.Coerced)
	}

	doc, err := canvas.Unmarshal(back.Output)
	if err != nil {
		t.Fatalf("output is not a canvas: %v", err)
	}
	for _, n := range doc.Nodes {
		if n.Type != canvas.TypeText {
			t.Errorf("node %s type = %q, want text", n.ID, n.Type)
		}
	}
	if a, _ := doc.Node("a"); a.Width != 300 || a.Height != 100 || a.Text != "Hello" {
		t.Errorf("node a = %+v", a)
	}
}

func TestConvertInvalidInput(t *testing.T) {
	r := quietRunner(nil)
	tests := []struct {
		name string
		data string
		dir  Direction
	}{
		{"bad canvas json", `{"nodes": [`, DirectionVisual},
		{"bad visual json", `not json`, DirectionCanvas},
		{"nodes not an array", `{"nodes": {"id": "a"}}`, DirectionVisual},
		{"node not an object", `{"nodes": [5]}`, DirectionVisual},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Convert(context.Background(), []byte(tt.data), tt.dir)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestConvertKeepsMistypedFields(t *testing.T) {
	in := `{"nodes": [{"id": "g", "type": "group", "x": 0, "y": 0, "label": 5}], "edges": []}`
	res, err := quietRunner(nil).Convert(context.Background(), []byte(in), DirectionVisual)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(string(res.Output), `"label": 5`) {
		t.Errorf("label not carried:\n%s", res.Output)
	}
}

func TestConvertInvalidDirection(t *testing.T) {
	_, err := quietRunner(nil).Convert(context.Background(), []byte(`{}`), "sideways")
	if !errors.Is(err, errors.ErrCodeInvalidDirection) {
		t.Errorf("err = %v, want INVALID_DIRECTION", err)
	}
}

func TestConvertCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := quietRunner(nil).Convert(ctx, []byte(sampleCanvas), DirectionVisual); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestDecodeDocument(t *testing.T) {
	doc, err := DecodeDocument([]byte(sampleCanvas), "board.canvas")
	if err != nil {
		t.Fatalf("DecodeDocument(canvas): %v", err)
	}
	if f, _ := doc.Node("f"); f.Type != canvas.TypeFile {
		t.Errorf("canvas input should keep node types, got %q", f.Type)
	}

	visual := `{"nodes": [{"id": "n", "type": "text", "position": {"x": 1, "y": 2}, "data": {"text": "hi"}}], "edges": []}`
	doc, err = DecodeDocument([]byte(visual), "graph.json")
	if err != nil {
		t.Fatalf("DecodeDocument(visual): %v", err)
	}
	n, ok := doc.Node("n")
	if !ok || n.Text != "hi" || n.Width != 250 || n.Height != 60 {
		t.Errorf("decoded node = %+v", n)
	}

	if _, err := DecodeDocument([]byte("{"), "graph.json"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestRenderDOTOnly(t *testing.T) {
	doc, _ := canvas.Unmarshal([]byte(sampleCanvas))
	artifacts, hit, err := quietRunner(nil).Render(context.Background(), doc, RenderOptions{Formats: []string{FormatDOT}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if hit {
		t.Error("DOT output is never a cache hit")
	}
	if !strings.Contains(string(artifacts[FormatDOT]), `"a" -> "f"`) {
		t.Errorf("DOT missing edge:\n%s", artifacts[FormatDOT])
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	_, _, err := quietRunner(nil).Render(context.Background(), canvas.Document{}, RenderOptions{Formats: []string{"png"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestRenderCacheHit(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(fc)

	doc, _ := canvas.Unmarshal([]byte(sampleCanvas))
	opts := RenderOptions{Formats: []string{FormatSVG}}
	dot := RenderDOT(doc, opts)
	key := r.Keyer.ArtifactKey(cache.Hash([]byte(dot)), opts.ArtifactKeyOpts(FormatSVG))
	if err := fc.Set(ctx, key, []byte("<svg>cached</svg>"), time.Hour); err != nil {
		t.Fatal(err)
	}

	rec := &recordingCacheHooks{}
	observability.SetCacheHooks(rec)
	defer observability.Reset()

	artifacts, hit, err := r.Render(ctx, doc, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !hit {
		t.Error("expected cache hit")
	}
	if string(artifacts[FormatSVG]) != "<svg>cached</svg>" {
		t.Errorf("svg = %q, want cached bytes", artifacts[FormatSVG])
	}
	if rec.hits != 1 || rec.misses != 0 {
		t.Errorf("hooks hits=%d misses=%d, want 1/0", rec.hits, rec.misses)
	}

	// Detailed labels change the DOT source and therefore the key.
	_, hit, err = r.Render(ctx, doc, RenderOptions{Formats: []string{FormatDOT}, Detailed: true})
	if err != nil {
		t.Fatalf("Render detailed: %v", err)
	}
	if hit {
		t.Error("DOT-only render should not report a hit")
	}
}

func TestConvertEmitsHooks(t *testing.T) {
	rec := &recordingPipelineHooks{}
	observability.SetPipelineHooks(rec)
	defer observability.Reset()

	r := quietRunner(nil)
	if _, err := r.Convert(context.Background(), []byte(sampleCanvas), DirectionVisual); err != nil {
		t.Fatal(err)
	}
	_, _ = r.Convert(context.Background(), []byte("{"), DirectionVisual)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.starts != 2 || rec.completes != 2 {
		t.Errorf("starts=%d completes=%d, want 2/2", rec.starts, rec.completes)
	}
	if rec.errs != 1 {
		t.Errorf("errs = %d, want 1", rec.errs)
	}
	if rec.lastNodes != 0 {
		t.Errorf("failed convert should report 0 nodes, got %d", rec.lastNodes)
	}
}

func TestConvertResultJSON(t *testing.T) {
	r := quietRunner(nil)
	res, err := r.Convert(context.Background(), []byte(`{}`), DirectionVisual)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(res.Output, &raw); err != nil {
		t.Fatal(err)
	}
	if string(raw["nodes"]) != "[]" || string(raw["edges"]) != "[]" {
		t.Errorf("empty canvas should give empty arrays, got %s", res.Output)
	}
}

type recordingPipelineHooks struct {
	observability.NoopPipelineHooks
	mu        sync.Mutex
	starts    int
	completes int
	errs      int
	lastNodes int
}

func (h *recordingPipelineHooks) OnConvertStart(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts++
}

func (h *recordingPipelineHooks) OnConvertComplete(_ context.Context, _ string, nodes int, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completes++
	h.lastNodes = nodes
	if err != nil {
		h.errs++
	}
}

type recordingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses int
}

func (h *recordingCacheHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(context.Context, string) { h.misses++ }

func TestConvertFillIDs(t *testing.T) {
	visual := `{"nodes": [{"id": "", "type": "text", "position": {"x": 0, "y": 0}, "data": {"text": "a"}},
		{"id": "b", "type": "text", "position": {"x": 0, "y": 0}, "data": {"text": "b"}}], "edges": []}`

	r := quietRunner(nil)
	plain, err := r.Convert(context.Background(), []byte(visual), DirectionCanvas)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(plain.Assigned) != 0 {
		t.Errorf("Assigned = %v without FillIDs, want none", plain.Assigned)
	}

	res, err := r.ConvertWith(context.Background(), []byte(visual), DirectionCanvas, ConvertOptions{FillIDs: true})
	if err != nil {
		t.Fatalf("ConvertWith: %v", err)
	}
	if len(res.Assigned) != 1 {
		t.Fatalf("Assigned = %v, want 1 id", res.Assigned)
	}
	doc, err := canvas.Unmarshal(res.Output)
	if err != nil {
		t.Fatalf("output is not a canvas: %v", err)
	}
	if doc.Nodes[0].ID != res.Assigned[0] {
		t.Errorf("node id = %q, want %q", doc.Nodes[0].ID, res.Assigned[0])
	}
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	if len(a) != 16 {
		t.Errorf("len(NewID()) = %d, want 16", len(a))
	}
	if strings.Contains(a, "-") {
		t.Errorf("NewID() = %q, want no dashes", a)
	}
	if a == b {
		t.Errorf("NewID() returned %q twice", a)
	}
}
