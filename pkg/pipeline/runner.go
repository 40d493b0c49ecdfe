package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/canvasflow/pkg/cache"
	"github.com/matzehuels/canvasflow/pkg/canvas"
	"github.com/matzehuels/canvasflow/pkg/convert"
	"github.com/matzehuels/canvasflow/pkg/errors"
	"github.com/matzehuels/canvasflow/pkg/flow"
	"github.com/matzehuels/canvasflow/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so multiple goroutines can share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of cached artifacts. Zero means cache.TTLArtifact.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Convert decodes data, converts it in direction dir, and encodes the result.
// Decode failures carry ErrCodeInvalidInput.
func (r *Runner) Convert(ctx context.Context, data []byte, dir Direction) (*ConvertResult, error) {
	return r.ConvertWith(ctx, data, dir, ConvertOptions{})
}

// ConvertWith is Convert with options.
func (r *Runner) ConvertWith(ctx context.Context, data []byte, dir Direction, opts ConvertOptions) (*ConvertResult, error) {
	if err := ValidateDirection(dir); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnConvertStart(ctx, string(dir), len(data))
	start := time.Now()

	res, err := convertBytes(data, dir, opts)
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnConvertComplete(ctx, string(dir), 0, elapsed, err)
		return nil, err
	}
	res.Stats.Duration = elapsed
	hooks.OnConvertComplete(ctx, string(dir), res.Stats.NodeCount, elapsed, nil)

	r.Logger.Debug("converted",
		"to", dir,
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"duration", elapsed)
	return res, nil
}

func convertBytes(data []byte, dir Direction, opts ConvertOptions) (*ConvertResult, error) {
	res := &ConvertResult{Direction: dir}

	switch dir {
	case DirectionVisual:
		doc, err := canvas.Unmarshal(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid canvas document")
		}
		if opts.FillIDs {
			res.Assigned = canvas.FillMissingIDs(&doc, NewID)
		}
		g := convert.ToVisual(doc)
		out, err := flow.Marshal(g)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode visual graph")
		}
		res.Output = out
		res.Stats.NodeCount, res.Stats.EdgeCount = len(g.Nodes), len(g.Edges)

	default:
		g, err := flow.Unmarshal(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid visual graph")
		}
		doc := convert.ToPersisted(g.Nodes, g.Edges)
		if opts.FillIDs {
			res.Assigned = canvas.FillMissingIDs(&doc, NewID)
		}
		out, err := canvas.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode canvas document")
		}
		res.Output = out
		res.Coerced = convert.CoercedNodes(g.Nodes)
		res.Stats.NodeCount, res.Stats.EdgeCount = len(doc.Nodes), len(doc.Edges)
	}
	return res, nil
}

// DecodeDocument decodes data as a canvas document. Inputs that are not
// .canvas files are decoded as visual graphs and converted.
func DecodeDocument(data []byte, path string) (canvas.Document, error) {
	if DirectionForPath(path) == DirectionVisual {
		doc, err := canvas.Unmarshal(data)
		if err != nil {
			return canvas.Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid canvas document")
		}
		return doc, nil
	}
	g, err := flow.Unmarshal(data)
	if err != nil {
		return canvas.Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid visual graph")
	}
	return convert.ToPersisted(g.Nodes, g.Edges), nil
}

// Render produces the requested artifacts for doc. SVG output is cached
// under the hash of its DOT source; the bool reports whether every
// artifact came from the cache.
func (r *Runner) Render(ctx context.Context, doc canvas.Document, opts RenderOptions) (map[string][]byte, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, hit, err := r.render(ctx, doc, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	r.Logger.Debug("rendered",
		"formats", opts.Formats,
		"cached", hit,
		"duration", time.Since(start))
	return artifacts, hit, nil
}

func (r *Runner) render(ctx context.Context, doc canvas.Document, opts RenderOptions) (map[string][]byte, bool, error) {
	dot := RenderDOT(doc, opts)
	dotHash := cache.Hash([]byte(dot))
	cacheHooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.Formats))
	cacheable, cached := 0, 0

	for _, format := range opts.Formats {
		if format == FormatDOT {
			artifacts[format] = []byte(dot)
			continue
		}

		cacheable++
		key := r.Keyer.ArtifactKey(dotHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				r.Logger.Warn("cache read failed", "err", err)
			}
			if err == nil && hit {
				cacheHooks.OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				cached++
				continue
			}
			cacheHooks.OnCacheMiss(ctx, "artifact")
		}

		data, err := renderFormat(ctx, dot, format)
		if err != nil {
			return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return artifacts, cacheable > 0 && cached == cacheable, nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLArtifact
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
