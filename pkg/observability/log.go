package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogPipelineHooks writes pipeline events to a logger at debug level.
type LogPipelineHooks struct {
	Logger *log.Logger
}

func (h LogPipelineHooks) OnConvertStart(_ context.Context, direction string, size int) {
	h.Logger.Debug("convert start", "to", direction, "bytes", size)
}

func (h LogPipelineHooks) OnConvertComplete(_ context.Context, direction string, nodeCount int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("convert failed", "to", direction, "elapsed", d, "err", err)
		return
	}
	h.Logger.Debug("convert done", "to", direction, "nodes", nodeCount, "elapsed", d)
}

func (h LogPipelineHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render start", "formats", formats)
}

func (h LogPipelineHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("render failed", "formats", formats, "elapsed", d, "err", err)
		return
	}
	h.Logger.Debug("render done", "formats", formats, "elapsed", d)
}

// LogCacheHooks writes cache events to a logger at debug level.
type LogCacheHooks struct {
	Logger *log.Logger
}

func (h LogCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h LogCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h LogCacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ PipelineHooks = LogPipelineHooks{}
	_ CacheHooks    = LogCacheHooks{}
)
