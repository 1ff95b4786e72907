package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level, failures at
// error level. It implements all hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks logging to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnParseStart(_ context.Context, source string) {
	h.logger.Debug("parse start", "source", source)
}

func (h *LogHooks) OnParseComplete(_ context.Context, source string, series int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("parse failed", "source", source, "err", err)
		return
	}
	h.logger.Debug("parse done", "source", source, "series", series, "took", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string, width, height int) {
	h.logger.Debug("render start", "formats", formats, "width", width, "height", height)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render done", "formats", formats, "took", d)
}

func (h *LogHooks) OnPick(_ context.Context, kind string, d time.Duration) {
	h.logger.Debug("pick", "kind", kind, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "route", route, "status", status, "took", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ServerHooks   = (*LogHooks)(nil)
)
