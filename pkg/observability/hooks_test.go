package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnParseStart(ctx, "chart.toml")
	p.OnParseComplete(ctx, "chart.toml", 3, time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"}, 800, 600)
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)
	p.OnPick(ctx, "plot-area", time.Millisecond)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	s := NoopServerHooks{}
	s.OnRequest(ctx, "POST", "/v1/render")
	s.OnResponse(ctx, "POST", "/v1/render", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	h := NewLogHooks(log.New(&bytes.Buffer{}))
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetServerHooks(h)
	if Pipeline() != PipelineHooks(h) || Cache() != CacheHooks(h) || Server() != ServerHooks(h) {
		t.Error("Set*Hooks should register custom hooks")
	}

	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(h) {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	ctx := context.Background()

	h.OnRenderComplete(ctx, []string{"png"}, time.Millisecond, nil)
	h.OnRenderComplete(ctx, []string{"pdf"}, time.Millisecond, errors.New("rsvg-convert missing"))
	h.OnCacheHit(ctx, "artifact")

	out := buf.String()
	for _, want := range []string{"render done", "render failed", "rsvg-convert missing", "cache hit"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
