package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rbver/pkg/observability"
)

// logHooks reports observability events as debug log lines. They are
// registered by --verbose.
type logHooks struct {
	logger *log.Logger
}

func registerLogHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetCatalogHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h *logHooks) OnBuildStart(_ context.Context, strategy string) {
	h.logger.Debug("catalog build started", "strategy", strategy)
}

func (h *logHooks) OnBuildComplete(_ context.Context, strategy string, families int, d time.Duration, err error) {
	h.logger.Debug("catalog build finished", "strategy", strategy, "families", families, "duration", d, "error", err)
}

func (h *logHooks) OnCacheHit(context.Context)  { h.logger.Debug("cache hit") }
func (h *logHooks) OnCacheMiss(context.Context) { h.logger.Debug("cache miss") }

func (h *logHooks) OnCacheLoad(_ context.Context, d time.Duration, err error) {
	h.logger.Debug("cache load", "duration", d, "error", err)
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "error", err)
}
