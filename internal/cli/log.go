package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Converted g.graphml (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks reports codec and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnDecodeStart(_ context.Context, format string) {
	h.logger.Debug("decoding", "format", format)
}

func (h *logHooks) OnDecodeComplete(_ context.Context, format string, vertices, edges int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("decode failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("decoded", "format", format, "vertices", vertices, "edges", edges, "duration", d)
}

func (h *logHooks) OnEncodeStart(_ context.Context, format string, vertices, edges int) {
	h.logger.Debug("encoding", "format", format, "vertices", vertices, "edges", edges)
}

func (h *logHooks) OnEncodeComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("encode failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("encoded", "format", format, "bytes", size, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
