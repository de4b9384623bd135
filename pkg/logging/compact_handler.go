package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"
)

// CompactHandler writes one-line console records:
//
//	[LEVEL] HH:MM:SS message | key=value key=value
type CompactHandler struct {
	opts  slog.HandlerOptions
	mu    *sync.Mutex
	out   io.Writer
	attrs []slog.Attr
	group string
}

// NewCompactHandler creates a compact console handler.
func NewCompactHandler(w io.Writer, opts *slog.HandlerOptions) *CompactHandler {
	h := &CompactHandler{mu: &sync.Mutex{}, out: w}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

func (h *CompactHandler) Enabled(_ context.Context, level slog.Level) bool {
	min := slog.LevelInfo
	if h.opts.Level != nil {
		min = h.opts.Level.Level()
	}
	return level >= min
}

func levelTag(l slog.Level) string {
	switch {
	case l < slog.LevelDebug:
		return "[TRACE] "
	case l < slog.LevelInfo:
		return "[DEBUG] "
	case l < slog.LevelWarn:
		return "[INFO]  "
	case l < slog.LevelError:
		return "[WARN]  "
	default:
		return "[ERROR] "
	}
}

func (h *CompactHandler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 256)
	buf = append(buf, levelTag(r.Level)...)
	buf = r.Time.AppendFormat(buf, "15:04:05")
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)

	wroteSep := false
	emit := func(a slog.Attr) {
		if a.Equal(slog.Attr{}) {
			return
		}
		if !wroteSep {
			buf = append(buf, " |"...)
			wroteSep = true
		}
		buf = append(buf, ' ')
		buf = h.appendAttr(buf, a)
	}

	for _, a := range h.attrs {
		emit(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		emit(a)
		return true
	})

	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf)
	return err
}

func (h *CompactHandler) appendAttr(buf []byte, a slog.Attr) []byte {
	key := a.Key
	if h.group != "" {
		key = h.group + "." + key
	}

	// Console-friendly shorthands for a few well-known keys.
	switch a.Key {
	case "requestID":
		if s, ok := a.Value.Any().(string); ok && len(s) > 8 {
			return append(append(buf, "req="...), s[:8]...)
		}
	case "durationMs":
		buf = append(buf, "duration="...)
		buf = append(buf, a.Value.String()...)
		return append(buf, "ms"...)
	case "error":
		buf = append(buf, "error="...)
		return append(buf, fmt.Sprintf("%q", a.Value.Any())...)
	}

	buf = append(buf, key...)
	buf = append(buf, '=')

	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if needsQuoting(s) {
			return append(buf, strconv.Quote(s)...)
		}
		return append(buf, s...)
	case slog.KindInt64:
		return strconv.AppendInt(buf, v.Int64(), 10)
	case slog.KindUint64:
		return strconv.AppendUint(buf, v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.AppendFloat(buf, v.Float64(), 'g', -1, 64)
	case slog.KindBool:
		return strconv.AppendBool(buf, v.Bool())
	case slog.KindDuration:
		return append(buf, v.Duration().String()...)
	case slog.KindTime:
		return v.Time().AppendFormat(buf, time.RFC3339)
	default:
		return append(buf, fmt.Sprintf("%v", v.Any())...)
	}
}

func needsQuoting(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '"', '=':
			return true
		}
	}
	return false
}

func (h *CompactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *CompactHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.group = name
	return &clone
}
