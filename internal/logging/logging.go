// Package logging provides the slog handler used for diagnostics.
//
// Records are written one per line as
//
//	WARNING  | File "…/01.flac": tags missing TITLE
//
// with the level name padded to eight columns and any attributes appended as
// key=value pairs.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Config holds logger configuration.
type Config struct {
	Writer io.Writer
	Level  slog.Level
}

// New creates a logger writing to cfg.Writer.
func New(cfg Config) *slog.Logger {
	return slog.New(NewHandler(cfg.Writer, &slog.HandlerOptions{Level: cfg.Level}))
}

// ParseLevel converts a level name to slog.Level. Unknown names give debug.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

// Handler is a slog.Handler producing "LEVEL    | message" lines.
type Handler struct {
	opts   *slog.HandlerOptions
	mu     *sync.Mutex
	writer io.Writer
	attrs  []slog.Attr
	groups []string
}

// NewHandler creates a new handler.
func NewHandler(w io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &Handler{
		opts:   opts,
		mu:     &sync.Mutex{},
		writer: w,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle formats and writes the log record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 256)

	buf = fmt.Appendf(buf, "%-8s | ", levelName(r.Level))
	buf = append(buf, r.Message...)

	prefix := strings.Join(h.groups, ".")
	if prefix != "" {
		prefix += "."
	}

	for _, attr := range h.attrs {
		buf = appendAttr(buf, "", attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		buf = appendAttr(buf, prefix, a)
		return true
	})

	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf)
	return err
}

// WithAttrs returns a new handler with additional attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefix := strings.Join(h.groups, ".")
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	for _, attr := range attrs {
		if prefix != "" {
			attr.Key = prefix + "." + attr.Key
		}
		newAttrs = append(newAttrs, attr)
	}

	return &Handler{
		opts:   h.opts,
		mu:     h.mu,
		writer: h.writer,
		attrs:  newAttrs,
		groups: h.groups,
	}
}

// WithGroup returns a new handler with the given group.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newGroups := make([]string, len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups[len(h.groups)] = name

	return &Handler{
		opts:   h.opts,
		mu:     h.mu,
		writer: h.writer,
		attrs:  h.attrs,
		groups: newGroups,
	}
}

func levelName(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARNING"
	default:
		return "ERROR"
	}
}

func appendAttr(buf []byte, prefix string, attr slog.Attr) []byte {
	if attr.Equal(slog.Attr{}) {
		return buf
	}
	return fmt.Appendf(buf, " %s%s=%s", prefix, attr.Key, attr.Value.Resolve().String())
}
