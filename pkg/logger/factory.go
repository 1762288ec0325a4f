// Package logger builds structured slog loggers with consistent defaults
// and context-aware attribute extraction.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Format selects the record encoding.
type Format string

const (
	// FormatJSON emits one JSON object per record.
	FormatJSON Format = "json"
	// FormatText emits key=value records.
	FormatText Format = "text"
)

// ContextExtractor pulls a request-scoped attribute out of a context, for
// values like request IDs that every record should carry.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// Option configures logger creation.
type Option func(*config)

type config struct {
	level      slog.Level
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// WithLevel sets the minimum level for emitted records.
func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets the record encoding. An unknown format panics at
// construction time.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatJSON, FormatText:
			c.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
		}
	}
}

// WithOutput sets the destination writer. Nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds static attributes to every log record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		if len(attrs) > 0 {
			c.attrs = append(c.attrs, attrs...)
		}
	}
}

// WithContextExtractors registers extractors run against each record's
// context. Nil extractors are dropped.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// New creates a slog.Logger with the given options. Defaults are text
// format, info level, stdout output.
func New(opts ...Option) *slog.Logger {
	cfg := config{
		level:  slog.LevelInfo,
		format: FormatText,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}

	var handler slog.Handler
	switch cfg.format {
	case FormatJSON:
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	default:
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	}

	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}
	if len(cfg.extractors) > 0 {
		handler = &extractorHandler{Handler: handler, extractors: cfg.extractors}
	}

	return slog.New(handler)
}

// extractorHandler decorates a slog.Handler with context extraction.
type extractorHandler struct {
	slog.Handler
	extractors []ContextExtractor
}

func (h *extractorHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, extract := range h.extractors {
		if attr, ok := extract(ctx); ok {
			record.AddAttrs(attr)
		}
	}
	return h.Handler.Handle(ctx, record)
}

func (h *extractorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &extractorHandler{Handler: h.Handler.WithAttrs(attrs), extractors: h.extractors}
}

func (h *extractorHandler) WithGroup(name string) slog.Handler {
	return &extractorHandler{Handler: h.Handler.WithGroup(name), extractors: h.extractors}
}
