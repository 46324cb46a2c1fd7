package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"baseware/internal/config"
)

func Setup(cfg config.Config) {
	slog.SetDefault(New(cfg, os.Stdout))
}

// New builds the application logger: text output while developing, JSON
// everywhere else.
func New(cfg config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	if cfg.IsDevelopment() {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.IsDevelopment() {
		handler = NewContextHandler(slog.NewTextHandler(w, opts))
	} else {
		handler = NewContextHandler(slog.NewJSONHandler(w, opts))
	}
	return slog.New(handler)
}

// ContextHandler copies the LogFields stored in the record's context onto
// every record it handles.
type ContextHandler struct {
	slog.Handler
}

func NewContextHandler(h slog.Handler) *ContextHandler {
	return &ContextHandler{Handler: h}
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	fields := GetLogFields(ctx)
	if fields.RequestID != "" {
		r.AddAttrs(slog.String("request_id", fields.RequestID))
	}
	if fields.Actor != "" {
		r.AddAttrs(slog.String("actor", fields.Actor))
	}
	if fields.Component != "" {
		r.AddAttrs(slog.String("component", fields.Component))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(name)}
}
