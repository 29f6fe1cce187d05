package logging

import (
	"context"
	"log/slog"
	"os"
)

// Setup installs JSON logging to stdout as the slog default. main replaces
// it once the database is up, wrapping the same stdout handler together
// with the DB handler via Tee.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

// Tee returns a handler that delivers each record to every sink that
// accepts its level. Used to pair stdout JSON output with the ERROR+
// database sink.
func Tee(sinks ...slog.Handler) slog.Handler {
	return teeHandler{sinks: sinks}
}

type teeHandler struct {
	sinks []slog.Handler
}

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, sink := range t.sinks {
		if sink.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, sink := range t.sinks {
		if !sink.Enabled(ctx, record.Level) {
			continue
		}
		if err := sink.Handle(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(t.sinks))
	for i, sink := range t.sinks {
		next[i] = sink.WithAttrs(attrs)
	}
	return teeHandler{sinks: next}
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(t.sinks))
	for i, sink := range t.sinks {
		next[i] = sink.WithGroup(name)
	}
	return teeHandler{sinks: next}
}
