package logging

import (
	"context"
	"log/slog"
)

// MultiHandler forwards each record to every wrapped handler. The
// server uses it to pair the stdout JSON handler with the database
// handler without giving up either.
type MultiHandler struct {
	targets []slog.Handler
}

func NewMultiHandler(targets ...slog.Handler) *MultiHandler {
	return &MultiHandler{targets: targets}
}

// Enabled reports whether at least one wrapped handler wants the level.
func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, t := range m.targets {
		if t.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, t := range m.targets {
		if !t.Enabled(ctx, record.Level) {
			continue
		}
		if err := t.Handle(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &MultiHandler{targets: m.fanout(func(t slog.Handler) slog.Handler {
		return t.WithAttrs(attrs)
	})}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	return &MultiHandler{targets: m.fanout(func(t slog.Handler) slog.Handler {
		return t.WithGroup(name)
	})}
}

func (m *MultiHandler) fanout(wrap func(slog.Handler) slog.Handler) []slog.Handler {
	targets := make([]slog.Handler, len(m.targets))
	for i, t := range m.targets {
		targets[i] = wrap(t)
	}
	return targets
}
