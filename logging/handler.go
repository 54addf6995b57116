package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// TargetKey is the attribute that names the subsystem a record belongs to
const TargetKey = "target"

// Target returns a logger whose records belong to the given target
func Target(logger *slog.Logger, name string) *slog.Logger {
	return logger.With(slog.String(TargetKey, name))
}

type filterHandler struct {
	inner  slog.Handler
	filter Filter
	target string

	// attributes added after a group belong to that group
	grouped bool
}

// NewHandler builds a text handler writing to w that drops records below the
// level the profile's filter configures for the records target.
func NewHandler(w io.Writer, profile Profile) (slog.Handler, error) {
	filter := Filter{Default: profile.Level}

	if profile.Filter != "" {
		parsed, err := ParseFilter(profile.Filter)
		if err != nil {
			return nil, fmt.Errorf("parse log filter %q: %w", profile.Filter, err)
		}

		filter = parsed
	}

	inner := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: filter.MinLevel(),
	})

	return &filterHandler{inner: inner, filter: filter}, nil
}

func (h *filterHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.target != "" {
		return level >= h.filter.LevelFor(h.target) && h.inner.Enabled(ctx, level)
	}

	// the target might still be set on the record itself
	return h.inner.Enabled(ctx, level)
}

func (h *filterHandler) Handle(ctx context.Context, record slog.Record) error {
	target := h.target

	if !h.grouped {
		record.Attrs(func(attr slog.Attr) bool {
			if attr.Key == TargetKey {
				target = attr.Value.String()
				return false
			}

			return true
		})
	}

	if record.Level < h.filter.LevelFor(target) {
		return nil
	}

	return h.inner.Handle(ctx, record)
}

func (h *filterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	target := h.target

	if !h.grouped {
		for _, attr := range attrs {
			if attr.Key == TargetKey {
				target = attr.Value.String()
			}
		}
	}

	return &filterHandler{
		inner:   h.inner.WithAttrs(attrs),
		filter:  h.filter,
		target:  target,
		grouped: h.grouped,
	}
}

func (h *filterHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	return &filterHandler{
		inner:   h.inner.WithGroup(name),
		filter:  h.filter,
		target:  h.target,
		grouped: true,
	}
}

var initOnce sync.Once
var initErr error

// Init installs a handler for the profile as slog.Default, writing to stderr.
// Only the first call has an effect, later calls return the result of the first one.
func Init(profile Profile) error {
	initOnce.Do(func() {
		handler, err := NewHandler(os.Stderr, profile)
		if err != nil {
			initErr = err
			return
		}

		slog.SetDefault(slog.New(handler))

		slog.Debug("Logging initialized",
			slog.String("level", profile.Level.String()),
			slog.String("filter", profile.Filter),
		)
	})

	return initErr
}
