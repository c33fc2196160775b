package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

const tagKey = "tag"

// filteringHandler drops records by tag, source package or source file
// before handing them to the wrapped handler.
type filteringHandler struct {
	next slog.Handler
	cfg  *Config
}

func newFilteringHandler(next slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{next: next, cfg: cfg}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg != nil {
		if reason := h.rejects(r); reason != "" {
			if debugFilter {
				fmt.Fprintf(os.Stderr, "[FILTER] drop %q: %s\n", r.Message, reason)
			}
			return nil
		}
	}
	return h.next.Handle(ctx, r)
}

// rejects returns why r is filtered out, or "" when it passes.
func (h *filteringHandler) rejects(r slog.Record) string {
	cfg := h.cfg
	if cfg.packages.active() || cfg.files.active() {
		pkg, file := sourceOf(r)
		if file != "" && !cfg.packages.admits(pkg) {
			return "package " + pkg
		}
		if file != "" && !cfg.files.admits(file) {
			return "file " + file
		}
	}
	if cfg.tags.active() {
		if tag := tagOf(r); !cfg.tags.admits(tag) {
			if tag == "" {
				return "untagged"
			}
			return "tag " + tag
		}
	}
	return ""
}

// sourceOf resolves the package directory and file name of the call site.
func sourceOf(r slog.Record) (pkg, file string) {
	if r.PC == 0 {
		return "", ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
	if frame.File == "" {
		return "", ""
	}
	return filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File)
}

func tagOf(r slog.Record) string {
	var tag string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = a.Value.String()
			return false
		}
		return true
	})
	return tag
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.next.WithAttrs(attrs), h.cfg)
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.next.WithGroup(name), h.cfg)
}
