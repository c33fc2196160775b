package logger

import (
	"bytes"
	"context"
	"log/slog"
	"runtime"
	"strings"
	"testing"
	"time"
)

func newTestHandler(cfg Config, out *bytes.Buffer) slog.Handler {
	cfg.process()
	base := slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.level})
	return newFilteringHandler(base, &cfg)
}

func record(msg, tag string) slog.Record {
	r := slog.NewRecord(time.Now(), slog.LevelInfo, msg, 0)
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	return r
}

func TestFilteringHandlerDisabledTag(t *testing.T) {
	var out bytes.Buffer
	h := newTestHandler(Config{LogLevel: "debug", DisabledTags: []string{"Occurrence"}}, &out)

	_ = h.Handle(context.Background(), record("dropped", "occurrence"))
	_ = h.Handle(context.Background(), record("kept", "duplicate"))

	if strings.Contains(out.String(), "dropped") {
		t.Errorf("message with disabled tag was logged: %q", out.String())
	}
	if !strings.Contains(out.String(), "kept") {
		t.Errorf("expected message with other tag, got %q", out.String())
	}
}

func TestFilteringHandlerEnabledTagsDropUntagged(t *testing.T) {
	var out bytes.Buffer
	h := newTestHandler(Config{LogLevel: "info", EnabledTags: []string{"config"}}, &out)

	_ = h.Handle(context.Background(), record("untagged", ""))
	_ = h.Handle(context.Background(), record("wanted", "config"))

	if strings.Contains(out.String(), "untagged") {
		t.Errorf("untagged message should be filtered when tags are enabled")
	}
	if !strings.Contains(out.String(), "wanted") {
		t.Errorf("expected tagged message in output")
	}
}

func TestConfigProcessLevels(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"err":     slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		cfg := Config{LogLevel: in}
		cfg.process()
		if got := cfg.level.Level(); got != want {
			t.Errorf("level %q = %v, want %v", in, got, want)
		}
	}
}

func TestFilteringHandlerSource(t *testing.T) {
	var pcs [1]uintptr
	runtime.Callers(1, pcs[:])
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "from test", pcs[0])

	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"no filters", Config{}, true},
		{"package disabled", Config{DisabledPackages: []string{"Logger"}}, false},
		{"other package enabled", Config{EnabledPackages: []string{"config"}}, false},
		{"file enabled", Config{EnabledFiles: []string{"handler_test.go"}}, true},
		{"file disabled", Config{DisabledFiles: []string{"handler_test.go"}}, false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		h := newTestHandler(tt.cfg, &out)
		_ = h.Handle(context.Background(), r)
		if got := strings.Contains(out.String(), "from test"); got != tt.want {
			t.Errorf("%s: logged = %v, want %v", tt.name, got, tt.want)
		}
	}
}
