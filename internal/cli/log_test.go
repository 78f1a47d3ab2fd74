package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info", LogInfo, func(l *log.Logger) { l.Info("laid out boxes") }, true},
		{"debug at info", LogInfo, func(l *log.Logger) { l.Debug("measure pass complete") }, false},
		{"debug at debug", LogDebug, func(l *log.Logger) { l.Debug("measure pass complete") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))

	prog.done("Rendered", "formats", "svg,json", "boxes", 9)

	out := buf.String()
	for _, want := range []string{"Rendered", "formats=svg,json", "boxes=9", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield the default logger")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, LogInfo)
	ctx := withLogger(context.Background(), custom)

	got := loggerFromContext(ctx)
	if got != custom {
		t.Fatal("attached logger not returned")
	}
	got.Info("mounted grid")
	if !strings.Contains(buf.String(), "mounted grid") {
		t.Error("attached logger should write to its buffer")
	}
}
