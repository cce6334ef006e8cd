package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLevel(t *testing.T) {
	if Level(true) != log.DebugLevel {
		t.Errorf("expected debug level for verbose, got %v", Level(true))
	}
	if Level(false) != log.InfoLevel {
		t.Errorf("expected info level, got %v", Level(false))
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, log.InfoLevel)

	l.Debug("hidden")
	l.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("info message should be logged")
	}
}

func TestContextRoundTrip(t *testing.T) {
	l := New(&bytes.Buffer{}, log.DebugLevel)
	ctx := WithLogger(context.Background(), l)

	if FromContext(ctx) != l {
		t.Error("FromContext should return the attached logger")
	}
	if FromContext(context.Background()) != log.Default() {
		t.Error("FromContext should fall back to the default logger")
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(New(&buf, log.InfoLevel))
	p.Done("evaluated 10 samples")

	if !strings.Contains(buf.String(), "evaluated 10 samples (") {
		t.Errorf("expected elapsed time suffix, got %q", buf.String())
	}
}
