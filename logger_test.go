package raycaster

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func captureLog(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func TestLoggerDefaultSilent(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should discard everything")
	}
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	captureLog(t, slog.LevelDebug)
	if !Logger().Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("custom logger not installed")
	}
	SetLogger(nil)
	if Logger() == nil || Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should install the silent logger")
	}
}

func TestEngineLogsLifecycle(t *testing.T) {
	buf := captureLog(t, slog.LevelInfo)
	e := newTestEngine(t, 8, 8)
	e.Start()
	_ = e.Resize(4, 4)
	e.End()

	out := buf.String()
	for _, msg := range []string{"engine start", "engine resize", "engine end"} {
		if !strings.Contains(out, msg) {
			t.Errorf("log missing %q:\n%s", msg, out)
		}
	}
}

func TestRenderDebugLogOnlyInDebugMode(t *testing.T) {
	buf := captureLog(t, slog.LevelDebug)
	s := flatScene(t, NewTexture(solid(t, 1, 1, Red)))
	img, _ := NewImage(8, 8)

	Render(s, img, RenderConfig{Workers: 1})
	if buf.Len() != 0 {
		t.Fatalf("logged outside debug mode: %s", buf.String())
	}

	s.SetDebugMode(true)
	Render(s, img, RenderConfig{Workers: 1})
	out := buf.String()
	if !strings.Contains(out, "msg=render") || !strings.Contains(out, "hits=8") {
		t.Errorf("debug log = %q", out)
	}
}

func TestDebugModeRejectsRemovedEntity(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	e := NewEmpty("e", Zero)
	s.Add(e)
	_ = s.Remove(e.ID)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if msg, _ := r.(string); !strings.Contains(msg, "removed entity") {
			t.Errorf("panic = %v", r)
		}
	}()
	s.Add(e)
}

func TestDebugModeWarnsDeepHierarchy(t *testing.T) {
	buf := captureLog(t, slog.LevelWarn)
	s := NewScene()
	s.SetDebugMode(true)
	prev := NewEmpty("root", Zero)
	s.Add(prev)
	for i := 0; i < debugMaxTreeDepth+1; i++ {
		e := NewEmpty("", Zero)
		s.Add(e)
		if err := e.SetParent(prev); err != nil {
			t.Fatal(err)
		}
		prev = e
	}
	if !strings.Contains(buf.String(), "hierarchy too deep") {
		t.Errorf("no depth warning: %q", buf.String())
	}
}
