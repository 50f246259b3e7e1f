package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestJSONFormatCarriesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Output: &buf, Component: ComponentLedger})
	logger.Info("test message", FieldKey, "value")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected valid JSON output, got error: %v", err)
	}
	if entry["msg"] != "test message" {
		t.Errorf("unexpected msg %v", entry["msg"])
	}
	if entry[FieldComponent] != ComponentLedger {
		t.Errorf("unexpected component %v", entry[FieldComponent])
	}
	if entry[FieldKey] != "value" {
		t.Errorf("unexpected key %v", entry[FieldKey])
	}
}

func TestTextFormatAndLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Output: &buf, Component: ComponentApp})
	logger.Info("dropped")
	logger.WithComponent(ComponentStorage).Warn("kept", "count", 3)

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info line should be filtered: %s", out)
	}
	if !strings.Contains(out, "component=storage") || !strings.Contains(out, "count=3") {
		t.Fatalf("unexpected output: %s", out)
	}
	if strings.Count(out, "component=") != 1 {
		t.Fatalf("component must appear once: %s", out)
	}
}

func TestFromContextFallsBack(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("expected fallback logger")
	}
	l := Discard()
	if got := FromContext(NewContext(context.Background(), l)); got != l {
		t.Fatal("expected logger from context")
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Output: &buf, Component: ComponentHTTP})

	h := Middleware(base)(RequestIDMiddleware(func(*http.Request) string { return "req_1" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			FromContext(r.Context()).Info("handled")
		})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.Contains(buf.String(), "request_id=req_1") {
		t.Fatalf("request id missing: %s", buf.String())
	}
}

func TestLogFields(t *testing.T) {
	f := NewFields().WithOperation(OpAdd).WithError(nil).WithExpense("a1", "Tea", "50", "Food", "2024-01-05")
	if _, ok := f[FieldError]; ok {
		t.Fatal("nil error must not be recorded")
	}
	if len(f.ToSlice()) != 2*len(f) {
		t.Fatalf("unexpected slice length %d", len(f.ToSlice()))
	}
}
