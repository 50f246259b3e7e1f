package trace

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	applog "ledger/internal/log"
)

func TestMiddlewareSetsRequestID(t *testing.T) {
	var seen string
	var logged *applog.Logger
	h := NewMiddleware(applog.Discard(), nil).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		logged = applog.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/expenses", nil))

	if !strings.HasPrefix(seen, "req_") {
		t.Fatalf("expected request id in context, got %q", seen)
	}
	if rr.Header().Get(HeaderRequestID) != seen {
		t.Fatalf("response header %q does not match %q", rr.Header().Get(HeaderRequestID), seen)
	}
	if logged == nil || logged.Component() != applog.ComponentHTTP {
		t.Fatalf("expected request-scoped http logger in context")
	}
}

func TestMiddlewareLogsCompletion(t *testing.T) {
	var buf bytes.Buffer
	logger := applog.New(applog.Config{Output: &buf, Component: applog.ComponentApp})
	m := NewMiddleware(logger, func(*http.Request) string { return "10.0.0.1" })
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/expenses", nil))

	out := buf.String()
	for _, want := range []string{"HTTP request completed", "status_code=500", "client_ip=10.0.0.1", "level=ERROR", "component=http"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}

	got := m.GetMetrics()
	if got.TotalRequests != 1 || got.ServerErrors != 1 {
		t.Fatalf("unexpected metrics %+v", got)
	}
}

func TestGetRequestIDMissing(t *testing.T) {
	if id := GetRequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context()); id != "" {
		t.Fatalf("expected empty id, got %q", id)
	}
}

func TestGenerateRequestIDUnique(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()
	if a == b {
		t.Fatalf("expected distinct ids, got %q twice", a)
	}
}
