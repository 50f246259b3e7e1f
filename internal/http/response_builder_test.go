package http

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"ledger/internal/core"
)

func TestResponseBuilder_JSON(t *testing.T) {
	w := httptest.NewRecorder()

	NewResponse().
		Status(http.StatusCreated).
		Header("Location", "/api/expenses/a1").
		JSON(map[string]string{"id": "a1"}).
		Write(w)

	if w.Code != http.StatusCreated {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != contentTypeJSON {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Header().Get("Location") != "/api/expenses/a1" {
		t.Errorf("Location header not set")
	}
	if w.Body.String() != "{\"id\":\"a1\"}\n" {
		t.Errorf("Body = %q", w.Body.String())
	}
}

func TestResponseBuilder_EncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()
	NewResponse().JSON(math.Inf(1)).Write(w)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status code = %d, want 500", w.Code)
	}
}

func TestResponseBuilder_Body(t *testing.T) {
	w := httptest.NewRecorder()
	NewResponse().Body("text/csv", []byte("a,b")).Write(w)
	if w.Header().Get("Content-Type") != "text/csv" || w.Body.String() != "a,b" {
		t.Errorf("unexpected response %q %q", w.Header().Get("Content-Type"), w.Body.String())
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name     string
		builder  *ResponseBuilder
		wantCode int
		wantMsg  string
	}{
		{"bad request", BadRequestError("bad"), http.StatusBadRequest, "bad"},
		{"unprocessable", UnprocessableEntityError("nope"), http.StatusUnprocessableEntity, "nope"},
		{"internal", InternalServerError("boom"), http.StatusInternalServerError, "boom"},
		{"not found", NotFoundError("missing"), http.StatusNotFound, "missing"},
		{"method", MethodNotAllowedError("GET"), http.StatusMethodNotAllowed, "method not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.builder.Write(w)
			if w.Code != tt.wantCode {
				t.Errorf("Status code = %d, want %d", w.Code, tt.wantCode)
			}
			var body ErrorBody
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Errorf("error = %q, want %q", body.Error, tt.wantMsg)
			}
		})
	}
}

func TestMethodNotAllowedSetsAllow(t *testing.T) {
	w := httptest.NewRecorder()
	MethodNotAllowedError("GET, POST").Write(w)
	if w.Header().Get("Allow") != "GET, POST" {
		t.Errorf("Allow = %q", w.Header().Get("Allow"))
	}
}

func TestValidationErrorResponse(t *testing.T) {
	_, err := core.Validate(core.Candidate{Title: "Tea", Amount: "abc", Date: "2024-01-05"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	w := httptest.NewRecorder()
	ValidationErrorResponse(err).Write(w)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Status code = %d, want 422", w.Code)
	}
	var body ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Field != "amount" {
		t.Errorf("field = %q, want amount", body.Field)
	}
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	NoContent().Write(w)
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Errorf("unexpected %d %q", w.Code, w.Body.String())
	}
}
