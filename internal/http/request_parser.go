// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data.
// Expense bodies arrive either as JSON or as form data; both end up as a
// core.Candidate for the ledger to validate.

package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ledger/internal/core"
	"ledger/internal/query"
)

// maxBodyBytes bounds request bodies; one expense is a few hundred bytes.
const maxBodyBytes = 64 << 10

// RequestBodyParser handles different content types for request body parsing.
// It supports both JSON and form-encoded data.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]any
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser creates a parser for the given request.
// It reads the body once and stores it for subsequent parsing.
func NewRequestBodyParser(w http.ResponseWriter, r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	p.body, p.err = io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	trimmed := bytes.TrimSpace(p.body)
	if len(trimmed) == 0 {
		p.formData = url.Values{}
		return nil
	}

	if trimmed[0] == '{' || strings.Contains(p.contentType, "application/json") {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		// Keep numbers as written so amounts are not routed through float64.
		dec.UseNumber()
		p.jsonData = make(map[string]any)
		if err := dec.Decode(&p.jsonData); err != nil {
			p.err = fmt.Errorf("decode JSON body: %w", err)
			return p.err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(string(trimmed))
	if p.err != nil {
		p.err = fmt.Errorf("decode form body: %w", p.err)
	}
	return p.err
}

// Get returns a string value from the parsed data (JSON or form).
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// IsJSON returns true if the parsed content was JSON.
func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

// Candidate builds the unvalidated expense input from the parsed body.
func (p *RequestBodyParser) Candidate() core.Candidate {
	return core.Candidate{
		Title:    p.Get("title"),
		Amount:   p.Get("amount"),
		Category: p.Get("category"),
		Date:     p.Get("date"),
	}
}

// ParseCandidate reads and decodes an expense body in one step.
func ParseCandidate(w http.ResponseWriter, r *http.Request) (core.Candidate, error) {
	p := NewRequestBodyParser(w, r)
	if err := p.Parse(); err != nil {
		return core.Candidate{}, err
	}
	return p.Candidate(), nil
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// ParseFilters reads the list filters from the query string.
// "month" is a YYYY-M token or "all"; "q" is free text.
func ParseFilters(q url.Values) query.Filters {
	return query.Filters{
		MonthToken: strings.TrimSpace(q.Get("month")),
		SearchText: strings.TrimSpace(q.Get("q")),
	}
}

// ParseRef reads the reference date for summaries, defaulting to now.
func ParseRef(q url.Values, now time.Time) (core.Date, error) {
	v := strings.TrimSpace(q.Get("ref"))
	if v == "" {
		return core.DateOf(now), nil
	}
	return core.ParseDate(v)
}
