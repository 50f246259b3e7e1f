package http

import (
	"errors"
	"net/http"

	"ledger/internal/core"
	"ledger/internal/export"
	applog "ledger/internal/log"
	"ledger/internal/query"
	"ledger/internal/summary"
)

// monthsShown is how many months the month picker offers.
const monthsShown = 12

// CategoryInfo is one entry of the category list.
type CategoryInfo struct {
	Name  core.Category `json:"name"`
	Color string        `json:"color"`
}

// ReadyStatus is the body of /readyz.
type ReadyStatus struct {
	Status       string `json:"status"`
	Synced       bool   `json:"synced"`
	Expenses     int    `json:"expenses"`
	Version      uint64 `json:"version"`
	Requests     int64  `json:"requests"`
	ServerErrors int64  `json:"server_errors"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	NewResponse().Body("text/plain; charset=utf-8", []byte("ok")).Write(w)
}

// handleReady reports 503 while the last write to storage failed; the
// ledger keeps serving from memory in that state.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	m := s.Metrics()
	st := ReadyStatus{
		Status:       "ready",
		Synced:       s.store.Synced(),
		Expenses:     s.store.Len(),
		Version:      s.store.Version(),
		Requests:     m.TotalRequests,
		ServerErrors: m.ServerErrors,
	}
	code := http.StatusOK
	if !st.Synced {
		st.Status = "degraded"
		code = http.StatusServiceUnavailable
	}
	NewResponse().Status(code).JSON(st).Write(w)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ref, err := ParseRef(r.URL.Query(), s.now())
	if err != nil {
		BadRequestError("invalid ref, want YYYY-MM-DD").Write(w)
		return
	}

	items, version := s.store.Snapshot()
	ov := s.summaries.Get(version, ref, func() core.Overview {
		return summary.Build(items, ref)
	})
	NewResponse().JSON(ov).Write(w)
}

func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(query.RecentMonths(core.DateOf(s.now()), monthsShown)).Write(w)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats := core.Categories()
	out := make([]CategoryInfo, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryInfo{Name: c, Color: c.Color()})
	}
	NewResponse().JSON(out).Write(w)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	csv, err := export.ToCSV(s.store.All())
	if errors.Is(err, export.ErrEmptyLedger) {
		NotFoundError(err.Error()).Write(w)
		return
	}
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "CSV export failed",
			applog.FieldOperation, applog.OpExport,
			applog.FieldError, err)
		InternalServerError("export failed").Write(w)
		return
	}

	applog.FromContext(r.Context()).InfoContext(r.Context(), "Ledger exported",
		applog.FieldOperation, applog.OpExport,
		applog.FieldCount, s.store.Len())

	NewResponse().
		Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`).
		Body(export.ContentType, []byte(csv)).
		Write(w)
}
