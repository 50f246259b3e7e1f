package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ledger/internal/core"
	"ledger/internal/ledger"
	applog "ledger/internal/log"
	"ledger/internal/query"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	// An unparseable month matches nothing rather than failing the request.
	NewResponse().JSON(query.Query(s.store.All(), ParseFilters(r.URL.Query()))).Write(w)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	e, ok := s.store.Get(chi.URLParam(r, "id"))
	if !ok {
		NotFoundError(ledger.ErrNotFound.Error()).Write(w)
		return
	}
	NewResponse().JSON(e).Write(w)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())

	c, err := ParseCandidate(w, r)
	if err != nil {
		logger.WarnContext(r.Context(), "Unreadable expense body", applog.FieldError, err)
		BadRequestError("invalid request body").Write(w)
		return
	}

	e, err := s.store.Add(r.Context(), c)
	if err != nil {
		s.writeMutationError(w, r, applog.OpAdd, err)
		return
	}

	logger.InfoContext(r.Context(), "Expense created", expenseFields(applog.OpAdd, e)...)

	NewResponse().
		Status(http.StatusCreated).
		Header("Location", "/api/expenses/"+e.ID).
		JSON(e).
		Write(w)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())
	id := chi.URLParam(r, "id")

	c, err := ParseCandidate(w, r)
	if err != nil {
		logger.WarnContext(r.Context(), "Unreadable expense body", applog.FieldError, err)
		BadRequestError("invalid request body").Write(w)
		return
	}

	e, err := s.store.Update(r.Context(), id, c)
	if err != nil {
		s.writeMutationError(w, r, applog.OpUpdate, err)
		return
	}

	logger.InfoContext(r.Context(), "Expense updated", expenseFields(applog.OpUpdate, e)...)
	NewResponse().JSON(e).Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeMutationError(w, r, applog.OpDelete, err)
		return
	}
	applog.FromContext(r.Context()).InfoContext(r.Context(), "Expense deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldExpenseID, id)
	NoContent().Write(w)
}

func (s *Server) handleClearExpenses(w http.ResponseWriter, r *http.Request) {
	s.store.Clear(r.Context())
	applog.FromContext(r.Context()).InfoContext(r.Context(), "Ledger cleared",
		applog.FieldOperation, applog.OpClear)
	NoContent().Write(w)
}

func (s *Server) handleAddSample(w http.ResponseWriter, r *http.Request) {
	added := s.store.AddSample(r.Context(), s.now())
	applog.FromContext(r.Context()).InfoContext(r.Context(), "Sample expenses added",
		applog.FieldOperation, applog.OpSample,
		applog.FieldCount, len(added))
	NewResponse().Status(http.StatusCreated).JSON(added).Write(w)
}

// writeMutationError maps store errors onto status codes.
func (s *Server) writeMutationError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case core.IsValidationError(err):
		ValidationErrorResponse(err).Write(w)
	case errors.Is(err, ledger.ErrNotFound):
		NotFoundError(err.Error()).Write(w)
	default:
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Ledger mutation failed",
			applog.FieldOperation, op,
			applog.FieldError, err)
		InternalServerError("could not apply change").Write(w)
	}
}

func expenseFields(op string, e core.Expense) []any {
	return applog.NewFields().
		WithOperation(op).
		WithExpense(e.ID, sanitizeInput(e.Title), e.Amount.String(), string(e.Category), e.Date.String()).
		ToSlice()
}
