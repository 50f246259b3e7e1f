package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"ledger/internal/cache"
	"ledger/internal/ledger"
	applog "ledger/internal/log"
	"ledger/internal/middleware/ratelimit"
	"ledger/internal/middleware/security"
	"ledger/internal/middleware/trace"
)

// Server exposes the ledger over a JSON API plus a CSV download.
type Server struct {
	http.Server
	store     *ledger.Store
	summaries *cache.SummaryCache
	limiter   *ratelimit.Limiter
	tracer    *trace.Middleware
	detector  *security.Detector
	logger    *applog.Logger
	now       func() time.Time

	shutdownOnce sync.Once
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *applog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithSummaryCache memoises summary responses.
func WithSummaryCache(c *cache.SummaryCache) Option {
	return func(s *Server) { s.summaries = c }
}

// WithRateLimit caps mutating requests per client and minute.
// n <= 0 leaves writes unlimited.
func WithRateLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.limiter = ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: n})
		}
	}
}

// WithClock replaces time.Now for "today" defaults.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, store *ledger.Store, opts ...Option) *Server {
	s := &Server{
		store:    store,
		logger:   applog.Discard(),
		now:      time.Now,
		detector: security.NewDetector(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent(applog.ComponentHTTP)
	if s.summaries == nil {
		s.summaries = cache.NewSummaryCache(64, 10*time.Minute, s.logger)
	}
	s.tracer = trace.NewMiddleware(s.logger, s.detector.ExtractClientIP)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.tracer.Middleware)
	r.Use(s.detector.Middleware)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NotFoundError("not found").Write(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		ErrorResponse(http.StatusMethodNotAllowed, "method not allowed").Write(w)
	})

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Group(func(r chi.Router) {
		r.Use(security.NoStore)
		if s.limiter != nil {
			r.Use(s.limiter.Middleware(s.detector.ExtractClientIP, func(w http.ResponseWriter, r *http.Request) {
				s.logger.WarnContext(r.Context(), "Rate limit exceeded",
					applog.FieldClientIP, s.detector.ExtractClientIP(r),
					applog.FieldMethod, r.Method,
					applog.FieldPath, r.URL.Path)
				ErrorResponse(http.StatusTooManyRequests, "rate limit exceeded, try again later").Write(w)
			}))
		}

		r.Route("/api", func(r chi.Router) {
			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", s.handleListExpenses)
				r.Post("/", s.handleCreateExpense)
				r.Delete("/", s.handleClearExpenses)
				r.Post("/sample", s.handleAddSample)
				r.Get("/{id}", s.handleGetExpense)
				r.Put("/{id}", s.handleUpdateExpense)
				r.Delete("/{id}", s.handleDeleteExpense)
			})
			r.Get("/summary", s.handleSummary)
			r.Get("/months", s.handleMonths)
			r.Get("/categories", s.handleCategories)
		})

		r.Get("/export/expenses.csv", s.handleExportCSV)
	})

	return r
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// Metrics reports the request counters shown by /readyz.
func (s *Server) Metrics() trace.Metrics {
	return s.tracer.GetMetrics()
}
