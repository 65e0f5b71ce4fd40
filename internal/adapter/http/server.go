package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/well-data-service/internal/domain"
	"github.com/couchcryptid/well-data-service/internal/pipeline"
)

// WellService runs ingestion and generation against the collection.
type WellService interface {
	Ingest(ctx context.Context, docs []domain.Document) pipeline.BatchResult
	Generate(ctx context.Context, label string) (domain.WellRecord, error)
	CheckReadiness(ctx context.Context) error
}

// WellReader gives read access to the collection and the selected well.
type WellReader interface {
	List() []domain.WellRecord
	Get(name string) (domain.WellRecord, error)
	Selected() (domain.WellRecord, error)
	Select(name string) error
}

// Options configures the HTTP server.
type Options struct {
	Addr           string
	AllowedOrigins []string
	MaxUploadBytes int64
}

// Server exposes health, readiness, metrics and the well API.
type Server struct {
	httpServer *http.Server
	svc        WellService
	wells      WellReader
	maxUpload  int64
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the operational routes and /api.
func NewServer(opts Options, svc WellService, wells WellReader, logger *slog.Logger) *Server {
	s := &Server{
		svc:       svc,
		wells:     wells,
		maxUpload: opts.MaxUploadBytes,
		logger:    logger,
	}

	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.routes(opts.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		// Upload batches hold the response until every file is processed.
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(s.svc))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		if len(allowedOrigins) > 0 {
			api.Use(cors.Handler(cors.Options{
				AllowedOrigins: allowedOrigins,
				AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Content-Type"},
				MaxAge:         300,
			}))
		}
		api.Use(requestLogger(s.logger))

		api.Route("/wells", func(wr chi.Router) {
			wr.Get("/", s.handleListWells)
			wr.Get("/summary", s.handleSummary)
			wr.Get("/production", s.handleProduction)
			wr.Get("/selected", s.handleGetSelected)
			wr.Put("/selected", s.handleSelect)
			wr.Post("/generate", s.handleGenerate)
			wr.Post("/upload", s.handleUpload)
			wr.Get("/{name}", s.handleGetWell)
			wr.Get("/{name}/position", s.handlePosition)
		})
	})

	return r
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
