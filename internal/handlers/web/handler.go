// Package web serves the strain screen over HTTP
package web

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/KirkDiggler/strain-screen/internal/errors"
	"github.com/KirkDiggler/strain-screen/internal/orchestrators/strain"
	"github.com/KirkDiggler/strain-screen/internal/orchestrators/viewer"
	"github.com/KirkDiggler/strain-screen/internal/pkg/idgen"
)

//go:embed templates/*.html static
var embeddedFiles embed.FS

const (
	// DefaultRefreshInterval is how often a loading page reloads itself
	DefaultRefreshInterval = 2 * time.Second

	// DefaultSettleTime is how long a request waits for a fast load before
	// rendering the loading page
	DefaultSettleTime = 300 * time.Millisecond
)

// HealthCheck reports whether a dependency is usable
type HealthCheck func(ctx context.Context) error

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	Viewer      viewer.Service
	Loader      strain.Service
	IDGenerator idgen.Generator

	RefreshInterval time.Duration
	SettleTime      time.Duration

	// HealthChecks are run by /healthz, keyed by dependency name
	HealthChecks map[string]HealthCheck

	// Logger receives request logs; nil uses slog.Default
	Logger *slog.Logger
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.Viewer == nil {
		vb.RequiredField("Viewer")
	}
	if c.Loader == nil {
		vb.RequiredField("Loader")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.RefreshInterval < 0 {
		vb.InvalidField("RefreshInterval", "cannot be negative")
	}
	if c.SettleTime < 0 {
		vb.InvalidField("SettleTime", "cannot be negative")
	}

	return vb.Build()
}

// Handler serves the strain pages, the JSON API and static assets
type Handler struct {
	viewer       viewer.Service
	loader       strain.Service
	idGen        idgen.Generator
	refresh      time.Duration
	settle       time.Duration
	healthChecks map[string]HealthCheck
	logger       *slog.Logger
	templates    *template.Template
	router       *chi.Mux
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}

	h := &Handler{
		viewer:       cfg.Viewer,
		loader:       cfg.Loader,
		idGen:        cfg.IDGenerator,
		refresh:      cfg.RefreshInterval,
		settle:       cfg.SettleTime,
		healthChecks: cfg.HealthChecks,
		logger:       cfg.Logger,
		templates:    templates,
		router:       chi.NewRouter(),
	}
	if h.refresh == 0 {
		h.refresh = DefaultRefreshInterval
	}
	if h.settle == 0 {
		h.settle = DefaultSettleTime
	}

	if err := h.setupRoutes(); err != nil {
		return nil, err
	}

	return h, nil
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) setupRoutes() error {
	h.router.Use(middleware.RequestID)
	h.router.Use(middleware.RealIP)
	h.router.Use(middleware.RequestLogger(&requestLogFormatter{logger: h.logger}))
	h.router.Use(middleware.Recoverer)
	h.router.Use(middleware.Compress(5))

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		return errors.Wrap(err, "failed to open static files")
	}
	h.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	h.router.Get("/", h.handleIndex)
	h.router.Get("/lookup", h.handleLookup)
	h.router.Get("/healthz", h.handleHealth)

	h.router.Get("/strain/{race}/{id}/{name}", h.handleStrain)
	h.router.Post("/strain/{race}/{id}/{name}/retry", h.handleRetry)

	h.router.Get("/api/v1/strains/{id}", h.handleGetStrain)
	h.router.Delete("/api/v1/strains/{id}/cache", h.handleInvalidateStrain)

	return nil
}
