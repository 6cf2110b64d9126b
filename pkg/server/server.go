package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pagesmith/pkg/components"
	"github.com/matzehuels/pagesmith/pkg/editor"
	"github.com/matzehuels/pagesmith/pkg/publish"
	"github.com/matzehuels/pagesmith/pkg/registry"
	"github.com/matzehuels/pagesmith/pkg/store"
	"github.com/matzehuels/pagesmith/pkg/templates"
)

// Default timeouts.
const (
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultSessionIdle     = 30 * time.Minute
)

// Config wires a Server. Store is required; the rest defaults.
type Config struct {
	Store     store.Store
	Publisher *publish.Runner
	Registry  *registry.Registry
	Templates *templates.Catalog
	Logger    *log.Logger

	// PublicURL is the origin published sites are served from. Pages get
	// a canonical link of PublicURL/sites/<slug> when it is set.
	PublicURL string

	// HistoryLimit and Retry configure the editor sessions.
	HistoryLimit int
	Retry        editor.RetryPolicy

	// SessionIdle is how long a saved session stays in memory without
	// requests. Sessions with unsaved changes are kept.
	SessionIdle time.Duration
}

// Server is the HTTP front end. It is safe for concurrent use.
type Server struct {
	cfg       Config
	store     store.Store
	pub       *publish.Runner
	reg       *registry.Registry
	templates *templates.Catalog
	logger    *log.Logger
	router    *chi.Mux

	mu       sync.Mutex
	sessions map[string]*liveSession
	now      func() time.Time
}

// New creates a server. It fails only when the embedded template catalogue
// cannot be parsed.
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Registry == nil {
		cfg.Registry = components.DefaultRegistry()
	}
	if cfg.Publisher == nil {
		cfg.Publisher = publish.NewRunner(nil, nil, cfg.Registry, cfg.Logger)
	}
	if cfg.SessionIdle <= 0 {
		cfg.SessionIdle = DefaultSessionIdle
	}
	if cfg.Templates == nil {
		cat, err := templates.Default()
		if err != nil {
			return nil, err
		}
		cfg.Templates = cat
	}

	s := &Server{
		cfg:       cfg,
		store:     cfg.Store,
		pub:       cfg.Publisher,
		reg:       cfg.Registry,
		templates: cfg.Templates,
		logger:    cfg.Logger,
		sessions:  make(map[string]*liveSession),
		now:       time.Now,
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/components", s.handleComponents)
		r.Get("/templates", s.handleTemplates)

		r.Route("/websites", func(r chi.Router) {
			r.Get("/", s.handleList)
			r.Post("/", s.handleCreate)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGet)
				r.Delete("/", s.handleDelete)
				r.Get("/state", s.handleState)
				r.Get("/render", s.handleRender)

				r.Post("/components", s.handleInsert)
				r.Route("/components/{cid}", func(r chi.Router) {
					r.Patch("/", s.handleUpdate)
					r.Put("/", s.handleReplace)
					r.Delete("/", s.handleRemove)
					r.Post("/duplicate", s.handleDuplicate)
					r.Post("/image", s.handleImage)
				})

				r.Post("/move", s.handleMove)
				r.Put("/order", s.handleOrder)
				r.Post("/controls", s.handleControl)
				r.Put("/selection", s.handleSelection)
				r.Patch("/palette", s.handlePalette)
				r.Post("/palette/{preset}", s.handlePreset)
				r.Put("/seo", s.handleSEO)
				r.Patch("/meta", s.handleMeta)
				r.Post("/undo", s.handleUndo)
				r.Post("/redo", s.handleRedo)
				r.Post("/save", s.handleSave)
				r.Post("/publish", s.handlePublish)
			})
		})
	})

	r.Get("/sites/{slug}", s.handleSite)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	s.logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// requestLogger logs one line per request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
