package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/rbver/pkg/cache"
	"github.com/matzehuels/rbver/pkg/catalog"
	rberrors "github.com/matzehuels/rbver/pkg/errors"
)

// DefaultSourceURL is linked from the page footer.
const DefaultSourceURL = "https://github.com/pocke/rbver"

// DefaultShutdownTimeout bounds graceful shutdown in [Server.ListenAndServe].
const DefaultShutdownTimeout = 10 * time.Second

// loadFailed is the only failure text clients see; details go to the log.
const loadFailed = "failed to load ruby versions"

// Source produces the catalog for each request. [*catalog.Builder] caches
// between calls; the server never does.
type Source interface {
	Build(ctx context.Context) (*catalog.Catalog, error)
}

// statsSource is implemented by sources backed by a [cache.Store].
type statsSource interface {
	Store() *cache.Store[*catalog.Catalog]
}

// Option configures a [Server].
type Option func(*Server)

// WithSourceURL sets the footer link.
func WithSourceURL(u string) Option { return func(s *Server) { s.sourceURL = u } }

// WithShutdownTimeout sets how long in-flight requests may run after
// the serve context is done.
func WithShutdownTimeout(d time.Duration) Option { return func(s *Server) { s.shutdownTimeout = d } }

// Server is the rbver HTTP surface.
type Server struct {
	source          Source
	logger          *log.Logger
	sourceURL       string
	shutdownTimeout time.Duration
	router          chi.Router
}

// New creates a Server reading catalogs from src. A nil logger uses
// log.Default().
func New(src Source, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		source:          src,
		logger:          logger,
		sourceURL:       DefaultSourceURL,
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/versions.json", s.handleJSON)
	r.Get("/healthz", s.handleHealth)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.load(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageData{Families: cat.Families, SourceURL: s.sourceURL}); err != nil {
		s.logger.Error("render page", "error", err, "request_id", RequestID(r.Context()))
		http.Error(w, loadFailed, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.load(w, r)
	if !ok {
		return
	}

	data, err := json.Marshal(cat)
	if err != nil {
		s.logger.Error("encode catalog", "error", err, "request_id", RequestID(r.Context()))
		http.Error(w, loadFailed, http.StatusInternalServerError)
		return
	}

	etag := `"` + cache.Hash(data)[:16] + `"`
	w.Header().Set("ETag", etag)
	if !cat.BuiltAt.IsZero() {
		w.Header().Set("Last-Modified", cat.BuiltAt.UTC().Format(http.TimeFormat))
	}
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	body := struct {
		Status string       `json:"status"`
		Cache  *cache.Stats `json:"cache,omitempty"`
	}{Status: "ok"}
	if ss, ok := s.source.(statsSource); ok {
		stats := ss.Store().Stats()
		body.Cache = &stats
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

// load builds the catalog and writes the error response on failure.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (*catalog.Catalog, bool) {
	cat, err := s.source.Build(r.Context())
	if err == nil {
		return cat, true
	}

	if r.Context().Err() != nil {
		s.logger.Debug("client went away", "path", r.URL.Path, "request_id", RequestID(r.Context()))
		return nil, false
	}

	status := statusFor(err)
	s.logger.Error("load catalog",
		"status", status,
		"code", rberrors.GetCode(err),
		"error", err,
		"request_id", RequestID(r.Context()))
	http.Error(w, loadFailed, status)
	return nil, false
}

// statusFor maps a build error to a response status: 502 when the release
// listing itself failed, 500 for everything else.
func statusFor(err error) int {
	if rberrors.IsUpstream(err) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
