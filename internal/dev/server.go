package dev

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/fileroutes/internal/build"
	"github.com/vango-dev/fileroutes/internal/config"
	"github.com/vango-dev/fileroutes/internal/errors"
)

// ReloadPath is the WebSocket endpoint that streams regenerated documents.
const ReloadPath = "/_fileroutes/reload"

// ServerOptions configures the development server.
type ServerOptions struct {
	// Config is the project configuration.
	Config *config.Config

	// Builder regenerates the route document.
	Builder *build.Builder

	// Gatherer backs /metrics. Default: prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// Logger receives server events. Default: slog.Default().
	Logger *slog.Logger

	// OnBuildComplete is called after every build.
	OnBuildComplete func(result *build.Result, err error)
}

// Server is the development server: it rebuilds the route document when the
// views change and serves the last good document.
type Server struct {
	config       *config.Config
	options      ServerOptions
	builder      *build.Builder
	watcher      *Watcher
	reloadServer *ReloadServer
	router       chi.Router
	logger       *slog.Logger

	mu         sync.RWMutex
	document   []byte
	routeCount int
	lastBuild  time.Time
	lastErr    error

	// buildMu serializes rebuilds.
	buildMu sync.Mutex
}

// NewServer creates a new development server.
func NewServer(options ServerOptions) *Server {
	cfg := options.Config
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if options.Gatherer == nil {
		options.Gatherer = prometheus.DefaultGatherer
	}

	dirs, files := CollectWatchPaths(cfg)
	watcher := NewWatcher(WatcherConfig{
		Paths:    dirs,
		Files:    files,
		Debounce: cfg.DebounceDuration(),
		Logger:   logger,
	})

	s := &Server{
		config:       cfg,
		options:      options,
		builder:      options.Builder,
		watcher:      watcher,
		reloadServer: NewReloadServer(),
		logger:       logger.With("component", "dev"),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/routes.json", s.handleDocument)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.options.Gatherer, promhttp.HandlerOpts{}))
	r.Get(ReloadPath, s.reloadServer.HandleWebSocket)
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Rebuild regenerates the document and notifies connected clients.
// A failed build keeps the previous document.
func (s *Server) Rebuild(ctx context.Context) (*build.Result, error) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	result, err := s.builder.Build(ctx)

	s.mu.Lock()
	s.lastBuild = time.Now()
	s.lastErr = err
	if err == nil {
		s.document = result.Document
		s.routeCount = result.RouteCount
	}
	s.mu.Unlock()

	if err != nil {
		code := ""
		var ce *errors.CodedError
		if stderrors.As(err, &ce) {
			code = ce.Code
		}
		s.logger.Error("build failed", "code", code, "error", err)
		s.reloadServer.NotifyError(code, err.Error())
	} else {
		s.logger.Info("routes generated",
			"routes", result.RouteCount,
			"written", result.Written,
			"duration", result.Duration.Round(time.Millisecond),
		)
		s.reloadServer.NotifyRoutes(result.Document)
	}

	if s.options.OnBuildComplete != nil {
		s.options.OnBuildComplete(result, err)
	}
	return result, err
}

// Start listens on the configured dev address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.DevAddress())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve runs an initial build, then watches and serves on ln until ctx is
// done. It returns nil on a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	// Build errors are reported to clients; the server still starts.
	s.Rebuild(ctx)

	s.watcher.OnChange(func(change Change) {
		s.logger.Debug("views changed", "paths", change.Paths)
		s.Rebuild(ctx)
	})

	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := s.watcher.Start(gctx)
		if stderrors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		s.logger.Info("dev server running", "url", "http://"+ln.Addr().String())
		if err := httpServer.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.watcher.Stop()
		s.reloadServer.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Document returns the last good route document, or nil before the first
// successful build.
func (s *Server) Document() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.document
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	document, lastErr := s.document, s.lastErr
	s.mu.RUnlock()

	if document == nil {
		msg := "no build yet"
		if lastErr != nil {
			msg = lastErr.Error()
		}
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": msg})
		return
	}

	if lastErr != nil {
		w.Header().Set("X-Fileroutes-Stale", "true")
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(document)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(document)
}

type healthResponse struct {
	Status    string     `json:"status"`
	Routes    int        `json:"routes"`
	Clients   int        `json:"clients"`
	LastBuild *time.Time `json:"lastBuild,omitempty"`
	Error     string     `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	resp := healthResponse{
		Status:  "ok",
		Routes:  s.routeCount,
		Clients: s.reloadServer.ClientCount(),
	}
	if !s.lastBuild.IsZero() {
		last := s.lastBuild
		resp.LastBuild = &last
	}
	if s.lastErr != nil {
		resp.Status = "error"
		resp.Error = s.lastErr.Error()
	}
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
