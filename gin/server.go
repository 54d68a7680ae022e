// Package gin exposes the scraper and preset store over HTTP using gin.
package gin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/fwojciec/postcard"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Default server settings.
const (
	DefaultAddr            = "127.0.0.1:8080"
	DefaultRateLimit       = rate.Limit(10)
	DefaultRateBurst       = 20
	DefaultShutdownTimeout = 5 * time.Second
)

var setModeOnce sync.Once

// Server serves the JSON API.
type Server struct {
	ln     net.Listener
	server *http.Server
	engine *gin.Engine

	scraper *postcard.Scraper
	presets postcard.PresetService
	limiter *rate.Limiter
	logger  *slog.Logger

	// Addr is the bind address used by Open.
	Addr string
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the bind address.
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.Addr = addr
	}
}

// WithRateLimit replaces the default token bucket shared by all clients.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(s *Server) {
		s.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithLogger sets the logger used for request and panic logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a Server with all routes configured.
func NewServer(scraper *postcard.Scraper, presets postcard.PresetService, opts ...Option) *Server {
	setModeOnce.Do(func() { gin.SetMode(gin.ReleaseMode) })

	s := &Server{
		scraper: scraper,
		presets: presets,
		limiter: rate.NewLimiter(DefaultRateLimit, DefaultRateBurst),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Addr:    DefaultAddr,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := gin.New()
	r.Use(s.recovery())
	r.Use(s.requestLogger())
	r.Use(cors())
	r.Use(s.rateLimit())
	s.routes(r)
	s.engine = r

	s.server = &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	{
		api.GET("/extract", s.handleExtractQuery)
		api.POST("/extract", s.handleExtractBody)

		api.GET("/presets", s.handlePresetList)
		api.POST("/presets", s.handlePresetCreate)
		api.GET("/presets/:id", s.handlePresetGet)
		api.PUT("/presets/:id", s.handlePresetUpdate)
		api.DELETE("/presets/:id", s.handlePresetDelete)
	}

	r.NoRoute(func(c *gin.Context) {
		s.Error(c, postcard.Errorf(postcard.ENOTFOUND, "route not found"))
	})
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Open binds Addr and starts serving in a background goroutine.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("serve", "err", err)
		}
	}()
	return nil
}

// URL returns the base URL of a running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}
