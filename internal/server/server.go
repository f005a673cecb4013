package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"curl-mapper/internal/companion"
	"curl-mapper/internal/config"
)

// RequestIDHeader carries the request ID on requests and responses.
const RequestIDHeader = "X-Request-Id"

// Options wires a Server.
type Options struct {
	Config *config.Config
	// Documents returns the current companion documents; nil means none.
	Documents func() *companion.Set
	// Cache is optional.
	Cache *companion.Cache
	// AccessLog enables one log line per request.
	AccessLog bool
}

// Server is the HTTP API.
type Server struct {
	opts   Options
	engine *gin.Engine
}

// New builds the router.
func New(opts Options) *Server {
	if opts.Config == nil {
		opts.Config = config.Default()
	}

	s := &Server{opts: opts}
	s.engine = s.newRouter()

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on the configured listen address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Config.Server.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Config.Server.Listen, err)
	}

	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadTimeout:       s.opts.Config.ReadTimeout(),
		ReadHeaderTimeout: s.opts.Config.ReadTimeout(),
		WriteTimeout:      s.opts.Config.WriteTimeout(),
	}

	errCh := make(chan error, 1)

	go func() {
		log.Printf("http server listening: addr=%q", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	log.Printf("http server stopped: addr=%q", ln.Addr().String())

	return nil
}

func (s *Server) newRouter() *gin.Engine {
	r := gin.New()
	r.Use(requestIDMiddleware())

	if s.opts.AccessLog {
		r.Use(requestLogger())
	}

	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	v1 := r.Group("/v1")
	v1.GET("/documents", s.handleDocuments)
	v1.POST("/parse", s.handleParse)
	v1.POST("/fields", s.handleFields)
	v1.POST("/flatten", s.handleFlatten)
	v1.POST("/suggest", s.handleSuggest)
	v1.POST("/scenario", s.handleScenario)

	return r
}

func (s *Server) documents() *companion.Set {
	if s.opts.Documents == nil {
		return companion.NewSet()
	}

	if set := s.opts.Documents(); set != nil {
		return set
	}

	return companion.NewSet()
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.New().String()
		}

		c.Header(RequestIDHeader, id)
		c.Set(RequestIDHeader, id)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Printf("http request: method=%s path=%q status=%d latency_ms=%d request_id=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(),
			time.Since(start).Milliseconds(), c.GetString(RequestIDHeader))
	}
}
