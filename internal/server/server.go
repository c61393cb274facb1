package server

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Server wraps an *http.Server to provide start/shutdown lifecycle.
type Server struct {
	opts       Options
	httpServer *http.Server
}

// Options tune the listener. Zero values keep the defaults below.
type Options struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
}

const (
	maxHeaderBytes    = 1 << 20 // 1 MB
	readHeaderTimeout = 10 * time.Second
	// Discovery sweeps take several seconds; keep the write timeout above them.
	writeTimeout = 30 * time.Second
	idleTimeout  = 60 * time.Second
)

func New(opts Options) *Server {
	if opts.ReadHeaderTimeout <= 0 {
		opts.ReadHeaderTimeout = readHeaderTimeout
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = writeTimeout
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = idleTimeout
	}
	return &Server{opts: opts}
}

func (s *Server) newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: s.opts.ReadHeaderTimeout,
		WriteTimeout:      s.opts.WriteTimeout,
		IdleTimeout:       s.opts.IdleTimeout,
	}
}

// normalizeAddr accepts "8080", ":8080" or "127.0.0.1:8080".
func normalizeAddr(port string) string {
	if port == "" || strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// Run starts the HTTP server and blocks. It returns http.ErrServerClosed
// after Shutdown.
func (s *Server) Run(port string, handler http.Handler) error {
	s.httpServer = s.newHTTPServer(normalizeAddr(port), handler)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, allowing in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
