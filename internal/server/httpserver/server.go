package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/yndnr/tokgate/internal/telemetry/logger"
)

// Config configures the listener.
type Config struct {
	Addr        string
	TLSCertFile string
	TLSKeyFile  string
	ReadTimeout time.Duration
	IdleTimeout time.Duration
}

// Server is the HTTP server.
type Server struct {
	httpServer *http.Server
	cfg        Config
	log        logger.Logger

	mu       sync.Mutex
	listener net.Listener
}

// New creates a server for handler.
func New(cfg Config, handler http.Handler, log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		cfg: cfg,
		log: log.With("component", "httpserver"),
	}
}

// Listen binds the configured address. It is split from Serve so callers
// learn about bind errors synchronously.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	return nil
}

// Addr returns the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Addr
}

// Serve accepts connections until Shutdown. It listens first if Listen
// was not called. A graceful shutdown returns nil.
func (s *Server) Serve() error {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()
	if ln == nil {
		if err := s.Listen(); err != nil {
			return err
		}
		ln = s.listener
	}

	tls := s.cfg.TLSCertFile != "" && s.cfg.TLSKeyFile != ""
	s.log.Info("http server listening", "addr", ln.Addr().String(), "tls", tls)

	var err error
	if tls {
		err = s.httpServer.ServeTLS(ln, s.cfg.TLSCertFile, s.cfg.TLSKeyFile)
	} else {
		err = s.httpServer.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
