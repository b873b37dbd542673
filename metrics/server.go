package metrics

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	cerrors "github.com/dora-network/series-convergence/errors"
)

// Server exposes a registry over HTTP while a sweep runs, and for Config.Hold after it.
type Server struct {
	mu       sync.Mutex
	config   Config
	reg      *prometheus.Registry
	log      zerolog.Logger
	srv      *http.Server
	listener net.Listener
}

// NewServer returns a server for config. Nothing is bound until Start.
func NewServer(config Config, opts ...Option) *Server {
	s := &Server{
		config: config,
		reg:    prometheus.NewRegistry(),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Path() string {
	if s.config.Path == "" {
		return DefaultConfig().Path
	}
	return s.config.Path
}

// Addr is the address the server listens on, or "" when it is not running. With port 0
// it carries the port the system picked.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start binds the listener, so an unusable address is reported here rather than logged
// from the serving goroutine.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.config.Enabled {
		return ErrMetricsDisabled
	}
	if s.listener != nil {
		return ErrMetricsRunning
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return cerrors.Wrap(cerrors.ConfigurationErr, err, "listen on "+addr)
	}

	mux := http.NewServeMux()
	mux.Handle(s.Path(), promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))
	s.srv = &http.Server{
		Handler:           mux,
		ReadTimeout:       s.config.HttpTimeout,
		ReadHeaderTimeout: s.config.HttpHeaderTimeout,
	}
	s.listener = listener

	s.log.Info().
		Str("addr", listener.Addr().String()).
		Str("path", s.Path()).
		Msg("serving metrics")
	go func(srv *http.Server) {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("metrics server stopped")
		}
	}(s.srv)
	return nil
}

func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.config.Enabled {
		return ErrMetricsDisabled
	}
	if s.listener == nil {
		return ErrMetricsNotRunning
	}
	err := s.srv.Close()
	// Close only knows the listener once Serve has picked it up.
	_ = s.listener.Close()
	s.srv, s.listener = nil, nil
	return err
}

func (s *Server) Registry() *prometheus.Registry {
	return s.reg
}

func (s *Server) Register(instrumentation *Instrumentation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range instrumentation.Collectors() {
		if err := s.reg.Register(c); err != nil {
			return cerrors.Wrap(cerrors.InternalError, err, "register collector")
		}
	}
	return nil
}

// StartMetricsServer registers instrumentation, records version and starts serving it
// when config enables metrics. The returned server is nil when metrics are disabled.
func StartMetricsServer(
	config Config,
	instrumentation *Instrumentation,
	logger zerolog.Logger,
	version string,
) (*Server, error) {
	if !config.Enabled {
		return nil, nil
	}
	svr := NewServer(config, WithLogger(logger))
	if err := svr.Register(instrumentation); err != nil {
		logger.Err(err).Msg("failed to register metrics")
		return nil, err
	}

	instrumentation.GaugeVecs[InstrumentationTypeVersion].With(prometheus.Labels{"version": version}).Set(1)
	if err := svr.Start(); err != nil {
		logger.Err(err).Msg("failed to start metrics server")
		return nil, err
	}
	return svr, nil
}
