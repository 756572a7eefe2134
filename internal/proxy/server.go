package proxy

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"secureproxy/rewrite"
)

// Config describes server wiring and runtime behaviour.
type Config struct {
	IndexHTML string
	Logger    *log.Logger
	Fetch     rewrite.FetcherConfig
}

// DefaultConfig populates configuration from environment variables.
func DefaultConfig() Config {
	cfg := Config{
		IndexHTML: indexHTML,
		Logger:    log.Default(),
		Fetch:     rewrite.DefaultFetcherConfig(),
	}
	if d := envSeconds("PROXY_PAGE_TIMEOUT"); d > 0 {
		cfg.Fetch.PageTimeout = d
	}
	if d := envSeconds("PROXY_RESOURCE_TIMEOUT"); d > 0 {
		cfg.Fetch.ResourceTimeout = d
	}
	if raw := strings.TrimSpace(os.Getenv("PROXY_MAX_RETRIES")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			cfg.Fetch.Retry.MaxRetries = n
		}
	}
	if ua := strings.TrimSpace(os.Getenv("PROXY_USER_AGENT")); ua != "" {
		cfg.Fetch.UserAgent = ua
	}
	return cfg
}

func envSeconds(name string) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

// Server exposes the HTTP handlers implementing the proxy behaviour.
type Server struct {
	cfg     Config
	mux     *http.ServeMux
	handler http.Handler
	logger  *log.Logger
	fetcher *rewrite.Fetcher
}

// New wires a new proxy server with the provided configuration.
func New(cfg Config) *Server {
	if cfg.IndexHTML == "" {
		cfg.IndexHTML = indexHTML
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	s := &Server{
		cfg:     cfg,
		mux:     http.NewServeMux(),
		logger:  cfg.Logger,
		fetcher: rewrite.NewFetcher(cfg.Fetch),
	}
	s.registerRoutes()
	s.handler = withLogging(s.logger, s.mux)
	return s
}

// NewServer builds a server from environment-derived defaults.
func NewServer() http.Handler {
	return New(DefaultConfig())
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/", s.handleHome)
	s.mux.HandleFunc("/browse", s.handleBrowse)
	s.mux.HandleFunc("/resource/", s.handleResource)
}
