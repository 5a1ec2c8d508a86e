// Package server exposes the HTTP API: thin passthrough endpoints over the
// upstream providers and the cross-check aggregation endpoints.
package server

import (
	"log"
	"net/http"
	"time"

	"soylana/internal/crosscheck"
	"soylana/internal/holderscan"
	"soylana/internal/observability"
	"soylana/internal/solscan"
)

// Version reported by the root banner endpoint.
const Version = "0.1.0"

// Server holds the HTTP API and its collaborators.
type Server struct {
	holderscan   *holderscan.Client
	solscan      *solscan.Client
	orchestrator *crosscheck.Orchestrator
	logger       *log.Logger
	corsOrigins  map[string]bool
	mux          *http.ServeMux
}

// Options contains configuration for creating a Server.
type Options struct {
	HolderScan   *holderscan.Client
	Solscan      *solscan.Client
	Orchestrator *crosscheck.Orchestrator

	// FrontendURL is added to the CORS allowlist alongside the
	// localhost development origins.
	FrontendURL string

	Logger *log.Logger
}

// New creates a new Server with all routes registered.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	origins := map[string]bool{
		"http://localhost:3000": true,
		"http://localhost:5173": true,
	}
	if opts.FrontendURL != "" {
		origins[opts.FrontendURL] = true
	}

	s := &Server{
		holderscan:   opts.HolderScan,
		solscan:      opts.Solscan,
		orchestrator: opts.Orchestrator,
		logger:       logger,
		corsOrigins:  origins,
		mux:          http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.route("/", s.handleRoot))
	s.mux.HandleFunc("GET /api/health", s.route("/api/health", s.handleHealth))
	s.mux.Handle("GET /metrics", observability.Handler())

	// Token passthroughs
	s.mux.HandleFunc("GET /api/tokens", s.route("/api/tokens", s.handleListTokens))
	s.mux.HandleFunc("GET /api/tokens/{address}", s.route("/api/tokens/:address", s.handleToken))
	s.mux.HandleFunc("GET /api/tokens/{address}/stats", s.route("/api/tokens/:address/stats", s.handleTokenStats))
	s.mux.HandleFunc("GET /api/tokens/{address}/pnl", s.route("/api/tokens/:address/pnl", s.handleTokenPnL))
	s.mux.HandleFunc("GET /api/tokens/{address}/wallet-categories", s.route("/api/tokens/:address/wallet-categories", s.handleWalletCategories))
	s.mux.HandleFunc("GET /api/tokens/{address}/supply-breakdown", s.route("/api/tokens/:address/supply-breakdown", s.handleSupplyBreakdown))
	s.mux.HandleFunc("GET /api/tokens/{address}/analysis", s.route("/api/tokens/:address/analysis", s.handleAnalysis))

	// Holder passthroughs
	s.mux.HandleFunc("GET /api/tokens/{address}/holders", s.route("/api/tokens/:address/holders", s.handleHolders))
	s.mux.HandleFunc("GET /api/tokens/{address}/holders/deltas", s.route("/api/tokens/:address/holders/deltas", s.handleHolderDeltas))
	s.mux.HandleFunc("GET /api/tokens/{address}/holders/breakdowns", s.route("/api/tokens/:address/holders/breakdowns", s.handleHolderBreakdowns))

	// Transfer passthrough
	s.mux.HandleFunc("GET /api/tokens/{address}/transfers", s.route("/api/tokens/:address/transfers", s.handleTransfers))

	// Wallet analysis
	s.mux.HandleFunc("GET /api/tokens/{address}/wallet/{wallet}", s.route("/api/tokens/:address/wallet/:wallet", s.handleWalletStats))

	// Cross-check
	s.mux.HandleFunc("POST /api/cross-check/holders", s.route("/api/cross-check/holders", s.handleCrossCheckHolders))
	s.mux.HandleFunc("POST /api/cross-check/traders", s.route("/api/cross-check/traders", s.handleCrossCheckTraders))

	// CORS preflight for every API route
	s.mux.HandleFunc("OPTIONS /", s.handlePreflight)
}

// NewHTTPServer wraps the Server in an http.Server with sane timeouts.
// Cross-checks paginate upstream APIs sequentially, so the write timeout
// has to cover a full worst-case aggregation run.
func NewHTTPServer(addr string, s *Server) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
}
