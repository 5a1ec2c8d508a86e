// Package main runs the token-analysis aggregator API: passthrough
// endpoints over the HolderScan and Solscan providers plus the cross-token
// wallet intersection endpoints.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"soylana/internal/config"
	"soylana/internal/crosscheck"
	"soylana/internal/holderscan"
	"soylana/internal/server"
	"soylana/internal/solscan"
)

func main() {
	// Load .env file if it exists; real env vars win.
	_ = godotenv.Load()

	listenAddr := flag.String("listen", "", "Listen address (overrides API_HOST/API_PORT)")
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	addr := cfg.ListenAddr()
	if *listenAddr != "" {
		addr = *listenAddr
	}

	holderClient := holderscan.New(cfg.HolderScanAPIKey, holderscan.WithBaseURL(cfg.HolderScanBaseURL))
	solscanClient := solscan.New(cfg.SolscanAPIKey, solscan.WithBaseURL(cfg.SolscanBaseURL))

	collector := crosscheck.NewCollector(crosscheck.CollectorOptions{
		HolderGateway:      holderClient,
		TransferGateway:    solscanClient,
		MaxHoldersPerToken: cfg.MaxHoldersPerToken,
		MaxPagesPerToken:   cfg.MaxPagesPerToken,
		Logger:             logger,
	})

	orchestrator := crosscheck.NewOrchestrator(crosscheck.OrchestratorOptions{
		Collector: collector,
		Logger:    logger,
	})

	api := server.New(server.Options{
		HolderScan:   holderClient,
		Solscan:      solscanClient,
		Orchestrator: orchestrator,
		FrontendURL:  cfg.FrontendURL,
		Logger:       logger,
	})

	httpServer := server.NewHTTPServer(addr, api)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		go func() {
			sig := <-sigCh
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		}()

		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Printf("Graceful shutdown failed: %v", err)
		}
	}()

	logger.Printf("Starting HTTP server on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
}
