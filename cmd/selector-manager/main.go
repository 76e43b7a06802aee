package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/selector-project/selector-manager/internal/apiserver"
	"github.com/selector-project/selector-manager/internal/config"
	"github.com/selector-project/selector-manager/internal/handlers/v1alpha1"
	"github.com/selector-project/selector-manager/internal/service"
	"github.com/selector-project/selector-manager/internal/store"
)

type Server interface {
	Run(ctx context.Context) error
}

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}

	// Initialize database
	db, err := store.InitDB(cfg)
	if err != nil {
		log.Printf("Failed to initialize database: %v", err)
		return 1
	}

	// Create store
	dataStore := store.NewStore(db)
	defer func() {
		if err := dataStore.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	limits := cfg.Selector.Limits()

	// Create services
	selectorService := service.NewSelectorService(dataStore, limits)
	evaluationService := service.NewEvaluationService(dataStore.Selector(), limits)

	// Create API handler
	handler := v1alpha1.NewHandler(selectorService, evaluationService)

	// Create API TCP listener
	listener, err := net.Listen("tcp", cfg.Service.BindAddress)
	if err != nil {
		log.Printf("Failed to create API listener: %v", err)
		return 1
	}
	defer listener.Close()

	// Create API server
	srv := apiserver.New(cfg, listener, handler)

	if err := runServers([]Server{srv}); err != nil {
		return 1
	}

	return 0
}

func runServers(servers []Server) error {
	// Setup signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var wg sync.WaitGroup
	errChan := make(chan error, len(servers))
	for _, server := range servers {
		wg.Add(1)
		go func(server Server) {
			defer wg.Done()
			if err := server.Run(ctx); err != nil {
				errChan <- err
			}
		}(server)
	}

	go func() {
		wg.Wait()
		close(errChan)
	}()

	var firstErr error
	for err := range errChan {
		if err != nil {
			if firstErr == nil {
				firstErr = err
				cancel()
			}
			log.Printf("Server error: %v", err)
		}
	}

	return firstErr
}
