package service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogicum/app/config"
	"blogicum/app/routes"
	"blogicum/app/services"
)

const shutdownTimeout = 5 * time.Second

// RunAppServer starts the blog and blocks until SIGINT or SIGTERM.
func RunAppServer(cfg *config.Config) int {
	store, err := openStore(cfg)
	if err != nil {
		log.Printf("Failed to open Badger DB: %v", err)
		return 1
	}
	defer store.Close()

	if cfg.JWTSecret == "" {
		log.Println("JWT_SECRET is not set; API tokens are disabled")
	}

	app, err := routes.NewApp(services.FromStore(store), cfg, time.Now)
	if err != nil {
		log.Printf("Failed to set up application: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           routes.SetupRoutes(app),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("Starting blog service on %s", cfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Printf("Server error: %v", err)
		return 1
	}
	log.Println("Server stopped")
	return 0
}

// runServer serves until ctx is done, then shuts srv down gracefully.
func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
