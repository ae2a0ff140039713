package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/tubetrail/tubetrail/api/handlers"
	"github.com/tubetrail/tubetrail/internal/config"
	"github.com/tubetrail/tubetrail/pkg/tfl"
	"github.com/tubetrail/tubetrail/pkg/tube"
)

func main() {
	var (
		configPath = flag.String("config", "config.yml", "Configuration file")
		envFile    = flag.String("env", ".env", "Environment file with TfL credentials")
		port       = flag.Int("port", 0, "Server port (overrides config)")
	)
	flag.Parse()

	// Credentials usually live in .env; absence is fine, TfL allows
	// anonymous access at a lower rate limit
	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to load %s: %v", *envFile, err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	source := tfl.NewClient(tfl.Config{
		BaseURL:     cfg.API.BaseURL,
		AppID:       cfg.API.AppID,
		AppKey:      cfg.API.AppKey,
		Mode:        cfg.API.Mode,
		Timeout:     time.Duration(cfg.API.TimeoutMS) * time.Millisecond,
		Concurrency: cfg.API.Concurrency,
	})

	client, err := tube.NewLocal(tube.Config{
		Source:    source,
		CachePath: cfg.Cache.Path,
	})
	if err != nil {
		log.Fatalf("Failed to create tube client: %v", err)
	}

	// Create HTTP server
	r := mux.NewRouter()
	h := handlers.NewHandler(client)
	h.RegisterRoutes(r)

	// Add middleware
	r.Use(loggingMiddleware)
	r.Use(corsMiddleware)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // first query may fetch the whole network
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Printf("Server starting on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.RequestURI, time.Since(start))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
