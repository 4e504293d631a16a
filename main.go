package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dayvibe/dayvibe-api/cliparse"
	"github.com/dayvibe/dayvibe-api/db"
	"github.com/dayvibe/dayvibe-api/middleware"
	"github.com/dayvibe/dayvibe-api/openai"
	"github.com/dayvibe/dayvibe-api/router"
	"github.com/dayvibe/dayvibe-api/storage"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database (Supabase Postgres, or sqlite locally)
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Provider clients
	storageClient := storage.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, storage.WithBucket(cfg.AudioBucket))
	openaiClient := openai.NewClient(cfg.OpenAIKey)

	// Create router
	mux := router.NewRouter(dbConn, cfg, storageClient, openaiClient, openaiClient)

	// Create server (CORS open for the Streamlit frontend)
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
