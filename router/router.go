// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/dayvibe/dayvibe-api/cliparse"
	"github.com/dayvibe/dayvibe-api/handlers"
	"github.com/dayvibe/dayvibe-api/metrics"
	"github.com/dayvibe/dayvibe-api/middleware"
	"github.com/dayvibe/dayvibe-api/models"
	"github.com/dayvibe/dayvibe-api/signup"
)

const version = "1.0.0"

func NewRouter(db *sql.DB, cfg cliparse.Config, st handlers.Storage, tr handlers.Transcriber, an handlers.Analyzer) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	voiceHandler := handlers.NewVoiceHandler(db, st, tr)
	analysisHandler := handlers.NewAnalysisHandler(db, an)
	statsHandler := handlers.NewStatsHandler(db)
	signupHandler := handlers.NewSignupHandler(db, signup.NewGate(signup.NewRateLimiter(signup.Cooldown, nil)))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", metrics.Handler())

	// Journal ingestion and analysis
	mux.HandleFunc("POST /api/voice/upload", middleware.WithLogging(middleware.WithMetrics(voiceHandler.Upload)))
	mux.HandleFunc("POST /api/analysis/generate", middleware.WithLogging(middleware.WithMetrics(analysisHandler.Generate)))

	// Stats (read-only)
	mux.HandleFunc("GET /api/user/{user_id}/stats", middleware.WithLogging(middleware.WithMetrics(statsHandler.GetStats)))

	// Landing page signups
	mux.HandleFunc("POST /api/signup", middleware.WithLogging(middleware.WithMetrics(signupHandler.Signup)))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
			Message: "DayVibe API is running",
			Version: version,
		})
	})

	return mux
}
