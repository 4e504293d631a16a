// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the DayVibe API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, storageClient, openaiClient, openaiClient)

The storage, transcription, and analysis dependencies are the handlers
package interfaces, so tests wire fakes through the same constructor.

# Endpoints

Health and observability:

	GET /         - service banner {message, version}
	GET /health   - plain OK
	GET /metrics  - prometheus collectors

Journal pipeline:

	POST /api/voice/upload                - upload + transcribe a recording
	POST /api/analysis/generate?entry_id= - derive analysis for an entry

Stats:

	GET /api/user/{user_id}/stats - totals, streak, mood averages

Signups:

	POST /api/signup - landing page email capture

# Handler Initialization

The router creates handler instances with dependency injection:

	voiceHandler := handlers.NewVoiceHandler(db, st, tr)
	analysisHandler := handlers.NewAnalysisHandler(db, an)
	statsHandler := handlers.NewStatsHandler(db)
	signupHandler := handlers.NewSignupHandler(db, gate)

API routes are wrapped in WithLogging and WithMetrics.
*/
package router
