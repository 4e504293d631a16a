// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the DayVibe API server.

DayVibe is a voice-journaling product: users record a voice note, the
backend stores the audio, transcribes it, and on request derives themes,
sentiment, insights, and goals from the transcript.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... SUPABASE_URL=... SUPABASE_KEY=... go run main.go

Or with flags:

	go run main.go -p 8000 -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - SUPABASE_URL / SUPABASE_KEY: storage API endpoint and key
    (NEXT_PUBLIC_-prefixed variants are accepted and win)

Optional settings:

  - PORT (-p): server port (default: 8000)
  - DATABASE_TYPE (-t): postgres (default) or sqlite
  - AUDIO_BUCKET (-bucket): storage bucket (default: audio-recordings)
  - OPENAI_API_KEY: transcription/analysis provider key

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (voice, analysis, stats, signup)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, JSON helpers
  - models: request/response and domain types
  - storage: Supabase Storage gateway
  - openai: speech-to-text and chat-completion clients
  - signup: email gate (sanitize, validate, rate limit)
  - db: connection + schema creation
  - metrics: prometheus collectors
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
