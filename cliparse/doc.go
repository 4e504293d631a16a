// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded before env vars are read.

# Config Fields

  - Port: Server listen port (default: 8000)
  - DatabaseURL: database connection string (required)
  - DatabaseType: "postgres" (production) or "sqlite" (local dev)
  - SupabaseURL, SupabaseKey: storage API endpoint and access key (required)
  - OpenAIKey: speech-to-text / chat-completion API key
  - AudioBucket: storage bucket for recordings (default: audio-recordings)

# CLI Flags

	-p       Server port
	-d       Database URL
	-t       Database type (sqlite or postgres)
	-bucket  Audio storage bucket

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	AUDIO_BUCKET  → -bucket

Secrets are env-only. Two naming schemes are accepted for the storage
credentials, first non-empty wins:

	NEXT_PUBLIC_SUPABASE_URL      then SUPABASE_URL
	NEXT_PUBLIC_SUPABASE_ANON_KEY then SUPABASE_KEY

plus OPENAI_API_KEY for the transcription and analysis providers.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - the Supabase URL/key pair must be provided

OPENAI_API_KEY is deliberately not checked at startup; provider calls fail
(or degrade, for analysis) at request time instead.
*/
package cliparse
