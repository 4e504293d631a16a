// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the DayVibe API.

# Handler Types

Each handler is a struct with its dependencies injected via constructor:

  - VoiceHandler: upload + transcription ingestion pipeline
  - AnalysisHandler: on-demand AI analysis for an entry
  - StatsHandler: read-only per-user statistics
  - SignupHandler: landing page email capture

Handlers receive *sql.DB plus the provider clients they need, as
interfaces so tests can inject fakes:

	voiceHandler := handlers.NewVoiceHandler(db, storageClient, openaiClient)
	analysisHandler := handlers.NewAnalysisHandler(db, openaiClient)

# Ingestion Pipeline

	POST /api/voice/upload → Upload

validate content type → read blob → size cap → store blob → transcribe →
insert journal_entries row with status "processed". Strictly sequential,
no retry, no compensation: a failed insert leaves the uploaded blob in
storage.

# Analysis

	POST /api/analysis/generate?entry_id=... → Generate

Fetches the entry (404 if absent), runs the analyzer, inserts an
ai_analysis row. The analyzer never fails: provider faults produce the
static fallback payload, tagged degraded in both the response and the
row's source column.

# Stats

	GET /api/user/{user_id}/stats → GetStats

total entries, streak (count of the 30 most recent entries), average_mood
(user-scoped) and community_mood (site-wide).

# Signup

	POST /api/signup → Signup

Gate sequence (rate limit by client IP, sanitize, validate) then an atomic
insert-if-absent. Responses reuse the landing page's emoji-prefixed
messages.
*/
package handlers
