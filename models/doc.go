// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the request, response, and domain types for the
DayVibe API.

# Domain Types

  - JournalEntry: one voice-recording record (audio URL + transcription)
  - Analysis: themes, sentiment, insights, and goals derived from an entry
  - AnalysisResult: a persisted Analysis row referencing its entry
  - Signup: an email captured from the landing page

# Conventions

Entries and analyses are append-only: no update or delete path exists.
Sentiment is a 1-10 score. An Analysis with Degraded set carries the static
fallback payload produced when the model call fails; the flag is surfaced as
"degraded" in the generate-analysis response and as the "fallback" source on
the stored row, never hidden.
*/
package models
