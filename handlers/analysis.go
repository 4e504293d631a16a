// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dayvibe/dayvibe-api/metrics"
	"github.com/dayvibe/dayvibe-api/middleware"
	"github.com/dayvibe/dayvibe-api/models"
)

// Analyzer derives themes, sentiment, insights, and goals from a
// transcript. It never fails; a provider fault yields the tagged fallback.
type Analyzer interface {
	Analyze(ctx context.Context, transcript string) models.Analysis
}

type AnalysisHandler struct {
	db       *sql.DB
	analyzer Analyzer
}

func NewAnalysisHandler(db *sql.DB, an Analyzer) *AnalysisHandler {
	return &AnalysisHandler{db: db, analyzer: an}
}

// Generate handles POST /api/analysis/generate?entry_id=...
//
// An entry may accumulate multiple analyses; there is no uniqueness
// constraint and no deduplication.
func (h *AnalysisHandler) Generate(w http.ResponseWriter, r *http.Request) {
	entryID := r.URL.Query().Get("entry_id")
	if entryID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "entry_id is required")
		return
	}

	var transcription string
	err := h.db.QueryRow(`
		SELECT transcription FROM journal_entries WHERE id = $1
	`, entryID).Scan(&transcription)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Entry not found")
		return
	}
	if err != nil {
		slog.Error("failed to query journal entry", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	analysis := h.analyzer.Analyze(r.Context(), transcription)

	source := models.SourceModel
	if analysis.Degraded {
		source = models.SourceFallback
	}

	themes, err := json.Marshal(analysis.Themes)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	insights, _ := json.Marshal(analysis.Insights)
	goals, _ := json.Marshal(analysis.Goals)

	analysisID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO ai_analysis (id, entry_id, themes, sentiment, insights, suggested_goals, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, analysisID, entryID, string(themes), analysis.Sentiment, string(insights), string(goals), source, time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert analysis", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.AnalysesTotal.WithLabelValues(source).Inc()
	slog.Info("analysis generated", "entry_id", entryID, "analysis_id", analysisID, "source", source)

	middleware.JSONResponse(w, http.StatusOK, models.GenerateAnalysisResponse{
		Success:    true,
		Analysis:   analysis,
		AnalysisID: analysisID,
		Degraded:   analysis.Degraded,
	})
}
