// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"math"
	"net/http"

	"github.com/dayvibe/dayvibe-api/middleware"
	"github.com/dayvibe/dayvibe-api/models"
)

type StatsHandler struct {
	db *sql.DB
}

func NewStatsHandler(db *sql.DB) *StatsHandler {
	return &StatsHandler{db: db}
}

// GetStats handles GET /api/user/{user_id}/stats
//
// current_streak is a bounded recent-entry count (the 30 most recent
// entries), not a consecutive-day computation. average_mood is scoped to
// the user; community_mood keeps the site-wide number the product
// originally reported. Read-only, no caching.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	var totalEntries int
	err := h.db.QueryRow(`
		SELECT COUNT(*) FROM journal_entries WHERE user_id = $1
	`, userID).Scan(&totalEntries)
	if err != nil {
		slog.Error("failed to count entries", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	var streak int
	err = h.db.QueryRow(`
		SELECT COUNT(*) FROM (
			SELECT id FROM journal_entries
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT 30
		) AS recent
	`, userID).Scan(&streak)
	if err != nil {
		slog.Error("failed to compute streak", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	var userMood sql.NullFloat64
	err = h.db.QueryRow(`
		SELECT AVG(a.sentiment)
		FROM ai_analysis a
		JOIN journal_entries e ON a.entry_id = e.id
		WHERE e.user_id = $1
	`, userID).Scan(&userMood)
	if err != nil {
		slog.Error("failed to average user sentiment", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	var communityMood sql.NullFloat64
	err = h.db.QueryRow(`SELECT AVG(sentiment) FROM ai_analysis`).Scan(&communityMood)
	if err != nil {
		slog.Error("failed to average community sentiment", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatsResponse{
		TotalEntries:  totalEntries,
		CurrentStreak: streak,
		AverageMood:   round1(userMood),
		CommunityMood: round1(communityMood),
	})
}

// round1 rounds to one decimal; a missing average reads as 0.0
func round1(v sql.NullFloat64) float64 {
	if !v.Valid {
		return 0.0
	}
	return math.Round(v.Float64*10) / 10
}
