// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dayvibe/dayvibe-api/metrics"
	"github.com/dayvibe/dayvibe-api/middleware"
	"github.com/dayvibe/dayvibe-api/models"
	"github.com/dayvibe/dayvibe-api/signup"
)

type SignupHandler struct {
	db   *sql.DB
	gate *signup.Gate
}

func NewSignupHandler(db *sql.DB, gate *signup.Gate) *SignupHandler {
	return &SignupHandler{db: db, gate: gate}
}

// Signup handles POST /api/signup
//
// The gate validates and rate-limits by client IP; the insert itself is
// atomic (primary key + ON CONFLICT DO NOTHING), so two concurrent
// attempts with the same email cannot both land.
func (h *SignupHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	key := middleware.GetClientIP(r)

	res, err := h.gate.Check(key, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, signup.ErrRateLimited):
			metrics.SignupsTotal.WithLabelValues("rate_limited").Inc()
			middleware.ErrorResponse(w, http.StatusTooManyRequests, "⏰ Please wait 30 seconds between signup attempts")
		case errors.Is(err, signup.ErrEmptyEmail):
			metrics.SignupsTotal.WithLabelValues("invalid").Inc()
			middleware.ErrorResponse(w, http.StatusBadRequest, "📧 Please enter an email address")
		case errors.Is(err, signup.ErrInvalidEmail):
			metrics.SignupsTotal.WithLabelValues("invalid").Inc()
			middleware.ErrorResponse(w, http.StatusBadRequest, "📧 Please enter a valid email address")
		default:
			middleware.ErrorResponse(w, http.StatusInternalServerError, "⚠️ Something went wrong. Please try again in a moment.")
		}
		return
	}

	result, err := h.db.Exec(`
		INSERT INTO signups (email, signup_date, source)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO NOTHING
	`, res.Email, time.Now().UTC(), models.SignupSourceLanding)

	if err != nil {
		// Internal details stay in the logs, not the response
		slog.Error("failed to insert signup", "error", err)
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		middleware.ErrorResponse(w, http.StatusInternalServerError, "⚠️ Something went wrong. Please try again in a moment.")
		return
	}

	rows, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to read insert result", "error", err)
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		middleware.ErrorResponse(w, http.StatusInternalServerError, "⚠️ Something went wrong. Please try again in a moment.")
		return
	}
	if rows == 0 {
		metrics.SignupsTotal.WithLabelValues("duplicate").Inc()
		middleware.ErrorResponse(w, http.StatusConflict, "💾 This email is already registered!")
		return
	}

	metrics.SignupsTotal.WithLabelValues("accepted").Inc()
	slog.Info("signup accepted", "email", res.Email)

	middleware.JSONResponse(w, http.StatusCreated, models.SignupResponse{
		Success: true,
		Message: "🎉 Success! You're on the list for early access!",
		Warning: res.Warning,
	})
}
