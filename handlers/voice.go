// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/dayvibe/dayvibe-api/metrics"
	"github.com/dayvibe/dayvibe-api/middleware"
	"github.com/dayvibe/dayvibe-api/models"
	"github.com/dayvibe/dayvibe-api/storage"
)

// Storage persists an audio blob and returns its durable public URL.
type Storage interface {
	Upload(ctx context.Context, blob []byte, path string) (string, error)
}

// Transcriber turns an audio blob into text.
type Transcriber interface {
	Transcribe(ctx context.Context, blob []byte) (string, error)
}

type VoiceHandler struct {
	db            *sql.DB
	storage       Storage
	transcriber   Transcriber
	maxAudioBytes int64
}

func NewVoiceHandler(db *sql.DB, st Storage, tr Transcriber) *VoiceHandler {
	return &VoiceHandler{
		db:            db,
		storage:       st,
		transcriber:   tr,
		maxAudioBytes: storage.DefaultMaxAudioBytes,
	}
}

// Upload handles POST /api/voice/upload
//
// Pipeline: validate content type → read blob → store → transcribe →
// insert journal entry. Steps run strictly in sequence; a failure after
// the storage upload leaves the blob behind (no compensation), matching
// the documented behavior of the service.
func (h *VoiceHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	// The declared content type gates the pipeline, not the bytes
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "audio/") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid file type")
		return
	}

	userID := r.FormValue("user_id")
	if userID == "" {
		userID = "anonymous"
	}

	blob, err := io.ReadAll(file)
	if err != nil {
		slog.Error("failed to read upload", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := storage.ValidateAudio(blob, h.maxAudioBytes); err != nil {
		if len(blob) == 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "empty audio file")
			return
		}
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge,
			"audio file exceeds the "+humanize.Bytes(uint64(h.maxAudioBytes))+" limit")
		return
	}

	now := time.Now().UTC()
	path := "recordings/" + userID + "/" + now.Format(time.RFC3339) + ".wav"

	audioURL, err := h.storage.Upload(r.Context(), blob, path)
	if err != nil {
		slog.Error("storage upload failed", "error", err, "path", path)
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	transcription, err := h.transcriber.Transcribe(r.Context(), blob)
	if err != nil {
		slog.Error("transcription failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	entryID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO journal_entries (id, user_id, audio_url, transcription, created_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, entryID, userID, audioURL, transcription, now, models.StatusProcessed)

	if err != nil {
		slog.Error("failed to insert journal entry", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.UploadsTotal.Inc()
	slog.Info("journal entry created", "entry_id", entryID, "user_id", userID, "bytes", len(blob))

	middleware.JSONResponse(w, http.StatusOK, models.UploadResponse{
		Success:       true,
		EntryID:       entryID,
		Transcription: transcription,
		AudioURL:      audioURL,
	})
}
