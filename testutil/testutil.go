// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dayvibe/dayvibe-api/cliparse"
	"github.com/dayvibe/dayvibe-api/db"
	"github.com/dayvibe/dayvibe-api/models"
)

// SetupTestDB creates a fresh sqlite database in a temp dir with the full
// schema. The same queries run against Postgres in production; the pure-Go
// driver keeps the suite free of external services.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", filepath.Join(t.TempDir(), "dayvibe_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8000,
		DatabaseURL:  "file:dayvibe_test.db",
		DatabaseType: "sqlite",
		SupabaseURL:  "https://test.supabase.co",
		SupabaseKey:  "test-anon-key",
		OpenAIKey:    "test-openai-key",
		AudioBucket:  "audio-recordings",
	}
}

// CreateTestEntry inserts a journal entry and returns its ID
func CreateTestEntry(t *testing.T, conn *sql.DB, userID, transcription string, createdAt time.Time) string {
	t.Helper()

	entryID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO journal_entries (id, user_id, audio_url, transcription, created_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, entryID, userID, "https://test.supabase.co/storage/v1/object/public/audio-recordings/x.wav",
		transcription, createdAt, models.StatusProcessed)
	if err != nil {
		t.Fatalf("Failed to create test entry: %v", err)
	}

	return entryID
}

// AddTestAnalysis inserts an analysis row for an entry and returns its ID
func AddTestAnalysis(t *testing.T, conn *sql.DB, entryID string, sentiment float64, source string) string {
	t.Helper()

	analysisID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO ai_analysis (id, entry_id, themes, sentiment, insights, suggested_goals, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, analysisID, entryID, `["test"]`, sentiment, `["test"]`, `["test"]`, source, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test analysis: %v", err)
	}

	return analysisID
}

// Fake provider clients (structural matches for the handlers interfaces)

// FakeStorage records uploads and returns a canned URL or error.
type FakeStorage struct {
	URL   string
	Err   error
	Paths []string
	Blobs [][]byte
}

func (f *FakeStorage) Upload(_ context.Context, blob []byte, path string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	f.Paths = append(f.Paths, path)
	f.Blobs = append(f.Blobs, blob)
	if f.URL != "" {
		return f.URL, nil
	}
	return "https://test.supabase.co/storage/v1/object/public/audio-recordings/" + path, nil
}

// FakeTranscriber returns a canned transcript or error.
type FakeTranscriber struct {
	Text  string
	Err   error
	Calls int
}

func (f *FakeTranscriber) Transcribe(_ context.Context, _ []byte) (string, error) {
	f.Calls++
	if f.Err != nil {
		return "", f.Err
	}
	return f.Text, nil
}

// FakeAnalyzer returns a canned analysis (never errors, like the real one).
type FakeAnalyzer struct {
	Result models.Analysis
}

func (f *FakeAnalyzer) Analyze(_ context.Context, _ string) models.Analysis {
	return f.Result
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeUploadRequest builds a multipart upload request with the given part
// content type, so tests can exercise the audio/* gate.
func MakeUploadRequest(t *testing.T, target, contentType string, data []byte, userID string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="recording.wav"`)
	h.Set("Content-Type", contentType)
	part, err := writer.CreatePart(h)
	if err != nil {
		t.Fatalf("Failed to create form part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("Failed to write form part: %v", err)
	}

	if userID != "" {
		if err := writer.WriteField("user_id", userID); err != nil {
			t.Fatalf("Failed to write user_id field: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", target, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
