// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dayvibe/dayvibe-api/models"
	"github.com/dayvibe/dayvibe-api/testutil"
)

// TestFullJournalWorkflow tests the complete end-to-end workflow:
// 1. Upload a voice recording
// 2. Verify the persisted entry
// 3. Generate an analysis for the entry
// 4. Generate a second, degraded analysis
// 5. Verify user stats reflect everything written
func TestFullJournalWorkflow(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	st := &testutil.FakeStorage{}
	tr := &testutil.FakeTranscriber{Text: "grateful for small things today"}
	voiceHandler := NewVoiceHandler(conn, st, tr)
	statsHandler := NewStatsHandler(conn)

	// Step 1: Upload a recording
	req := testutil.MakeUploadRequest(t, "/api/voice/upload", "audio/wav", []byte("RIFF-bytes"), "user-42")
	w := httptest.NewRecorder()
	voiceHandler.Upload(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 1 - Upload failed: %d - %s", w.Code, w.Body.String())
	}
	var uploadResp models.UploadResponse
	testutil.AssertJSON(t, w, &uploadResp)
	if uploadResp.EntryID == "" || uploadResp.AudioURL == "" {
		t.Fatal("Step 1 - Missing entry_id or audio_url")
	}
	t.Logf("Step 1 - Created entry: %s", uploadResp.EntryID)

	// Step 2: Entry row is there with the transcript
	var transcription string
	if err := conn.QueryRow(`
		SELECT transcription FROM journal_entries WHERE id = $1
	`, uploadResp.EntryID).Scan(&transcription); err != nil {
		t.Fatalf("Step 2 - Entry not persisted: %v", err)
	}
	if transcription != "grateful for small things today" {
		t.Fatalf("Step 2 - Wrong transcription: %q", transcription)
	}

	// Step 3: Generate a real analysis
	analysisHandler := NewAnalysisHandler(conn, &testutil.FakeAnalyzer{Result: models.Analysis{
		Themes: []string{"gratitude"}, Sentiment: 8, Insights: []string{"positive outlook"}, Goals: []string{"keep a gratitude list"},
	}})
	req = httptest.NewRequest("POST", "/api/analysis/generate?entry_id="+uploadResp.EntryID, nil)
	w = httptest.NewRecorder()
	analysisHandler.Generate(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - Generate failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 4: A second run that degrades still persists, tagged
	degradedHandler := NewAnalysisHandler(conn, &testutil.FakeAnalyzer{Result: models.Analysis{
		Themes: []string{"reflection", "personal growth"}, Sentiment: 5.0,
		Insights: []string{"User is engaging in self-reflection"},
		Goals:    []string{"Continue journaling regularly"}, Degraded: true,
	}})
	req = httptest.NewRequest("POST", "/api/analysis/generate?entry_id="+uploadResp.EntryID, nil)
	w = httptest.NewRecorder()
	degradedHandler.Generate(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 4 - Degraded generate failed: %d - %s", w.Code, w.Body.String())
	}
	var degradedResp models.GenerateAnalysisResponse
	testutil.AssertJSON(t, w, &degradedResp)
	if !degradedResp.Degraded {
		t.Fatal("Step 4 - Degraded analysis not tagged")
	}

	// Step 5: Stats see one entry and both analyses
	req = httptest.NewRequest("GET", "/api/user/user-42/stats", nil)
	req.SetPathValue("user_id", "user-42")
	w = httptest.NewRecorder()
	statsHandler.GetStats(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 5 - Stats failed: %d - %s", w.Code, w.Body.String())
	}
	var stats models.StatsResponse
	testutil.AssertJSON(t, w, &stats)
	if stats.TotalEntries != 1 || stats.CurrentStreak != 1 {
		t.Errorf("Step 5 - Unexpected counts: %+v", stats)
	}
	// (8+5)/2 = 6.5
	if stats.AverageMood != 6.5 {
		t.Errorf("Step 5 - Expected average_mood 6.5, got %v", stats.AverageMood)
	}
}
