// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dayvibe/dayvibe-api/models"
	"github.com/dayvibe/dayvibe-api/testutil"
)

func TestGenerate(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	entryID := testutil.CreateTestEntry(t, conn, "user-1", "rough morning but good evening", time.Now().UTC())

	an := &testutil.FakeAnalyzer{Result: models.Analysis{
		Themes:    []string{"resilience", "routine"},
		Sentiment: 6,
		Insights:  []string{"day improved over time"},
		Goals:     []string{"plan mornings better"},
	}}
	handler := NewAnalysisHandler(conn, an)

	req := httptest.NewRequest("POST", "/api/analysis/generate?entry_id="+entryID, nil)
	w := httptest.NewRecorder()
	handler.Generate(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.GenerateAnalysisResponse
	testutil.AssertJSON(t, w, &resp)

	if !resp.Success || resp.AnalysisID == "" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Degraded {
		t.Error("real analysis should not be degraded")
	}
	if resp.Analysis.Sentiment != 6 {
		t.Errorf("expected sentiment 6, got %v", resp.Analysis.Sentiment)
	}

	// Row persisted with the model source and JSON-encoded lists
	var themesJSON, source string
	var sentiment float64
	err := conn.QueryRow(`
		SELECT themes, sentiment, source FROM ai_analysis WHERE id = $1
	`, resp.AnalysisID).Scan(&themesJSON, &sentiment, &source)
	if err != nil {
		t.Fatalf("Failed to query analysis: %v", err)
	}
	if source != models.SourceModel {
		t.Errorf("expected source model, got %q", source)
	}
	var themes []string
	if err := json.Unmarshal([]byte(themesJSON), &themes); err != nil || len(themes) != 2 {
		t.Errorf("themes not stored as JSON list: %q", themesJSON)
	}
}

func TestGenerate_DegradedTagged(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	entryID := testutil.CreateTestEntry(t, conn, "user-1", "some words", time.Now().UTC())

	an := &testutil.FakeAnalyzer{Result: models.Analysis{
		Themes:    []string{"reflection", "personal growth"},
		Sentiment: 5.0,
		Insights:  []string{"User is engaging in self-reflection"},
		Goals:     []string{"Continue journaling regularly"},
		Degraded:  true,
	}}
	handler := NewAnalysisHandler(conn, an)

	req := httptest.NewRequest("POST", "/api/analysis/generate?entry_id="+entryID, nil)
	w := httptest.NewRecorder()
	handler.Generate(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.GenerateAnalysisResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Degraded {
		t.Error("fallback analysis must be tagged degraded in the response")
	}

	var source string
	conn.QueryRow(`SELECT source FROM ai_analysis WHERE id = $1`, resp.AnalysisID).Scan(&source)
	if source != models.SourceFallback {
		t.Errorf("expected source fallback, got %q", source)
	}
}

func TestGenerate_EntryNotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewAnalysisHandler(conn, &testutil.FakeAnalyzer{})

	req := httptest.NewRequest("POST", "/api/analysis/generate?entry_id=missing", nil)
	w := httptest.NewRecorder()
	handler.Generate(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestGenerate_MissingEntryID(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewAnalysisHandler(conn, &testutil.FakeAnalyzer{})

	req := httptest.NewRequest("POST", "/api/analysis/generate", nil)
	w := httptest.NewRecorder()
	handler.Generate(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestGenerate_MultipleAnalysesPerEntry(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	entryID := testutil.CreateTestEntry(t, conn, "user-1", "some words", time.Now().UTC())
	an := &testutil.FakeAnalyzer{Result: models.Analysis{
		Themes: []string{"a"}, Sentiment: 5, Insights: []string{"b"}, Goals: []string{"c"},
	}}
	handler := NewAnalysisHandler(conn, an)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/api/analysis/generate?entry_id="+entryID, nil)
		w := httptest.NewRecorder()
		handler.Generate(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	var count int
	conn.QueryRow(`SELECT COUNT(*) FROM ai_analysis WHERE entry_id = $1`, entryID).Scan(&count)
	if count != 2 {
		t.Errorf("expected 2 analyses, got %d", count)
	}
}
