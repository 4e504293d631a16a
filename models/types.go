package models

import "time"

// Journal entry status constants
const (
	StatusProcessed = "processed"
)

// Analysis source constants
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

// Signup source constants
const (
	SignupSourceLanding = "landing_page"
)

// Request types

type SignupRequest struct {
	Email string `json:"email"`
}

// Response types

type HealthResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

type UploadResponse struct {
	Success       bool   `json:"success"`
	EntryID       string `json:"entry_id"`
	Transcription string `json:"transcription"`
	AudioURL      string `json:"audio_url"`
}

type GenerateAnalysisResponse struct {
	Success    bool     `json:"success"`
	Analysis   Analysis `json:"analysis"`
	AnalysisID string   `json:"analysis_id"`
	Degraded   bool     `json:"degraded"`
}

type StatsResponse struct {
	TotalEntries  int     `json:"total_entries"`
	CurrentStreak int     `json:"current_streak"`
	AverageMood   float64 `json:"average_mood"`
	CommunityMood float64 `json:"community_mood"`
}

type SignupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}

// Domain types

type JournalEntry struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	AudioURL      string    `json:"audio_url"`
	Transcription string    `json:"transcription"`
	CreatedAt     time.Time `json:"created_at"`
	Status        string    `json:"status"`
}

// Analysis is the derived view of one journal entry. Degraded marks the
// static fallback payload used when the model call or its decode fails.
type Analysis struct {
	Themes    []string `json:"themes"`
	Sentiment float64  `json:"sentiment"`
	Insights  []string `json:"insights"`
	Goals     []string `json:"goals"`
	Degraded  bool     `json:"-"`
}

type AnalysisResult struct {
	ID        string    `json:"id"`
	EntryID   string    `json:"entry_id"`
	Analysis  Analysis  `json:"analysis"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

type Signup struct {
	Email      string    `json:"email"`
	SignupDate time.Time `json:"signup_date"`
	Source     string    `json:"source"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
