// Package openai provides the speech-to-text and chat-completion clients
// used by the ingestion and analysis pipeline.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dayvibe/dayvibe-api/models"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 2 * time.Minute

const (
	defaultBaseURL    = "https://api.openai.com"
	transcribeModel   = "whisper-1"
	chatModel         = "gpt-4"
	chatTemperature   = 0.7
	analysisSystemMsg = "You are a helpful AI assistant that analyzes journal entries to help people discover insights and set meaningful goals."
)

const analysisPromptTemplate = `Analyze this journal entry and provide insights:

"%s"

Please provide a JSON response with:
1. themes: List of 3-5 key themes or topics mentioned
2. sentiment: Sentiment score from 1-10 (1=very negative, 10=very positive)
3. insights: 2-3 key insights or patterns
4. goals: 3 recommended goals based on the entry

Format as valid JSON.`

// TranscriptionError wraps a failed speech-to-text round-trip.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// Client talks to the OpenAI audio and chat APIs.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used by tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// NewClient creates a client for the OpenAI API.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Transcribe sends an audio blob to the speech-to-text API and returns the
// resulting text. The blob is staged in a scratch file that is removed once
// the request has been built; a crash in between leaves an orphan in the
// temp directory. No retry.
func (c *Client) Transcribe(ctx context.Context, blob []byte) (string, error) {
	scratch, err := os.CreateTemp("", "dayvibe-audio-*.wav")
	if err != nil {
		return "", &TranscriptionError{Err: fmt.Errorf("create scratch file: %w", err)}
	}
	scratchPath := scratch.Name()

	if _, err := scratch.Write(blob); err != nil {
		scratch.Close()
		os.Remove(scratchPath)
		return "", &TranscriptionError{Err: fmt.Errorf("write scratch file: %w", err)}
	}
	if err := scratch.Close(); err != nil {
		os.Remove(scratchPath)
		return "", &TranscriptionError{Err: fmt.Errorf("close scratch file: %w", err)}
	}

	file, err := os.Open(scratchPath)
	if err != nil {
		os.Remove(scratchPath)
		return "", &TranscriptionError{Err: fmt.Errorf("open scratch file: %w", err)}
	}

	// Create multipart form
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "recording.wav")
	if err != nil {
		file.Close()
		os.Remove(scratchPath)
		return "", &TranscriptionError{Err: fmt.Errorf("create form file: %w", err)}
	}
	if _, err := io.Copy(part, file); err != nil {
		file.Close()
		os.Remove(scratchPath)
		return "", &TranscriptionError{Err: fmt.Errorf("copy audio data: %w", err)}
	}
	file.Close()
	os.Remove(scratchPath)

	if err := writer.WriteField("model", transcribeModel); err != nil {
		return "", &TranscriptionError{Err: fmt.Errorf("write model field: %w", err)}
	}
	if err := writer.Close(); err != nil {
		return "", &TranscriptionError{Err: fmt.Errorf("close multipart writer: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/audio/transcriptions", &buf)
	if err != nil {
		return "", &TranscriptionError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TranscriptionError{Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &TranscriptionError{Err: fmt.Errorf("API error: status %d: %s", resp.StatusCode, string(body))}
	}

	var out transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &TranscriptionError{Err: fmt.Errorf("parse JSON response: %w", err)}
	}

	return out.Text, nil
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Chat completion wire types

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []choice `json:"choices"`
}

type choice struct {
	Message message `json:"message"`
}

// Analyze sends the transcript to the chat-completion API and decodes the
// structured result. It never returns an error: any call, decode, or
// validation failure yields the static fallback payload with Degraded set,
// so callers and tests can tell real analysis from degraded analysis.
func (c *Client) Analyze(ctx context.Context, transcript string) models.Analysis {
	analysis, err := c.analyze(ctx, transcript)
	if err != nil {
		slog.Warn("analysis degraded to fallback", "error", err)
		return FallbackAnalysis()
	}
	return analysis
}

func (c *Client) analyze(ctx context.Context, transcript string) (models.Analysis, error) {
	reqBody := chatRequest{
		Model: chatModel,
		Messages: []message{
			{Role: "system", Content: analysisSystemMsg},
			{Role: "user", Content: fmt.Sprintf(analysisPromptTemplate, transcript)},
		},
		Temperature: chatTemperature,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return models.Analysis{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return models.Analysis{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Analysis{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return models.Analysis{}, fmt.Errorf("API error: status %d: %s", resp.StatusCode, string(body))
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return models.Analysis{}, fmt.Errorf("parse JSON response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return models.Analysis{}, fmt.Errorf("empty choices in response")
	}

	return decodeAnalysis(chat.Choices[0].Message.Content)
}

// decodeAnalysis validates the model's JSON payload. The model is prompted
// for valid JSON but not trusted: missing keys reject, and a sentiment
// outside [1,10] is clamped rather than written through.
func decodeAnalysis(content string) (models.Analysis, error) {
	var raw struct {
		Themes    []string `json:"themes"`
		Sentiment *float64 `json:"sentiment"`
		Insights  []string `json:"insights"`
		Goals     []string `json:"goals"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return models.Analysis{}, fmt.Errorf("parse analysis JSON: %w", err)
	}

	if len(raw.Themes) == 0 || len(raw.Insights) == 0 || len(raw.Goals) == 0 || raw.Sentiment == nil {
		return models.Analysis{}, fmt.Errorf("analysis JSON missing required keys")
	}

	sentiment := *raw.Sentiment
	if sentiment < 1 {
		sentiment = 1
	}
	if sentiment > 10 {
		sentiment = 10
	}

	return models.Analysis{
		Themes:    raw.Themes,
		Sentiment: sentiment,
		Insights:  raw.Insights,
		Goals:     raw.Goals,
	}, nil
}

// FallbackAnalysis returns the static payload used when the provider call
// fails or returns something unusable.
func FallbackAnalysis() models.Analysis {
	return models.Analysis{
		Themes:    []string{"reflection", "personal growth"},
		Sentiment: 5.0,
		Insights:  []string{"User is engaging in self-reflection"},
		Goals:     []string{"Continue journaling regularly"},
		Degraded:  true,
	}
}
