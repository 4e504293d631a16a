// Package storage uploads audio blobs to Supabase Storage and builds their
// public URLs.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP request timeout for uploads.
const DefaultTimeout = 60 * time.Second

// DefaultMaxAudioBytes is the upload size cap (10 MB).
const DefaultMaxAudioBytes int64 = 10 * 1024 * 1024

// audioContentType is fixed; recordings are always stored as WAV.
const audioContentType = "audio/wav"

// StorageError wraps a failed storage round-trip.
type StorageError struct {
	Status int
	Body   string
	Err    error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("storage upload failed: %v", e.Err)
	}
	return fmt.Sprintf("storage upload failed: status %d: %s", e.Status, e.Body)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Client talks to the Supabase Storage object API.
type Client struct {
	baseURL    string
	apiKey     string
	bucket     string
	httpClient *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithBucket sets the storage bucket (default: audio-recordings).
func WithBucket(bucket string) Option {
	return func(c *Client) {
		c.bucket = bucket
	}
}

// NewClient creates a storage client for the given Supabase project URL
// and access key.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		bucket:  "audio-recordings",
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Upload stores blob at path in the bucket and returns the public URL.
// A second upload to the same path overwrites (provider behavior).
// There is no retry; any failure surfaces as a *StorageError.
func (c *Client) Upload(ctx context.Context, blob []byte, path string) (string, error) {
	reqURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(blob))
	if err != nil {
		return "", &StorageError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", audioContentType)
	// Overwrite on path collision instead of erroring
	req.Header.Set("x-upsert", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &StorageError{Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", &StorageError{Status: resp.StatusCode, Body: string(body)}
	}

	return c.PublicURL(path), nil
}

// PublicURL returns the durable public URL for an object path.
func (c *Client) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, path)
}

// ValidateAudio checks that a blob is non-empty and within the size cap.
func ValidateAudio(blob []byte, maxBytes int64) error {
	if len(blob) == 0 {
		return fmt.Errorf("empty audio file")
	}
	if int64(len(blob)) > maxBytes {
		return fmt.Errorf("audio file too large: %d bytes", len(blob))
	}
	return nil
}
