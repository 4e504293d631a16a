// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package signup

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"
)

var (
	ErrRateLimited  = errors.New("signup attempts too frequent")
	ErrEmptyEmail   = errors.New("email is empty")
	ErrInvalidEmail = errors.New("email format is invalid")
)

// Cooldown is the minimum interval between signup attempts per key.
const Cooldown = 30 * time.Second

// MaxEmailLength caps the stored address length.
const MaxEmailLength = 255

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// disposableDomains is a small static list; matches warn, never block.
var disposableDomains = map[string]bool{
	"10minutemail.com":  true,
	"tempmail.org":      true,
	"guerrillamail.com": true,
	"mailinator.com":    true,
	"throwaway.email":   true,
	"7secure.net":       true,
}

// Sanitize trims, lowercases, truncates to MaxEmailLength, and strips
// characters that have no business in an email address.
func Sanitize(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(email) > MaxEmailLength {
		email = email[:MaxEmailLength]
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '"', '\'':
			return -1
		}
		return r
	}, email)
}

// ValidateFormat reports whether the email looks like local@domain.tld.
func ValidateFormat(email string) bool {
	return emailPattern.MatchString(email)
}

// IsDisposable reports whether the email's domain is a known throwaway
// provider.
func IsDisposable(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	return disposableDomains[strings.ToLower(email[at+1:])]
}

// RateLimiter tracks the last signup attempt per key with an injected
// clock. State is in-memory; swap the instance for a shared-store-backed
// one in a multi-instance deployment.
type RateLimiter struct {
	mu       sync.Mutex
	last     map[string]time.Time
	cooldown time.Duration
	now      func() time.Time
}

// NewRateLimiter creates a limiter with the given cooldown. A nil clock
// defaults to time.Now.
func NewRateLimiter(cooldown time.Duration, now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		last:     make(map[string]time.Time),
		cooldown: cooldown,
		now:      now,
	}
}

// Limited reports whether key attempted within the cooldown window.
func (rl *RateLimiter) Limited(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	last, ok := rl.last[key]
	if !ok {
		return false
	}
	return rl.now().Sub(last) < rl.cooldown
}

// Record stores the current time as key's last attempt.
func (rl *RateLimiter) Record(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.last[key] = rl.now()
}

// Result is the outcome of a gate check for an accepted email.
type Result struct {
	Email   string
	Warning string
}

// Gate runs the full pre-insert validation sequence for signups.
type Gate struct {
	limiter *RateLimiter
}

// NewGate creates a gate around the given rate limiter.
func NewGate(limiter *RateLimiter) *Gate {
	return &Gate{limiter: limiter}
}

// Check validates rawEmail for the caller identified by key. Ordering
// matches the landing page: cooldown first, then sanitize, then format,
// then the non-blocking disposable-domain warning. The attempt is recorded
// whenever the gate is passed, before the store insert.
func (g *Gate) Check(key, rawEmail string) (Result, error) {
	if g.limiter.Limited(key) {
		return Result{}, ErrRateLimited
	}

	email := Sanitize(rawEmail)
	if email == "" {
		return Result{}, ErrEmptyEmail
	}
	if !ValidateFormat(email) {
		return Result{}, ErrInvalidEmail
	}

	res := Result{Email: email}
	if IsDisposable(email) {
		res.Warning = "⚠️ Temporary email detected. You might miss important updates!"
	}

	g.limiter.Record(key)
	return res, nil
}
