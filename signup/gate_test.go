// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package signup

import (
	"errors"
	"testing"
	"time"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Test@Example.com ", "test@example.com"},
		{"  USER@DOMAIN.COM", "user@domain.com"},
		{`evil<script>"@x.com'`, "evilscript@x.com"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitize_Truncates(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	if got := Sanitize(string(long)); len(got) != MaxEmailLength {
		t.Errorf("expected %d chars, got %d", MaxEmailLength, len(got))
	}
}

func TestValidateFormat(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@sub.domain.org", "x_1%2@y-z.io"}
	invalid := []string{"not-an-email", "@no-local.com", "no-domain@", "a@b", "a b@c.com"}

	for _, e := range valid {
		if !ValidateFormat(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}
	for _, e := range invalid {
		if ValidateFormat(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}

func TestIsDisposable(t *testing.T) {
	if !IsDisposable("someone@mailinator.com") {
		t.Error("mailinator should be disposable")
	}
	if IsDisposable("someone@gmail.com") {
		t.Error("gmail should not be disposable")
	}
	if IsDisposable("no-at-sign") {
		t.Error("malformed address should not match")
	}
}

func TestRateLimiter_InjectedClock(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	rl := NewRateLimiter(Cooldown, clock)

	if rl.Limited("ip-1") {
		t.Error("fresh key should not be limited")
	}

	rl.Record("ip-1")
	if !rl.Limited("ip-1") {
		t.Error("key should be limited immediately after an attempt")
	}
	if rl.Limited("ip-2") {
		t.Error("limits are per key")
	}

	now = now.Add(29 * time.Second)
	if !rl.Limited("ip-1") {
		t.Error("still inside the 30s cooldown")
	}

	now = now.Add(2 * time.Second)
	if rl.Limited("ip-1") {
		t.Error("cooldown expired, key should pass")
	}
}

func TestGate_Ordering(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	gate := NewGate(NewRateLimiter(Cooldown, clock))

	// First attempt normalizes and passes
	res, err := gate.Check("ip-1", "Test@Example.com ")
	if err != nil {
		t.Fatalf("first attempt should pass: %v", err)
	}
	if res.Email != "test@example.com" {
		t.Errorf("expected normalized email, got %q", res.Email)
	}

	// Any casing/whitespace variant within the cooldown hits the rate
	// limit before anything else
	_, err = gate.Check("ip-1", "  TEST@example.COM")
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("expected rate limit error, got %v", err)
	}

	// Invalid input does not consume the caller's cooldown slot
	now = now.Add(Cooldown + time.Second)
	_, err = gate.Check("ip-1", "not-an-email")
	if !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("expected format error, got %v", err)
	}
	_, err = gate.Check("ip-1", "valid@example.com")
	if err != nil {
		t.Errorf("rejected attempt should not have recorded a cooldown: %v", err)
	}
}

func TestGate_EmptyAndDisposable(t *testing.T) {
	gate := NewGate(NewRateLimiter(Cooldown, nil))

	if _, err := gate.Check("k1", "   "); !errors.Is(err, ErrEmptyEmail) {
		t.Errorf("expected empty email error, got %v", err)
	}

	res, err := gate.Check("k2", "temp@mailinator.com")
	if err != nil {
		t.Fatalf("disposable emails warn, not block: %v", err)
	}
	if res.Warning == "" {
		t.Error("expected a disposable-domain warning")
	}
}
