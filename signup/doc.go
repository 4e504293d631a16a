// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package signup contains the pure validation logic guarding the signups
table.

# Gate Sequence

Gate.Check runs the landing page's ordering for a caller key (client IP)
and a raw email:

 1. cooldown check (30s per key)
 2. sanitize: trim, lowercase, truncate to 255, strip <>"' characters
 3. reject empty or format-invalid addresses
 4. non-blocking warning for known disposable domains
 5. record the attempt time

It returns the normalized email plus an optional warning; the caller does
the store insert.

# Rate Limiting

RateLimiter is a keyed last-attempt-time map with an injected clock:

	rl := signup.NewRateLimiter(signup.Cooldown, nil) // nil → time.Now

State is in-memory and per-process. The clock and the limiter itself are
injected so a shared store can replace them in a multi-instance
deployment.

# Errors

ErrRateLimited, ErrEmptyEmail, and ErrInvalidEmail are sentinel values the
handler maps to 429 and 400 responses with user-facing messages.
*/
package signup
