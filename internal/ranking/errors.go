// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

package ranking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest indicates a malformed request (non-positive limit or
	// negative offset). Surfaced directly to the caller, never retried.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrStoreUnavailable indicates a collaborator store call failed or
	// timed out. Fatal only for candidate retrieval; other reads degrade
	// to empty results.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrCacheMiss is returned by ResponseCache.Get when no entry exists.
	ErrCacheMiss = errors.New("cache miss")
)

// invalidRequestf wraps ErrInvalidRequest with detail.
func invalidRequestf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// storeUnavailable wraps a store failure so callers can match it with
// errors.Is(err, ErrStoreUnavailable).
func storeUnavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
