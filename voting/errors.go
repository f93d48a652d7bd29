// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCandidate  = errors.New("invalid candidate")
	ErrInvalidVoter      = errors.New("invalid voter identity")
	ErrCandidateNotFound = errors.New("candidate not found")

	// ErrStorage marks infrastructure failures. Clients may retry.
	ErrStorage = errors.New("storage unavailable")
)

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

func invalidCandidate(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidCandidate, reason)
}
