// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"errors"
	"fmt"
)

// ErrNoConflictKeys is returned by a Voter configured without candidates
var ErrNoConflictKeys = errors.New("no conflict keys configured")

// VoteSubmissionError is returned when no conflict key accepted the vote
type VoteSubmissionError struct {
	PollID   string
	OptionID string
	Err      error
}

func (e *VoteSubmissionError) Error() string {
	return fmt.Sprintf("vote submission failed for poll %s: %v", e.PollID, e.Err)
}

func (e *VoteSubmissionError) Unwrap() error { return e.Err }

// ResultsFetchError is returned when the totals view could not be read
type ResultsFetchError struct {
	PollID string
	Err    error
}

func (e *ResultsFetchError) Error() string {
	return fmt.Sprintf("fetching results for poll %s: %v", e.PollID, e.Err)
}

func (e *ResultsFetchError) Unwrap() error { return e.Err }

// OptionsFetchError is returned when a poll or its options could not be read
type OptionsFetchError struct {
	PollID string
	Err    error
}

func (e *OptionsFetchError) Error() string {
	return fmt.Sprintf("fetching options for poll %s: %v", e.PollID, e.Err)
}

func (e *OptionsFetchError) Unwrap() error { return e.Err }
