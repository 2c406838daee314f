// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/danielhkuo/ridepolls/models"
	"github.com/danielhkuo/ridepolls/store"
)

// TokenSource yields the current device token. *device.Provider implements it.
type TokenSource interface {
	Token() string
}

// DefaultConflictKeys are tried in order until one matches a uniqueness
// constraint on poll_votes
var DefaultConflictKeys = [][]string{
	{"poll_id", "voter_key"},
	{"poll_id", "voter_token"},
}

// Lower-cased fragments of errors meaning "this conflict key has no
// constraint behind it"
var missingConstraintMarkers = []string{
	"unique",
	"exclusion constraint matching",
	"does not exist",
}

type Voter struct {
	store  store.VoteWriter
	tokens TokenSource
	keys   [][]string
	logger *zap.Logger
}

type VoterOption func(*Voter)

// WithConflictKeys replaces the ordered conflict key candidates
func WithConflictKeys(keys ...[]string) VoterOption {
	return func(v *Voter) { v.keys = keys }
}

func NewVoter(w store.VoteWriter, tokens TokenSource, logger *zap.Logger, opts ...VoterOption) *Voter {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := &Voter{store: w, tokens: tokens, keys: DefaultConflictKeys, logger: logger}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// CastVote records optionID as this device's choice in pollID, replacing any
// earlier choice. IDs are not validated here; the store's foreign keys do that.
func (v *Voter) CastVote(ctx context.Context, pollID, optionID string) error {
	if len(v.keys) == 0 {
		return &VoteSubmissionError{PollID: pollID, OptionID: optionID, Err: ErrNoConflictKeys}
	}

	token := v.tokens.Token()
	row := models.VoteRow{
		PollID:     pollID,
		OptionID:   optionID,
		VoterKey:   token,
		VoterToken: token,
	}

	var lastErr error
	for i, key := range v.keys {
		err := v.store.UpsertVote(ctx, row, key)
		if err == nil {
			v.logger.Info("vote recorded",
				zap.String("poll_id", pollID),
				zap.String("option_id", optionID),
				zap.Strings("conflict_key", key))
			return nil
		}
		lastErr = err

		if i == len(v.keys)-1 || ctx.Err() != nil || !isMissingConstraint(err) {
			break
		}
		v.logger.Warn("conflict key rejected, trying next",
			zap.String("poll_id", pollID),
			zap.Strings("conflict_key", key),
			zap.Error(err))
	}

	v.logger.Error("vote submission failed",
		zap.String("poll_id", pollID),
		zap.String("option_id", optionID),
		zap.Error(lastErr))
	return &VoteSubmissionError{PollID: pollID, OptionID: optionID, Err: lastErr}
}

func isMissingConstraint(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range missingConstraintMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
