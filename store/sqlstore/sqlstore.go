// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"

	"github.com/danielhkuo/ridepolls/db"
	"github.com/danielhkuo/ridepolls/models"
	"github.com/danielhkuo/ridepolls/store"
)

// Store implements store.Store on Postgres or SQLite
type Store struct {
	db *goqu.Database
}

var _ store.Store = (*Store)(nil)

func New(conn *sql.DB, dbType string) *Store {
	return &Store{db: db.Goqu(conn, dbType)}
}

// UpsertVote inserts the row, replacing option_id and updated_at when the
// conflict key already holds a row. The database error is returned as is so
// callers can inspect its message.
func (s *Store) UpsertVote(ctx context.Context, row models.VoteRow, conflictKey []string) error {
	const op = "storage.sql.UpsertVote"

	target, err := conflictTarget(conflictKey)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.db.Insert(votesTable).
		Rows(goqu.Record{
			colPollID:     row.PollID,
			colOptionID:   row.OptionID,
			colVoterKey:   row.VoterKey,
			colVoterToken: row.VoterToken,
		}).
		OnConflict(goqu.DoUpdate(target, goqu.Record{
			colOptionID:   goqu.L("excluded." + colOptionID),
			colVoterKey:   goqu.L("excluded." + colVoterKey),
			colVoterToken: goqu.L("excluded." + colVoterToken),
			colUpdatedAt:  goqu.L("CURRENT_TIMESTAMP"),
		})).
		Prepared(true).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) OptionTotals(ctx context.Context, pollID string) ([]models.OptionTotal, error) {
	const op = "storage.sql.OptionTotals"

	rows := []models.OptionTotal{}
	err := s.db.From(totalsView).
		Select(colOptionID, colVotes).
		Where(totalsViewPollIDCol.Eq(pollID)).
		Prepared(true).
		ScanStructsContext(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rows, nil
}

func (s *Store) PollOptions(ctx context.Context, pollID string) ([]models.Option, error) {
	const op = "storage.sql.PollOptions"

	options := []models.Option{}
	err := s.db.From(optionListView).
		Select(colID, colPollID, colLabel, colSortOrder).
		Where(optionListViewPollIDCol.Eq(pollID)).
		Order(goqu.C(colSortOrder).Asc(), goqu.C(colID).Asc()).
		Prepared(true).
		ScanStructsContext(ctx, &options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return options, nil
}

func (s *Store) Poll(ctx context.Context, pollID string) (models.Poll, error) {
	const op = "storage.sql.Poll"

	var poll models.Poll
	found, err := s.db.From(questionsView).
		Select(colID, colQuestion).
		Where(questionsViewIDCol.Eq(pollID)).
		Prepared(true).
		ScanStructContext(ctx, &poll)
	if err != nil {
		return models.Poll{}, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return models.Poll{}, fmt.Errorf("%s: %w", op, store.ErrPollNotFound)
	}

	return poll, nil
}

func (s *Store) ListPolls(ctx context.Context) ([]models.Poll, error) {
	const op = "storage.sql.ListPolls"

	polls := []models.Poll{}
	err := s.db.From(questionsView).
		Select(colID, colQuestion).
		Order(goqu.C(colCreatedAt).Desc(), goqu.C(colID).Asc()).
		ScanStructsContext(ctx, &polls)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return polls, nil
}

// conflictTarget renders the column list of an ON CONFLICT clause. goqu
// writes the target verbatim, so only plain identifiers are accepted.
func conflictTarget(cols []string) (string, error) {
	if len(cols) == 0 {
		return "", fmt.Errorf("empty conflict key")
	}
	for _, c := range cols {
		if !isIdent(c) {
			return "", fmt.Errorf("invalid conflict column %q", c)
		}
	}
	return strings.Join(cols, ", "), nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
