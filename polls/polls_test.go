// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/danielhkuo/ridepolls/device"
	"github.com/danielhkuo/ridepolls/models"
	"github.com/danielhkuo/ridepolls/store"
	"github.com/danielhkuo/ridepolls/store/sqlstore"
	"github.com/danielhkuo/ridepolls/testutil"
)

// The schema only has UNIQUE (poll_id, voter_token), so every vote below
// goes through the fallback key.
func TestEndToEnd_VoteMovesNotDuplicates(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	_, err := conn.Exec(`INSERT INTO polls (id, question) VALUES ('p1', 'Book again?')`)
	require.NoError(t, err)
	testutil.AddTestOptionWithID(t, conn, "p1", "o1", "Yes", 0)
	testutil.AddTestOptionWithID(t, conn, "p1", "o2", "No", 1)

	st := sqlstore.New(conn, testutil.TestDBType)
	storage := device.NewMemoryStorage()
	require.NoError(t, storage.Set(device.TokenKey, "d1"))

	logger := zaptest.NewLogger(t)
	voter := NewVoter(st, device.NewProvider(storage, logger), logger)
	results := NewResults(st)
	ctx := context.Background()

	require.NoError(t, voter.CastVote(ctx, "p1", "o1"))
	totals, err := results.FetchTotals(ctx, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, totals.Count("o1"))
	assert.EqualValues(t, 0, totals.Count("o2"))
	assert.EqualValues(t, 1, totals.TotalVotes)

	require.NoError(t, voter.CastVote(ctx, "p1", "o2"))
	totals, err = results.FetchTotals(ctx, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, totals.Count("o1"))
	assert.EqualValues(t, 1, totals.Count("o2"))
	assert.EqualValues(t, 1, totals.TotalVotes)
}

// keyRecorder remembers the conflict key of every upsert attempt
type keyRecorder struct {
	store.VoteWriter
	keys [][]string
}

func (r *keyRecorder) UpsertVote(ctx context.Context, row models.VoteRow, conflictKey []string) error {
	r.keys = append(r.keys, conflictKey)
	return r.VoteWriter.UpsertVote(ctx, row, conflictKey)
}

func TestEndToEnd_VoterKeyConstraintUsesFirstKey(t *testing.T) {
	conn := testutil.SetupVoterKeyTestDB(t)
	poll := testutil.CreateTestPoll(t, conn, "Which ride for prom?", "Party Bus", "Stretch Limo")

	st := sqlstore.New(conn, testutil.TestDBType)
	rec := &keyRecorder{VoteWriter: st}
	storage := device.NewMemoryStorage()
	require.NoError(t, storage.Set(device.TokenKey, "d1"))

	voter := NewVoter(rec, device.NewProvider(storage, nil), zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, voter.CastVote(ctx, poll.ID, poll.Options[0].ID))
	require.NoError(t, voter.CastVote(ctx, poll.ID, poll.Options[1].ID))

	assert.Equal(t, [][]string{DefaultConflictKeys[0], DefaultConflictKeys[0]}, rec.keys)
	assert.Equal(t, 1, testutil.CountVotes(t, conn, poll.ID))

	totals, err := NewResults(st).FetchTotals(ctx, poll.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, totals.Count(poll.Options[0].ID))
	assert.EqualValues(t, 1, totals.Count(poll.Options[1].ID))
}

func TestEndToEnd_DevicesCountSeparately(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	poll := testutil.CreateTestPoll(t, conn, "Party bus or limo?", "Party Bus", "Limo")
	st := sqlstore.New(conn, testutil.TestDBType)
	ctx := context.Background()

	choices := []int{0, 0, 0, 1}
	for _, choice := range choices {
		// fresh storage per device
		voter := NewVoter(st, device.NewProvider(device.NewMemoryStorage(), nil), nil)
		require.NoError(t, voter.CastVote(ctx, poll.ID, poll.Options[choice].ID))
	}

	totals, err := NewResults(st).FetchTotals(ctx, poll.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, totals.TotalVotes)
	assert.Equal(t, 75, totals.Percent(poll.Options[0].ID))
	assert.Equal(t, 25, totals.Percent(poll.Options[1].ID))
}

func TestEndToEnd_UnknownOptionFails(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	poll := testutil.CreateTestPoll(t, conn, "Which ride?", "Party Bus")
	st := sqlstore.New(conn, testutil.TestDBType)

	voter := NewVoter(st, device.NewProvider(device.NewMemoryStorage(), nil), nil)
	err := voter.CastVote(context.Background(), poll.ID, "no-such-option")

	var vse *VoteSubmissionError
	assert.ErrorAs(t, err, &vse)
	assert.Zero(t, testutil.CountVotes(t, conn, poll.ID))
}

func TestEndToEnd_OptionOrdering(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	poll := testutil.CreateTestPoll(t, conn, "Which ride?")
	testutil.AddTestOptionWithID(t, conn, poll.ID, "c", "Sort two", 2)
	testutil.AddTestOptionWithID(t, conn, poll.ID, "a", "Sort zero", 0)
	testutil.AddTestOptionWithID(t, conn, poll.ID, "b", "Sort one", 1)

	options, err := NewCatalog(sqlstore.New(conn, testutil.TestDBType)).FetchOptionsForPoll(context.Background(), poll.ID)
	require.NoError(t, err)
	require.Len(t, options, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{options[0].ID, options[1].ID, options[2].ID})
}
