package models

import "math"

// Relation names shared by the SQL and PostgREST stores
const (
	TablePolls       = "polls"
	TableOptions     = "poll_options"
	TableVotes       = "poll_votes"
	ViewVoteTotals   = "poll_vote_totals"
	ViewOptionList   = "poll_option_list"
	ViewPollQuestion = "poll_questions"
)

// Card states as rendered to clients
const (
	StateVoting  = "voting"
	StateResults = "results"
)

// Domain types

type Poll struct {
	ID       string   `json:"id" db:"id"`
	Question string   `json:"question" db:"question"`
	Options  []Option `json:"options,omitempty" db:"-"`
}

type Option struct {
	ID        string `json:"id" db:"id"`
	PollID    string `json:"poll_id" db:"poll_id"`
	Label     string `json:"label" db:"label"`
	SortOrder int    `json:"sort_order" db:"sort_order"`
}

// VoteRow is the record written to poll_votes. The device token is carried
// under both voter columns so either uniqueness convention can resolve it.
type VoteRow struct {
	PollID     string `json:"poll_id" db:"poll_id"`
	OptionID   string `json:"option_id" db:"option_id"`
	VoterKey   string `json:"voter_key" db:"voter_key"`
	VoterToken string `json:"voter_token" db:"voter_token"`
}

type OptionTotal struct {
	OptionID string `json:"option_id" db:"option_id"`
	Votes    int64  `json:"votes" db:"votes"`
}

// Totals is a snapshot of the aggregate view for one poll
type Totals struct {
	PollID     string           `json:"poll_id"`
	Counts     map[string]int64 `json:"counts"`
	TotalVotes int64            `json:"total_votes"`
}

// NewTotals sums the per-option rows of a poll
func NewTotals(pollID string, rows []OptionTotal) Totals {
	t := Totals{PollID: pollID, Counts: make(map[string]int64, len(rows))}
	for _, row := range rows {
		t.Counts[row.OptionID] += row.Votes
		t.TotalVotes += row.Votes
	}
	return t
}

// Count returns the votes for an option, 0 when the view had no row for it
func (t Totals) Count(optionID string) int64 {
	return t.Counts[optionID]
}

// Percent rounds each option independently, so a poll's percentages may sum
// to 99 or 101.
func (t Totals) Percent(optionID string) int {
	return Percent(t.Count(optionID), t.TotalVotes)
}

// Percent returns round(count / total * 100), or 0 when total is 0
func Percent(count, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// Request types

type CastVoteRequest struct {
	OptionID string `json:"option_id"`
}

// Response types

type ResultBar struct {
	OptionID string `json:"option_id"`
	Label    string `json:"label"`
	Votes    int64  `json:"votes"`
	Percent  int    `json:"percent"`
}

type PollListResponse struct {
	Polls []Poll `json:"polls"`
}

type OptionsResponse struct {
	PollID  string   `json:"poll_id"`
	Options []Option `json:"options"`
}

type DeviceResponse struct {
	DeviceToken string `json:"device_token"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
