// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package postgrest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	pgrest "github.com/supabase-community/postgrest-go"
	"go.uber.org/zap"

	"github.com/danielhkuo/ridepolls/models"
	"github.com/danielhkuo/ridepolls/store"
)

// Client implements store.Store against a PostgREST endpoint such as
// https://<project>.supabase.co/rest/v1
type Client struct {
	rest      *pgrest.Client
	transport http.RoundTripper
	logger    *zap.Logger
}

var _ store.Store = (*Client)(nil)

type Option func(*Client)

// WithTransport replaces the round tripper requests are sent through
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.transport = rt }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		transport: http.DefaultTransport,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.rest = pgrest.NewClient(strings.TrimRight(baseURL, "/")+"/", "", nil)
	if c.rest.ClientError != nil {
		// every call reports the URL error
		return c
	}
	c.rest.Transport.Parent = &loggingTransport{next: c.transport, logger: c.logger}
	if apiKey != "" {
		c.rest.SetApiKey(apiKey).SetAuthToken(apiKey)
	}
	return c
}

// UpsertVote posts the row with on_conflict set to the key. PostgREST error
// text is kept intact, e.g. "(42P10) there is no unique or exclusion
// constraint matching the ON CONFLICT specification".
func (c *Client) UpsertVote(ctx context.Context, row models.VoteRow, conflictKey []string) error {
	const op = "storage.postgrest.UpsertVote"

	if len(conflictKey) == 0 {
		return fmt.Errorf("%s: empty conflict key", op)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, _, err := c.rest.From(models.TableVotes).
		Upsert([]models.VoteRow{row}, strings.Join(conflictKey, ","), "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) OptionTotals(ctx context.Context, pollID string) ([]models.OptionTotal, error) {
	const op = "storage.postgrest.OptionTotals"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows := []models.OptionTotal{}
	_, err := c.rest.From(models.ViewVoteTotals).
		Select("option_id,votes", "", false).
		Eq("poll_id", pollID).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rows, nil
}

func (c *Client) PollOptions(ctx context.Context, pollID string) ([]models.Option, error) {
	const op = "storage.postgrest.PollOptions"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	options := []models.Option{}
	_, err := c.rest.From(models.ViewOptionList).
		Select("id,poll_id,label,sort_order", "", false).
		Eq("poll_id", pollID).
		Order("sort_order", &pgrest.OrderOpts{Ascending: true}).
		Order("id", &pgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return options, nil
}

func (c *Client) Poll(ctx context.Context, pollID string) (models.Poll, error) {
	const op = "storage.postgrest.Poll"

	if err := ctx.Err(); err != nil {
		return models.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	var polls []models.Poll
	_, err := c.rest.From(models.ViewPollQuestion).
		Select("id,question", "", false).
		Eq("id", pollID).
		Limit(1, "").
		ExecuteTo(&polls)
	if err != nil {
		return models.Poll{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(polls) == 0 {
		return models.Poll{}, fmt.Errorf("%s: %w", op, store.ErrPollNotFound)
	}
	return polls[0], nil
}

func (c *Client) ListPolls(ctx context.Context) ([]models.Poll, error) {
	const op = "storage.postgrest.ListPolls"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	polls := []models.Poll{}
	_, err := c.rest.From(models.ViewPollQuestion).
		Select("id,question", "", false).
		Order("created_at", &pgrest.OrderOpts{Ascending: false}).
		Order("id", &pgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&polls)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return polls, nil
}

type loggingTransport struct {
	next   http.RoundTripper
	logger *zap.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.logger.Warn("postgrest request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err))
		return nil, err
	}

	t.logger.Debug("postgrest request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, nil
}
