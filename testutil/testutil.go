// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ridepolls/auth"
	"github.com/danielhkuo/ridepolls/cliparse"
	"github.com/danielhkuo/ridepolls/db"
	"github.com/danielhkuo/ridepolls/models"
)

// TestDBType is the database type every fixture uses
const TestDBType = cliparse.DatabaseSQLite

// TestDBURL returns a SQLite DSN for a file inside dir
func TestDBURL(dir string) string {
	return "file:" + filepath.Join(dir, "ridepolls.db") + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

// SetupTestDB creates a fresh SQLite database with the full schema. The file
// lives in t.TempDir and the connection closes with the test.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(TestDBType, TestDBURL(t.TempDir()))
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.CreateSchema(conn, TestDBType), "failed to create schema")

	return conn
}

// SetupVoterKeyTestDB is SetupTestDB with poll_votes unique on
// (poll_id, voter_key) instead of (poll_id, voter_token), the other
// uniqueness convention a deployment may carry.
func SetupVoterKeyTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(TestDBType, TestDBURL(t.TempDir()))
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { conn.Close() })

	migrations, err := db.Migrations(TestDBType)
	require.NoError(t, err)
	schema, err := fs.ReadFile(migrations, "0001_init.up.sql")
	require.NoError(t, err)

	const tokenUnique = "UNIQUE (poll_id, voter_token)"
	require.Contains(t, string(schema), tokenUnique)
	ddl := strings.Replace(string(schema), tokenUnique, "UNIQUE (poll_id, voter_key)", 1)

	_, err = conn.Exec(ddl)
	require.NoError(t, err, "failed to create schema")

	return conn
}

// GetTestConfig returns a server configuration for handler and router tests
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:               3318,
		AllowedOrigins:     []string{"https://partybus.example"},
		DeviceCookieSecret: "test-cookie-secret",
		LogLevel:           "debug",
		LogEncoding:        "console",
		Store: cliparse.StoreConfig{
			DatabaseType: TestDBType,
		},
	}
}

// CreateTestPoll inserts a poll with the given option labels, in order
func CreateTestPoll(t *testing.T, conn *sql.DB, question string, labels ...string) models.Poll {
	t.Helper()

	pollID, err := auth.GenerateID(8)
	require.NoError(t, err)

	_, err = conn.Exec(`INSERT INTO polls (id, question) VALUES (?, ?)`, pollID, question)
	require.NoError(t, err, "failed to create test poll")

	poll := models.Poll{ID: pollID, Question: question}
	for i, label := range labels {
		poll.Options = append(poll.Options, AddTestOption(t, conn, pollID, label, i))
	}

	return poll
}

// AddTestOption adds an option to a poll at the given sort position
func AddTestOption(t *testing.T, conn *sql.DB, pollID, label string, sortOrder int) models.Option {
	t.Helper()
	return AddTestOptionWithID(t, conn, pollID, fmt.Sprintf("%s-%d", pollID, sortOrder), label, sortOrder)
}

// AddTestOptionWithID adds an option with a caller-chosen ID
func AddTestOptionWithID(t *testing.T, conn *sql.DB, pollID, optionID, label string, sortOrder int) models.Option {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO poll_options (id, poll_id, label, sort_order)
		VALUES (?, ?, ?, ?)
	`, optionID, pollID, label, sortOrder)
	require.NoError(t, err, "failed to create test option")

	return models.Option{ID: optionID, PollID: pollID, Label: label, SortOrder: sortOrder}
}

// CastTestVote writes a vote row directly, bypassing the voter
func CastTestVote(t *testing.T, conn *sql.DB, pollID, optionID, token string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO poll_votes (poll_id, option_id, voter_key, voter_token)
		VALUES (?, ?, ?, ?)
	`, pollID, optionID, token, token)
	require.NoError(t, err, "failed to create test vote")
}

// CountVotes returns the number of rows in poll_votes for a poll
func CountVotes(t *testing.T, conn *sql.DB, pollID string) int {
	t.Helper()

	var n int
	err := conn.QueryRow(`SELECT COUNT(*) FROM poll_votes WHERE poll_id = ?`, pollID).Scan(&n)
	require.NoError(t, err)
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, w.Code, "body: %s", w.Body.String())
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v), "failed to decode JSON response")
}
