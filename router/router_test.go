// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/danielhkuo/ridepolls/models"
	"github.com/danielhkuo/ridepolls/shell"
	"github.com/danielhkuo/ridepolls/store/sqlstore"
	"github.com/danielhkuo/ridepolls/testutil"
)

func newTestRouter(t *testing.T) (http.Handler, models.Poll) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	poll := testutil.CreateTestPoll(t, conn, "Which ride fits your group?", "Party Bus", "Stretch Limo")
	return NewRouter(sqlstore.New(conn, testutil.TestDBType), testutil.GetTestConfig(), zaptest.NewLogger(t)), poll
}

func TestHealthEndpoint(t *testing.T) {
	h, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRootEndpoint(t *testing.T) {
	h, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Equal(t, "ridepolls API v1", w.Body.String())
}

func TestRouteExistence(t *testing.T) {
	h, poll := newTestRouter(t)

	routes := []struct {
		method string
		path   string
		body   interface{}
		status int
	}{
		{http.MethodGet, "/polls", nil, http.StatusOK},
		{http.MethodGet, "/polls/" + poll.ID, nil, http.StatusOK},
		{http.MethodGet, "/polls/" + poll.ID + "/options", nil, http.StatusOK},
		{http.MethodGet, "/polls/" + poll.ID + "/results", nil, http.StatusOK},
		{http.MethodPost, "/polls/" + poll.ID + "/votes", models.CastVoteRequest{OptionID: poll.Options[0].ID}, http.StatusOK},
		{http.MethodGet, "/devices/me", nil, http.StatusOK},
		{http.MethodGet, "/polls/missing", nil, http.StatusNotFound},
		{http.MethodGet, "/nope", nil, http.StatusNotFound},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, testutil.MakeRequest(rt.method, rt.path, rt.body, nil))
			testutil.AssertStatus(t, w, rt.status)
		})
	}
}

func TestVoteFlowThroughRouter(t *testing.T) {
	h, poll := newTestRouter(t)

	// first contact issues the device cookie
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/devices/me", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	vote := func(optionID string) shell.View {
		req := testutil.MakeRequest(http.MethodPost, "/polls/"+poll.ID+"/votes", models.CastVoteRequest{OptionID: optionID}, nil)
		req.AddCookie(cookies[0])
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		var view shell.View
		testutil.AssertJSON(t, w, &view)
		return view
	}

	view := vote(poll.Options[0].ID)
	assert.EqualValues(t, 1, view.Bars[0].Votes)

	view = vote(poll.Options[1].ID)
	assert.EqualValues(t, 0, view.Bars[0].Votes)
	assert.EqualValues(t, 1, view.Bars[1].Votes)
	assert.EqualValues(t, 1, view.TotalVotes)
}

func TestCORSHeaders(t *testing.T) {
	h, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/polls", nil)
	req.Header.Set("Origin", "https://partybus.example")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "https://partybus.example", w.Header().Get("Access-Control-Allow-Origin"))
}
