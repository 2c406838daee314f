// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ridepolls/device"
	"github.com/danielhkuo/ridepolls/models"
	"github.com/danielhkuo/ridepolls/testutil"
)

func stringsReader(s string) io.Reader { return strings.NewReader(s) }

func TestGetMe_IssuesAndReusesToken(t *testing.T) {
	h := NewDeviceHandler(testutil.GetTestConfig(), nil)

	w := httptest.NewRecorder()
	h.GetMe(w, httptest.NewRequest(http.MethodGet, "/devices/me", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	var first models.DeviceResponse
	testutil.AssertJSON(t, w, &first)
	require.NotEmpty(t, first.DeviceToken)

	req := httptest.NewRequest(http.MethodGet, "/devices/me", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	h.GetMe(w, req)

	var second models.DeviceResponse
	testutil.AssertJSON(t, w, &second)
	assert.Equal(t, first.DeviceToken, second.DeviceToken)
}

func TestGetMe_NativeHeader(t *testing.T) {
	h := NewDeviceHandler(testutil.GetTestConfig(), nil)

	req := testutil.MakeRequest(http.MethodGet, "/devices/me", nil, map[string]string{device.HeaderName: "ios-device"})
	w := httptest.NewRecorder()
	h.GetMe(w, req)

	var resp models.DeviceResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "ios-device", resp.DeviceToken)
	assert.Empty(t, w.Result().Cookies())
}
