// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package device

import (
	"net/http"
	"time"

	"github.com/danielhkuo/ridepolls/auth"
)

const (
	// CookieName holds the signed device token for browsers
	CookieName = "rp_device"
	// HeaderName carries the raw device token from native apps
	HeaderName = "X-Device-UUID"

	cookieMaxAge = 400 * 24 * time.Hour
)

// CookieStorage adapts one HTTP request/response pair to Storage. Only
// TokenKey is supported.
type CookieStorage struct {
	w      http.ResponseWriter
	r      *http.Request
	secret string
	secure bool
	issued string
}

func NewCookieStorage(w http.ResponseWriter, r *http.Request, secret string, secure bool) *CookieStorage {
	return &CookieStorage{w: w, r: r, secret: secret, secure: secure}
}

func (c *CookieStorage) Get(key string) (string, bool, error) {
	if key != TokenKey {
		return "", false, nil
	}
	if c.issued != "" {
		return c.issued, true, nil
	}
	if h := c.r.Header.Get(HeaderName); h != "" {
		return h, true, nil
	}

	cookie, err := c.r.Cookie(CookieName)
	if err != nil {
		return "", false, nil
	}
	token, err := auth.VerifyDeviceToken(cookie.Value, c.secret)
	if err != nil {
		// tampered or foreign cookie: issue a new identity
		return "", false, nil
	}
	return token, true, nil
}

func (c *CookieStorage) Set(key, value string) error {
	if key != TokenKey {
		return nil
	}
	http.SetCookie(c.w, &http.Cookie{
		Name:     CookieName,
		Value:    auth.SignDeviceToken(value, c.secret),
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	c.issued = value
	return nil
}
