// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides ID generation and device cookie signing.

# ID Generation

Random hex IDs for seeded polls and options:

	id, err := auth.GenerateID(8)  // 16 hex characters

# Device Cookies

The widget API hands each browser a device token in a long-lived cookie.
When DEVICE_COOKIE_SECRET is configured the cookie value carries an
HMAC-SHA256 signature so a client cannot swap in another device's token:

	value := auth.SignDeviceToken(token, secret)       // "<token>.<sig>"
	token, err := auth.VerifyDeviceToken(value, secret)

Without a secret both functions pass the token through unchanged.
*/
package auth
