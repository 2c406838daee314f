// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidToken = errors.New("invalid token format")
	ErrBadSignature = errors.New("device token signature mismatch")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// SignDeviceToken appends an HMAC of the token so a cookie value can be
// checked without storing it server-side. An empty secret leaves the token as is.
func SignDeviceToken(token, secret string) string {
	if secret == "" {
		return token
	}
	return token + "." + deviceSignature(token, secret)
}

// VerifyDeviceToken returns the token inside a value produced by SignDeviceToken
func VerifyDeviceToken(value, secret string) (string, error) {
	if value == "" {
		return "", ErrInvalidToken
	}
	if secret == "" {
		return value, nil
	}

	idx := strings.LastIndexByte(value, '.')
	if idx <= 0 || idx == len(value)-1 {
		return "", ErrInvalidToken
	}

	token, sig := value[:idx], value[idx+1:]
	expected := deviceSignature(token, secret)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrBadSignature
	}
	return token, nil
}

func deviceSignature(token, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(token))
	sum := h.Sum(nil)
	// 128 bits is plenty for a cookie MAC; keeps the cookie short
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum[:16]), "=")
}
