// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

WithLogging returns a gorilla/mux compatible middleware:

	r.Use(middleware.WithLogging(logger))

One line per request with method, path, client IP, status and duration_ms.

# CORS

	handler := middleware.NewCORS(cfg.AllowedOrigins)(r)

Allows GET, POST and OPTIONS with credentials and the Content-Type and
X-Device-UUID headers.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Honours X-Forwarded-For, then X-Real-IP, then RemoteAddr.
*/
package middleware
