// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the poll widget API.

# Route Registration

NewRouter returns a gorilla/mux router wrapped in CORS:

	handler := router.NewRouter(st, cfg, logger)

# Endpoints

	GET  /health
	GET  /polls?q=            - List polls, filtered by question text
	GET  /polls/{id}          - Ballot view
	GET  /polls/{id}/options  - Ordered options
	POST /polls/{id}/votes    - Cast or change this device's vote
	GET  /polls/{id}/results  - Current totals
	GET  /devices/me          - This device's token

Everything except /health and / is request-logged.
*/
package router
