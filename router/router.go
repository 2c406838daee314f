// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/danielhkuo/ridepolls/cliparse"
	"github.com/danielhkuo/ridepolls/handlers"
	"github.com/danielhkuo/ridepolls/logging"
	"github.com/danielhkuo/ridepolls/middleware"
	"github.com/danielhkuo/ridepolls/store"
)

func NewRouter(st store.Store, cfg cliparse.Config, logger *zap.Logger) http.Handler {
	logger = logging.OrNop(logger)
	r := mux.NewRouter()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(st, cfg, logger.Named("polls"))
	deviceHandler := handlers.NewDeviceHandler(cfg, logger.Named("devices"))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	api.Use(middleware.WithLogging(logger.Named("http")))

	// Catalog
	api.HandleFunc("/polls", pollHandler.ListPolls).Methods(http.MethodGet)
	api.HandleFunc("/polls/{id}", pollHandler.GetPoll).Methods(http.MethodGet)
	api.HandleFunc("/polls/{id}/options", pollHandler.GetOptions).Methods(http.MethodGet)

	// Voting and results
	api.HandleFunc("/polls/{id}/votes", pollHandler.CastVote).Methods(http.MethodPost)
	api.HandleFunc("/polls/{id}/results", pollHandler.GetResults).Methods(http.MethodGet)

	// Device identity
	api.HandleFunc("/devices/me", deviceHandler.GetMe).Methods(http.MethodGet)

	// Root endpoint
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ridepolls API v1"))
	}).Methods(http.MethodGet)

	return middleware.NewCORS(cfg.AllowedOrigins)(r)
}
