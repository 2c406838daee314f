// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/danielhkuo/ridepolls/cliparse"
	"github.com/danielhkuo/ridepolls/logging"
	"github.com/danielhkuo/ridepolls/middleware"
	"github.com/danielhkuo/ridepolls/models"
	"github.com/danielhkuo/ridepolls/polls"
	"github.com/danielhkuo/ridepolls/shell"
	"github.com/danielhkuo/ridepolls/store"
)

type PollHandler struct {
	store   store.Store
	catalog *polls.Catalog
	results *polls.Results
	cfg     cliparse.Config
	logger  *zap.Logger
}

func NewPollHandler(st store.Store, cfg cliparse.Config, logger *zap.Logger) *PollHandler {
	logger = logging.OrNop(logger)
	return &PollHandler{
		store:   st,
		catalog: polls.NewCatalog(st),
		results: polls.NewResults(st),
		cfg:     cfg,
		logger:  logger,
	}
}

// ListPolls handles GET /polls?q=
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.ListPolls(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollListResponse{Polls: list})
}

// GetPoll handles GET /polls/{id}
// Returns the ballot view: question plus ordered options
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	poll, err := h.catalog.FetchPoll(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}

	card := shell.NewCard(poll, nil, h.results, h.logger)
	middleware.JSONResponse(w, http.StatusOK, card.View())
}

// GetOptions handles GET /polls/{id}/options
func (h *PollHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	pollID := mux.Vars(r)["id"]

	options, err := h.catalog.FetchOptionsForPoll(r.Context(), pollID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.OptionsResponse{PollID: pollID, Options: options})
}

// CastVote handles POST /polls/{id}/votes
// Records the caller's device vote and responds with the results view
func (h *PollHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.OptionID = strings.TrimSpace(req.OptionID)
	if req.OptionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option_id is required")
		return
	}

	poll, err := h.catalog.FetchPoll(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}

	voter := polls.NewVoter(h.store, deviceProvider(w, r, h.cfg, h.logger), h.logger)
	card := shell.NewCard(poll, voter, h.results, h.logger)
	if err := card.Select(r.Context(), req.OptionID); err != nil {
		h.writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, card.View())
}

// GetResults handles GET /polls/{id}/results
// Returns current totals without voting
func (h *PollHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	poll, err := h.catalog.FetchPoll(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}

	card, err := shell.NewResultsCard(r.Context(), poll, h.results, h.logger)
	if err != nil {
		h.writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, card.View())
}

func (h *PollHandler) writeError(w http.ResponseWriter, err error) {
	var (
		voteErr    *polls.VoteSubmissionError
		resultsErr *polls.ResultsFetchError
		optionsErr *polls.OptionsFetchError
	)

	switch {
	case errors.Is(err, store.ErrPollNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	case errors.Is(err, shell.ErrBusy):
		middleware.ErrorResponse(w, http.StatusConflict, "Vote already in progress")
	case errors.As(err, &voteErr):
		middleware.ErrorResponse(w, http.StatusBadGateway, "Vote could not be recorded")
	case errors.As(err, &resultsErr):
		h.logger.Error("failed to fetch results", zap.Error(err))
		middleware.ErrorResponse(w, http.StatusBadGateway, "Results unavailable")
	case errors.As(err, &optionsErr):
		h.logger.Error("failed to fetch poll", zap.Error(err))
		middleware.ErrorResponse(w, http.StatusBadGateway, "Poll unavailable")
	default:
		h.logger.Error("request failed", zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
