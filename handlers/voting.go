// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/coursevote/cliparse"
	"github.com/danielhkuo/coursevote/metrics"
	"github.com/danielhkuo/coursevote/middleware"
	"github.com/danielhkuo/coursevote/models"
	"github.com/danielhkuo/coursevote/votes"
)

type VotingHandler struct {
	ledger *votes.Ledger
	cfg    cliparse.Config
}

func NewVotingHandler(ledger *votes.Ledger, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{ledger: ledger, cfg: cfg}
}

// CastVote handles POST /proposals/{id}/vote
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticate(w, r, h.cfg)
	if !ok {
		return
	}

	id, ok := parseProposalID(w, r)
	if !ok {
		return
	}

	err := h.ledger.Cast(userID, id)
	switch {
	case errors.Is(err, votes.ErrUnknownProposal):
		metrics.VotesRejected.WithLabelValues("unknown_proposal").Inc()
		middleware.ErrorResponse(w, http.StatusNotFound, "Proposal not found")
		return
	case errors.Is(err, votes.ErrQuotaExceeded):
		metrics.VotesRejected.WithLabelValues("quota_exceeded").Inc()
		middleware.ErrorResponse(w, http.StatusConflict, "You have already used all 3 of your votes")
		return
	case errors.Is(err, votes.ErrAlreadyVoted):
		metrics.VotesRejected.WithLabelValues("already_voted").Inc()
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted for this proposal")
		return
	case err != nil:
		slog.Error("failed to cast vote", "error", err, "user_id", userID, "proposal_id", id)
		storeErrorResponse(w, err, "Failed to cast vote")
		return
	}

	metrics.VotesCast.Inc()

	remaining, err := h.ledger.Remaining(userID)
	if err != nil {
		// The vote committed; report it even if the follow-up read
		// failed.
		slog.Warn("failed to read remaining votes after cast", "error", err, "user_id", userID)
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		ProposalID:     id,
		RemainingVotes: remaining,
		Message:        "Vote recorded",
	})
}
