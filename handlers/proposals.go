// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/coursevote/auth"
	"github.com/danielhkuo/coursevote/cliparse"
	"github.com/danielhkuo/coursevote/metrics"
	"github.com/danielhkuo/coursevote/middleware"
	"github.com/danielhkuo/coursevote/models"
	"github.com/danielhkuo/coursevote/proposals"
	"github.com/danielhkuo/coursevote/votes"
)

type ProposalHandler struct {
	registry *proposals.Registry
	ledger   *votes.Ledger
	cfg      cliparse.Config
}

func NewProposalHandler(registry *proposals.Registry, ledger *votes.Ledger, cfg cliparse.Config) *ProposalHandler {
	return &ProposalHandler{registry: registry, ledger: ledger, cfg: cfg}
}

// parseProposalID reads the {id} path value. Writes a 400 and returns
// ok=false on garbage.
func parseProposalID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := r.PathValue("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid proposal id")
		return 0, false
	}
	return id, true
}

// Create handles POST /proposals
func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticate(w, r, h.cfg)
	if !ok {
		return
	}

	var req models.CreateProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id, err := h.registry.Create(req.Text)
	if errors.Is(err, proposals.ErrEmptyText) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Proposal text cannot be empty")
		return
	}
	if err != nil {
		slog.Error("failed to create proposal", "error", err, "user_id", userID)
		storeErrorResponse(w, err, "Failed to create proposal")
		return
	}

	metrics.ProposalsCreated.Inc()

	middleware.JSONResponse(w, http.StatusCreated, models.CreateProposalResponse{
		ProposalID: id,
	})
}

// List handles GET /proposals
func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.registry.ListIDs()
	if err != nil {
		slog.Error("failed to list proposals", "error", err)
		storeErrorResponse(w, err, "Failed to list proposals")
		return
	}

	texts, err := h.registry.GetTexts(ids)
	if err != nil {
		slog.Error("failed to fetch proposal texts", "error", err)
		storeErrorResponse(w, err, "Failed to list proposals")
		return
	}

	list := make([]models.Proposal, 0, len(ids))
	for _, id := range ids {
		if text, ok := texts[id]; ok {
			list = append(list, models.Proposal{ID: id, Text: text})
		}
	}

	middleware.JSONResponse(w, http.StatusOK, list)
}

// Score handles GET /proposals/{id}/score
func (h *ProposalHandler) Score(w http.ResponseWriter, r *http.Request) {
	id, ok := parseProposalID(w, r)
	if !ok {
		return
	}

	live, err := h.registry.Exists(id)
	if err != nil {
		slog.Error("failed to check proposal", "error", err, "proposal_id", id)
		storeErrorResponse(w, err, "Failed to load score")
		return
	}
	if !live {
		middleware.ErrorResponse(w, http.StatusNotFound, "Proposal not found")
		return
	}

	score, err := h.ledger.Score(id)
	if err != nil {
		slog.Error("failed to load score", "error", err, "proposal_id", id)
		storeErrorResponse(w, err, "Failed to load score")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ScoreResponse{
		ProposalID: id,
		Score:      score,
	})
}

// Remove handles DELETE /proposals/{id} — the administrative override.
func (h *ProposalHandler) Remove(w http.ResponseWriter, r *http.Request) {
	adminKey := r.Header.Get("X-Admin-Key")
	if adminKey == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Admin-Key header required")
		return
	}
	if err := auth.ValidateAdminKey(adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	id, ok := parseProposalID(w, r)
	if !ok {
		return
	}

	live, err := h.registry.Exists(id)
	if err != nil {
		slog.Error("failed to check proposal", "error", err, "proposal_id", id)
		storeErrorResponse(w, err, "Failed to remove proposal")
		return
	}
	if !live {
		middleware.ErrorResponse(w, http.StatusNotFound, "Proposal not found")
		return
	}

	if err := h.registry.Remove(id); err != nil {
		slog.Error("failed to remove proposal", "error", err, "proposal_id", id)
		storeErrorResponse(w, err, "Failed to remove proposal")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
