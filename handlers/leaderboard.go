// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/coursevote/cliparse"
	"github.com/danielhkuo/coursevote/leaderboard"
	"github.com/danielhkuo/coursevote/middleware"
	"github.com/danielhkuo/coursevote/models"
	"github.com/danielhkuo/coursevote/votes"
)

type LeaderboardHandler struct {
	view   *leaderboard.View
	ledger *votes.Ledger
	cfg    cliparse.Config
}

func NewLeaderboardHandler(view *leaderboard.View, ledger *votes.Ledger, cfg cliparse.Config) *LeaderboardHandler {
	return &LeaderboardHandler{view: view, ledger: ledger, cfg: cfg}
}

// GetLeaderboard handles GET /leaderboard with an optional ?limit=n
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	var entries []models.LeaderboardEntry
	var err error

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, parseErr := strconv.Atoi(limitStr)
		if parseErr != nil || limit < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		entries, err = h.view.Top(limit)
	} else {
		entries, err = h.view.Rank()
	}

	if err != nil {
		slog.Error("failed to build leaderboard", "error", err)
		storeErrorResponse(w, err, "Failed to build leaderboard")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}

// GetCourseStats handles GET /courses/{course}/stats
func (h *LeaderboardHandler) GetCourseStats(w http.ResponseWriter, r *http.Request) {
	course := strings.TrimSpace(r.PathValue("course"))
	if course == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "course is required")
		return
	}

	stats, err := h.ledger.CourseStats(course)
	if err != nil {
		slog.Error("failed to aggregate course votes", "error", err, "course", course)
		storeErrorResponse(w, err, "Failed to aggregate course votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}
