// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/coursevote/accounts"
	"github.com/danielhkuo/coursevote/auth"
	"github.com/danielhkuo/coursevote/cliparse"
	"github.com/danielhkuo/coursevote/metrics"
	"github.com/danielhkuo/coursevote/middleware"
	"github.com/danielhkuo/coursevote/models"
	"github.com/danielhkuo/coursevote/votes"
)

// Class lists run 1..30; anything outside is a typo, not a student.
const maxListNumber = 30

const minPasswordLen = 4

type AccountHandler struct {
	creds  *accounts.CredentialStore
	ledger *votes.Ledger
	cfg    cliparse.Config
}

func NewAccountHandler(creds *accounts.CredentialStore, ledger *votes.Ledger, cfg cliparse.Config) *AccountHandler {
	return &AccountHandler{creds: creds, ledger: ledger, cfg: cfg}
}

// validateIdentity checks the course/number pair common to register and
// login. Returns an empty string if the pair is acceptable.
func validateIdentity(course string, number int) string {
	if strings.TrimSpace(course) == "" {
		return "course is required"
	}
	if number < 1 || number > maxListNumber {
		return "number must be between 1 and 30"
	}
	return ""
}

// Register handles POST /register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg := validateIdentity(req.Course, req.Number); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}
	if len(req.Password) < minPasswordLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be at least 4 characters")
		return
	}

	userID := models.NewUserID(req.Course, req.Number)
	err := h.creds.Register(userID, req.Password)
	if errors.Is(err, accounts.ErrAlreadyRegistered) {
		middleware.ErrorResponse(w, http.StatusConflict, "User already registered")
		return
	}
	if err != nil {
		slog.Error("failed to register user", "error", err, "user_id", userID)
		storeErrorResponse(w, err, "Failed to register")
		return
	}

	metrics.Registrations.Inc()

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		UserID: userID.String(),
	})
}

// Login handles POST /login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg := validateIdentity(req.Course, req.Number); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	userID := models.NewUserID(req.Course, req.Number)
	ok, err := h.creds.Verify(userID, req.Password)
	if err != nil {
		slog.Error("failed to verify credentials", "error", err, "user_id", userID)
		storeErrorResponse(w, err, "Failed to log in")
		return
	}
	if !ok {
		// One message for both unknown user and wrong password.
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	remaining, err := h.ledger.Remaining(userID)
	if err != nil {
		slog.Error("failed to read remaining votes", "error", err, "user_id", userID)
		storeErrorResponse(w, err, "Failed to log in")
		return
	}

	slog.Info("user logged in", "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token:          auth.GenerateSessionToken(userID, h.cfg.SessionTokenSalt),
		UserID:         userID.String(),
		RemainingVotes: remaining,
	})
}

// Me handles GET /me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticate(w, r, h.cfg)
	if !ok {
		return
	}

	remaining, err := h.ledger.Remaining(userID)
	if err != nil {
		slog.Error("failed to read remaining votes", "error", err, "user_id", userID)
		storeErrorResponse(w, err, "Failed to load votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MeResponse{
		UserID:         userID.String(),
		RemainingVotes: remaining,
	})
}
