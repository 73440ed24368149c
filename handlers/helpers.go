// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/coursevote/auth"
	"github.com/danielhkuo/coursevote/cliparse"
	"github.com/danielhkuo/coursevote/metrics"
	"github.com/danielhkuo/coursevote/middleware"
	"github.com/danielhkuo/coursevote/models"
	"github.com/danielhkuo/coursevote/store"
)

// authenticate resolves the X-Auth-Token header to a user identity.
// On failure it writes the error response and returns ok=false.
func authenticate(w http.ResponseWriter, r *http.Request, cfg cliparse.Config) (models.UserID, bool) {
	token := r.Header.Get("X-Auth-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Auth-Token header required")
		return "", false
	}

	userID, err := auth.ValidateSessionToken(token, cfg.SessionTokenSalt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid auth token")
		return "", false
	}
	return userID, true
}

// storeErrorResponse maps an unexpected core error to an HTTP status:
// 503 with a retry hint when the store is unavailable, 500 otherwise.
func storeErrorResponse(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, store.ErrUnavailable) {
		metrics.StoreErrors.Inc()
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable, try again shortly")
		return
	}
	middleware.ErrorResponse(w, http.StatusInternalServerError, fallback)
}
