// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/coursevote/accounts"
	"github.com/danielhkuo/coursevote/auth"
	"github.com/danielhkuo/coursevote/cliparse"
	"github.com/danielhkuo/coursevote/models"
	"github.com/danielhkuo/coursevote/proposals"
	"github.com/danielhkuo/coursevote/store"
	"github.com/danielhkuo/coursevote/votes"
)

// SetupTestStore opens a fresh in-memory store, closed automatically
// when the test finishes.
func SetupTestStore(t *testing.T) *store.BadgerStore {
	t.Helper()

	st, err := store.OpenInMemory()
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3319,
		DataDir:          "test-data",
		AdminKeySalt:     "test-admin-salt",
		SessionTokenSalt: "test-session-salt",
	}
}

// RegisterTestUser registers a user and returns their session token
func RegisterTestUser(t *testing.T, st store.Store, cfg cliparse.Config, course string, number int, password string) (models.UserID, string) {
	t.Helper()

	userID := models.NewUserID(course, number)
	if err := accounts.NewCredentialStore(st).Register(userID, password); err != nil {
		t.Fatalf("Failed to register test user %s: %v", userID, err)
	}
	return userID, auth.GenerateSessionToken(userID, cfg.SessionTokenSalt)
}

// CreateTestProposal creates a proposal and returns its ID
func CreateTestProposal(t *testing.T, st store.Store, text string) int64 {
	t.Helper()

	id, err := proposals.NewRegistry(st).Create(text)
	if err != nil {
		t.Fatalf("Failed to create test proposal: %v", err)
	}
	return id
}

// CastTestVote records a vote directly through the ledger
func CastTestVote(t *testing.T, st store.Store, user models.UserID, proposalID int64) {
	t.Helper()

	if err := votes.NewLedger(st).Cast(user, proposalID); err != nil {
		t.Fatalf("Failed to cast test vote by %s for %d: %v", user, proposalID, err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
