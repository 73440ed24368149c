// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/coursevote/accounts"
	"github.com/danielhkuo/coursevote/models"
	"github.com/danielhkuo/coursevote/testutil"
	"github.com/danielhkuo/coursevote/votes"
)

// TestConcurrentDistinctVoters verifies that simultaneous votes from
// different users all land and the aggregate score stays exact.
func TestConcurrentDistinctVoters(t *testing.T) {
	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(votes.NewLedger(st), cfg)

	proposalID := testutil.CreateTestProposal(t, st, "Popular proposal")

	const numVoters = 10
	tokens := make([]string, numVoters)
	for i := 0; i < numVoters; i++ {
		_, tokens[i] = testutil.RegisterTestUser(t, st, cfg, "bd", i+1, "passw0rd")
	}

	var successCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(token string) {
			defer wg.Done()
			w := httptest.NewRecorder()
			handler.CastVote(w, castVoteRequest(proposalID, token))
			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(tokens[i])
	}
	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	score, _ := votes.NewLedger(st).Score(proposalID)
	if score != numVoters {
		t.Errorf("Expected score %d, got %d", numVoters, score)
	}
}

// TestConcurrentQuotaEnforcement fires more votes than the quota from
// one user at once; exactly MaxVotes may succeed no matter how the
// requests interleave.
func TestConcurrentQuotaEnforcement(t *testing.T) {
	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(votes.NewLedger(st), cfg)

	userID, token := testutil.RegisterTestUser(t, st, cfg, "ml", 7, "passw0rd")

	const numProposals = 8
	ids := make([]int64, numProposals)
	for i := 0; i < numProposals; i++ {
		ids[i] = testutil.CreateTestProposal(t, st, "Proposal "+strconv.Itoa(i+1))
	}

	var successCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < numProposals; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			w := httptest.NewRecorder()
			handler.CastVote(w, castVoteRequest(id, token))
			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(ids[i])
	}
	wg.Wait()

	if int(successCount.Load()) != votes.MaxVotes {
		t.Errorf("Expected exactly %d successful votes, got %d", votes.MaxVotes, successCount.Load())
	}

	// The counter agrees with the actual set memberships
	remaining, _ := votes.NewLedger(st).Remaining(userID)
	if remaining != 0 {
		t.Errorf("Expected 0 remaining, got %d", remaining)
	}
	var total int64
	for _, id := range ids {
		score, _ := votes.NewLedger(st).Score(id)
		total += score
	}
	if total != votes.MaxVotes {
		t.Errorf("Expected %d votes across proposals, got %d", votes.MaxVotes, total)
	}
}

// TestConcurrentRegistrations races duplicate registrations; only one
// may win.
func TestConcurrentRegistrations(t *testing.T) {
	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	accHandler := NewAccountHandler(accounts.NewCredentialStore(st), votes.NewLedger(st), cfg)

	const attempts = 6
	var created atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			body := models.RegisterRequest{Course: "bd", Number: 10, Password: "pass" + strconv.Itoa(n)}
			w := httptest.NewRecorder()
			accHandler.Register(w, testutil.MakeRequest("POST", "/register", body, nil))
			if w.Code == http.StatusCreated {
				created.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if created.Load() != 1 {
		t.Errorf("Expected exactly 1 successful registration, got %d", created.Load())
	}
}
