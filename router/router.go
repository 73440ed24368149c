// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/coursevote/accounts"
	"github.com/danielhkuo/coursevote/cliparse"
	"github.com/danielhkuo/coursevote/handlers"
	"github.com/danielhkuo/coursevote/leaderboard"
	"github.com/danielhkuo/coursevote/middleware"
	"github.com/danielhkuo/coursevote/proposals"
	"github.com/danielhkuo/coursevote/store"
	"github.com/danielhkuo/coursevote/votes"
)

func NewRouter(st store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Wire the core
	creds := accounts.NewCredentialStore(st)
	registry := proposals.NewRegistry(st)
	ledger := votes.NewLedger(st)
	view := leaderboard.NewView(st, registry)

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(creds, ledger, cfg)
	proposalHandler := handlers.NewProposalHandler(registry, ledger, cfg)
	votingHandler := handlers.NewVotingHandler(ledger, cfg)
	leaderboardHandler := handlers.NewLeaderboardHandler(view, ledger, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// Accounts
	mux.HandleFunc("POST /register", middleware.WithLogging(accountHandler.Register))
	mux.HandleFunc("POST /login", middleware.WithLogging(accountHandler.Login))
	mux.HandleFunc("GET /me", middleware.WithLogging(accountHandler.Me))

	// Proposals
	mux.HandleFunc("POST /proposals", middleware.WithLogging(proposalHandler.Create))
	mux.HandleFunc("GET /proposals", middleware.WithLogging(proposalHandler.List))
	mux.HandleFunc("GET /proposals/{id}/score", middleware.WithLogging(proposalHandler.Score))
	mux.HandleFunc("DELETE /proposals/{id}", middleware.WithLogging(proposalHandler.Remove))

	// Voting
	mux.HandleFunc("POST /proposals/{id}/vote", middleware.WithLogging(votingHandler.CastVote))

	// Reporting
	mux.HandleFunc("GET /leaderboard", middleware.WithLogging(leaderboardHandler.GetLeaderboard))
	mux.HandleFunc("GET /courses/{course}/stats", middleware.WithLogging(leaderboardHandler.GetCourseStats))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("coursevote API v1"))
	})

	return mux
}
