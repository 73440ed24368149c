// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP request handlers.

# Handler Groups

  - AccountHandler: register, login, current-user info
  - ProposalHandler: create, list, per-proposal score, admin removal
  - VotingHandler: cast a vote
  - LeaderboardHandler: ranked listing, course vote aggregation

Handlers are thin: they validate input, resolve the session token, call
into the core packages (accounts, proposals, votes, leaderboard) and
map sentinel errors to HTTP statuses. Business rules live in the core;
nothing here touches the store directly.

# Error Mapping

  - accounts.ErrAlreadyRegistered → 409
  - failed credential check → 401 with one generic message
  - proposals.ErrEmptyText → 400
  - votes.ErrUnknownProposal → 404
  - votes.ErrQuotaExceeded, votes.ErrAlreadyVoted → 409
  - store.ErrUnavailable → 503 with a retry hint

Every rule violation gets a specific, actionable message.
*/
package handlers
