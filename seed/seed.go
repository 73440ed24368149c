// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seed

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/coursevote/accounts"
	"github.com/danielhkuo/coursevote/models"
	"github.com/danielhkuo/coursevote/proposals"
	"github.com/danielhkuo/coursevote/store"
	"github.com/danielhkuo/coursevote/votes"
)

// Demo fixture: a small roster with one shared dev password, a few
// proposals and enough votes to make the leaderboard interesting.
const demoPassword = "1234"

var demoUsers = []models.UserID{"bd:10", "ml:7", "bd:3", "ml:15"}

var demoProposals = []string{
	"Free coffee for students",
	"More power outlets in the study rooms",
	"Longer library opening hours",
	"A relax area with ping pong",
}

// Votes per proposal index: bd:10 and ml:7 spend all 3, ml:15 spends
// 2, bd:3 none.
var demoVotes = map[int][]models.UserID{
	0: {"bd:10", "ml:15"},
	1: {"bd:10", "ml:7"},
	2: {"ml:7"},
	3: {"bd:10", "ml:7", "ml:15"},
}

// Run populates the store with the demo fixture. Idempotent: existing
// registrations, proposals and votes are left alone, so running it
// against a live database only fills in what's missing.
func Run(st store.Store) error {
	creds := accounts.NewCredentialStore(st)
	registry := proposals.NewRegistry(st)
	ledger := votes.NewLedger(st)

	for _, user := range demoUsers {
		err := creds.Register(user, demoPassword)
		if err != nil && !errors.Is(err, accounts.ErrAlreadyRegistered) {
			return fmt.Errorf("seeding user %s: %w", user, err)
		}
	}

	existing, err := registry.ListIDs()
	if err != nil {
		return fmt.Errorf("listing proposals: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("seed: proposals already present, skipping", "count", len(existing))
		return nil
	}

	ids := make([]int64, len(demoProposals))
	for i, text := range demoProposals {
		id, err := registry.Create(text)
		if err != nil {
			return fmt.Errorf("seeding proposal %q: %w", text, err)
		}
		ids[i] = id
	}

	for idx, voters := range demoVotes {
		for _, user := range voters {
			err := ledger.Cast(user, ids[idx])
			if err != nil && !errors.Is(err, votes.ErrAlreadyVoted) {
				return fmt.Errorf("seeding vote by %s: %w", user, err)
			}
		}
	}

	slog.Info("seed complete", "users", len(demoUsers), "proposals", len(ids))
	return nil
}
