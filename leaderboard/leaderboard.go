// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package leaderboard

import (
	"sort"
	"strconv"

	"github.com/danielhkuo/coursevote/models"
	"github.com/danielhkuo/coursevote/proposals"
	"github.com/danielhkuo/coursevote/store"
)

// View derives a ranked listing from proposal scores. Nothing here is
// stored; every call reads current state.
type View struct {
	store    store.Store
	registry *proposals.Registry
}

func NewView(st store.Store, registry *proposals.Registry) *View {
	return &View{store: st, registry: registry}
}

// Rank returns all live proposals ordered by score descending. Equal
// scores order by ascending proposal ID, so the listing is stable
// across reads. Ranks are 1-indexed.
func (v *View) Rank() ([]models.LeaderboardEntry, error) {
	ids, err := v.registry.ListIDs()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.LeaderboardEntry{}, nil
	}

	texts, err := v.registry.GetTexts(ids)
	if err != nil {
		return nil, err
	}

	scoreKeys := make([]string, len(ids))
	for i, id := range ids {
		scoreKeys[i] = proposals.ScoreKey(id)
	}
	scores, err := v.store.MultiGet(scoreKeys)
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(ids))
	for i, id := range ids {
		text, ok := texts[id]
		if !ok {
			// Text gone between listing and fetch; skip it.
			continue
		}
		var score int64
		if scores[i] != nil {
			if n, err := strconv.ParseInt(*scores[i], 10, 64); err == nil {
				score = n
			}
		}
		entries = append(entries, models.LeaderboardEntry{
			ProposalID: id,
			Text:       text,
			Score:      score,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].ProposalID < entries[j].ProposalID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// Top returns the first n entries of Rank. Truncation happens after
// sorting; truncating before would rank by ID, not score.
func (v *View) Top(n int) ([]models.LeaderboardEntry, error) {
	entries, err := v.Rank()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	if n < len(entries) {
		entries = entries[:n]
	}
	return entries, nil
}
