// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votes

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/danielhkuo/coursevote/models"
	"github.com/danielhkuo/coursevote/proposals"
	"github.com/danielhkuo/coursevote/store"
)

// MaxVotes is the quota: how many votes a single user may cast across
// all proposals.
const MaxVotes = 3

var (
	ErrUnknownProposal = errors.New("no such proposal")
	ErrQuotaExceeded   = fmt.Errorf("vote quota of %d exhausted", MaxVotes)
	ErrAlreadyVoted    = errors.New("already voted for this proposal")
)

// CountKey is the per-user vote counter key.
func CountKey(user models.UserID) string {
	return fmt.Sprintf("user:%s:votes", user)
}

// Ledger records votes and keeps the per-user counters, per-proposal
// voter sets and aggregate scores consistent with each other.
type Ledger struct {
	store store.Store
}

func NewLedger(st store.Store) *Ledger {
	return &Ledger{store: st}
}

func parseCount(val string, ok bool) (int64, error) {
	if !ok {
		return 0, nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("vote counter holds non-integer value %q", val)
	}
	return n, nil
}

// Cast records one vote by user for proposalID. The proposal lookup,
// quota check, membership check and all three writes run inside a
// single atomic batch: the store re-runs the whole callback on write
// conflict, so two concurrent votes from the same user can't both pass
// the quota check against the same counter value. No mutation occurs
// on any failure.
//
// The membership check must run even though set adds are idempotent:
// the per-user counter is separate state, and a repeated vote that
// silently no-ops on the set would still bump the counter.
func (l *Ledger) Cast(user models.UserID, proposalID int64) error {
	err := l.store.Update(func(tx store.Txn) error {
		live, err := tx.Exists(proposals.TextKey(proposalID))
		if err != nil {
			return err
		}
		if !live {
			return ErrUnknownProposal
		}

		val, ok, err := tx.Get(CountKey(user))
		if err != nil {
			return err
		}
		count, err := parseCount(val, ok)
		if err != nil {
			return err
		}
		if count >= MaxVotes {
			return ErrQuotaExceeded
		}

		votersKey := proposals.VotersKey(proposalID)
		member, err := tx.SetContains(votersKey, string(user))
		if err != nil {
			return err
		}
		if member {
			return ErrAlreadyVoted
		}

		if _, err := tx.AddToSet(votersKey, string(user)); err != nil {
			return err
		}
		if _, err := tx.Increment(CountKey(user), 1); err != nil {
			return err
		}
		_, err = tx.Increment(proposals.ScoreKey(proposalID), 1)
		return err
	})
	if err != nil {
		return err
	}

	slog.Info("vote cast", "user_id", user, "proposal_id", proposalID)
	return nil
}

// Remaining returns how many votes user may still cast. Never
// negative.
func (l *Ledger) Remaining(user models.UserID) (int, error) {
	val, ok, err := l.store.Get(CountKey(user))
	if err != nil {
		return 0, err
	}
	count, err := parseCount(val, ok)
	if err != nil {
		return 0, err
	}
	if count >= MaxVotes {
		return 0, nil
	}
	return int(MaxVotes - count), nil
}

// Score returns the aggregate score of a proposal, 0 if it has never
// been voted on.
func (l *Ledger) Score(proposalID int64) (int64, error) {
	val, ok, err := l.store.Get(proposals.ScoreKey(proposalID))
	if err != nil {
		return 0, err
	}
	return parseCount(val, ok)
}

// CourseStats scans every per-user vote counter under the course
// prefix and returns how many users have voted and their combined
// vote total. A full key-space scan: fine for a classroom cohort,
// there is no secondary index by course.
func (l *Ledger) CourseStats(course string) (models.CourseStats, error) {
	course = strings.ToLower(strings.TrimSpace(course))
	stats := models.CourseStats{Course: course}

	keys, err := l.store.ScanKeys(fmt.Sprintf("user:%s:*:votes", course))
	if err != nil {
		return stats, err
	}
	if len(keys) == 0 {
		return stats, nil
	}

	vals, err := l.store.MultiGet(keys)
	if err != nil {
		return stats, err
	}
	for _, val := range vals {
		if val == nil {
			continue
		}
		n, err := strconv.ParseInt(*val, 10, 64)
		if err != nil {
			continue
		}
		stats.Voters++
		stats.TotalVotes += n
	}
	return stats, nil
}
