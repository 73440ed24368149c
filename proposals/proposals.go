// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package proposals

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/danielhkuo/coursevote/store"
)

// ErrEmptyText rejects blank or whitespace-only proposal text.
var ErrEmptyText = errors.New("proposal text cannot be empty")

const counterKey = "proposals:id_counter"

// Key builders, shared with the vote ledger and leaderboard view.

func TextKey(id int64) string {
	return fmt.Sprintf("proposal:%d:text", id)
}

func ScoreKey(id int64) string {
	return fmt.Sprintf("proposal:%d:score", id)
}

func VotersKey(id int64) string {
	return fmt.Sprintf("proposal:%d:votes", id)
}

// Registry creates and enumerates proposals. IDs come from a global
// counter and are unique and increasing; text is immutable once
// written.
type Registry struct {
	store store.Store
}

func NewRegistry(st store.Store) *Registry {
	return &Registry{store: st}
}

// Create reserves the next proposal ID and persists the text with an
// initial score of 0. Reservation and writes share one atomic batch,
// so a crash can't commit an ID without its backing text.
func (r *Registry) Create(text string) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrEmptyText
	}

	var id int64
	err := r.store.Update(func(tx store.Txn) error {
		var err error
		id, err = tx.Increment(counterKey, 1)
		if err != nil {
			return err
		}
		if err := tx.Set(TextKey(id), text); err != nil {
			return err
		}
		return tx.Set(ScoreKey(id), "0")
	})
	if err != nil {
		return 0, err
	}

	slog.Info("proposal created", "proposal_id", id)
	return id, nil
}

// Exists reports whether id refers to a live proposal. Liveness means
// a persisted text record, not a counter value: the counter may have
// advanced for IDs whose write never landed.
func (r *Registry) Exists(id int64) (bool, error) {
	return r.store.Exists(TextKey(id))
}

// ListIDs enumerates all live proposals, ascending by numeric ID.
// Discovery scans text records, so orphaned IDs are simply absent.
func (r *Registry) ListIDs() ([]int64, error) {
	keys, err := r.store.ScanKeys("proposal:*:text")
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(keys))
	for _, key := range keys {
		idStr := strings.TrimSuffix(strings.TrimPrefix(key, "proposal:"), ":text")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			slog.Warn("skipping malformed proposal key", "key", key)
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// GetTexts batch-fetches proposal texts. IDs with no text record are
// omitted from the result, never an error.
func (r *Registry) GetTexts(ids []int64) (map[int64]string, error) {
	if len(ids) == 0 {
		return map[int64]string{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = TextKey(id)
	}
	vals, err := r.store.MultiGet(keys)
	if err != nil {
		return nil, err
	}

	texts := make(map[int64]string, len(ids))
	for i, val := range vals {
		if val != nil {
			texts[ids[i]] = *val
		}
	}
	return texts, nil
}

// Remove is the administrative override: it deletes the proposal's
// text and score so it disappears from listings and the leaderboard,
// then discards its voter set. Votes already spent on it are not
// refunded.
func (r *Registry) Remove(id int64) error {
	err := r.store.Update(func(tx store.Txn) error {
		if err := tx.Delete(TextKey(id)); err != nil {
			return err
		}
		return tx.Delete(ScoreKey(id))
	})
	if err != nil {
		return err
	}
	if err := r.store.DeleteSet(VotersKey(id)); err != nil {
		return err
	}

	slog.Info("proposal removed", "proposal_id", id)
	return nil
}
