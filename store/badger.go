// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strconv"

	badger "github.com/dgraph-io/badger/v4"
)

// Physical key layout: plain values live under "v\x00<key>", set members
// under "s\x00<key>\x00<member>" with an empty value. Logical keys and
// set members must not contain NUL bytes.
const (
	valuePrefix = "v\x00"
	setPrefix   = "s\x00"
	keySep      = "\x00"
)

// How many times Update re-runs its callback after an optimistic
// write conflict before giving up. Conflicts guarantee progress (some
// competing batch committed), so this only trips under sustained
// contention far beyond a classroom cohort.
const maxTxnRetries = 50

// BadgerStore implements Store on top of an embedded Badger database.
// Badger's serializable transactions make every Update callback an
// atomic batch: conflicting batches abort and re-run rather than
// interleave.
type BadgerStore struct {
	db *badger.DB
}

var _ Store = (*BadgerStore)(nil)

// Open opens (creating if needed) a Badger database at dir.
func Open(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Badger's logger is noisy; we log at the edges
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open store at %s: %w", dir, err)
	}
	return &BadgerStore{db: db}, nil
}

// OpenInMemory opens a Badger database that keeps everything in memory.
// Used by tests.
func OpenInMemory() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func valueKey(key string) []byte {
	return []byte(valuePrefix + key)
}

func memberKey(key, member string) []byte {
	return []byte(setPrefix + key + keySep + member)
}

func setMemberPrefix(key string) []byte {
	return []byte(setPrefix + key + keySep)
}

// unavailable wraps a storage-level failure so callers can match on
// ErrUnavailable regardless of the backend's own error types.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}

// badgerTxn adapts a badger.Txn to the Txn contract.
type badgerTxn struct {
	tx *badger.Txn
}

var _ Txn = (*badgerTxn)(nil)

func (t *badgerTxn) Get(key string) (string, bool, error) {
	item, err := t.tx.Get(valueKey(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, unavailable("get", err)
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return "", false, unavailable("get", err)
	}
	return string(val), true, nil
}

func (t *badgerTxn) Set(key, value string) error {
	if err := t.tx.Set(valueKey(key), []byte(value)); err != nil {
		return unavailable("set", err)
	}
	return nil
}

func (t *badgerTxn) Delete(key string) error {
	if err := t.tx.Delete(valueKey(key)); err != nil {
		return unavailable("delete", err)
	}
	return nil
}

func (t *badgerTxn) Exists(key string) (bool, error) {
	_, err := t.tx.Get(valueKey(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, unavailable("exists", err)
	}
	return true, nil
}

func (t *badgerTxn) Increment(key string, by int64) (int64, error) {
	cur, ok, err := t.Get(key)
	if err != nil {
		return 0, err
	}
	var n int64
	if ok {
		n, err = strconv.ParseInt(cur, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("counter %s holds non-integer value %q", key, cur)
		}
	}
	n += by
	if err := t.Set(key, strconv.FormatInt(n, 10)); err != nil {
		return 0, err
	}
	return n, nil
}

func (t *badgerTxn) AddToSet(key, member string) (bool, error) {
	mk := memberKey(key, member)
	_, err := t.tx.Get(mk)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return false, unavailable("add_to_set", err)
	}
	if err := t.tx.Set(mk, nil); err != nil {
		return false, unavailable("add_to_set", err)
	}
	return true, nil
}

func (t *badgerTxn) SetContains(key, member string) (bool, error) {
	_, err := t.tx.Get(memberKey(key, member))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, unavailable("set_contains", err)
	}
	return true, nil
}

// Update runs fn in a single serializable transaction, retrying a
// bounded number of times when Badger reports an optimistic-locking
// conflict. fn re-runs from scratch on retry, so its reads always see
// the state its writes will apply against.
func (s *BadgerStore) Update(fn func(tx Txn) error) error {
	return s.update(func(btx *badger.Txn) error {
		return fn(&badgerTxn{tx: btx})
	})
}

func (s *BadgerStore) update(fn func(btx *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt <= maxTxnRetries; attempt++ {
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		slog.Debug("store batch conflict, retrying", "attempt", attempt+1)
	}
	return unavailable("update", err)
}

// Single-operation conveniences. Each runs in its own transaction.

func (s *BadgerStore) Get(key string) (string, bool, error) {
	var val string
	var ok bool
	err := s.db.View(func(btx *badger.Txn) error {
		var err error
		val, ok, err = (&badgerTxn{tx: btx}).Get(key)
		return err
	})
	return val, ok, err
}

func (s *BadgerStore) Set(key, value string) error {
	return s.Update(func(tx Txn) error { return tx.Set(key, value) })
}

func (s *BadgerStore) Delete(key string) error {
	return s.Update(func(tx Txn) error { return tx.Delete(key) })
}

func (s *BadgerStore) Exists(key string) (bool, error) {
	var ok bool
	err := s.db.View(func(btx *badger.Txn) error {
		var err error
		ok, err = (&badgerTxn{tx: btx}).Exists(key)
		return err
	})
	return ok, err
}

func (s *BadgerStore) Increment(key string, by int64) (int64, error) {
	var n int64
	err := s.Update(func(tx Txn) error {
		var err error
		n, err = tx.Increment(key, by)
		return err
	})
	return n, err
}

func (s *BadgerStore) AddToSet(key, member string) (bool, error) {
	var added bool
	err := s.Update(func(tx Txn) error {
		var err error
		added, err = tx.AddToSet(key, member)
		return err
	})
	return added, err
}

func (s *BadgerStore) SetContains(key, member string) (bool, error) {
	var ok bool
	err := s.db.View(func(btx *badger.Txn) error {
		var err error
		ok, err = (&badgerTxn{tx: btx}).SetContains(key, member)
		return err
	})
	return ok, err
}

func (s *BadgerStore) SetSize(key string) (int64, error) {
	var count int64
	err := s.db.View(func(btx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := btx.NewIterator(opts)
		defer it.Close()
		prefix := setMemberPrefix(key)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, unavailable("set_size", err)
	}
	return count, nil
}

func (s *BadgerStore) SetMembers(key string) ([]string, error) {
	var members []string
	err := s.db.View(func(btx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := btx.NewIterator(opts)
		defer it.Close()
		prefix := setMemberPrefix(key)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			k := it.Item().Key()
			members = append(members, string(k[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, unavailable("set_members", err)
	}
	return members, nil
}

func (s *BadgerStore) DeleteSet(key string) error {
	return s.update(func(btx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := btx.NewIterator(opts)
		prefix := setMemberPrefix(key)
		var doomed [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			doomed = append(doomed, it.Item().KeyCopy(nil))
		}
		it.Close()
		for _, k := range doomed {
			if err := btx.Delete(k); err != nil {
				return unavailable("delete_set", err)
			}
		}
		return nil
	})
}

// ScanKeys matches value keys against a glob pattern ("*", "?" and
// character classes, as in path.Match). Keys never contain '/', so the
// pattern applies to the whole key.
func (s *BadgerStore) ScanKeys(pattern string) ([]string, error) {
	// Everything before the first metacharacter narrows the iterator.
	literal := pattern
	for i, c := range pattern {
		if c == '*' || c == '?' || c == '[' || c == '\\' {
			literal = pattern[:i]
			break
		}
	}

	var keys []string
	err := s.db.View(func(btx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := btx.NewIterator(opts)
		defer it.Close()
		prefix := []byte(valuePrefix + literal)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key()[len(valuePrefix):])
			ok, err := path.Match(pattern, key)
			if err != nil {
				return fmt.Errorf("bad scan pattern %q: %w", pattern, err)
			}
			if ok {
				keys = append(keys, key)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *BadgerStore) MultiGet(keys []string) ([]*string, error) {
	out := make([]*string, len(keys))
	err := s.db.View(func(btx *badger.Txn) error {
		tx := &badgerTxn{tx: btx}
		for i, key := range keys {
			val, ok, err := tx.Get(key)
			if err != nil {
				return err
			}
			if ok {
				v := val
				out[i] = &v
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
