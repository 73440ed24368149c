// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import "errors"

// ErrUnavailable is returned when the underlying store cannot serve a
// request. Callers may retry reads; writes must re-verify state first.
var ErrUnavailable = errors.New("store unavailable")

// Txn is the set of operations available inside an atomic batch.
// All operations in a single Update callback apply as one indivisible
// unit relative to other batches touching the same keys.
type Txn interface {
	// Get returns the value for key, and whether the key exists.
	Get(key string) (string, bool, error)
	// Set stores value under key, overwriting any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Exists reports whether key holds a value.
	Exists(key string) (bool, error)
	// Increment adds by to the integer counter at key (missing keys
	// count as 0) and returns the new value.
	Increment(key string, by int64) (int64, error)
	// AddToSet adds member to the set at key. Returns true if the
	// member was newly added, false if it was already present.
	AddToSet(key, member string) (bool, error)
	// SetContains reports whether member is in the set at key.
	SetContains(key, member string) (bool, error)
}

// Store is a minimal contract over a key-value store with counters and
// sets. It carries no business logic; key layout is the caller's
// concern.
type Store interface {
	Txn

	// SetSize returns the number of members in the set at key.
	SetSize(key string) (int64, error)
	// SetMembers returns all members of the set at key, unordered.
	SetMembers(key string) ([]string, error)
	// DeleteSet removes the set at key and all its members as one
	// atomic batch. Deleting a missing set is not an error.
	DeleteSet(key string) error
	// ScanKeys returns all value keys matching a glob pattern
	// (e.g. "user:bd:*:votes"). Order is unspecified.
	ScanKeys(pattern string) ([]string, error)
	// MultiGet returns one entry per requested key; missing keys
	// yield a nil entry.
	MultiGet(keys []string) ([]*string, error)
	// Update runs fn inside an atomic batch. fn may be retried on
	// write conflict, so it must re-read any state it depends on and
	// must not have side effects outside the transaction.
	Update(fn func(tx Txn) error) error
	// Close releases the store.
	Close() error
}
