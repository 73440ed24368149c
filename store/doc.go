// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store provides a thin key-value contract with counters, sets and
atomic batches, backed by an embedded Badger database.

# Contract

Store exposes plain values (Get/Set/Delete/Exists), integer counters
(Increment), sets (AddToSet/SetContains/SetSize/SetMembers/DeleteSet),
glob key scans (ScanKeys), batched reads (MultiGet) and atomic batches
(Update). It carries no business logic; key layout belongs to callers.

# Atomic Batches

Update runs its callback inside one serializable transaction:

	err := st.Update(func(tx store.Txn) error {
		n, _, _ := tx.Get("counter")
		...
		return tx.Set("counter", next)
	})

All reads and writes in the callback apply as a single indivisible unit.
On optimistic-locking conflict the callback re-runs from scratch, so
read-then-conditionally-write sequences never interleave with competing
batches on the same keys.

# Failure Mode

Storage-level failures wrap ErrUnavailable:

	if errors.Is(err, store.ErrUnavailable) { ... }

Callers must not assume partial application of a failed batch: a batch
either commits fully or not at all.

# Backends

Open(dir) opens an on-disk database; OpenInMemory() backs tests.
*/
package store
