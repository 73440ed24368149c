// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package proposals is the proposal registry.

Create reserves a monotonic ID from "proposals:id_counter" and writes
the immutable text plus an initial score of 0 in one atomic batch.
ListIDs discovers proposals by scanning text records rather than
trusting the counter, so an ID whose write never landed is silently
skipped. GetTexts is a batch lookup that omits missing IDs.

The key builders (TextKey, ScoreKey, VotersKey) define the proposal
half of the persisted key layout and are shared with the vote ledger
and leaderboard view.
*/
package proposals
