// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package leaderboard projects proposal scores into a ranked listing.

Rank enumerates live proposals, batch-fetches texts and scores, drops
anything missing a text, and sorts by score descending with ascending
proposal ID as the tie-break. Top truncates after sorting.
*/
package leaderboard
