// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package votes is the vote ledger, the accounting core of the service.

State per proposal: a voter-membership set and an integer score. State
per user: an integer count of votes cast. The ledger maintains, at all
times:

  - a user's counter equals the number of voter sets containing them
  - no counter exceeds MaxVotes (3); the check runs before any mutation
  - a user appears in a given voter set at most once
  - a proposal's score equals the size of its voter set

Cast holds all four guarantees by running its checks and its three
writes (set add, user counter, proposal score) inside one atomic store
batch. A vote, once cast, is permanent.

Remaining, Score and CourseStats are read-only projections of the same
state; nothing is cached between requests.
*/
package votes
