// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package seed populates a store with demo users, proposals and votes for
local development. Enabled with the -seed flag; safe to re-run.
*/
package seed
