// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes using Go 1.22+ method+path
patterns.

NewRouter wires the core components (credential store, proposal
registry, vote ledger, leaderboard view) onto the one store handle it
is given and registers every endpoint behind the logging middleware.
/health and /metrics are unlogged.
*/
package router
