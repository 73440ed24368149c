// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the coursevote API server.

coursevote is a student proposal-voting service: students register with
a (course, list number) identity, submit proposals, spend up to 3 votes
each, and watch a ranked leaderboard.

# Starting the Server

The server requires environment variables or CLI flags for
configuration:

	DATA_DIR=./data ADMIN_KEY_SALT=... SESSION_TOKEN_SALT=... go run main.go

Or with flags:

	go run main.go -p 3319 -d ./data --admin-salt ... --session-salt ...

Pass -seed to load demo users and proposals on startup.

# Configuration

Required settings:

  - DATA_DIR (-d): store data directory
  - ADMIN_KEY_SALT (--admin-salt): secret for the admin key HMAC
  - SESSION_TOKEN_SALT (--session-salt): secret for session tokens

Optional settings:

  - PORT (-p): server port (default: 3319)

# Architecture

The server uses a handler-based architecture with dependency injection.
All mutable state lives in one embedded key-value store handle, opened
once and passed to every component:

  - store: key-value adapter with counters, sets and atomic batches
  - accounts: write-once credential records (bcrypt)
  - proposals: monotonic-ID proposal registry
  - votes: the vote ledger (quota, uniqueness, aggregate scores)
  - leaderboard: ranked projection of proposal scores
  - handlers, router, middleware: the HTTP surface
  - auth: password hashing, session tokens, admin key
  - metrics: Prometheus collectors
  - seed: demo fixture for local development

See package documentation for each component.
*/
package main
