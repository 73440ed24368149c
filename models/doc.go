// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the shared domain and API types.

# User Identity

A user is identified by a (course, list number) pair serialized as a
single composite string:

	id := models.NewUserID("BD", 10) // "bd:10"

The course code is trimmed and lowercased; the same pair always yields
the same identity.

# API Types

Request and response structs mirror the JSON wire format one-to-one.
LeaderboardEntry and CourseStats are derived views, never stored.
*/
package models
