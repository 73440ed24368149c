// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Logging

WithLogging logs request start and completion with a per-request UUID:

	mux.HandleFunc("POST /register", middleware.WithLogging(handler.Register))

# JSON Helpers

JSONResponse and ErrorResponse write JSON bodies with the right
Content-Type; ParseJSONBody decodes a request body.

# CORS

CORS wraps the whole mux and answers preflight requests. The custom
headers X-Auth-Token and X-Admin-Key are allowed through.
*/
package middleware
