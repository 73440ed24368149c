// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration parsing.

Settings come from CLI flags with environment-variable fallback:

  - PORT (-p): server port (default 3319)
  - DATA_DIR (-d): store data directory (required)
  - ADMIN_KEY_SALT (--admin-salt): secret for the admin key HMAC (required)
  - SESSION_TOKEN_SALT (--session-salt): secret for session token HMAC (required)
  - -seed: seed demo users and proposals on startup

Secrets should come from the environment; the flags exist for local
development.
*/
package cliparse
