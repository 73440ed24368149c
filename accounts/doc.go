// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package accounts is the credential store: one write-once record per
user identity under "user:{course}:{number}:password".

Register hashes with bcrypt and refuses to overwrite an existing
credential. Verify returns false (never an error) for unknown users so
a failed login doesn't reveal which half was wrong.
*/
package accounts
