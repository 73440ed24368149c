// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and token utilities.

# Passwords

Passwords are hashed with bcrypt (salted, one-way):

	hash, err := auth.HashPassword(plaintext)
	ok := auth.CheckPassword(hash, plaintext)

CheckPassword uses bcrypt's own verification routine, which compares
digests in constant time.

# Session Tokens

Session tokens are HMAC-SHA256 signed user identities:

	token := auth.GenerateSessionToken(userID, salt)
	userID, err := auth.ValidateSessionToken(token, salt)

The token is "user_id.signature" with a URL-safe base64 signature and
no padding. Since it's deterministic, validation needs no server-side
session storage.

# Admin Key

The administrative key is an HMAC over a fixed subject:

	key := auth.GenerateAdminKey(salt)
	err := auth.ValidateAdminKey(key, salt)

Same idea: deterministic from the salt, never stored.
*/
package auth
