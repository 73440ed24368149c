// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/coursevote/models"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrInvalidAdminKey = errors.New("invalid admin key")
)

// HashPassword derives a salted one-way bcrypt hash from a plaintext
// password. The plaintext is never stored or logged.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored bcrypt
// hash. bcrypt's own comparison is constant-time over the digest.
func CheckPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// sign computes an HMAC-SHA256 signature over msg, URL-safe base64
// encoded with padding trimmed for cleaner tokens
func sign(msg, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(msg))
	return strings.TrimRight(base64.URLEncoding.EncodeToString(h.Sum(nil)), "=")
}

// GenerateSessionToken creates a signed token carrying the user
// identity: "user_id.signature". Deterministic and verifiable without
// any server-side session state.
func GenerateSessionToken(userID models.UserID, salt string) string {
	return string(userID) + "." + sign(string(userID), salt)
}

// ValidateSessionToken checks a session token's signature and returns
// the user identity it carries.
func ValidateSessionToken(token, salt string) (models.UserID, error) {
	i := strings.LastIndexByte(token, '.')
	if i <= 0 || i == len(token)-1 {
		return "", ErrInvalidToken
	}
	userID, sig := token[:i], token[i+1:]
	expected := sign(userID, salt)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrInvalidToken
	}
	return models.UserID(userID), nil
}

// GenerateAdminKey creates the HMAC-based administrative key.
// Deterministic from the salt, so it never needs to be stored.
func GenerateAdminKey(salt string) string {
	return sign("coursevote:admin", salt)
}

// ValidateAdminKey checks a provided admin key.
func ValidateAdminKey(adminKey, salt string) error {
	expected := GenerateAdminKey(salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}
