// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package accounts

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/coursevote/auth"
	"github.com/danielhkuo/coursevote/models"
	"github.com/danielhkuo/coursevote/store"
)

// ErrAlreadyRegistered is returned when a credential already exists
// for the user identity. The original hash is left untouched.
var ErrAlreadyRegistered = errors.New("user already registered")

func passwordKey(user models.UserID) string {
	return fmt.Sprintf("user:%s:password", user)
}

// CredentialStore persists one write-once credential record per user.
type CredentialStore struct {
	store store.Store
}

func NewCredentialStore(st store.Store) *CredentialStore {
	return &CredentialStore{store: st}
}

// Register derives a salted one-way hash from plaintext and persists it
// for user. Fails with ErrAlreadyRegistered if a credential exists.
// The existence check and the write share one atomic batch, so two
// concurrent registrations for the same identity cannot both succeed.
func (c *CredentialStore) Register(user models.UserID, plaintext string) error {
	hash, err := auth.HashPassword(plaintext)
	if err != nil {
		return err
	}

	key := passwordKey(user)
	err = c.store.Update(func(tx store.Txn) error {
		exists, err := tx.Exists(key)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyRegistered
		}
		return tx.Set(key, hash)
	})
	if err != nil {
		return err
	}

	slog.Info("user registered", "user_id", user)
	return nil
}

// Verify reports whether plaintext matches the stored credential.
// An unknown user verifies as false, not as an error, so callers can't
// distinguish a missing user from a wrong password.
func (c *CredentialStore) Verify(user models.UserID, plaintext string) (bool, error) {
	hash, ok, err := c.store.Get(passwordKey(user))
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return auth.CheckPassword(hash, plaintext), nil
}

// Exists reports whether a credential record exists for user.
func (c *CredentialStore) Exists(user models.UserID) (bool, error) {
	return c.store.Exists(passwordKey(user))
}
