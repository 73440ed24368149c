// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package accounts

import (
	"errors"
	"testing"

	"github.com/danielhkuo/coursevote/models"
	"github.com/danielhkuo/coursevote/store"
)

func setupCreds(t *testing.T) *CredentialStore {
	t.Helper()
	st, err := store.OpenInMemory()
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewCredentialStore(st)
}

func TestRegisterAndVerify(t *testing.T) {
	creds := setupCreds(t)
	user := models.NewUserID("bd", 10)

	if err := creds.Register(user, "hunter22"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	ok, err := creds.Verify(user, "hunter22")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !ok {
		t.Error("Expected correct password to verify")
	}

	ok, err = creds.Verify(user, "wrong")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if ok {
		t.Error("Expected wrong password to fail")
	}
}

func TestVerifyUnknownUser(t *testing.T) {
	creds := setupCreds(t)

	// Unknown user is false, not an error
	ok, err := creds.Verify(models.NewUserID("ml", 29), "whatever")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if ok {
		t.Error("Expected unknown user to verify false")
	}
}

func TestRegisterTwice(t *testing.T) {
	creds := setupCreds(t)
	user := models.NewUserID("bd", 10)

	if err := creds.Register(user, "original"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	err := creds.Register(user, "usurper")
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("Expected ErrAlreadyRegistered, got %v", err)
	}

	// The original credential must be untouched
	ok, _ := creds.Verify(user, "original")
	if !ok {
		t.Error("Expected original password to still verify")
	}
	ok, _ = creds.Verify(user, "usurper")
	if ok {
		t.Error("Expected second registration's password to fail")
	}
}

func TestIdentityNormalization(t *testing.T) {
	creds := setupCreds(t)

	// "  BD " and "bd" are the same identity
	if err := creds.Register(models.NewUserID("  BD ", 10), "s3cret"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	err := creds.Register(models.NewUserID("bd", 10), "other")
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("Expected ErrAlreadyRegistered for normalized identity, got %v", err)
	}

	ok, _ := creds.Verify(models.NewUserID("Bd", 10), "s3cret")
	if !ok {
		t.Error("Expected login with differently-cased course to verify")
	}
}

func TestExists(t *testing.T) {
	creds := setupCreds(t)
	user := models.NewUserID("ml", 5)

	ok, err := creds.Exists(user)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if ok {
		t.Error("Expected user not to exist yet")
	}

	creds.Register(user, "passw0rd")

	ok, _ = creds.Exists(user)
	if !ok {
		t.Error("Expected user to exist after registration")
	}
}
