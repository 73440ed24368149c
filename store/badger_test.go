// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"sort"
	"sync"
	"testing"
)

func setupStore(t *testing.T) *BadgerStore {
	t.Helper()
	st, err := OpenInMemory()
	if err != nil {
		t.Fatalf("Failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestGetSetExists(t *testing.T) {
	st := setupStore(t)

	_, ok, err := st.Get("missing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Expected missing key to report ok=false")
	}

	if err := st.Set("greeting", "hello"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, ok, err := st.Get("greeting")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || val != "hello" {
		t.Errorf("Expected (hello, true), got (%s, %v)", val, ok)
	}

	exists, err := st.Exists("greeting")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("Expected greeting to exist")
	}

	if err := st.Delete("greeting"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	exists, _ = st.Exists("greeting")
	if exists {
		t.Error("Expected greeting to be gone after Delete")
	}
}

func TestIncrement(t *testing.T) {
	st := setupStore(t)

	// Missing counter starts at 0
	n, err := st.Increment("counter", 1)
	if err != nil {
		t.Fatalf("Increment failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1, got %d", n)
	}

	n, err = st.Increment("counter", 5)
	if err != nil {
		t.Fatalf("Increment failed: %v", err)
	}
	if n != 6 {
		t.Errorf("Expected 6, got %d", n)
	}

	// Non-integer value is an error, not silent corruption
	if err := st.Set("garbage", "not-a-number"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Increment("garbage", 1); err == nil {
		t.Error("Expected error incrementing non-integer value")
	}
}

func TestSets(t *testing.T) {
	st := setupStore(t)

	added, err := st.AddToSet("voters", "bd:10")
	if err != nil {
		t.Fatalf("AddToSet failed: %v", err)
	}
	if !added {
		t.Error("Expected first add to report newly added")
	}

	// Idempotent membership
	added, err = st.AddToSet("voters", "bd:10")
	if err != nil {
		t.Fatalf("AddToSet failed: %v", err)
	}
	if added {
		t.Error("Expected second add to report already present")
	}

	ok, err := st.SetContains("voters", "bd:10")
	if err != nil {
		t.Fatalf("SetContains failed: %v", err)
	}
	if !ok {
		t.Error("Expected bd:10 to be a member")
	}

	ok, _ = st.SetContains("voters", "ml:5")
	if ok {
		t.Error("Expected ml:5 not to be a member")
	}

	st.AddToSet("voters", "ml:5")
	st.AddToSet("voters", "bd:21")

	size, err := st.SetSize("voters")
	if err != nil {
		t.Fatalf("SetSize failed: %v", err)
	}
	if size != 3 {
		t.Errorf("Expected set size 3, got %d", size)
	}

	members, err := st.SetMembers("voters")
	if err != nil {
		t.Fatalf("SetMembers failed: %v", err)
	}
	sort.Strings(members)
	want := []string{"bd:10", "bd:21", "ml:5"}
	if len(members) != len(want) {
		t.Fatalf("Expected %v, got %v", want, members)
	}
	for i := range want {
		if members[i] != want[i] {
			t.Errorf("Expected member %s, got %s", want[i], members[i])
		}
	}

	if err := st.DeleteSet("voters"); err != nil {
		t.Fatalf("DeleteSet failed: %v", err)
	}
	size, _ = st.SetSize("voters")
	if size != 0 {
		t.Errorf("Expected empty set after DeleteSet, got size %d", size)
	}
}

func TestSetsAndValuesAreSeparateNamespaces(t *testing.T) {
	st := setupStore(t)

	st.Set("thing", "value")
	st.AddToSet("thing", "member")

	val, ok, _ := st.Get("thing")
	if !ok || val != "value" {
		t.Errorf("Set member clobbered plain value: got (%s, %v)", val, ok)
	}
	size, _ := st.SetSize("thing")
	if size != 1 {
		t.Errorf("Expected set size 1, got %d", size)
	}
}

func TestScanKeys(t *testing.T) {
	st := setupStore(t)

	st.Set("user:bd:10:votes", "3")
	st.Set("user:bd:3:votes", "1")
	st.Set("user:ml:7:votes", "2")
	st.Set("user:bd:10:password", "hash")
	st.Set("proposal:1:text", "Free coffee")

	keys, err := st.ScanKeys("user:bd:*:votes")
	if err != nil {
		t.Fatalf("ScanKeys failed: %v", err)
	}
	sort.Strings(keys)
	want := []string{"user:bd:10:votes", "user:bd:3:votes"}
	if len(keys) != len(want) {
		t.Fatalf("Expected %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Expected key %s, got %s", want[i], keys[i])
		}
	}

	// No matches is an empty result, not an error
	keys, err = st.ScanKeys("user:cs:*:votes")
	if err != nil {
		t.Fatalf("ScanKeys failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("Expected no matches, got %v", keys)
	}
}

func TestMultiGet(t *testing.T) {
	st := setupStore(t)

	st.Set("a", "1")
	st.Set("c", "3")

	vals, err := st.MultiGet([]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("MultiGet failed: %v", err)
	}
	if len(vals) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(vals))
	}
	if vals[0] == nil || *vals[0] != "1" {
		t.Error("Expected a=1")
	}
	if vals[1] != nil {
		t.Error("Expected missing b to be nil")
	}
	if vals[2] == nil || *vals[2] != "3" {
		t.Error("Expected c=3")
	}
}

func TestUpdateRollsBackOnError(t *testing.T) {
	st := setupStore(t)

	sentinel := errors.New("business rule says no")
	err := st.Update(func(tx Txn) error {
		if err := tx.Set("written", "yes"); err != nil {
			return err
		}
		if _, err := tx.Increment("bumped", 1); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("Expected sentinel error, got %v", err)
	}

	// Nothing from the failed batch may be visible
	if ok, _ := st.Exists("written"); ok {
		t.Error("Expected write to be rolled back")
	}
	if ok, _ := st.Exists("bumped"); ok {
		t.Error("Expected increment to be rolled back")
	}
}

func TestConcurrentUpdatesSerialize(t *testing.T) {
	st := setupStore(t)

	// Read-modify-write from many goroutines; conflicts must retry,
	// never interleave.
	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := st.Update(func(tx Txn) error {
				_, err := tx.Increment("shared", 1)
				return err
			})
			if err != nil {
				t.Errorf("Update failed: %v", err)
			}
		}()
	}
	wg.Wait()

	val, _, err := st.Get("shared")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != "20" {
		t.Errorf("Expected counter 20, got %s", val)
	}
}
