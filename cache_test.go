// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

import (
	"reflect"
	"sync"
	"testing"
)

func TestReflectorCacheIdentity(t *testing.T) {
	dm := NewDynMeta()

	first, err := dm.Reflect(reflect.TypeOf(Order{}))
	if err != nil {
		t.Fatal(err)
	}
	second, err := dm.Reflect(reflect.TypeOf(Order{}))
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected repeated lookups to return the identical reflector")
	}

	// Pointer types unwrap to the same cache entry.
	third, err := dm.Reflect(reflect.TypeOf(&Order{}))
	if err != nil {
		t.Fatal(err)
	}
	if first != third {
		t.Error("expected pointer type to share the element type's reflector")
	}
}

func TestReflectorCacheConcurrency(t *testing.T) {
	dm := NewDynMeta()

	const goroutines = 16
	results := make([]*Reflector, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			reflector, err := dm.Reflect(reflect.TypeOf(Order{}))
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = reflector
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent lookups returned different reflector instances")
		}
	}
}

func TestReflectorCacheManagement(t *testing.T) {
	dm := NewDynMeta()
	cache := dm.GetReflectorCache()

	if _, err := dm.Reflect(reflect.TypeOf(Order{})); err != nil {
		t.Fatal(err)
	}
	if _, err := dm.Reflect(reflect.TypeOf(Customer{})); err != nil {
		t.Fatal(err)
	}

	// Building Order pulls in nothing else; two explicit lookups, two entries.
	if got := len(cache.CachedTypes()); got != 2 {
		t.Errorf("cached types = %d, want 2", got)
	}

	cache.Remove(reflect.TypeOf(Order{}))
	if got := len(cache.CachedTypes()); got != 1 {
		t.Errorf("cached types after Remove = %d, want 1", got)
	}

	cache.RemoveAll()
	if got := len(cache.CachedTypes()); got != 0 {
		t.Errorf("cached types after RemoveAll = %d, want 0", got)
	}
}
