// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

import (
	"reflect"
	"sync"
)

// ReflectorCache manages cached reflectors per struct type.
//
// Analysis of a type happens at most once; concurrent callers asking for the
// same type receive the same *Reflector instance.
type ReflectorCache struct {
	dm         *DynMeta
	mutex      sync.RWMutex
	reflectors map[reflect.Type]*Reflector
}

// NewReflectorCache creates a new reflector cache bound to a DynMeta
// instance.
func NewReflectorCache(dm *DynMeta) *ReflectorCache {
	return &ReflectorCache{
		dm:         dm,
		reflectors: make(map[reflect.Type]*Reflector),
	}
}

// FindForType returns the cached reflector for the given struct type,
// computing it if necessary. Pointer types are unwrapped to their element
// type first.
func (rc *ReflectorCache) FindForType(t reflect.Type) (*Reflector, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	// Check cache first (read lock)
	rc.mutex.RLock()
	if reflector, exists := rc.reflectors[t]; exists {
		rc.mutex.RUnlock()
		return reflector, nil
	}
	rc.mutex.RUnlock()

	// If not in cache, build and cache it (write lock)
	rc.mutex.Lock()
	defer rc.mutex.Unlock()

	if reflector, exists := rc.reflectors[t]; exists {
		return reflector, nil
	}

	reflector, err := newReflector(t, rc.dm.registry)
	if err != nil {
		return nil, err
	}
	rc.reflectors[t] = reflector

	if rc.dm.Verbose {
		rc.dm.logf("built reflector for %s (%d readable, %d writable)", t, len(reflector.readableNames), len(reflector.writableNames))
	}
	return reflector, nil
}

// CachedTypes returns a snapshot of all types with a cached reflector.
func (rc *ReflectorCache) CachedTypes() []reflect.Type {
	rc.mutex.RLock()
	defer rc.mutex.RUnlock()

	types := make([]reflect.Type, 0, len(rc.reflectors))
	for t := range rc.reflectors {
		types = append(types, t)
	}
	return types
}

// Remove evicts the cached reflector for a single type. It is a management
// aid for tests and tooling; normal operation never evicts.
func (rc *ReflectorCache) Remove(t reflect.Type) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	rc.mutex.Lock()
	defer rc.mutex.Unlock()
	delete(rc.reflectors, t)
}

// RemoveAll evicts all cached reflectors. Like Remove, it sits outside the
// normal populate-once lifecycle.
func (rc *ReflectorCache) RemoveAll() {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()
	rc.reflectors = make(map[reflect.Type]*Reflector)
}
