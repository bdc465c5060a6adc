// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

var globalDynMeta *DynMeta

// GetGlobalDynMeta returns the lazily created shared DynMeta instance.
func GetGlobalDynMeta() *DynMeta {
	if globalDynMeta == nil {
		globalDynMeta = NewDynMeta()
	}
	return globalDynMeta
}

// SetGlobalOptions replaces the shared instance with a freshly configured
// one. Previously cached reflectors are discarded.
func SetGlobalOptions(opts ...Option) {
	globalDynMeta = NewDynMeta(opts...)
}
