// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

import "testing"

func TestGlobalInstance(t *testing.T) {
	// Reset global state after test
	defer func() {
		globalDynMeta = nil
	}()

	t.Run("GetGlobalDynMeta returns stable instance", func(t *testing.T) {
		first := GetGlobalDynMeta()
		if first == nil {
			t.Fatal("expected GetGlobalDynMeta to return non-nil")
		}
		if second := GetGlobalDynMeta(); second != first {
			t.Error("expected repeated calls to return the same instance")
		}
	})

	t.Run("SetGlobalOptions replaces instance", func(t *testing.T) {
		before := GetGlobalDynMeta()
		SetGlobalOptions(WithVerbose())
		after := GetGlobalDynMeta()
		if after == before {
			t.Error("expected SetGlobalOptions to create a fresh instance")
		}
		if !after.Verbose {
			t.Error("expected option to be applied to the new instance")
		}
	})
}
