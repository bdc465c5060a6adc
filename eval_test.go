// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

import "testing"

func TestEvaluate(t *testing.T) {
	dm := NewDynMeta()
	order := &Order{Price: 2.5, Quantity: 4}

	t.Run("arithmetic over properties", func(t *testing.T) {
		result, err := dm.Evaluate("Price * Quantity", order)
		if err != nil {
			t.Fatal(err)
		}
		if result != float64(10) {
			t.Errorf("result = %v, want 10", result)
		}
	})

	t.Run("comparison", func(t *testing.T) {
		result, err := dm.Evaluate("Price > 1 && Quantity < 10", order)
		if err != nil {
			t.Fatal(err)
		}
		if result != true {
			t.Errorf("result = %v, want true", result)
		}
	})

	t.Run("parse error", func(t *testing.T) {
		if _, err := dm.Evaluate("Price *", order); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("expression cache", func(t *testing.T) {
		if _, err := dm.Evaluate("Price + 1", order); err != nil {
			t.Fatal(err)
		}
		if _, ok := dm.exprCache["Price + 1"]; !ok {
			t.Error("expected parsed expression to be cached")
		}
	})
}
