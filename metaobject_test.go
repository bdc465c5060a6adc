// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

import (
	"testing"
)

func TestMetaObjectGetValue(t *testing.T) {
	dm := NewDynMeta()
	order := &Order{
		ID: 7,
		Customer: &Customer{
			Name:    "alice",
			Address: &Address{City: "Berlin", Zip: "10115"},
			Tags:    map[string]string{"tier": "gold"},
		},
		Items: []Item{{Name: "first", Count: 1}, {Name: "second", Count: 2}},
	}

	meta, err := dm.MetaFor(order)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want any
	}{
		{"direct field", "ID", 7},
		{"nested path", "Customer.Address.City", "Berlin"},
		{"map entry", "Customer.Tags.tier", "gold"},
		{"map entry via index", "Customer.Tags[tier]", "gold"},
		{"indexed element field", "Items[1].Name", "second"},
		{"missing map entry is null", "Customer.Tags.bogus", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := meta.GetValue(tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("GetValue(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}

	t.Run("null intermediate short-circuits", func(t *testing.T) {
		empty, err := dm.MetaFor(&Order{})
		if err != nil {
			t.Fatal(err)
		}
		got, err := empty.GetValue("Customer.Address.City")
		if err != nil {
			t.Fatal(err)
		}
		if got != nil {
			t.Errorf("expected nil through null intermediate, got %v", got)
		}
	})

	t.Run("unknown property errors", func(t *testing.T) {
		if _, err := meta.GetValue("Bogus"); err == nil {
			t.Error("expected error for unknown property")
		}
	})
}

func TestMetaObjectSetValue(t *testing.T) {
	dm := NewDynMeta()

	t.Run("direct write", func(t *testing.T) {
		order := &Order{}
		if err := dm.SetValue(order, "ID", 42); err != nil {
			t.Fatal(err)
		}
		if order.ID != 42 {
			t.Errorf("ID = %d, want 42", order.ID)
		}
	})

	t.Run("auto instantiation of intermediates", func(t *testing.T) {
		order := &Order{}
		if err := dm.SetValue(order, "Customer.Address.City", "Berlin"); err != nil {
			t.Fatal(err)
		}
		if order.Customer == nil || order.Customer.Address == nil {
			t.Fatal("expected intermediate values to be instantiated")
		}
		if order.Customer.Address.City != "Berlin" {
			t.Errorf("City = %q, want Berlin", order.Customer.Address.City)
		}
	})

	t.Run("null write through missing parent is a no-op", func(t *testing.T) {
		order := &Order{}
		if err := dm.SetValue(order, "Customer.Name", nil); err != nil {
			t.Fatal(err)
		}
		if order.Customer != nil {
			t.Error("expected no instantiation when writing null")
		}
	})

	t.Run("map entry creation", func(t *testing.T) {
		order := &Order{Customer: &Customer{}}
		if err := dm.SetValue(order, "Customer.Tags.tier", "gold"); err != nil {
			t.Fatal(err)
		}
		if order.Customer.Tags["tier"] != "gold" {
			t.Errorf("Tags[tier] = %q, want gold", order.Customer.Tags["tier"])
		}
	})

	t.Run("indexed write allocates nil map", func(t *testing.T) {
		order := &Order{Customer: &Customer{}}
		if err := dm.SetValue(order, "Customer.Tags[tier]", "gold"); err != nil {
			t.Fatal(err)
		}
		if order.Customer.Tags["tier"] != "gold" {
			t.Errorf("Tags[tier] = %q, want gold", order.Customer.Tags["tier"])
		}
	})

	t.Run("indexed element write", func(t *testing.T) {
		order := &Order{Items: []Item{{Name: "old"}}}
		if err := dm.SetValue(order, "Items[0].Name", "new"); err != nil {
			t.Fatal(err)
		}
		if order.Items[0].Name != "new" {
			t.Errorf("Items[0].Name = %q, want new", order.Items[0].Name)
		}
	})

	t.Run("out of range index errors", func(t *testing.T) {
		order := &Order{}
		if err := dm.SetValue(order, "Items[3].Name", "x"); err == nil {
			t.Error("expected error for out of range index")
		}
	})
}

func TestMetaObjectAccessorMethods(t *testing.T) {
	dm := NewDynMeta()
	account := &Account{}

	if err := dm.SetValue(account, "Name", "bob"); err != nil {
		t.Fatal(err)
	}
	if account.name != "bob" {
		t.Errorf("name = %q, want bob", account.name)
	}

	account.active = true
	got, err := dm.GetValue(account, "Active")
	if err != nil {
		t.Fatal(err)
	}
	if got != true {
		t.Errorf("Active = %v, want true", got)
	}
}

func TestMetaObjectCollections(t *testing.T) {
	dm := NewDynMeta()

	t.Run("add to slice property", func(t *testing.T) {
		order := &Order{}
		meta, err := dm.MetaFor(order)
		if err != nil {
			t.Fatal(err)
		}
		items, err := meta.MetaObjectForProperty("Items")
		if err != nil {
			t.Fatal(err)
		}
		// A nil slice is null; give it storage first.
		if items.IsNull() {
			order.Items = []Item{}
			items, err = meta.MetaObjectForProperty("Items")
			if err != nil {
				t.Fatal(err)
			}
		}
		if !items.IsCollection() {
			t.Fatal("expected slice property to be a collection")
		}
		if err := items.Add(Item{Name: "added"}); err != nil {
			t.Fatal(err)
		}
		if err := items.AddAll([]any{Item{Name: "more"}, Item{Name: "evenmore"}}); err != nil {
			t.Fatal(err)
		}
		if len(order.Items) != 3 {
			t.Fatalf("items = %d, want 3", len(order.Items))
		}
		if order.Items[0].Name != "added" || order.Items[2].Name != "evenmore" {
			t.Error("unexpected element order after Add/AddAll")
		}
	})

	t.Run("struct is not a collection", func(t *testing.T) {
		meta, err := dm.MetaFor(&Order{})
		if err != nil {
			t.Fatal(err)
		}
		if meta.IsCollection() {
			t.Error("struct should not report as collection")
		}
		if err := meta.Add(1); err == nil {
			t.Error("expected Add on struct to fail")
		}
	})
}

func TestMetaObjectOnMapRoot(t *testing.T) {
	dm := NewDynMeta()
	root := map[string]any{
		"config": map[string]any{"name": "svc"},
	}

	meta, err := dm.MetaFor(root)
	if err != nil {
		t.Fatal(err)
	}

	got, err := meta.GetValue("config.name")
	if err != nil {
		t.Fatal(err)
	}
	if got != "svc" {
		t.Errorf("config.name = %v, want svc", got)
	}

	if err := meta.SetValue("config.port", 8080); err != nil {
		t.Fatal(err)
	}
	inner := root["config"].(map[string]any)
	if inner["port"] != 8080 {
		t.Errorf("config.port = %v, want 8080", inner["port"])
	}

	// Missing intermediates materialize as nested maps.
	if err := meta.SetValue("extra.deep.key", "v"); err != nil {
		t.Fatal(err)
	}
	extra := root["extra"].(map[string]any)
	deep := extra["deep"].(map[string]any)
	if deep["key"] != "v" {
		t.Errorf("extra.deep.key = %v, want v", deep["key"])
	}
}

func TestMetaObjectNull(t *testing.T) {
	dm := NewDynMeta()

	meta, err := dm.MetaFor(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !meta.IsNull() {
		t.Fatal("expected null MetaObject for nil")
	}
	got, err := meta.GetValue("anything")
	if err != nil || got != nil {
		t.Errorf("GetValue on null = (%v, %v), want (nil, nil)", got, err)
	}
	if err := meta.SetValue("anything", 1); err == nil {
		t.Error("expected SetValue on null to fail")
	}
}
