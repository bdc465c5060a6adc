// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

import (
	"errors"
	"reflect"
	"testing"
)

type document struct {
	Payload any
}

func TestWrapperSelection(t *testing.T) {
	dm := NewDynMeta()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"struct", Order{}, "*dynmeta.structWrapper"},
		{"struct pointer", &Order{}, "*dynmeta.structWrapper"},
		{"map", map[string]int{}, "*dynmeta.mapWrapper"},
		{"slice", []int{1}, "*dynmeta.sliceWrapper"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := dm.MetaFor(tt.value)
			if err != nil {
				t.Fatal(err)
			}
			if got := reflect.TypeOf(meta.wrapper).String(); got != tt.want {
				t.Errorf("wrapper = %s, want %s", got, tt.want)
			}
		})
	}

	t.Run("scalar is not wrappable", func(t *testing.T) {
		if _, err := dm.MetaFor(42); !errors.Is(err, ErrNotSupported) {
			t.Errorf("expected ErrNotSupported, got %v", err)
		}
	})
}

func TestDynamicGetterType(t *testing.T) {
	dm := NewDynMeta()

	// The static type of Payload is interface{}; the live value decides how
	// deep paths resolve.
	doc := &document{Payload: map[string]any{"size": 10}}
	meta, err := dm.MetaFor(doc)
	if err != nil {
		t.Fatal(err)
	}

	got, err := meta.GetterType("Payload.size")
	if err != nil {
		t.Fatal(err)
	}
	if got != reflect.TypeOf(0) {
		t.Errorf("GetterType(Payload.size) = %s, want int", got)
	}

	if !meta.HasGetter("Payload.size") {
		t.Error("expected live map entry to be readable")
	}
}

func TestSliceWrapperRestrictions(t *testing.T) {
	dm := NewDynMeta()

	meta, err := dm.MetaFor([]int{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if !meta.IsCollection() {
		t.Fatal("expected slice to be a collection")
	}
	if _, err := meta.GetValue("anything"); err == nil {
		t.Error("expected property access on slice to fail")
	}

	// The slice value was passed detached, appending cannot reach the
	// caller's storage.
	if err := meta.Add(3); err == nil {
		t.Error("expected Add on detached slice to fail")
	}
}

type constantWrapperFactory struct{}

type constantWrapper struct {
	sliceWrapper
}

func (w *constantWrapper) Get(*PropertyTokenizer) (reflect.Value, error) {
	return reflect.ValueOf("constant"), nil
}

func (f constantWrapperFactory) HasWrapperFor(value reflect.Value) bool {
	return value.IsValid() && value.Kind() == reflect.String
}

func (f constantWrapperFactory) GetWrapperFor(meta *MetaObject, value reflect.Value) (ObjectWrapper, error) {
	return &constantWrapper{}, nil
}

func TestCustomWrapperFactory(t *testing.T) {
	dm := NewDynMeta(WithWrapperFactory(constantWrapperFactory{}))

	meta, err := dm.MetaFor("hello")
	if err != nil {
		t.Fatal(err)
	}
	got, err := meta.GetValue("anything")
	if err != nil {
		t.Fatal(err)
	}
	if got != "constant" {
		t.Errorf("GetValue through custom wrapper = %v, want constant", got)
	}
}
