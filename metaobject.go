// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

import (
	"fmt"
	"reflect"
)

// MetaObject navigates property paths on a live value. Reads short-circuit to
// null when an intermediate value is missing; writes instantiate missing
// intermediates through the object factory, except when the value being
// written is itself null, in which case the write silently does nothing.
//
// For writes to reach the caller's storage the root value must be passed as a
// pointer; a value root can be read but its nested writes fail with an
// addressability error.
type MetaObject struct {
	dm      *DynMeta
	value   reflect.Value
	wrapper ObjectWrapper
}

// MetaFor wraps a value for dynamic property navigation. A nil or null-like
// value yields the null MetaObject, on which reads return null and writes
// fail.
func (d *DynMeta) MetaFor(obj any) (*MetaObject, error) {
	meta := &MetaObject{dm: d}
	return meta.metaForValue(reflect.ValueOf(obj))
}

// metaForValue wraps a reflect.Value, preserving its addressability.
func (m *MetaObject) metaForValue(value reflect.Value) (*MetaObject, error) {
	meta := &MetaObject{dm: m.dm, value: value}
	if isNullValue(value) {
		return meta, nil
	}
	wrapper, err := wrapperFor(meta, value)
	if err != nil {
		return nil, err
	}
	meta.wrapper = wrapper
	return meta, nil
}

func isNullValue(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// IsNull reports whether this MetaObject wraps a missing value.
func (m *MetaObject) IsNull() bool {
	return m.wrapper == nil
}

// Value returns the wrapped value, or nil for the null MetaObject.
func (m *MetaObject) Value() any {
	if isNullValue(m.value) || !m.value.CanInterface() {
		return nil
	}
	return m.value.Interface()
}

// Type returns the wrapped value's type, or nil for the null MetaObject.
func (m *MetaObject) Type() reflect.Type {
	if !m.value.IsValid() {
		return nil
	}
	return m.value.Type()
}

// GetValue reads a property path. A path that runs through a missing
// intermediate value returns nil without an error; a path segment that does
// not exist on its type is an error.
func (m *MetaObject) GetValue(path string) (any, error) {
	if m.IsNull() {
		return nil, nil
	}
	token := TokenizeProperty(path)
	if token.HasNext() {
		metaValue, err := m.MetaObjectForProperty(token.IndexedName)
		if err != nil {
			return nil, err
		}
		if metaValue.IsNull() {
			return nil, nil
		}
		return metaValue.GetValue(token.Children)
	}

	value, err := m.wrapper.Get(token)
	if err != nil {
		return nil, err
	}
	if isNullValue(value) || !value.CanInterface() {
		return nil, nil
	}
	return value.Interface(), nil
}

// SetValue writes a property path. Missing intermediate values are created
// through the object factory and stored before descending; writing nil
// through a missing intermediate is a no-op.
func (m *MetaObject) SetValue(path string, value any) error {
	if m.IsNull() {
		return fmt.Errorf("%w: cannot set %q on null value", ErrNoSetter, path)
	}
	token := TokenizeProperty(path)
	if token.HasNext() {
		metaValue, err := m.MetaObjectForProperty(token.IndexedName)
		if err != nil {
			return err
		}
		if metaValue.IsNull() {
			if value == nil {
				// writing null through a missing parent leaves the graph untouched
				return nil
			}
			metaValue, err = m.wrapper.Instantiate(token.IndexedName, token, m.dm.objectFactory)
			if err != nil {
				return err
			}
		}
		return metaValue.SetValue(token.Children, value)
	}
	return m.wrapper.Set(token, reflect.ValueOf(value))
}

// MetaObjectForProperty wraps the value of a single property segment for
// further navigation.
func (m *MetaObject) MetaObjectForProperty(name string) (*MetaObject, error) {
	if m.IsNull() {
		return &MetaObject{dm: m.dm}, nil
	}
	value, err := m.wrapper.Get(TokenizeProperty(name))
	if err != nil {
		return nil, err
	}
	return m.metaForValue(value)
}

// FindProperty canonicalizes a property path against the wrapped value.
func (m *MetaObject) FindProperty(name string, useCamelCaseMapping bool) string {
	if m.IsNull() {
		return ""
	}
	return m.wrapper.FindProperty(name, useCamelCaseMapping)
}

// GetterNames returns the readable property names of the wrapped value.
func (m *MetaObject) GetterNames() []string {
	if m.IsNull() {
		return nil
	}
	return m.wrapper.GetterNames()
}

// SetterNames returns the writable property names of the wrapped value.
func (m *MetaObject) SetterNames() []string {
	if m.IsNull() {
		return nil
	}
	return m.wrapper.SetterNames()
}

// GetterType resolves the type a property path reads as.
func (m *MetaObject) GetterType(path string) (reflect.Type, error) {
	if m.IsNull() {
		return nil, fmt.Errorf("%w: %q on null value", ErrNoGetter, path)
	}
	return m.wrapper.GetterType(path)
}

// SetterType resolves the type a property path accepts.
func (m *MetaObject) SetterType(path string) (reflect.Type, error) {
	if m.IsNull() {
		return nil, fmt.Errorf("%w: %q on null value", ErrNoSetter, path)
	}
	return m.wrapper.SetterType(path)
}

// HasGetter reports whether the property path can be read.
func (m *MetaObject) HasGetter(path string) bool {
	return !m.IsNull() && m.wrapper.HasGetter(path)
}

// HasSetter reports whether the property path can be written.
func (m *MetaObject) HasSetter(path string) bool {
	return !m.IsNull() && m.wrapper.HasSetter(path)
}

// IsCollection reports whether the wrapped value accepts Add and AddAll.
func (m *MetaObject) IsCollection() bool {
	return !m.IsNull() && m.wrapper.IsCollection()
}

// Add appends one element to a wrapped sequence.
func (m *MetaObject) Add(element any) error {
	if m.IsNull() {
		return fmt.Errorf("%w: add on null value", ErrNotSupported)
	}
	return m.wrapper.Add(reflect.ValueOf(element))
}

// AddAll appends multiple elements to a wrapped sequence.
func (m *MetaObject) AddAll(elements []any) error {
	if m.IsNull() {
		return fmt.Errorf("%w: addAll on null value", ErrNotSupported)
	}
	values := make([]reflect.Value, len(elements))
	for i, element := range elements {
		values[i] = reflect.ValueOf(element)
	}
	return m.wrapper.AddAll(values)
}
