// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

import (
	"fmt"
	"reflect"
)

// sliceWrapper wraps a sequence value. Sequences are terminal in property
// navigation: they only support element appending, while indexed reads and
// writes go through the parent wrapper's collection access.
type sliceWrapper struct {
	baseWrapper
	value    reflect.Value
	resolved reflect.Value
}

func (w *sliceWrapper) Get(*PropertyTokenizer) (reflect.Value, error) {
	return reflect.Value{}, fmt.Errorf("%w: property access on %s", ErrNotSupported, w.resolved.Type())
}

func (w *sliceWrapper) Set(*PropertyTokenizer, reflect.Value) error {
	return fmt.Errorf("%w: property access on %s", ErrNotSupported, w.resolved.Type())
}

func (w *sliceWrapper) FindProperty(string, bool) string {
	return ""
}

func (w *sliceWrapper) GetterNames() []string {
	return nil
}

func (w *sliceWrapper) SetterNames() []string {
	return nil
}

func (w *sliceWrapper) GetterType(string) (reflect.Type, error) {
	return nil, fmt.Errorf("%w: property access on %s", ErrNotSupported, w.resolved.Type())
}

func (w *sliceWrapper) SetterType(string) (reflect.Type, error) {
	return nil, fmt.Errorf("%w: property access on %s", ErrNotSupported, w.resolved.Type())
}

func (w *sliceWrapper) HasGetter(string) bool {
	return false
}

func (w *sliceWrapper) HasSetter(string) bool {
	return false
}

func (w *sliceWrapper) Instantiate(string, *PropertyTokenizer, ObjectFactory) (*MetaObject, error) {
	return nil, fmt.Errorf("%w: instantiate on %s", ErrNotSupported, w.resolved.Type())
}

func (w *sliceWrapper) IsCollection() bool {
	return true
}

// Add appends one element. The wrapped value must reach the original slice
// storage, either through a pointer or an addressable field.
func (w *sliceWrapper) Add(value reflect.Value) error {
	target, err := w.appendTarget()
	if err != nil {
		return err
	}
	converted, err := convertAssign(value, target.Type().Elem())
	if err != nil {
		return err
	}
	target.Set(reflect.Append(target, converted))
	return nil
}

// AddAll appends multiple elements.
func (w *sliceWrapper) AddAll(values []reflect.Value) error {
	target, err := w.appendTarget()
	if err != nil {
		return err
	}
	appended := target
	for _, value := range values {
		converted, err := convertAssign(value, target.Type().Elem())
		if err != nil {
			return err
		}
		appended = reflect.Append(appended, converted)
	}
	target.Set(appended)
	return nil
}

func (w *sliceWrapper) appendTarget() (reflect.Value, error) {
	target := w.value
	for target.Kind() == reflect.Interface || target.Kind() == reflect.Ptr {
		if target.IsNil() {
			return reflect.Value{}, fmt.Errorf("cannot append through nil %s", target.Type())
		}
		target = target.Elem()
	}
	if target.Kind() != reflect.Slice {
		return reflect.Value{}, fmt.Errorf("%w: append on %s", ErrNotSupported, target.Type())
	}
	if !target.CanSet() {
		return reflect.Value{}, fmt.Errorf("cannot append to unaddressable %s, pass a pointer to the slice", target.Type())
	}
	return target, nil
}
