// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

import (
	"fmt"
	"reflect"
)

// structWrapper navigates a struct value through its reflector. It is the
// default wrapper for record-shaped values.
type structWrapper struct {
	baseWrapper
	value     reflect.Value
	reflector *Reflector
}

func (w *structWrapper) Get(token *PropertyTokenizer) (reflect.Value, error) {
	if token.Index != "" {
		collection, err := w.resolveCollection(token, w)
		if err != nil {
			return reflect.Value{}, err
		}
		return w.getCollectionValue(token, collection)
	}
	invoker, err := w.reflector.GetInvoker(token.Name)
	if err != nil {
		return reflect.Value{}, err
	}
	return invoker.Invoke(w.value)
}

func (w *structWrapper) Set(token *PropertyTokenizer, value reflect.Value) error {
	if token.Index != "" {
		collection, err := w.resolveCollection(token, w)
		if err != nil {
			return err
		}
		return w.setCollectionValue(token, collection, value)
	}
	invoker, err := w.reflector.SetInvoker(token.Name)
	if err != nil {
		return err
	}
	converted, err := convertAssign(value, invoker.Type())
	if err != nil {
		return fmt.Errorf("cannot set property %q: %w", token.Name, err)
	}
	_, err = invoker.Invoke(w.value, converted)
	return err
}

func (w *structWrapper) FindProperty(name string, useCamelCaseMapping bool) string {
	metaClass, err := w.meta.dm.MetaClassFor(w.value.Type())
	if err != nil {
		return ""
	}
	return metaClass.FindProperty(name, useCamelCaseMapping)
}

func (w *structWrapper) GetterNames() []string {
	return w.reflector.GetterNames()
}

func (w *structWrapper) SetterNames() []string {
	return w.reflector.SetterNames()
}

// GetterType resolves through the live value where one exists, so a loosely
// typed property reports the concrete type it currently holds; where the
// path runs into null, resolution falls back to the static type level.
func (w *structWrapper) GetterType(path string) (reflect.Type, error) {
	token := TokenizeProperty(path)
	if !token.HasNext() {
		propType, err := w.reflector.GetterType(token.Name)
		if err != nil {
			return nil, err
		}
		if token.Index != "" {
			propType = elementType(propType)
		}
		return propType, nil
	}

	metaValue, err := w.meta.MetaObjectForProperty(token.IndexedName)
	if err == nil && !metaValue.IsNull() {
		return metaValue.wrapper.GetterType(token.Children)
	}
	return w.staticGetterType(path)
}

func (w *structWrapper) SetterType(path string) (reflect.Type, error) {
	token := TokenizeProperty(path)
	if !token.HasNext() {
		return w.reflector.SetterType(token.Name)
	}

	metaValue, err := w.meta.MetaObjectForProperty(token.IndexedName)
	if err == nil && !metaValue.IsNull() {
		return metaValue.wrapper.SetterType(token.Children)
	}
	metaClass, err := w.meta.dm.MetaClassFor(w.value.Type())
	if err != nil {
		return nil, err
	}
	return metaClass.SetterType(path)
}

func (w *structWrapper) staticGetterType(path string) (reflect.Type, error) {
	metaClass, err := w.meta.dm.MetaClassFor(w.value.Type())
	if err != nil {
		return nil, err
	}
	return metaClass.GetterType(path)
}

func (w *structWrapper) HasGetter(path string) bool {
	token := TokenizeProperty(path)
	if !token.HasNext() {
		return w.reflector.HasGetter(token.Name)
	}
	if !w.reflector.HasGetter(token.Name) {
		return false
	}
	metaValue, err := w.meta.MetaObjectForProperty(token.IndexedName)
	if err != nil {
		return false
	}
	if metaValue.IsNull() {
		metaClass, err := w.meta.dm.MetaClassFor(w.value.Type())
		if err != nil {
			return false
		}
		return metaClass.HasGetter(path)
	}
	return metaValue.wrapper.HasGetter(token.Children)
}

func (w *structWrapper) HasSetter(path string) bool {
	token := TokenizeProperty(path)
	if !token.HasNext() {
		return w.reflector.HasSetter(token.Name)
	}
	if !w.reflector.HasGetter(token.Name) {
		return false
	}
	metaValue, err := w.meta.MetaObjectForProperty(token.IndexedName)
	if err != nil {
		return false
	}
	if metaValue.IsNull() {
		metaClass, err := w.meta.dm.MetaClassFor(w.value.Type())
		if err != nil {
			return false
		}
		return metaClass.HasSetter(path)
	}
	return metaValue.wrapper.HasSetter(token.Children)
}

// Instantiate creates an empty value for the property, writes it through the
// setter and re-reads it, so the returned MetaObject navigates the stored
// value rather than the detached one.
func (w *structWrapper) Instantiate(name string, token *PropertyTokenizer, factory ObjectFactory) (*MetaObject, error) {
	propType, err := w.reflector.SetterType(token.Name)
	if err != nil {
		return nil, err
	}
	created, err := factory.Create(propType)
	if err != nil {
		return nil, fmt.Errorf("cannot instantiate property %q on %s: %w", name, w.value.Type(), err)
	}
	if err := w.Set(&PropertyTokenizer{Name: token.Name, IndexedName: token.Name}, created); err != nil {
		return nil, err
	}
	stored, err := w.Get(&PropertyTokenizer{Name: token.Name, IndexedName: token.Name})
	if err != nil {
		return nil, err
	}
	return w.meta.metaForValue(stored)
}

func (w *structWrapper) IsCollection() bool {
	return false
}

func (w *structWrapper) Add(reflect.Value) error {
	return fmt.Errorf("%w: add on %s", ErrNotSupported, w.value.Type())
}

func (w *structWrapper) AddAll([]reflect.Value) error {
	return fmt.Errorf("%w: addAll on %s", ErrNotSupported, w.value.Type())
}
