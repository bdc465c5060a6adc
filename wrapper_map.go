// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

import (
	"fmt"
	"reflect"
)

// mapWrapper navigates a map value. Every key is a property: reads of a
// missing key yield null, writes create the entry. Maps with non-string,
// non-integer key types reject property access.
type mapWrapper struct {
	baseWrapper
	value reflect.Value
}

func (w *mapWrapper) Get(token *PropertyTokenizer) (reflect.Value, error) {
	if token.Index != "" {
		collection, err := w.resolveCollection(token, w)
		if err != nil {
			return reflect.Value{}, err
		}
		return w.getCollectionValue(token, collection)
	}
	key, err := mapKeyValue(token.Name, w.value.Type().Key())
	if err != nil {
		return reflect.Value{}, err
	}
	entry := w.value.MapIndex(key)
	if !entry.IsValid() {
		return reflect.Value{}, nil
	}
	return entry, nil
}

func (w *mapWrapper) Set(token *PropertyTokenizer, value reflect.Value) error {
	if token.Index != "" {
		collection, err := w.resolveCollection(token, w)
		if err != nil {
			return err
		}
		return w.setCollectionValue(token, collection, value)
	}
	key, err := mapKeyValue(token.Name, w.value.Type().Key())
	if err != nil {
		return err
	}
	converted, err := convertAssign(value, w.value.Type().Elem())
	if err != nil {
		return fmt.Errorf("cannot set map entry %q: %w", token.Name, err)
	}
	w.value.SetMapIndex(key, converted)
	return nil
}

// FindProperty passes keys through verbatim; maps have no canonical
// spellings to enforce.
func (w *mapWrapper) FindProperty(name string, _ bool) string {
	return name
}

func (w *mapWrapper) GetterNames() []string {
	names := make([]string, 0, w.value.Len())
	iter := w.value.MapRange()
	for iter.Next() {
		names = append(names, fmt.Sprint(iter.Key().Interface()))
	}
	return names
}

func (w *mapWrapper) SetterNames() []string {
	return w.GetterNames()
}

func (w *mapWrapper) GetterType(path string) (reflect.Type, error) {
	token := TokenizeProperty(path)
	if token.HasNext() {
		metaValue, err := w.meta.MetaObjectForProperty(token.IndexedName)
		if err == nil && !metaValue.IsNull() {
			return metaValue.wrapper.GetterType(token.Children)
		}
		return w.value.Type().Elem(), nil
	}
	entry, err := w.Get(token)
	if err != nil {
		return nil, err
	}
	if entry.IsValid() {
		return unwrapValue(entry).Type(), nil
	}
	return w.value.Type().Elem(), nil
}

func (w *mapWrapper) SetterType(path string) (reflect.Type, error) {
	token := TokenizeProperty(path)
	if token.HasNext() {
		metaValue, err := w.meta.MetaObjectForProperty(token.IndexedName)
		if err == nil && !metaValue.IsNull() {
			return metaValue.wrapper.SetterType(token.Children)
		}
	}
	return w.value.Type().Elem(), nil
}

// HasGetter is permissive on the terminal segment: any key reads, a missing
// one as null. Deeper paths require the intermediate entries to exist.
func (w *mapWrapper) HasGetter(path string) bool {
	token := TokenizeProperty(path)
	if !token.HasNext() {
		return true
	}
	metaValue, err := w.meta.MetaObjectForProperty(token.IndexedName)
	if err != nil {
		return false
	}
	if metaValue.IsNull() {
		return true
	}
	return metaValue.wrapper.HasGetter(token.Children)
}

// HasSetter is always true: writes create missing entries.
func (w *mapWrapper) HasSetter(path string) bool {
	return true
}

// Instantiate stores a fresh value under the key. A loosely typed map gets a
// nested map so the path can keep descending.
func (w *mapWrapper) Instantiate(name string, token *PropertyTokenizer, factory ObjectFactory) (*MetaObject, error) {
	elemType := w.value.Type().Elem()
	if elemType.Kind() == reflect.Interface {
		elemType = reflect.TypeOf(map[string]interface{}{})
	}
	created, err := factory.Create(elemType)
	if err != nil {
		return nil, fmt.Errorf("cannot instantiate map entry %q: %w", name, err)
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

func (w *mapWrapper) IsCollection() bool {
	return false
}

func (w *mapWrapper) Add(reflect.Value) error {
	return fmt.Errorf("%w: add on %s", ErrNotSupported, w.value.Type())
}

func (w *mapWrapper) AddAll([]reflect.Value) error {
	return fmt.Errorf("%w: addAll on %s", ErrNotSupported, w.value.Type())
}
