// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

import (
	"fmt"
	"reflect"
	"strconv"
)

// ObjectWrapper adapts one value shape (struct, map, sequence) to the uniform
// property surface MetaObject navigates over.
//
// Get and Set operate on a single path segment; MetaObject drives the
// recursion across segments. Get returns a reflect.Value that is addressable
// whenever the wrapped value allows it, so nested writes reach the original
// storage.
type ObjectWrapper interface {
	// Get reads the property segment, resolving an index suffix against the
	// property's collection value. An invalid reflect.Value means null.
	Get(token *PropertyTokenizer) (reflect.Value, error)

	// Set writes the property segment.
	Set(token *PropertyTokenizer, value reflect.Value) error

	// FindProperty canonicalizes a property path, see MetaClass.FindProperty.
	FindProperty(name string, useCamelCaseMapping bool) string

	// GetterNames returns the readable property names of the wrapped value.
	GetterNames() []string

	// SetterNames returns the writable property names of the wrapped value.
	SetterNames() []string

	// GetterType resolves the type a property path reads as.
	GetterType(path string) (reflect.Type, error)

	// SetterType resolves the type a property path accepts.
	SetterType(path string) (reflect.Type, error)

	// HasGetter reports whether the property path can be read.
	HasGetter(path string) bool

	// HasSetter reports whether the property path can be written.
	HasSetter(path string) bool

	// Instantiate creates an empty value for the property named by token,
	// stores it, and returns a MetaObject over the stored value.
	Instantiate(name string, token *PropertyTokenizer, factory ObjectFactory) (*MetaObject, error)

	// IsCollection reports whether the wrapped value accepts Add/AddAll.
	IsCollection() bool

	// Add appends one element to a wrapped sequence.
	Add(value reflect.Value) error

	// AddAll appends multiple elements to a wrapped sequence.
	AddAll(values []reflect.Value) error
}

// wrapperFor selects the wrapper for a value: a value that is itself an
// ObjectWrapper is used directly, then registered wrapper factories are
// consulted, then the built-in map, sequence and struct wrappers.
func wrapperFor(meta *MetaObject, value reflect.Value) (ObjectWrapper, error) {
	if value.IsValid() && value.CanInterface() {
		if wrapper, ok := value.Interface().(ObjectWrapper); ok {
			return wrapper, nil
		}
	}
	for _, factory := range meta.dm.wrapperFactories {
		if factory.HasWrapperFor(value) {
			return factory.GetWrapperFor(meta, value)
		}
	}

	resolved := unwrapValue(value)
	switch resolved.Kind() {
	case reflect.Map:
		return &mapWrapper{baseWrapper: baseWrapper{meta: meta}, value: resolved}, nil
	case reflect.Slice, reflect.Array:
		return &sliceWrapper{baseWrapper: baseWrapper{meta: meta}, value: value, resolved: resolved}, nil
	case reflect.Struct:
		reflector, err := meta.dm.reflectorCache.FindForType(resolved.Type())
		if err != nil {
			return nil, err
		}
		return &structWrapper{baseWrapper: baseWrapper{meta: meta}, value: resolved, reflector: reflector}, nil
	default:
		return nil, fmt.Errorf("%w: cannot wrap value of type %s", ErrNotSupported, value.Type())
	}
}

// unwrapValue strips interface and pointer indirections down to the value a
// wrapper operates on, preserving addressability where possible.
func unwrapValue(value reflect.Value) reflect.Value {
	for {
		switch value.Kind() {
		case reflect.Interface:
			if value.IsNil() {
				return value
			}
			value = value.Elem()
		case reflect.Ptr:
			if value.IsNil() {
				return value
			}
			value = value.Elem()
		default:
			return value
		}
	}
}

// baseWrapper carries the collection access helpers shared by all built-in
// wrappers.
type baseWrapper struct {
	meta *MetaObject
}

// resolveCollection reads the collection value an indexed segment refers to.
// An empty name means the wrapped value itself is the collection.
func (b *baseWrapper) resolveCollection(token *PropertyTokenizer, wrapper ObjectWrapper) (reflect.Value, error) {
	if token.Name == "" {
		return b.meta.value, nil
	}
	return wrapper.Get(&PropertyTokenizer{Name: token.Name, IndexedName: token.Name})
}

// getCollectionValue indexes into a map, slice or array value.
func (b *baseWrapper) getCollectionValue(token *PropertyTokenizer, collection reflect.Value) (reflect.Value, error) {
	coll := unwrapValue(collection)
	switch coll.Kind() {
	case reflect.Map:
		key, err := mapKeyValue(token.Index, coll.Type().Key())
		if err != nil {
			return reflect.Value{}, err
		}
		entry := coll.MapIndex(key)
		if !entry.IsValid() {
			return reflect.Value{}, nil
		}
		return entry, nil
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(token.Index)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid collection index %q: %w", token.Index, err)
		}
		if i < 0 || i >= coll.Len() {
			return reflect.Value{}, fmt.Errorf("index %d out of range for %s of length %d", i, coll.Type(), coll.Len())
		}
		return coll.Index(i), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: cannot index into %s", ErrNotSupported, collection.Type())
	}
}

// setCollectionValue writes one element of a map, slice or array value.
func (b *baseWrapper) setCollectionValue(token *PropertyTokenizer, collection, value reflect.Value) error {
	coll := unwrapValue(collection)
	switch coll.Kind() {
	case reflect.Map:
		if coll.IsNil() {
			if !coll.CanSet() {
				return fmt.Errorf("cannot write index %q into nil unaddressable %s", token.Index, coll.Type())
			}
			coll.Set(reflect.MakeMap(coll.Type()))
		}
		key, err := mapKeyValue(token.Index, coll.Type().Key())
		if err != nil {
			return err
		}
		converted, err := convertAssign(value, coll.Type().Elem())
		if err != nil {
			return err
		}
		coll.SetMapIndex(key, converted)
		return nil
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(token.Index)
		if err != nil {
			return fmt.Errorf("invalid collection index %q: %w", token.Index, err)
		}
		if i < 0 || i >= coll.Len() {
			return fmt.Errorf("index %d out of range for %s of length %d", i, coll.Type(), coll.Len())
		}
		elem := coll.Index(i)
		if !elem.CanSet() {
			return fmt.Errorf("cannot set element %d of unaddressable %s", i, coll.Type())
		}
		converted, err := convertAssign(value, elem.Type())
		if err != nil {
			return err
		}
		elem.Set(converted)
		return nil
	default:
		return fmt.Errorf("%w: cannot index into %s", ErrNotSupported, collection.Type())
	}
}

// mapKeyValue converts an index segment's text to a map key. String and
// integer key types are supported.
func mapKeyValue(index string, keyType reflect.Type) (reflect.Value, error) {
	switch keyType.Kind() {
	case reflect.String:
		return reflect.ValueOf(index).Convert(keyType), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(index, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid map key %q for %s: %w", index, keyType, err)
		}
		return reflect.ValueOf(i).Convert(keyType), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(index, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid map key %q for %s: %w", index, keyType, err)
		}
		return reflect.ValueOf(u).Convert(keyType), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: map key type %s", ErrNotSupported, keyType)
	}
}

// convertAssign adapts a value to a target type, converting where Go allows
// it. An invalid input value becomes the target's zero value.
func convertAssign(value reflect.Value, target reflect.Type) (reflect.Value, error) {
	if !value.IsValid() {
		return reflect.Zero(target), nil
	}
	if value.Type().AssignableTo(target) {
		return value, nil
	}
	if value.Kind() == reflect.Interface && !value.IsNil() {
		return convertAssign(value.Elem(), target)
	}
	if value.Type().ConvertibleTo(target) {
		return value.Convert(target), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot assign %s to %s", value.Type(), target)
}
