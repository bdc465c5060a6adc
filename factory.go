// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

import (
	"fmt"
	"reflect"
)

// ObjectFactory creates empty values during nested writes when an
// intermediate property along the path is nil.
type ObjectFactory interface {
	// Create returns a fresh, writable value of the given type.
	Create(t reflect.Type) (reflect.Value, error)
}

// DefaultObjectFactory creates values through their zero value: pointers
// allocate their element, maps and slices allocate empty containers.
type DefaultObjectFactory struct{}

// Create implements ObjectFactory.
func (DefaultObjectFactory) Create(t reflect.Type) (reflect.Value, error) {
	switch t.Kind() {
	case reflect.Ptr:
		return reflect.New(t.Elem()), nil
	case reflect.Struct:
		return reflect.New(t).Elem(), nil
	case reflect.Map:
		return reflect.MakeMap(t), nil
	case reflect.Slice:
		return reflect.MakeSlice(t, 0, 0), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: cannot create value of type %s", ErrNoDefaultConstructor, t)
	}
}

// ObjectWrapperFactory lets callers plug in custom wrappers for value shapes
// the built-in wrappers do not cover, or override the built-in behavior for
// specific types.
type ObjectWrapperFactory interface {
	// HasWrapperFor reports whether this factory wraps the given value.
	HasWrapperFor(value reflect.Value) bool

	// GetWrapperFor wraps the value for a MetaObject.
	GetWrapperFor(meta *MetaObject, value reflect.Value) (ObjectWrapper, error)
}
