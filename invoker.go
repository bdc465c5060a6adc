// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

import (
	"fmt"
	"reflect"
)

// Invoker executes a single accessor (method call or field access) against a
// target value. The target is the struct value itself, not a pointer to it.
type Invoker interface {
	// Invoke runs the accessor. Getters ignore args and return the read
	// value; setters consume one arg and return an invalid value.
	Invoke(target reflect.Value, args ...reflect.Value) (reflect.Value, error)

	// Type returns the property type this accessor reads or writes.
	Type() reflect.Type
}

// methodInvoker calls an accessor method declared on the pointer method set.
type methodInvoker struct {
	name     string
	index    int
	propType reflect.Type
	isSetter bool
}

func (m *methodInvoker) Type() reflect.Type {
	return m.propType
}

func (m *methodInvoker) Invoke(target reflect.Value, args ...reflect.Value) (reflect.Value, error) {
	var receiver reflect.Value
	switch {
	case target.Kind() == reflect.Ptr:
		if target.IsNil() {
			return reflect.Value{}, fmt.Errorf("cannot call %s on nil pointer", m.name)
		}
		receiver = target
	case target.CanAddr():
		receiver = target.Addr()
	default:
		if m.isSetter {
			return reflect.Value{}, fmt.Errorf("cannot call %s on unaddressable value of type %s", m.name, target.Type())
		}
		// Getters tolerate unaddressable targets by reading off a copy.
		ptr := reflect.New(target.Type())
		ptr.Elem().Set(target)
		receiver = ptr
	}

	results := receiver.Method(m.index).Call(args)
	if m.isSetter || len(results) == 0 {
		return reflect.Value{}, nil
	}
	return results[0], nil
}

// fieldGetInvoker reads a struct field, possibly through embedded structs.
type fieldGetInvoker struct {
	name     string
	index    []int
	propType reflect.Type
}

func (f *fieldGetInvoker) Type() reflect.Type {
	return f.propType
}

func (f *fieldGetInvoker) Invoke(target reflect.Value, _ ...reflect.Value) (reflect.Value, error) {
	field, err := walkFieldPath(target, f.index, f.name, false)
	if err != nil {
		return reflect.Value{}, err
	}
	return field, nil
}

// fieldSetInvoker writes a struct field, allocating nil embedded pointers on
// the way down.
type fieldSetInvoker struct {
	name     string
	index    []int
	propType reflect.Type
}

func (f *fieldSetInvoker) Type() reflect.Type {
	return f.propType
}

func (f *fieldSetInvoker) Invoke(target reflect.Value, args ...reflect.Value) (reflect.Value, error) {
	if len(args) != 1 {
		return reflect.Value{}, fmt.Errorf("field setter for %s expects exactly one argument", f.name)
	}
	field, err := walkFieldPath(target, f.index, f.name, true)
	if err != nil {
		return reflect.Value{}, err
	}
	if !field.CanSet() {
		return reflect.Value{}, fmt.Errorf("cannot set field %s on unaddressable value of type %s", f.name, target.Type())
	}
	value := args[0]
	if !value.IsValid() {
		field.Set(reflect.Zero(field.Type()))
		return reflect.Value{}, nil
	}
	if !value.Type().AssignableTo(field.Type()) {
		if value.Type().ConvertibleTo(field.Type()) {
			value = value.Convert(field.Type())
		} else {
			return reflect.Value{}, fmt.Errorf("cannot assign %s to field %s of type %s", value.Type(), f.name, field.Type())
		}
	}
	field.Set(value)
	return reflect.Value{}, nil
}

// walkFieldPath follows an embedded field index path, dereferencing pointers
// between hops. With alloc set, nil embedded pointers are allocated so the
// final field is reachable for writing; without it they are an error.
func walkFieldPath(target reflect.Value, index []int, name string, alloc bool) (reflect.Value, error) {
	value := target
	for _, i := range index {
		for value.Kind() == reflect.Ptr {
			if value.IsNil() {
				if !alloc || !value.CanSet() {
					return reflect.Value{}, fmt.Errorf("nil embedded pointer while accessing field %s", name)
				}
				value.Set(reflect.New(value.Type().Elem()))
			}
			value = value.Elem()
		}
		if value.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("cannot access field %s through non-struct value of type %s", name, value.Type())
		}
		value = value.Field(i)
	}
	return value, nil
}
