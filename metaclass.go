// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

import (
	"fmt"
	"reflect"
	"strings"
)

// MetaClass navigates property paths on the type level, without an instance.
// It answers which dotted paths exist on a type, what type each path resolves
// to, and canonicalizes loosely spelled paths.
//
// Struct types navigate through their reflector; map types accept any key as
// a property of the map's value type.
type MetaClass struct {
	dm        *DynMeta
	typ       reflect.Type
	reflector *Reflector
}

// MetaClassFor returns a MetaClass for the given type. Pointer types are
// unwrapped. Only struct and map types can be navigated statically.
func (d *DynMeta) MetaClassFor(t reflect.Type) (*MetaClass, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Struct:
		reflector, err := d.reflectorCache.FindForType(t)
		if err != nil {
			return nil, err
		}
		return &MetaClass{dm: d, typ: t, reflector: reflector}, nil
	case reflect.Map:
		return &MetaClass{dm: d, typ: t}, nil
	default:
		return nil, fmt.Errorf("%w: cannot navigate type %s", ErrNotSupported, t)
	}
}

// metaClassForProperty descends into the type of the named property.
func (m *MetaClass) metaClassForProperty(name string) (*MetaClass, error) {
	propType, err := m.GetterType(name)
	if err != nil {
		return nil, err
	}
	return m.dm.MetaClassFor(propType)
}

// Type returns the navigated type.
func (m *MetaClass) Type() reflect.Type {
	return m.typ
}

// GetterType resolves the type a property path reads as. Indexed segments
// ("items[0]") unwrap the collection's element type.
func (m *MetaClass) GetterType(path string) (reflect.Type, error) {
	token := TokenizeProperty(path)
	propType, err := m.getterTypeForToken(token)
	if err != nil {
		return nil, err
	}
	if !token.HasNext() {
		return propType, nil
	}
	child, err := m.dm.MetaClassFor(propType)
	if err != nil {
		return nil, err
	}
	return child.GetterType(token.Children)
}

// SetterType resolves the type a property path accepts when written.
func (m *MetaClass) SetterType(path string) (reflect.Type, error) {
	token := TokenizeProperty(path)
	if !token.HasNext() {
		if m.reflector == nil {
			return m.typ.Elem(), nil
		}
		return m.reflector.SetterType(token.Name)
	}
	propType, err := m.getterTypeForToken(token)
	if err != nil {
		return nil, err
	}
	child, err := m.dm.MetaClassFor(propType)
	if err != nil {
		return nil, err
	}
	return child.SetterType(token.Children)
}

func (m *MetaClass) getterTypeForToken(token *PropertyTokenizer) (reflect.Type, error) {
	var propType reflect.Type
	if m.reflector == nil {
		propType = m.typ.Elem()
	} else {
		var err error
		propType, err = m.reflector.GetterType(token.Name)
		if err != nil {
			return nil, err
		}
	}
	if token.Index != "" {
		propType = elementType(propType)
	}
	return propType, nil
}

// elementType unwraps the element type of a collection; non-collection types
// pass through unchanged.
func elementType(t reflect.Type) reflect.Type {
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return t.Elem()
	}
	return t
}

// HasGetter reports whether the full property path can be read on the type.
func (m *MetaClass) HasGetter(path string) bool {
	token := TokenizeProperty(path)
	if m.reflector != nil && !m.reflector.HasGetter(token.Name) {
		return false
	}
	if !token.HasNext() {
		return true
	}
	child, err := m.metaClassForProperty(token.IndexedName)
	if err != nil {
		return false
	}
	return child.HasGetter(token.Children)
}

// HasSetter reports whether the full property path can be written on the
// type.
func (m *MetaClass) HasSetter(path string) bool {
	token := TokenizeProperty(path)
	if !token.HasNext() {
		return m.reflector == nil || m.reflector.HasSetter(token.Name)
	}
	if m.reflector != nil && !m.reflector.HasGetter(token.Name) {
		return false
	}
	child, err := m.metaClassForProperty(token.IndexedName)
	if err != nil {
		return false
	}
	return child.HasSetter(token.Children)
}

// FindProperty canonicalizes a loosely spelled property path. Each segment is
// matched case-insensitively against the type's properties; the canonical
// spelling is substituted. An unknown segment truncates the result at the
// last resolvable prefix. With useCamelCaseMapping set, underscores in the
// input are discarded before matching.
//
// The empty string is returned when not even the first segment resolves.
func (m *MetaClass) FindProperty(name string, useCamelCaseMapping bool) string {
	if useCamelCaseMapping {
		name = strings.ReplaceAll(name, "_", "")
	}
	var builder strings.Builder
	m.buildProperty(name, &builder)
	return builder.String()
}

func (m *MetaClass) buildProperty(path string, builder *strings.Builder) {
	token := TokenizeProperty(path)

	var canonical string
	if m.reflector == nil {
		// Map keys pass through verbatim.
		canonical = token.Name
	} else {
		canonical = m.reflector.FindPropertyName(token.Name)
		if canonical == "" {
			return
		}
	}

	if builder.Len() > 0 {
		builder.WriteByte('.')
	}
	builder.WriteString(canonical)

	if token.HasNext() {
		child, err := m.metaClassForProperty(canonical)
		if err != nil {
			return
		}
		child.buildProperty(token.Children, builder)
	}
}

// GetterNames returns the readable property names of the type.
func (m *MetaClass) GetterNames() []string {
	if m.reflector == nil {
		return nil
	}
	return m.reflector.GetterNames()
}

// SetterNames returns the writable property names of the type.
func (m *MetaClass) SetterNames() []string {
	if m.reflector == nil {
		return nil
	}
	return m.reflector.SetterNames()
}

// HasDefaultConstructor reports whether the type can be instantiated without
// arguments.
func (m *MetaClass) HasDefaultConstructor() bool {
	return m.reflector == nil || m.reflector.HasDefaultConstructor()
}
