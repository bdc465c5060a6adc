// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/metaflect/dynamic-meta/typedesc"
)

// Reflector holds the decoded accessor surface of one struct type: which
// properties can be read and written, through which invokers, and with which
// resolved property types.
//
// A property is backed by an accessor method ("GetX", "IsX", "SetX") or,
// where no accessor method claims the name, by an exported field. Canonical
// property names are the member names with the accessor prefix stripped.
// Reflectors are immutable once built and safe for concurrent use.
type Reflector struct {
	typ             reflect.Type
	getInvokers     map[string]Invoker
	setInvokers     map[string]Invoker
	getTypes        map[string]reflect.Type
	setTypes        map[string]reflect.Type
	readableNames   []string
	writableNames   []string
	caseInsensitive map[string]string
	canInstantiate  bool
}

// getterCandidate is one method competing for a property during conflict
// resolution.
type getterCandidate struct {
	method   reflect.Method
	propType reflect.Type
}

// fieldEntry is an exported field reachable from the root struct, possibly
// through embedded structs.
type fieldEntry struct {
	field reflect.StructField
	index []int
	depth int
}

// newReflector analyzes a struct type. The registry, when non-nil, refines
// property types whose declarations carry generic structure.
func newReflector(t reflect.Type, registry *typedesc.Registry) (*Reflector, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot reflect over non-struct type %s", t)
	}

	r := &Reflector{
		typ:             t,
		getInvokers:     map[string]Invoker{},
		setInvokers:     map[string]Invoker{},
		getTypes:        map[string]reflect.Type{},
		setTypes:        map[string]reflect.Type{},
		caseInsensitive: map[string]string{},
		canInstantiate:  true,
	}

	if err := r.addGetterMethods(registry); err != nil {
		return nil, err
	}
	r.addSetterMethods(registry)
	r.addFields(registry)

	for name := range r.getInvokers {
		r.readableNames = append(r.readableNames, name)
		r.caseInsensitive[strings.ToUpper(name)] = name
	}
	for name := range r.setInvokers {
		r.writableNames = append(r.writableNames, name)
		r.caseInsensitive[strings.ToUpper(name)] = name
	}
	return r, nil
}

// addGetterMethods collects read accessor methods from the pointer method set
// and resolves naming conflicts ("GetX" vs "IsX" mapping to the same
// property).
func (r *Reflector) addGetterMethods(registry *typedesc.Registry) error {
	candidates := map[string][]getterCandidate{}

	ptrType := reflect.PointerTo(r.typ)
	for i := 0; i < ptrType.NumMethod(); i++ {
		method := ptrType.Method(i)
		if !isGetterName(method.Name) {
			continue
		}
		// One receiver in, one value out.
		if method.Type.NumIn() != 1 || method.Type.NumOut() != 1 {
			continue
		}
		name := propertyName(method.Name)
		if !isValidPropertyName(name) {
			continue
		}
		propType := r.resolveMemberType(registry, method.Name, method.Type.Out(0))
		candidates[name] = append(candidates[name], getterCandidate{method: method, propType: propType})
	}

	for name, list := range candidates {
		winner := list[0]
		for _, candidate := range list[1:] {
			switch {
			case candidate.propType == winner.propType:
				if candidate.propType.Kind() != reflect.Bool {
					return fmt.Errorf("%w: conflicting getters for property %q on %s", ErrAmbiguousAccessor, name, r.typ)
				}
				if strings.HasPrefix(candidate.method.Name, "Is") {
					winner = candidate
				}
			case winner.propType.AssignableTo(candidate.propType):
				// winner is the narrower type, keep it
			case candidate.propType.AssignableTo(winner.propType):
				winner = candidate
			default:
				return fmt.Errorf("%w: getters for property %q on %s return incompatible types %s and %s",
					ErrAmbiguousAccessor, name, r.typ, winner.propType, candidate.propType)
			}
		}
		r.getInvokers[name] = &methodInvoker{
			name:     winner.method.Name,
			index:    winner.method.Index,
			propType: winner.propType,
		}
		r.getTypes[name] = winner.propType
	}
	return nil
}

// addSetterMethods collects write accessor methods. Method names are unique
// within a type, so setters never conflict with each other.
func (r *Reflector) addSetterMethods(registry *typedesc.Registry) {
	ptrType := reflect.PointerTo(r.typ)
	for i := 0; i < ptrType.NumMethod(); i++ {
		method := ptrType.Method(i)
		if !isSetterName(method.Name) {
			continue
		}
		// One receiver plus one value in; return values are ignored.
		if method.Type.NumIn() != 2 {
			continue
		}
		name := propertyName(method.Name)
		if !isValidPropertyName(name) {
			continue
		}
		propType := r.resolveMemberType(registry, method.Name, method.Type.In(1))
		r.setInvokers[name] = &methodInvoker{
			name:     method.Name,
			index:    method.Index,
			propType: propType,
			isSetter: true,
		}
		r.setTypes[name] = propType
	}
}

// addFields exposes exported fields, promoted embedded fields included, as
// properties where no accessor method already claims the name.
func (r *Reflector) addFields(registry *typedesc.Registry) {
	entries := map[string]fieldEntry{}
	shadowed := map[string]bool{}
	collectFields(r.typ, nil, 0, entries, shadowed)

	for name, entry := range entries {
		if shadowed[name] || !isValidPropertyName(name) {
			continue
		}
		propType := r.resolveMemberType(registry, name, entry.field.Type)
		if _, ok := r.getInvokers[name]; !ok {
			r.getInvokers[name] = &fieldGetInvoker{name: name, index: entry.index, propType: propType}
			r.getTypes[name] = propType
		}
		if _, ok := r.setInvokers[name]; !ok {
			r.setInvokers[name] = &fieldSetInvoker{name: name, index: entry.index, propType: propType}
			r.setTypes[name] = propType
		}
	}
}

// collectFields walks a struct's fields breadth-wise across embedding depth.
// A name found at a shallower depth shadows deeper occurrences; two
// occurrences at the same depth shadow each other.
func collectFields(t reflect.Type, prefix []int, depth int, entries map[string]fieldEntry, shadowed map[string]bool) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		index := append(append([]int{}, prefix...), i)

		existing, seen := entries[field.Name]
		switch {
		case !seen:
			entries[field.Name] = fieldEntry{field: field, index: index, depth: depth}
		case existing.depth == depth:
			shadowed[field.Name] = true
		}

		if field.Anonymous {
			embedded := field.Type
			if embedded.Kind() == reflect.Ptr {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				collectFields(embedded, index, depth+1, entries, shadowed)
			}
		}
	}
}

// resolveMemberType consults the declaration registry for a refined member
// type, falling back to the raw reflected type. Both the member name as
// written and its derived property name are tried, so declarations may key
// members either way.
func (r *Reflector) resolveMemberType(registry *typedesc.Registry, memberName string, fallback reflect.Type) reflect.Type {
	if registry == nil {
		return fallback
	}
	if resolved, ok := registry.ResolveMemberClass(r.typ, memberName); ok {
		return resolved
	}
	if prop := propertyName(memberName); prop != memberName {
		if resolved, ok := registry.ResolveMemberClass(r.typ, prop); ok {
			return resolved
		}
	}
	return fallback
}

// Type returns the analyzed struct type.
func (r *Reflector) Type() reflect.Type {
	return r.typ
}

// GetInvoker returns the read accessor for a property.
func (r *Reflector) GetInvoker(name string) (Invoker, error) {
	invoker, ok := r.getInvokers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q on %s", ErrNoGetter, name, r.typ)
	}
	return invoker, nil
}

// SetInvoker returns the write accessor for a property.
func (r *Reflector) SetInvoker(name string) (Invoker, error) {
	invoker, ok := r.setInvokers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q on %s", ErrNoSetter, name, r.typ)
	}
	return invoker, nil
}

// GetterType returns the type a property reads as.
func (r *Reflector) GetterType(name string) (reflect.Type, error) {
	t, ok := r.getTypes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q on %s", ErrNoGetter, name, r.typ)
	}
	return t, nil
}

// SetterType returns the type a property accepts when written.
func (r *Reflector) SetterType(name string) (reflect.Type, error) {
	t, ok := r.setTypes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q on %s", ErrNoSetter, name, r.typ)
	}
	return t, nil
}

// HasGetter reports whether the property can be read.
func (r *Reflector) HasGetter(name string) bool {
	_, ok := r.getInvokers[name]
	return ok
}

// HasSetter reports whether the property can be written.
func (r *Reflector) HasSetter(name string) bool {
	_, ok := r.setInvokers[name]
	return ok
}

// GetterNames returns the readable property names in unspecified order.
func (r *Reflector) GetterNames() []string {
	return r.readableNames
}

// SetterNames returns the writable property names in unspecified order.
func (r *Reflector) SetterNames() []string {
	return r.writableNames
}

// FindPropertyName maps a case-insensitive spelling to the canonical property
// name, or returns the empty string.
func (r *Reflector) FindPropertyName(name string) string {
	return r.caseInsensitive[strings.ToUpper(name)]
}

// HasDefaultConstructor reports whether the type can be instantiated without
// arguments.
func (r *Reflector) HasDefaultConstructor() bool {
	return r.canInstantiate
}
