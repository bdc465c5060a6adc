// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

// Package dynmeta provides reflective metadata and property path navigation
// for Go values. It decodes a type's accessor surface once, caches the
// result, and navigates dotted property paths ("user.address.city",
// "items[2].name") both statically over types and dynamically over live
// values. A declaration registry restores generic type information that
// instantiation erases, and a small parsing layer expands "${placeholder}"
// configuration strings.
package dynmeta

import (
	"log"
	"reflect"
	"sync"

	"github.com/casbin/govaluate"

	"github.com/metaflect/dynamic-meta/typedesc"
)

// DynMeta is the entry point for metadata operations. It owns the reflector
// cache, the generic declaration registry and the configured factories.
//
// The instance caches reflectors and parsed expressions; reuse the same
// DynMeta across operations to benefit from the caches. All operations are
// safe for concurrent use.
//
// Example usage:
//
//	dm := dynmeta.NewDynMeta()
//
//	// Static navigation
//	t, err := dm.GetterType(reflect.TypeOf(Order{}), "Customer.Name")
//
//	// Dynamic navigation
//	meta, err := dm.MetaFor(&order)
//	city, err := meta.GetValue("Customer.Address.City")
//	err = meta.SetValue("Customer.Address.City", "Berlin")
type DynMeta struct {
	reflectorCache   *ReflectorCache
	registry         *typedesc.Registry
	objectFactory    ObjectFactory
	wrapperFactories []ObjectWrapperFactory
	exprCache        map[string]*govaluate.EvaluableExpression
	exprMutex        sync.RWMutex
	logCb            func(format string, args ...any)

	// Verbose enables logging of reflector construction.
	Verbose bool
}

// NewDynMeta creates a new DynMeta instance.
//
// Parameters:
//   - opts: Functional options configuring the object factory, wrapper
//     factories, declaration registry and logging.
//
// Returns:
//   - *DynMeta: A new instance ready for metadata operations
//
// Example:
//
//	registry := typedesc.NewRegistry()
//	dm := dynmeta.NewDynMeta(
//	    dynmeta.WithRegistry(registry),
//	    dynmeta.WithVerbose(),
//	)
func NewDynMeta(opts ...Option) *DynMeta {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	if options.ObjectFactory == nil {
		options.ObjectFactory = DefaultObjectFactory{}
	}
	if options.Registry == nil {
		options.Registry = typedesc.NewRegistry()
	}

	dynmeta := &DynMeta{
		registry:         options.Registry,
		objectFactory:    options.ObjectFactory,
		wrapperFactories: options.WrapperFactories,
		exprCache:        map[string]*govaluate.EvaluableExpression{},
		logCb:            options.LogCb,
		Verbose:          options.Verbose,
	}
	dynmeta.reflectorCache = NewReflectorCache(dynmeta)

	return dynmeta
}

// GetReflectorCache returns the reflector cache for the DynMeta instance.
// Primarily useful for debugging and cache management.
func (d *DynMeta) GetReflectorCache() *ReflectorCache {
	return d.reflectorCache
}

// GetRegistry returns the declaration registry for the DynMeta instance.
func (d *DynMeta) GetRegistry() *typedesc.Registry {
	return d.registry
}

// Reflect returns the cached reflector for a struct type.
func (d *DynMeta) Reflect(t reflect.Type) (*Reflector, error) {
	return d.reflectorCache.FindForType(t)
}

// GetterType resolves the type a property path reads as on the given type.
func (d *DynMeta) GetterType(t reflect.Type, path string) (reflect.Type, error) {
	metaClass, err := d.MetaClassFor(t)
	if err != nil {
		return nil, err
	}
	return metaClass.GetterType(path)
}

// SetterType resolves the type a property path accepts on the given type.
func (d *DynMeta) SetterType(t reflect.Type, path string) (reflect.Type, error) {
	metaClass, err := d.MetaClassFor(t)
	if err != nil {
		return nil, err
	}
	return metaClass.SetterType(path)
}

// HasGetter reports whether a property path can be read on the given type.
func (d *DynMeta) HasGetter(t reflect.Type, path string) bool {
	metaClass, err := d.MetaClassFor(t)
	if err != nil {
		return false
	}
	return metaClass.HasGetter(path)
}

// HasSetter reports whether a property path can be written on the given
// type.
func (d *DynMeta) HasSetter(t reflect.Type, path string) bool {
	metaClass, err := d.MetaClassFor(t)
	if err != nil {
		return false
	}
	return metaClass.HasSetter(path)
}

// FindProperty canonicalizes a loosely spelled property path on the given
// type.
func (d *DynMeta) FindProperty(t reflect.Type, name string, useCamelCaseMapping bool) string {
	metaClass, err := d.MetaClassFor(t)
	if err != nil {
		return ""
	}
	return metaClass.FindProperty(name, useCamelCaseMapping)
}

// GetValue reads a property path on a live value.
func (d *DynMeta) GetValue(obj any, path string) (any, error) {
	meta, err := d.MetaFor(obj)
	if err != nil {
		return nil, err
	}
	return meta.GetValue(path)
}

// SetValue writes a property path on a live value. Pass a pointer so the
// write reaches the caller's storage.
func (d *DynMeta) SetValue(obj any, path string, value any) error {
	meta, err := d.MetaFor(obj)
	if err != nil {
		return err
	}
	return meta.SetValue(path, value)
}

// ResolveMemberType resolves the declared type of a member of t through the
// declaration registry, degrading to the universal top type when the
// registry holds no declaration for t.
func (d *DynMeta) ResolveMemberType(t reflect.Type, member string) typedesc.Type {
	if resolved, ok := d.registry.ResolveMember(t, member); ok {
		return resolved
	}
	return typedesc.Top
}

func (d *DynMeta) logf(format string, args ...any) {
	if d.logCb != nil {
		d.logCb(format, args...)
		return
	}
	log.Printf(format, args...)
}
