// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package typedesc

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Registry binds concrete runtime types to the generic declarations they
// instantiate. It is safe for concurrent use; bindings are never evicted and
// a published binding is never mutated.
type Registry struct {
	mutex    sync.RWMutex
	bindings map[reflect.Type]*Declaration
}

// NewRegistry creates an empty declaration registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[reflect.Type]*Declaration),
	}
}

// Register binds a declaration's representative runtime type to the
// declaration itself. The declaration must carry a Raw type.
func (r *Registry) Register(decl *Declaration) error {
	if decl.Raw == nil {
		return fmt.Errorf("declaration %q has no representative runtime type", decl.Name)
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.bindings[decl.Raw] = decl
	return nil
}

// Bind records that the runtime type rt instantiates decl with the given
// arguments. The binding is modeled as an anonymous subtype whose only
// supertype is the parameterized instantiation, which is exactly how a named
// concrete subtype of a generic declaration would be registered by hand.
//
// Binding without arguments registers rt as the raw declaration itself.
func (r *Registry) Bind(rt reflect.Type, decl *Declaration, args ...Type) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if len(args) == 0 {
		r.bindings[rt] = decl
		return
	}

	names := make([]string, len(args))
	for i, arg := range args {
		names[i] = arg.String()
	}
	inst := &Declaration{
		Name:    decl.Name + "[" + strings.Join(names, ", ") + "]",
		Raw:     rt,
		Supers:  []Type{&Parameterized{Decl: decl, Args: args}},
		Members: map[string]Type{},
	}
	r.bindings[rt] = inst
}

// DeclarationOf returns the declaration bound to the runtime type, or nil.
func (r *Registry) DeclarationOf(rt reflect.Type) *Declaration {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.bindings[rt]
}

// DeclaredMember looks up the declared type of a member, searching the
// runtime type's bound declaration and its supertype declarations. It returns
// the member's declared type and the declaration it was found on.
func (r *Registry) DeclaredMember(rt reflect.Type, name string) (Type, *Declaration, bool) {
	decl := r.DeclarationOf(rt)
	if decl == nil {
		return nil, nil, false
	}
	return r.findMember(decl, name)
}

func (r *Registry) findMember(decl *Declaration, name string) (Type, *Declaration, bool) {
	if declared, ok := decl.Members[name]; ok {
		return declared, decl, true
	}
	for _, super := range decl.Supers {
		superDecl := r.declarationFor(super)
		if superDecl == nil {
			continue
		}
		if declared, owner, ok := r.findMember(superDecl, name); ok {
			return declared, owner, true
		}
	}
	return nil, nil, false
}

// ResolveMember resolves the declared type of a member of rt down to a
// descriptor, walking the declared hierarchy to bind any type variables.
func (r *Registry) ResolveMember(rt reflect.Type, name string) (Type, bool) {
	declared, owner, ok := r.DeclaredMember(rt, name)
	if !ok {
		return nil, false
	}
	return r.Resolve(declared, Of(rt), owner), true
}

// ResolveMemberClass resolves the declared type of a member of rt down to a
// runtime type.
func (r *Registry) ResolveMemberClass(rt reflect.Type, name string) (reflect.Type, bool) {
	resolved, ok := r.ResolveMember(rt, name)
	if !ok {
		return nil, false
	}
	return ClassOf(resolved), true
}

// declarationFor extracts the declaration behind a supertype descriptor,
// consulting the bindings for concrete supertypes.
func (r *Registry) declarationFor(t Type) *Declaration {
	switch tt := t.(type) {
	case *Parameterized:
		return tt.Decl
	case *Concrete:
		return r.DeclarationOf(tt.Type)
	}
	return nil
}

// declExtends reports whether decl transitively instantiates or equals
// target, walking the declared supertype chain.
func (r *Registry) declExtends(decl, target *Declaration) bool {
	if decl == nil || target == nil {
		return false
	}
	if decl == target {
		return true
	}
	for _, super := range decl.Supers {
		if r.declExtends(r.declarationFor(super), target) {
			return true
		}
	}
	return false
}
