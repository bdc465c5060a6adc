// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

// Package typedesc models declared types as explicit descriptors and resolves
// generic type variables against concrete instantiations.
//
// Go erases the declaration-site structure of a generic type once it is
// instantiated: given the runtime type of Box[string] there is no way to ask
// "which declared parameter does the Value field use?". This package restores
// that information by modeling declarations explicitly. A Declaration records
// a type's parameters, its generic supertypes and its declared member types;
// a Registry binds concrete runtime types to instantiations of declarations.
// The resolver then walks the declared hierarchy to bind a type variable to
// the concrete argument supplied at the instantiation point.
//
// The descriptor variant set is deliberately small: Concrete (a runtime
// type), Parameterized (a declaration plus arguments), Variable (a declared
// type parameter), Wildcard (a bounded argument) and Array (a sequence whose
// element is itself a descriptor). A resolution that cannot be completed
// never fails; it degrades to the universal top type (interface{}).
package typedesc

import (
	"fmt"
	"reflect"
	"strings"
)

// Type is a declared type descriptor. Exactly five variants implement it:
// *Concrete, *Parameterized, *Variable, *Wildcard and *Array.
type Type interface {
	fmt.Stringer
	typeNode()
}

var anyType = reflect.TypeOf((*interface{})(nil)).Elem()

// Top is the universal top type (interface{}). Unresolvable type variables
// and wildcards degrade to Top instead of raising an error.
var Top = &Concrete{Type: anyType}

// TopClass returns the runtime type of the universal top type.
func TopClass() reflect.Type {
	return anyType
}

// Concrete describes a plain runtime type with no unresolved generic
// structure.
type Concrete struct {
	Type reflect.Type
}

func (*Concrete) typeNode() {}

func (c *Concrete) String() string {
	if c.Type == nil {
		return "<nil>"
	}
	return c.Type.String()
}

// Of wraps a runtime type in a Concrete descriptor.
func Of(t reflect.Type) *Concrete {
	return &Concrete{Type: t}
}

// Parameterized describes an instantiation of a generic declaration: the raw
// declaration plus one argument per declared type parameter. Arguments may
// themselves contain variables of an enclosing declaration.
type Parameterized struct {
	Decl *Declaration
	Args []Type
}

func (*Parameterized) typeNode() {}

func (p *Parameterized) String() string {
	args := make([]string, len(p.Args))
	for i, arg := range p.Args {
		args[i] = arg.String()
	}
	return p.Decl.Name + "[" + strings.Join(args, ", ") + "]"
}

// NewParameterized builds a Parameterized descriptor for decl with the given
// arguments.
func NewParameterized(decl *Declaration, args ...Type) *Parameterized {
	return &Parameterized{Decl: decl, Args: args}
}

// Variable is a named type parameter declared on a Declaration. Variables are
// compared by identity; two parameters with the same name on different
// declarations are distinct.
type Variable struct {
	Name   string
	Decl   *Declaration
	Bounds []Type
}

func (*Variable) typeNode() {}

func (v *Variable) String() string {
	if v.Decl != nil {
		return v.Decl.Name + "." + v.Name
	}
	return v.Name
}

// firstBound returns the variable's first declared bound, or Top when the
// variable is unbounded.
func (v *Variable) firstBound() Type {
	if len(v.Bounds) > 0 {
		return v.Bounds[0]
	}
	return Top
}

// Wildcard is a type argument expressed as bounds rather than a fixed type.
// Wildcards only appear nested inside Parameterized arguments; they are never
// a top-level declared type.
type Wildcard struct {
	Upper []Type
	Lower []Type
}

func (*Wildcard) typeNode() {}

func (w *Wildcard) String() string {
	switch {
	case len(w.Lower) > 0:
		return "? super " + w.Lower[0].String()
	case len(w.Upper) > 0:
		return "? extends " + w.Upper[0].String()
	default:
		return "?"
	}
}

// Array is a sequence type whose element is itself a descriptor. Sequences of
// fully concrete element types are represented as Concrete slice types; Array
// is only needed while the element still carries generic structure.
type Array struct {
	Elem Type
}

func (*Array) typeNode() {}

func (a *Array) String() string {
	return "[]" + a.Elem.String()
}

// NewArray builds an Array descriptor with the given element descriptor.
func NewArray(elem Type) *Array {
	return &Array{Elem: elem}
}

// Declaration describes a generic type declaration: its name, an optional
// representative runtime type for the raw declaration, its type parameters,
// its generic supertypes (expressed over its own parameters) and the declared
// types of its members.
//
// Declarations are built once, wired into a Registry and treated as immutable
// afterwards.
type Declaration struct {
	Name       string
	Raw        reflect.Type
	TypeParams []*Variable
	Supers     []Type
	Members    map[string]Type
}

// NewDeclaration creates a declaration with the given name, representative
// runtime type (may be nil) and type parameter names.
func NewDeclaration(name string, raw reflect.Type, paramNames ...string) *Declaration {
	decl := &Declaration{
		Name:    name,
		Raw:     raw,
		Members: map[string]Type{},
	}
	for _, paramName := range paramNames {
		decl.TypeParams = append(decl.TypeParams, &Variable{Name: paramName, Decl: decl})
	}
	return decl
}

// Param returns the declared type parameter with the given name, or nil.
func (d *Declaration) Param(name string) *Variable {
	for _, param := range d.TypeParams {
		if param.Name == name {
			return param
		}
	}
	return nil
}

// Extends records a generic supertype of this declaration. Supertype
// arguments may reference this declaration's own parameters.
func (d *Declaration) Extends(super Type) *Declaration {
	d.Supers = append(d.Supers, super)
	return d
}

// AddMember records the declared type of a member as written at this
// declaration.
func (d *Declaration) AddMember(name string, declared Type) *Declaration {
	d.Members[name] = declared
	return d
}

// ClassOf maps a resolved descriptor to the runtime type it describes:
// concrete types map to themselves, parameterized types to the raw
// declaration's representative type, arrays to a slice of the element's
// class, and variables and wildcards to the universal top type.
func ClassOf(t Type) reflect.Type {
	switch tt := t.(type) {
	case *Concrete:
		if tt.Type != nil {
			return tt.Type
		}
	case *Parameterized:
		if tt.Decl != nil && tt.Decl.Raw != nil {
			return tt.Decl.Raw
		}
	case *Array:
		return reflect.SliceOf(ClassOf(tt.Elem))
	}
	return anyType
}
