// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package typedesc

import "reflect"

// Resolve resolves a declared type against a concrete starting point.
//
// declared is the type as written at the declaring declaration and may
// contain type variables; source is the concrete (or partially parameterized)
// type resolution starts from; declaring is the declaration the type was
// written at. Variables are resolved by scanning source's declared hierarchy
// for the instantiation point of declaring and mapping the variable's
// position onto the arguments supplied there. Parameterized types are rebuilt
// with each argument resolved independently; arrays resolve their element and
// collapse to a concrete slice type when the element resolves concretely.
//
// Resolution never fails: a variable that no hierarchy member can bind
// resolves to Top.
func (r *Registry) Resolve(declared, source Type, declaring *Declaration) Type {
	switch dt := declared.(type) {
	case *Variable:
		return r.resolveVariable(dt, source, declaring)
	case *Parameterized:
		return r.resolveParameterized(dt, source, declaring)
	case *Array:
		return r.resolveArray(dt, source, declaring)
	default:
		return declared
	}
}

func (r *Registry) resolveArray(arr *Array, source Type, declaring *Declaration) Type {
	var resolved Type
	switch elem := arr.Elem.(type) {
	case *Variable:
		resolved = r.resolveVariable(elem, source, declaring)
	case *Array:
		resolved = r.resolveArray(elem, source, declaring)
	case *Parameterized:
		resolved = r.resolveParameterized(elem, source, declaring)
	default:
		resolved = elem
	}
	if concrete, ok := resolved.(*Concrete); ok && concrete.Type != nil {
		return Of(reflect.SliceOf(concrete.Type))
	}
	return &Array{Elem: resolved}
}

func (r *Registry) resolveParameterized(pt *Parameterized, source Type, declaring *Declaration) Type {
	args := make([]Type, len(pt.Args))
	for i, arg := range pt.Args {
		switch at := arg.(type) {
		case *Variable:
			args[i] = r.resolveVariable(at, source, declaring)
		case *Parameterized:
			args[i] = r.resolveParameterized(at, source, declaring)
		case *Wildcard:
			args[i] = r.resolveWildcard(at, source, declaring)
		default:
			args[i] = arg
		}
	}
	return &Parameterized{Decl: pt.Decl, Args: args}
}

func (r *Registry) resolveWildcard(wt *Wildcard, source Type, declaring *Declaration) Type {
	return &Wildcard{
		Upper: r.resolveWildcardBounds(wt.Upper, source, declaring),
		Lower: r.resolveWildcardBounds(wt.Lower, source, declaring),
	}
}

func (r *Registry) resolveWildcardBounds(bounds []Type, source Type, declaring *Declaration) []Type {
	if len(bounds) == 0 {
		return nil
	}
	resolved := make([]Type, len(bounds))
	for i, bound := range bounds {
		switch bt := bound.(type) {
		case *Variable:
			resolved[i] = r.resolveVariable(bt, source, declaring)
		case *Parameterized:
			resolved[i] = r.resolveParameterized(bt, source, declaring)
		case *Wildcard:
			resolved[i] = r.resolveWildcard(bt, source, declaring)
		default:
			resolved[i] = bound
		}
	}
	return resolved
}

func (r *Registry) resolveVariable(v *Variable, source Type, declaring *Declaration) Type {
	var srcDecl *Declaration
	var srcArgs []Type

	switch st := source.(type) {
	case *Concrete:
		srcDecl = r.DeclarationOf(st.Type)
		if srcDecl == nil && st.Type == declaring.Raw {
			// The source is the raw declaration itself; nothing can bind
			// the variable, so the declared bound is the best answer.
			return v.firstBound()
		}
	case *Parameterized:
		srcDecl, srcArgs = st.Decl, st.Args
	}
	if srcDecl == nil {
		return Top
	}

	if srcDecl == declaring {
		return v.firstBound()
	}

	for _, super := range srcDecl.Supers {
		if result := r.scanSuper(v, declaring, srcDecl, srcArgs, super); result != nil {
			return result
		}
	}
	return Top
}

// scanSuper inspects one supertype of srcDecl, looking for the point where
// declaring is instantiated. When found, the variable's declared position is
// mapped onto the arguments carried by the instantiation; an argument that is
// itself a variable of srcDecl indirects through srcArgs. A supertype that
// instantiates declaring only transitively pushes resolution one level up.
func (r *Registry) scanSuper(v *Variable, declaring, srcDecl *Declaration, srcArgs []Type, super Type) Type {
	switch sup := super.(type) {
	case *Parameterized:
		if sup.Decl == declaring {
			for i, param := range declaring.TypeParams {
				if param != v {
					continue
				}
				if i >= len(sup.Args) {
					return nil
				}
				arg := sup.Args[i]
				if argVar, ok := arg.(*Variable); ok {
					for j, srcParam := range srcDecl.TypeParams {
						if srcParam == argVar && j < len(srcArgs) {
							return srcArgs[j]
						}
					}
					return nil
				}
				return arg
			}
			return nil
		}
		if r.declExtends(sup.Decl, declaring) {
			return r.resolveVariable(v, sup, declaring)
		}
	case *Concrete:
		if superDecl := r.DeclarationOf(sup.Type); superDecl != nil && r.declExtends(superDecl, declaring) {
			return r.resolveVariable(v, sup, declaring)
		}
	}
	return nil
}
