// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package codegen

import (
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildGenericBox constructs the go/types representation of
//
//	type Box[V any] struct {
//	    Value  V
//	    Values []V
//	    Count  int
//	}
func buildGenericBox(pkg *types.Package) *types.Named {
	obj := types.NewTypeName(token.NoPos, pkg, "Box", nil)
	tparam := types.NewTypeParam(types.NewTypeName(token.NoPos, pkg, "V", nil), types.NewInterfaceType(nil, nil))

	structType := types.NewStruct([]*types.Var{
		types.NewField(token.NoPos, pkg, "Value", tparam, false),
		types.NewField(token.NoPos, pkg, "Values", types.NewSlice(tparam), false),
		types.NewField(token.NoPos, pkg, "Count", types.Typ[types.Int], false),
	}, nil)

	named := types.NewNamed(obj, structType, nil)
	named.SetTypeParams([]*types.TypeParam{tparam})
	return named
}

func TestGeneratorEmitsRegistration(t *testing.T) {
	pkg := types.NewPackage("example.com/fixture", "fixture")
	generator := NewGenerator("fixture")
	require.NoError(t, generator.AddType(buildGenericBox(pkg)))

	code, err := generator.Generate()
	require.NoError(t, err)

	assert.Contains(t, code, "// Code generated by dynmeta-gen. DO NOT EDIT.")
	assert.Contains(t, code, "package fixture")
	assert.Contains(t, code, `typedesc.NewDeclaration("Box", reflect.TypeOf((*Box[interface{}])(nil)).Elem(), "V")`)
	assert.Contains(t, code, `boxDecl.AddMember("Value", boxDecl.Param("V"))`)
	assert.Contains(t, code, `boxDecl.AddMember("Values", typedesc.NewArray(boxDecl.Param("V")))`)
	// Concrete members need no declaration entry.
	assert.NotContains(t, code, `"Count"`)
}

func TestGeneratorRejectsNonGeneric(t *testing.T) {
	pkg := types.NewPackage("example.com/fixture", "fixture")
	obj := types.NewTypeName(token.NoPos, pkg, "Plain", nil)
	named := types.NewNamed(obj, types.NewStruct(nil, nil), nil)

	generator := NewGenerator("fixture")
	assert.Error(t, generator.AddType(named))
}

func TestGeneratorRequiresTypes(t *testing.T) {
	generator := NewGenerator("fixture")
	_, err := generator.Generate()
	assert.Error(t, err)
}
