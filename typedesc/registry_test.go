// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package typedesc

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry()

	t.Run("requires representative type", func(t *testing.T) {
		err := registry.Register(NewDeclaration("NoRaw", nil, "T"))
		assert.Error(t, err)
	})

	t.Run("lookup after register", func(t *testing.T) {
		boxDecl := newBoxDecl()
		require.NoError(t, registry.Register(boxDecl))
		assert.Equal(t, boxDecl, registry.DeclarationOf(boxDecl.Raw))
		assert.Nil(t, registry.DeclarationOf(reflect.TypeOf(0)))
	})
}

func TestRegistryBindWithoutArgs(t *testing.T) {
	registry := NewRegistry()
	boxDecl := newBoxDecl()

	type alias struct{}
	registry.Bind(reflect.TypeOf(alias{}), boxDecl)
	assert.Equal(t, boxDecl, registry.DeclarationOf(reflect.TypeOf(alias{})))
}

func TestRegistryBindNaming(t *testing.T) {
	registry := NewRegistry()
	boxDecl := newBoxDecl()

	registry.Bind(reflect.TypeOf(box[string]{}), boxDecl, Of(stringType))
	bound := registry.DeclarationOf(reflect.TypeOf(box[string]{}))
	require.NotNil(t, bound)
	assert.Equal(t, "Box[string]", bound.Name)
}

func TestDeclaredMemberWalksHierarchy(t *testing.T) {
	registry := NewRegistry()
	boxDecl := newBoxDecl()
	require.NoError(t, registry.Register(boxDecl))

	stringBoxDecl := NewDeclaration("StringBox", reflect.TypeOf(stringBox{})).
		Extends(NewParameterized(boxDecl, Of(stringType)))
	require.NoError(t, registry.Register(stringBoxDecl))

	declared, owner, ok := registry.DeclaredMember(reflect.TypeOf(stringBox{}), "Value")
	require.True(t, ok)
	assert.Equal(t, boxDecl, owner)
	assert.Equal(t, boxDecl.Param("V"), declared)

	_, _, ok = registry.DeclaredMember(reflect.TypeOf(stringBox{}), "Missing")
	assert.False(t, ok)
}
