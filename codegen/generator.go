// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

// Package codegen emits declaration registration code for generic struct
// types. The generated source rebuilds, at runtime, the declaration-site
// structure (type parameters and the members that use them) that Go erases
// when a generic type is instantiated.
package codegen

import (
	"fmt"
	"go/format"
	"go/types"
	"strings"
)

// Generator collects generic struct types and renders a Go source file that
// registers a typedesc.Declaration for each of them.
type Generator struct {
	packageName string
	entries     []*typeEntry
}

type typeEntry struct {
	name    string
	params  []string
	members []memberEntry
}

type memberEntry struct {
	name string
	expr string
}

// NewGenerator creates a generator emitting into the given package.
func NewGenerator(packageName string) *Generator {
	return &Generator{packageName: packageName}
}

// AddType analyzes a named generic struct type and schedules it for
// registration. Only members whose declared type references a type parameter
// are recorded; fully concrete members need no declaration.
func (g *Generator) AddType(named *types.Named) error {
	typeParams := named.TypeParams()
	if typeParams == nil || typeParams.Len() == 0 {
		return fmt.Errorf("type %s has no type parameters", named.Obj().Name())
	}
	structType, ok := named.Underlying().(*types.Struct)
	if !ok {
		return fmt.Errorf("type %s is not a struct", named.Obj().Name())
	}

	entry := &typeEntry{name: named.Obj().Name()}
	for i := 0; i < typeParams.Len(); i++ {
		entry.params = append(entry.params, typeParams.At(i).Obj().Name())
	}

	receiver := declVarName(entry.name)
	for i := 0; i < structType.NumFields(); i++ {
		field := structType.Field(i)
		if !field.Exported() {
			continue
		}
		expr, ok := memberExpr(receiver, field.Type())
		if !ok {
			continue
		}
		entry.members = append(entry.members, memberEntry{name: field.Name(), expr: expr})
	}

	g.entries = append(g.entries, entry)
	return nil
}

// memberExpr renders the typedesc expression for a member type that uses a
// type parameter. Concrete member types return false; they are resolvable
// from plain reflection and need no declaration entry.
func memberExpr(receiver string, t types.Type) (string, bool) {
	switch tt := t.(type) {
	case *types.TypeParam:
		return fmt.Sprintf("%s.Param(%q)", receiver, tt.Obj().Name()), true
	case *types.Slice:
		if elem, ok := memberExpr(receiver, tt.Elem()); ok {
			return fmt.Sprintf("typedesc.NewArray(%s)", elem), true
		}
	case *types.Array:
		if elem, ok := memberExpr(receiver, tt.Elem()); ok {
			return fmt.Sprintf("typedesc.NewArray(%s)", elem), true
		}
	case *types.Pointer:
		return memberExpr(receiver, tt.Elem())
	}
	return "", false
}

// Generate renders the registration source file, gofmt-formatted.
func (g *Generator) Generate() (string, error) {
	if len(g.entries) == 0 {
		return "", fmt.Errorf("no types scheduled for generation")
	}

	var builder strings.Builder
	names := make([]string, len(g.entries))
	for i, entry := range g.entries {
		names[i] = entry.name
	}

	builder.WriteString("// Code generated by dynmeta-gen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&builder, "package %s\n\n", g.packageName)
	builder.WriteString("import (\n\t\"reflect\"\n\n\t\"github.com/metaflect/dynamic-meta/typedesc\"\n)\n\n")

	fmt.Fprintf(&builder, "// RegisterDeclarations registers generic declarations for: %s\n", strings.Join(names, ", "))
	builder.WriteString("func RegisterDeclarations(registry *typedesc.Registry) error {\n")
	for _, entry := range g.entries {
		receiver := declVarName(entry.name)
		args := make([]string, len(entry.params))
		for i, param := range entry.params {
			args[i] = fmt.Sprintf("%q", param)
		}
		anyArgs := strings.TrimSuffix(strings.Repeat("interface{}, ", len(entry.params)), ", ")
		fmt.Fprintf(&builder, "\t%s := typedesc.NewDeclaration(%q, reflect.TypeOf((*%s[%s])(nil)).Elem(), %s)\n",
			receiver, entry.name, entry.name, anyArgs, strings.Join(args, ", "))
		for _, member := range entry.members {
			fmt.Fprintf(&builder, "\t%s.AddMember(%q, %s)\n", receiver, member.name, member.expr)
		}
		fmt.Fprintf(&builder, "\tif err := registry.Register(%s); err != nil {\n\t\treturn err\n\t}\n", receiver)
	}
	builder.WriteString("\treturn nil\n}\n")

	formatted, err := format.Source([]byte(builder.String()))
	if err != nil {
		return "", fmt.Errorf("failed formatting generated code: %w", err)
	}
	return string(formatted), nil
}

func declVarName(typeName string) string {
	return strings.ToLower(typeName[:1]) + typeName[1:] + "Decl"
}
