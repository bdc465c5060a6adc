// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

import "strings"

// isGetterName reports whether a method name follows the read accessor
// convention ("GetX" or "IsX").
func isGetterName(name string) bool {
	if strings.HasPrefix(name, "Get") && len(name) > 3 {
		return true
	}
	if strings.HasPrefix(name, "Is") && len(name) > 2 {
		return true
	}
	return false
}

// isSetterName reports whether a method name follows the write accessor
// convention ("SetX").
func isSetterName(name string) bool {
	return strings.HasPrefix(name, "Set") && len(name) > 3
}

// propertyName derives the canonical property name from an accessor method
// name by stripping its prefix. Names that do not carry an accessor prefix
// are returned unchanged, which covers plain field names.
func propertyName(name string) string {
	switch {
	case strings.HasPrefix(name, "Is"):
		return name[2:]
	case strings.HasPrefix(name, "Get"), strings.HasPrefix(name, "Set"):
		return name[3:]
	}
	return name
}

// isValidPropertyName filters out reserved member names that never become
// properties.
func isValidPropertyName(name string) bool {
	return name != "" && name != "_" && !strings.HasPrefix(name, "XXX_")
}
