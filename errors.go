// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

import "fmt"

var (
	// ErrAmbiguousAccessor is returned when two accessors claim the same
	// property with types that cannot be ordered by assignability.
	ErrAmbiguousAccessor = fmt.Errorf("ambiguous accessor")

	// ErrNoGetter is returned when a property cannot be read on a type.
	ErrNoGetter = fmt.Errorf("no getter for property")

	// ErrNoSetter is returned when a property cannot be written on a type.
	ErrNoSetter = fmt.Errorf("no setter for property")

	// ErrNoDefaultConstructor is returned when an intermediate value cannot
	// be instantiated automatically during a nested write.
	ErrNoDefaultConstructor = fmt.Errorf("no default constructor")

	// ErrNotSupported is returned when an operation does not apply to the
	// wrapped value's shape.
	ErrNotSupported = fmt.Errorf("operation not supported")
)
