// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

import "github.com/metaflect/dynamic-meta/typedesc"

type Option func(*Options)

type Options struct {
	ObjectFactory    ObjectFactory
	WrapperFactories []ObjectWrapperFactory
	Registry         *typedesc.Registry
	Verbose          bool
	LogCb            func(format string, args ...any)
}

// WithObjectFactory overrides the factory used to instantiate missing
// intermediate values during nested writes.
func WithObjectFactory(factory ObjectFactory) Option {
	return func(opts *Options) {
		opts.ObjectFactory = factory
	}
}

// WithWrapperFactory registers a custom wrapper factory. Factories are
// consulted in registration order before the built-in wrappers.
func WithWrapperFactory(factory ObjectWrapperFactory) Option {
	return func(opts *Options) {
		opts.WrapperFactories = append(opts.WrapperFactories, factory)
	}
}

// WithRegistry supplies a declaration registry for generic member type
// resolution.
func WithRegistry(registry *typedesc.Registry) Option {
	return func(opts *Options) {
		opts.Registry = registry
	}
}

func WithVerbose() Option {
	return func(opts *Options) {
		opts.Verbose = true
	}
}

func WithLogCb(logCb func(format string, args ...any)) Option {
	return func(opts *Options) {
		opts.LogCb = logCb
	}
}
