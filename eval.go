// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

import (
	"fmt"

	"github.com/casbin/govaluate"
)

// metaParameters exposes a MetaObject's properties as expression parameters.
type metaParameters struct {
	meta *MetaObject
}

func (p metaParameters) Get(name string) (interface{}, error) {
	value, err := p.meta.GetValue(name)
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Evaluate parses an expression, resolves its parameters as properties of
// root and returns the computed result. Parsed expressions are cached per
// expression text.
//
// Example:
//
//	result, err := dm.Evaluate("Price * Quantity", order)
func (d *DynMeta) Evaluate(expression string, root any) (any, error) {
	parsed, err := d.parseExpression(expression)
	if err != nil {
		return nil, err
	}
	meta, err := d.MetaFor(root)
	if err != nil {
		return nil, err
	}
	result, err := parsed.Eval(metaParameters{meta: meta})
	if err != nil {
		return nil, fmt.Errorf("error evaluating expression %q: %w", expression, err)
	}
	return result, nil
}

func (d *DynMeta) parseExpression(expression string) (*govaluate.EvaluableExpression, error) {
	d.exprMutex.RLock()
	parsed := d.exprCache[expression]
	d.exprMutex.RUnlock()
	if parsed != nil {
		return parsed, nil
	}

	parsed, err := govaluate.NewEvaluableExpression(expression)
	if err != nil {
		return nil, fmt.Errorf("error parsing expression %q: %w", expression, err)
	}

	d.exprMutex.Lock()
	d.exprCache[expression] = parsed
	d.exprMutex.Unlock()
	return parsed, nil
}
