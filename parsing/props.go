// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package parsing

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Options controls placeholder expansion.
type Options struct {
	// OpenToken and CloseToken delimit a placeholder expression.
	OpenToken  string
	CloseToken string

	// EnableDefaultValue allows a placeholder to carry a fallback after the
	// separator, as in "${key:fallback}".
	EnableDefaultValue bool

	// DefaultValueSeparator separates the key from its fallback.
	DefaultValueSeparator string
}

// Option configures placeholder expansion.
type Option func(*Options)

// WithTokens overrides the placeholder delimiters.
func WithTokens(open, close string) Option {
	return func(o *Options) {
		o.OpenToken = open
		o.CloseToken = close
	}
}

// WithDefaultValue enables or disables default value handling.
func WithDefaultValue(enabled bool) Option {
	return func(o *Options) {
		o.EnableDefaultValue = enabled
	}
}

// WithDefaultValueSeparator overrides the key/fallback separator.
func WithDefaultValueSeparator(sep string) Option {
	return func(o *Options) {
		o.DefaultValueSeparator = sep
	}
}

func defaultOptions() Options {
	return Options{
		OpenToken:             "${",
		CloseToken:            "}",
		EnableDefaultValue:    false,
		DefaultValueSeparator: ":",
	}
}

// ExpandPlaceholders substitutes "${key}" placeholders in template with values
// from variables.
//
// A placeholder whose key is not present is left in the output verbatim,
// delimiters included. With default values enabled, "${key:fallback}"
// substitutes the fallback when the key is missing; only the first separator
// splits the expression, so the fallback may itself contain the separator.
// An empty key with a fallback ("${:fallback}") substitutes the fallback.
//
// Example:
//
//	vars := map[string]string{"first": "James"}
//	out := parsing.ExpandPlaceholders("${first} ${last:Smith}", vars,
//		parsing.WithDefaultValue(true))
//	// out == "James Smith"
func ExpandPlaceholders(template string, variables map[string]string, opts ...Option) string {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	handler := func(content string) string {
		if variables != nil {
			key := content
			var defaultValue string
			hasDefault := false
			if options.EnableDefaultValue {
				if sep := strings.Index(content, options.DefaultValueSeparator); sep >= 0 {
					key = content[:sep]
					defaultValue = content[sep+len(options.DefaultValueSeparator):]
					hasDefault = true
				}
			}
			if value, ok := variables[key]; ok {
				return value
			}
			if hasDefault {
				return defaultValue
			}
		}
		return options.OpenToken + content + options.CloseToken
	}

	return NewTokenParser(options.OpenToken, options.CloseToken, handler).Parse(template)
}

// LoadVariablesYAML reads a YAML document and flattens it into a variable map
// suitable for ExpandPlaceholders. Nested mappings flatten into dotted keys
// ("db.pool.size"), scalars are rendered with their default formatting, and
// sequences are indexed ("hosts.0").
func LoadVariablesYAML(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed reading variables file: %w", err)
	}
	return ParseVariablesYAML(data)
}

// ParseVariablesYAML flattens a YAML document into a variable map. See
// LoadVariablesYAML.
func ParseVariablesYAML(data []byte) (map[string]string, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed parsing variables yaml: %w", err)
	}
	variables := make(map[string]string)
	flattenVariables("", doc, variables)
	return variables, nil
}

func flattenVariables(prefix string, value interface{}, out map[string]string) {
	switch v := value.(type) {
	case map[string]interface{}:
		for key, child := range v {
			flattenVariables(joinKey(prefix, key), child, out)
		}
	case []interface{}:
		for i, child := range v {
			flattenVariables(joinKey(prefix, fmt.Sprint(i)), child, out)
		}
	case nil:
		if prefix != "" {
			out[prefix] = ""
		}
	default:
		if prefix != "" {
			out[prefix] = fmt.Sprint(v)
		}
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
