// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPlaceholders(t *testing.T) {
	vars := map[string]string{
		"first":   "James",
		"initial": "T",
		"last":    "Kirk",
		"empty":   "",
	}

	tests := []struct {
		name string
		text string
		opts []Option
		want string
	}{
		{
			name: "simple substitution",
			text: "${first} ${initial} ${last} reporting.",
			want: "James T Kirk reporting.",
		},
		{
			name: "missing key stays verbatim",
			text: "hello ${rank}",
			want: "hello ${rank}",
		},
		{
			name: "default value used when key missing",
			text: "abc${x:1}def",
			opts: []Option{WithDefaultValue(true)},
			want: "abc1def",
		},
		{
			name: "default value ignored when key present",
			text: "${first:nobody}",
			opts: []Option{WithDefaultValue(true)},
			want: "James",
		},
		{
			name: "defaults disabled leaves expression verbatim",
			text: "abc${x:1}def",
			want: "abc${x:1}def",
		},
		{
			name: "escaped open token",
			text: `a\${b}c`,
			want: "a${b}c",
		},
		{
			name: "empty default",
			text: "${missing:}",
			opts: []Option{WithDefaultValue(true)},
			want: "",
		},
		{
			name: "empty key with default",
			text: "${:default}",
			opts: []Option{WithDefaultValue(true)},
			want: "default",
		},
		{
			name: "only first separator splits",
			text: "${missing:a:b}",
			opts: []Option{WithDefaultValue(true)},
			want: "a:b",
		},
		{
			name: "custom separator",
			text: "${missing?fallback}",
			opts: []Option{WithDefaultValue(true), WithDefaultValueSeparator("?")},
			want: "fallback",
		},
		{
			name: "custom tokens",
			text: "#{first}#",
			opts: []Option{WithTokens("#{", "}#")},
			want: "James",
		},
		{
			name: "empty value substitutes",
			text: "[${empty}]",
			want: "[]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPlaceholders(tt.text, vars, tt.opts...))
		})
	}

	t.Run("nil variables leave expressions verbatim", func(t *testing.T) {
		assert.Equal(t, "${x}", ExpandPlaceholders("${x}", nil))
		assert.Equal(t, "${x:1}", ExpandPlaceholders("${x:1}", nil, WithDefaultValue(true)))
	})
}

func TestParseVariablesYAML(t *testing.T) {
	doc := []byte(`
db:
  user: admin
  pool:
    size: 10
hosts:
  - alpha
  - beta
flag: true
blank:
`)

	vars, err := ParseVariablesYAML(doc)
	require.NoError(t, err)

	assert.Equal(t, "admin", vars["db.user"])
	assert.Equal(t, "10", vars["db.pool.size"])
	assert.Equal(t, "alpha", vars["hosts.0"])
	assert.Equal(t, "beta", vars["hosts.1"])
	assert.Equal(t, "true", vars["flag"])
	assert.Equal(t, "", vars["blank"])

	t.Run("expansion with loaded variables", func(t *testing.T) {
		out := ExpandPlaceholders("user=${db.user} size=${db.pool.size:5}", vars, WithDefaultValue(true))
		assert.Equal(t, "user=admin size=10", out)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := ParseVariablesYAML([]byte("a: [unclosed"))
		assert.Error(t, err)
	})
}
