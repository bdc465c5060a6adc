// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

import "strings"

// PropertyTokenizer splits a dotted property path into segments, peeling one
// segment per step. A segment may carry an index suffix in square brackets,
// as in "items[2]"; the index text is not interpreted by the tokenizer.
type PropertyTokenizer struct {
	// Name is the current segment's property name with any index stripped.
	Name string

	// IndexedName is the current segment as written, index included.
	IndexedName string

	// Index is the text between the segment's brackets, or empty.
	Index string

	// Children holds the unparsed remainder of the path.
	Children string
}

// TokenizeProperty starts tokenizing a property path.
func TokenizeProperty(path string) *PropertyTokenizer {
	tokenizer := &PropertyTokenizer{}
	if delim := strings.IndexByte(path, '.'); delim > -1 {
		tokenizer.Name = path[:delim]
		tokenizer.Children = path[delim+1:]
	} else {
		tokenizer.Name = path
	}
	tokenizer.IndexedName = tokenizer.Name

	// Only a trailing "]" makes the bracket pair an index; "a[b" stays a
	// literal name.
	if strings.HasSuffix(tokenizer.Name, "]") {
		if open := strings.IndexByte(tokenizer.Name, '['); open > -1 {
			tokenizer.Index = tokenizer.Name[open+1 : len(tokenizer.Name)-1]
			tokenizer.Name = tokenizer.Name[:open]
		}
	}
	return tokenizer
}

// HasNext reports whether more segments follow the current one.
func (t *PropertyTokenizer) HasNext() bool {
	return t.Children != ""
}

// Next tokenizes the remainder of the path.
func (t *PropertyTokenizer) Next() *PropertyTokenizer {
	return TokenizeProperty(t.Children)
}
