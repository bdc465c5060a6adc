// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

// Package parsing implements the delimiter-token scanner and placeholder
// expansion used to expand configuration strings such as "${db.user}".
package parsing

import "strings"

// TokenHandler receives the content between an open and close token and
// returns the text to substitute for the whole expression.
type TokenHandler func(content string) string

// TokenParser scans a template for delimited expressions and substitutes
// them through a TokenHandler.
//
// An open token immediately preceded by a backslash is emitted literally with
// the backslash stripped; escaped close tokens inside an expression are
// handled the same way. An expression with no matching close token is emitted
// verbatim including the open token.
type TokenParser struct {
	openToken  string
	closeToken string
	handler    TokenHandler
}

// NewTokenParser creates a parser for the given token pair and handler.
func NewTokenParser(openToken, closeToken string, handler TokenHandler) *TokenParser {
	return &TokenParser{
		openToken:  openToken,
		closeToken: closeToken,
		handler:    handler,
	}
}

// Parse scans text left to right and returns the expanded result.
func (p *TokenParser) Parse(text string) string {
	if text == "" {
		return ""
	}

	start := strings.Index(text, p.openToken)
	if start == -1 {
		return text
	}

	var builder strings.Builder
	var expression strings.Builder
	offset := 0

	for start > -1 {
		if start > 0 && text[start-1] == '\\' {
			// Escaped open token: emit it literally without the backslash.
			builder.WriteString(text[offset : start-1])
			builder.WriteString(p.openToken)
			offset = start + len(p.openToken)
		} else {
			expression.Reset()
			builder.WriteString(text[offset:start])
			offset = start + len(p.openToken)

			end := indexFrom(text, p.closeToken, offset)
			for end > -1 {
				if end > offset && text[end-1] == '\\' {
					// Escaped close token inside the expression.
					expression.WriteString(text[offset : end-1])
					expression.WriteString(p.closeToken)
					offset = end + len(p.closeToken)
					end = indexFrom(text, p.closeToken, offset)
				} else {
					expression.WriteString(text[offset:end])
					offset = end + len(p.closeToken)
					break
				}
			}

			if end == -1 {
				// Unterminated expression: emit the rest verbatim.
				builder.WriteString(text[start:])
				offset = len(text)
			} else {
				builder.WriteString(p.handler(expression.String()))
			}
		}

		start = indexFrom(text, p.openToken, offset)
	}

	if offset < len(text) {
		builder.WriteString(text[offset:])
	}
	return builder.String()
}

func indexFrom(text, substr string, from int) int {
	if from >= len(text) {
		return -1
	}
	idx := strings.Index(text[from:], substr)
	if idx == -1 {
		return -1
	}
	return from + idx
}
