// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/blueprintdoc

package blueprintdoc

import (
	"strings"
	"unicode"
)

// defaultBinding is the Typst variable holding rendered content.
const defaultBinding = "blueprint_appendix"

// sanitizeText trims and squashes repeated whitespace in plain text fields.
func sanitizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	return strings.Join(strings.Fields(text), " ")
}

// normalizeBinding keeps identifier characters and falls back to default.
func normalizeBinding(value string) string {
	value = strings.TrimSpace(value)

	var out strings.Builder
	for index, r := range value {
		switch {
		case unicode.IsLetter(r), r == '_':
			out.WriteRune(r)
		case index > 0 && (unicode.IsDigit(r) || r == '-'):
			out.WriteRune(r)
		}
	}

	if out.Len() == 0 {
		return defaultBinding
	}

	return out.String()
}

// normalizeLineEndings converts CRLF/CR to LF.
func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text
}

// ensureTrailingNewline guarantees exactly one trailing newline in output.
func ensureTrailingNewline(value string) string {
	value = strings.TrimRight(value, "\n")
	return value + "\n"
}
