// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/blueprintdoc

package blueprintdoc

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// definitionsPrefix is the local JSON pointer prefix of blueprint references.
	definitionsPrefix = "#/definitions/"
	// genericSeparator splits a generic base from its bound arguments.
	genericSeparator = '$'
	// argumentSeparator splits sibling generic arguments.
	argumentSeparator = '_'
	// genericAnchorSuffix makes every instantiation of one family share an anchor.
	genericAnchorSuffix = "-a"
)

// Reference is a parsed definition path with optional generic arguments.
//
// The key "Option$aiken/Credential" parses into base "Option" with one
// argument "aiken/Credential". Arguments may themselves be generic.
type Reference struct {
	Base    string
	Args    []Reference
	Generic bool
}

// ParseReferenceString parses a "#/definitions/..." reference with JSON pointer escapes.
func ParseReferenceString(ref string) (Reference, error) {
	ref = strings.TrimSpace(ref)
	if !strings.HasPrefix(ref, definitionsPrefix) {
		return Reference{}, fmt.Errorf("%w %q: expected %s prefix", ErrInvalidReference, ref, definitionsPrefix)
	}

	return ParseReference(decodeJSONPointerToken(strings.TrimPrefix(ref, definitionsPrefix)))
}

// ParseReference parses an unescaped definition path.
//
// Grammar: ref := path ('$' ref ('_' ref)*)?. An underscore separates
// arguments only after a declared type name segment (upper-case first
// letter); underscores inside module segments such as "price_feed" are
// part of the path.
func ParseReference(path string) (Reference, error) {
	parser := referenceParser{input: path}
	ref, err := parser.parse()
	if err != nil {
		return Reference{}, err
	}

	if parser.pos != len(parser.input) {
		return Reference{}, fmt.Errorf("%w %q: unexpected %q at offset %d", ErrInvalidReference, path, parser.input[parser.pos:], parser.pos)
	}

	return ref, nil
}

// String returns canonical key encoding of the reference.
func (ref Reference) String() string {
	if !ref.Generic {
		return ref.Base
	}

	var out strings.Builder
	out.WriteString(ref.Base)
	out.WriteByte(genericSeparator)
	for index, arg := range ref.Args {
		if index > 0 {
			out.WriteByte(argumentSeparator)
		}

		out.WriteString(arg.String())
	}

	return out.String()
}

// Family returns the key shared by all instantiations of a generic type.
func (ref Reference) Family() string {
	return ref.Base
}

// Anchor returns the cross-link label of the reference.
func (ref Reference) Anchor() string {
	if ref.Generic {
		return anchorID(ref.Base + genericAnchorSuffix)
	}

	return anchorID(ref.Base)
}

// anchorID lowercases a path and maps separators to dashes.
func anchorID(path string) string {
	replacer := strings.NewReplacer("/", "-", "_", "-")
	return strings.ToLower(replacer.Replace(path))
}

// displayPath renders module path and type name separated by a dot.
func displayPath(path string) string {
	index := strings.LastIndexByte(path, '/')
	if index < 0 {
		return path
	}

	return path[:index] + "." + path[index+1:]
}

// decodeJSONPointerToken unescapes one JSON pointer token.
func decodeJSONPointerToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}

// referenceParser is a recursive descent parser over a definition key.
type referenceParser struct {
	input string
	pos   int
}

func (parser *referenceParser) parse() (Reference, error) {
	start := parser.pos
	segmentStart := parser.pos

scan:
	for parser.pos < len(parser.input) {
		switch parser.input[parser.pos] {
		case genericSeparator:
			break scan
		case argumentSeparator:
			if isTypeSegment(parser.input[segmentStart:parser.pos]) {
				break scan
			}
		case '/':
			segmentStart = parser.pos + 1
		}

		parser.pos++
	}

	ref := Reference{Base: parser.input[start:parser.pos]}
	if ref.Base == "" {
		return Reference{}, fmt.Errorf("%w %q: empty path at offset %d", ErrInvalidReference, parser.input, start)
	}

	if parser.pos >= len(parser.input) || parser.input[parser.pos] != genericSeparator {
		return ref, nil
	}

	parser.pos++
	ref.Generic = true
	for {
		arg, err := parser.parse()
		if err != nil {
			return Reference{}, err
		}

		ref.Args = append(ref.Args, arg)
		if parser.pos < len(parser.input) && parser.input[parser.pos] == argumentSeparator {
			parser.pos++
			continue
		}

		return ref, nil
	}
}

// isTypeSegment reports whether a path segment is a declared type name.
func isTypeSegment(segment string) bool {
	r, _ := utf8.DecodeRuneInString(segment)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

// GenericContext binds the generic arguments of the definition being
// rendered to placeholder letters in positional order.
type GenericContext struct {
	bound []string
}

// NewGenericContext builds the binding for a definition's own key.
// A non-generic key yields an empty, non-nil context.
func NewGenericContext(key Reference) (*GenericContext, error) {
	if len(key.Args) > len(genericLetters) {
		return nil, fmt.Errorf("%w: %q has %d", ErrTooManyGenerics, key.String(), len(key.Args))
	}

	ctx := &GenericContext{bound: make([]string, 0, len(key.Args))}
	for _, arg := range key.Args {
		ctx.bound = append(ctx.bound, arg.String())
	}

	return ctx, nil
}

// Letter returns placeholder letter when ref is one of the bound arguments.
func (ctx *GenericContext) Letter(ref Reference) (string, bool) {
	if ctx == nil {
		return "", false
	}

	key := ref.String()
	for index, bound := range ctx.bound {
		if bound == key {
			return genericLetters[index], true
		}
	}

	return "", false
}

// Len returns number of bound arguments.
func (ctx *GenericContext) Len() int {
	if ctx == nil {
		return 0
	}

	return len(ctx.bound)
}

// genericLetters are placeholder names assigned to generic slots.
var genericLetters = func() []string {
	out := make([]string, 0, 26)
	for r := 'a'; r <= 'z'; r++ {
		out = append(out, string(r))
	}

	return out
}()

// placeholderLetters returns the first n placeholder letters.
func placeholderLetters(n int) ([]string, error) {
	if n > len(genericLetters) {
		return nil, fmt.Errorf("%w: %d slots", ErrTooManyGenerics, n)
	}

	return genericLetters[:n], nil
}
