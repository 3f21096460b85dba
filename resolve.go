// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/blueprintdoc

package blueprintdoc

import (
	"fmt"
	"strings"
)

const (
	// tupleAnchor renders as positional pair notation instead of a link.
	tupleAnchor = "tuple"
	// fixedTupleDisplay is used for bare Tuple references that carry no argument types.
	fixedTupleDisplay = "(Int, Int)"
)

// primitiveAnchors render as their bare name without a link.
var primitiveAnchors = map[string]struct{}{
	"int":       {},
	"bytearray": {},
	"data":      {},
}

// Resolved is a reference prepared for Typst output.
type Resolved struct {
	// Anchor is the label every instantiation of the referenced family links to.
	Anchor string
	// Display is Typst markup: a link, a bare primitive name or a generic letter.
	Display string
}

// Resolver turns references into anchors and display markup.
type Resolver struct {
	definitions Definitions
}

// NewResolver creates resolver over one definitions table.
func NewResolver(definitions Definitions) *Resolver {
	return &Resolver{definitions: definitions}
}

// ResolvePath parses and resolves a path. With preprocess the path is a raw
// "#/definitions/..." reference string that still carries pointer escapes.
func (resolver *Resolver) ResolvePath(path string, preprocess bool, ctx *GenericContext) (Resolved, error) {
	var (
		ref Reference
		err error
	)
	if preprocess {
		ref, err = ParseReferenceString(path)
	} else {
		ref, err = ParseReference(path)
	}

	if err != nil {
		return Resolved{}, err
	}

	return resolver.Resolve(ref, ctx)
}

// Resolve renders one reference.
//
// A nil ctx renders the generic skeleton of a definition's own key
// (Base<a, b>). A non-nil ctx renders a reference used inside a body:
// arguments are resolved recursively, and a reference bound to one of the
// enclosing definition's generic arguments collapses to its letter.
func (resolver *Resolver) Resolve(ref Reference, ctx *GenericContext) (Resolved, error) {
	if letter, ok := ctx.Letter(ref); ok {
		return Resolved{Anchor: ref.Anchor(), Display: letter}, nil
	}

	if err := resolver.checkKnown(ref); err != nil {
		return Resolved{}, err
	}

	anchor := ref.Anchor()
	base := displayPath(ref.Base)

	if !ref.Generic {
		if _, ok := primitiveAnchors[anchor]; ok {
			return Resolved{Anchor: anchor, Display: base}, nil
		}

		if anchor == tupleAnchor {
			return Resolved{Anchor: anchor, Display: fixedTupleDisplay}, nil
		}

		return Resolved{Anchor: anchor, Display: typstLink(anchor, base)}, nil
	}

	if ctx == nil {
		letters, err := placeholderLetters(len(ref.Args))
		if err != nil {
			return Resolved{}, fmt.Errorf("%q: %w", ref.String(), err)
		}

		if anchorID(ref.Base) == tupleAnchor {
			return Resolved{Anchor: anchor, Display: "(" + strings.Join(letters, ", ") + ")"}, nil
		}

		return Resolved{Anchor: anchor, Display: typstLink(anchor, base+typstGenericArgs(letters))}, nil
	}

	args := make([]string, 0, len(ref.Args))
	for _, arg := range ref.Args {
		resolved, err := resolver.Resolve(arg, ctx)
		if err != nil {
			return Resolved{}, err
		}

		args = append(args, resolved.Display)
	}

	if anchorID(ref.Base) == tupleAnchor {
		return Resolved{Anchor: anchor, Display: "(" + strings.Join(args, ", ") + ")"}, nil
	}

	return Resolved{Anchor: anchor, Display: typstLink(anchor, base) + typstGenericArgs(args)}, nil
}

// checkKnown fails for references naming neither a definition family nor a primitive.
func (resolver *Resolver) checkKnown(ref Reference) error {
	primitive := anchorID(ref.Base)
	if _, ok := primitiveAnchors[primitive]; ok || primitive == tupleAnchor {
		return nil
	}

	if resolver.definitions.HasFamily(ref.Base) {
		return nil
	}

	return fmt.Errorf("%w %q", ErrUnknownReference, ref.String())
}

// typstLink renders a cross-reference to a glossary label.
func typstLink(anchor, text string) string {
	return "#link(<" + anchor + ">)[" + text + "]"
}

// typstGenericArgs renders escaped angle-bracketed generic argument list.
func typstGenericArgs(args []string) string {
	if len(args) == 0 {
		return ""
	}

	return `\<` + strings.Join(args, ", ") + `\>`
}
