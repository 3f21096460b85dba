// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/blueprintdoc

package blueprintdoc

import (
	"fmt"
	"strings"
)

// sumIndentStep is the enum indent added per nesting level, in points.
const sumIndentStep = 16

// RenderDefinition renders the structural body of one definition as Typst
// markup. Bytes, Integer, OpaqueData and Unsupported nodes have no body and
// render as an empty string.
func (resolver *Resolver) RenderDefinition(depth int, definition Definition, ctx *GenericContext) (string, error) {
	switch typed := definition.(type) {
	case *Pointer:
		return resolver.renderPointer(typed, ctx)
	case *Sum:
		return resolver.renderSum(depth, typed, ctx)
	case *Constructor:
		return resolver.renderConstructor(typed, ctx)
	case *List:
		items, err := resolver.Resolve(typed.Items, ctx)
		if err != nil {
			return "", err
		}

		return "${x_n in $ " + items.Display + " $}_(n=0)^∞$\n", nil
	case *Dictionary:
		keys, err := resolver.Resolve(typed.Keys, ctx)
		if err != nil {
			return "", err
		}

		values, err := resolver.Resolve(typed.Values, ctx)
		if err != nil {
			return "", err
		}

		return `Map\<` + keys.Display + ` $arrow.r$ ` + values.Display + `\>` + "\n", nil
	case *Bytes, *Integer, *OpaqueData, *Unsupported, nil:
		return "", nil
	default:
		return "", fmt.Errorf("%w: unhandled node %T", ErrInvalidDefinition, definition)
	}
}

// renderPointer renders a titled alias as a reference line.
func (resolver *Resolver) renderPointer(pointer *Pointer, ctx *GenericContext) (string, error) {
	if pointer.Title == "" {
		return "", nil
	}

	target, err := resolver.Resolve(pointer.Ref, ctx)
	if err != nil {
		return "", err
	}

	return target.Display + " \\ \n", nil
}

// renderSum renders variants as an enum block separated by vertical bars.
func (resolver *Resolver) renderSum(depth int, sum *Sum, ctx *GenericContext) (string, error) {
	items := make([]string, 0, len(sum.Variants))
	for index, variant := range sum.Variants {
		body, err := resolver.RenderDefinition(depth+1, variant, ctx)
		if err != nil {
			return "", fmt.Errorf("variant %d: %w", index, err)
		}

		items = append(items, "["+body+"]")
	}

	var out strings.Builder
	out.WriteString(`:= \{ \` + "\n")
	fmt.Fprintf(&out, "#enum(indent: %dpt,numbering: (num)=>[#if num > 1 [|]],", depth*sumIndentStep)
	out.WriteString(strings.Join(items, ","))
	out.WriteString(")\n" + `\}` + "\n")
	return out.String(), nil
}

// renderConstructor renders a bare name, a record or a positional tuple.
func (resolver *Resolver) renderConstructor(constructor *Constructor, ctx *GenericContext) (string, error) {
	if len(constructor.Fields) == 0 {
		return constructor.Title, nil
	}

	fields := make([]string, 0, len(constructor.Fields))
	for _, field := range constructor.Fields {
		resolved, err := resolver.Resolve(field.Ref, ctx)
		if err != nil {
			return "", fmt.Errorf("constructor %q field %q: %w", constructor.Title, field.Title, err)
		}

		fields = append(fields, resolved.Display)
	}

	if !constructor.Records() {
		return constructor.Title + "(" + strings.Join(fields, ",") + ")#linebreak()", nil
	}

	var out strings.Builder
	out.WriteString(constructor.Title + ` \{\`)
	for index, field := range constructor.Fields {
		out.WriteString(" #h(16pt) " + field.Title + " := " + fields[index] + `, \`)
	}

	out.WriteString(` \}`)
	return out.String(), nil
}
