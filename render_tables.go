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

// titleSeparator joins pascal-cased validator title segments.
const titleSeparator = " $arrow.r$ "

// tableView is one two-column validator summary table.
type tableView struct {
	Heading string
	Rows    []rowView
}

// rowView is one validator row of a summary table.
type rowView struct {
	Name  string
	Value string
}

// buildParameterTable lists each validator with its parameters, in input order.
func buildParameterTable(validators []Validator, resolver *Resolver) (tableView, error) {
	table := tableView{Heading: "Parameters", Rows: make([]rowView, 0, len(validators))}
	for _, validator := range validators {
		var cell strings.Builder
		for index, parameter := range validator.Parameters {
			pointer, ok := parameter.(*Pointer)
			if !ok {
				return tableView{}, fmt.Errorf("validator %q parameter %d: %w", validator.Title, index, ErrParameterNotReference)
			}

			resolved, err := resolver.Resolve(pointer.Ref, &GenericContext{})
			if err != nil {
				return tableView{}, fmt.Errorf("validator %q parameter %d: %w", validator.Title, index, err)
			}

			fmt.Fprintf(&cell, "`%s`: %s,#linebreak()", namespacedPascalCase(pointer.Title, "."), resolved.Display)
		}

		table.Rows = append(table.Rows, rowView{
			Name:  validatorDisplayTitle(validator.Title),
			Value: cell.String(),
		})
	}

	return table, nil
}

// buildRedeemerTable lists every validator redeemer. Redeemers and present
// datums must be schema/ref pointers.
func buildRedeemerTable(validators []Validator, resolver *Resolver) (tableView, error) {
	table := tableView{Heading: "Redeemer", Rows: make([]rowView, 0, len(validators))}
	for _, validator := range validators {
		redeemer, ok := validator.Redeemer.(*Pointer)
		if !ok {
			return tableView{}, fmt.Errorf("validator %q: %w", validator.Title, ErrRedeemerNotReference)
		}

		if err := checkDatumPointer(validator); err != nil {
			return tableView{}, err
		}

		resolved, err := resolver.Resolve(redeemer.Ref, &GenericContext{})
		if err != nil {
			return tableView{}, fmt.Errorf("validator %q redeemer: %w", validator.Title, err)
		}

		table.Rows = append(table.Rows, rowView{
			Name:  validatorDisplayTitle(validator.Title),
			Value: resolved.Display,
		})
	}

	return table, nil
}

// buildDatumTable lists validators that take a datum.
func buildDatumTable(validators []Validator, resolver *Resolver) (tableView, error) {
	table := tableView{Heading: "Datum"}
	for _, validator := range validators {
		if err := checkDatumPointer(validator); err != nil {
			return tableView{}, err
		}

		if validator.Datum == nil {
			continue
		}

		resolved, err := resolver.Resolve(validator.Datum.(*Pointer).Ref, &GenericContext{})
		if err != nil {
			return tableView{}, fmt.Errorf("validator %q datum: %w", validator.Title, err)
		}

		table.Rows = append(table.Rows, rowView{
			Name:  validatorDisplayTitle(validator.Title),
			Value: resolved.Display,
		})
	}

	return table, nil
}

// checkDatumPointer fails when a present datum is not a schema/ref pointer.
func checkDatumPointer(validator Validator) error {
	if validator.Datum == nil {
		return nil
	}

	if _, ok := validator.Datum.(*Pointer); !ok {
		return fmt.Errorf("validator %q: %w", validator.Title, ErrDatumNotReference)
	}

	return nil
}

// validatorDisplayTitle renders "price_feed.mint" as "PriceFeed $arrow.r$ Mint".
func validatorDisplayTitle(title string) string {
	return namespacedPascalCase(title, titleSeparator)
}

// namespacedPascalCase pascal-cases each dot separated segment and joins them.
func namespacedPascalCase(name, separator string) string {
	segments := strings.Split(name, ".")
	for index, segment := range segments {
		segments[index] = snakeToPascalCase(segment)
	}

	return strings.Join(segments, separator)
}

// snakeToPascalCase converts "mint_feed" into "MintFeed".
func snakeToPascalCase(input string) string {
	var out strings.Builder
	out.Grow(len(input))

	for _, word := range strings.Split(input, "_") {
		first, size := utf8.DecodeRuneInString(word)
		if size == 0 {
			continue
		}

		out.WriteRune(unicode.ToUpper(first))
		out.WriteString(strings.ToLower(word[size:]))
	}

	return out.String()
}
