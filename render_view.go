// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/blueprintdoc

package blueprintdoc

import (
	"fmt"
	"strings"
)

// glossaryDepth is the nesting level passed for top-level definitions.
const glossaryDepth = 1

// documentView is the root view model passed to Typst templates.
type documentView struct {
	Binding     string
	Preamble    []string
	Parameters  tableView
	Redeemers   tableView
	Datums      tableView
	Definitions []entryView
}

// entryView is one glossary term: "/ Name <Anchor>: Body".
type entryView struct {
	Key    string
	Name   string
	Anchor string
	Body   string
}

// buildDocumentView resolves tables and glossary entries for template rendering.
func buildDocumentView(blueprint Blueprint, opt Options) (documentView, error) {
	resolver := NewResolver(blueprint.Definitions)

	view := documentView{
		Binding:  normalizeBinding(opt.Binding),
		Preamble: preambleLines(blueprint.Preamble),
	}

	var err error
	if view.Parameters, err = buildParameterTable(blueprint.Validators, resolver); err != nil {
		return documentView{}, err
	}

	if view.Redeemers, err = buildRedeemerTable(blueprint.Validators, resolver); err != nil {
		return documentView{}, err
	}

	if view.Datums, err = buildDatumTable(blueprint.Validators, resolver); err != nil {
		return documentView{}, err
	}

	if view.Definitions, err = buildGlossary(blueprint.Definitions, resolver); err != nil {
		return documentView{}, err
	}

	return view, nil
}

// buildGlossary renders one entry per generic family in table order.
// The first instantiation with a non-empty body represents its family.
func buildGlossary(definitions Definitions, resolver *Resolver) ([]entryView, error) {
	written := newDedupSet()
	entries := make([]entryView, 0, definitions.Len())

	for _, key := range definitions.Keys() {
		if key == "" || !written.ShouldRender(key) {
			continue
		}

		definition, _ := definitions.Lookup(key)
		ref, _ := definitions.Reference(key)

		ctx, err := NewGenericContext(ref)
		if err != nil {
			return nil, fmt.Errorf("definition %q: %w", key, err)
		}

		body, err := resolver.RenderDefinition(glossaryDepth, definition, ctx)
		if err != nil {
			return nil, fmt.Errorf("definition %q: %w", key, err)
		}

		if body == "" {
			continue
		}

		heading, err := resolver.Resolve(ref, nil)
		if err != nil {
			return nil, fmt.Errorf("definition %q: %w", key, err)
		}

		written.MarkRendered(key)
		entries = append(entries, entryView{
			Key:    key,
			Name:   heading.Display,
			Anchor: ref.Anchor(),
			Body:   strings.TrimRight(body, "\n"),
		})
	}

	return entries, nil
}

// preambleLines renders blueprint metadata as single-line comment texts.
func preambleLines(preamble Preamble) []string {
	var lines []string

	title := sanitizeText(preamble.Title)
	if version := sanitizeText(preamble.Version); version != "" {
		title = strings.TrimSpace(title + " " + version)
	}

	for _, line := range []string{
		title,
		sanitizeText(preamble.Description),
		prefixed("plutus ", sanitizeText(preamble.PlutusVersion)),
		prefixed("compiler ", sanitizeText(preamble.Compiler.Name+" "+preamble.Compiler.Version)),
		prefixed("license ", sanitizeText(preamble.License)),
	} {
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

// prefixed returns prefix+value, or empty string for empty value.
func prefixed(prefix, value string) string {
	if value == "" {
		return ""
	}

	return prefix + value
}
