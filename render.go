// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/blueprintdoc

package blueprintdoc

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// defaultTemplateName is used when caller does not provide template name.
	defaultTemplateName = templateAppendixName
)

const (
	templateAppendixName = "appendix"
	templateGlossaryName = "glossary"
)

// Options configures document rendering.
type Options struct {
	// TemplateName selects a built-in template ("appendix" or "glossary").
	TemplateName string
	// TemplateText replaces the built-in template when not empty.
	TemplateText string
	// Binding is the Typst variable name wrapping rendered content.
	Binding string
}

// RenderFile reads blueprint from file and renders Typst documentation.
func RenderFile(path string, opt Options) (string, error) {
	blueprint, err := ParseFile(path)
	if err != nil {
		return "", err
	}

	return RenderBlueprint(blueprint, opt)
}

// Render converts blueprint bytes into a deterministic Typst document.
func Render(data []byte, opt Options) (string, error) {
	blueprint, err := Parse(data)
	if err != nil {
		return "", err
	}

	return RenderBlueprint(blueprint, opt)
}

// RenderBlueprint renders an already decoded blueprint.
func RenderBlueprint(blueprint Blueprint, opt Options) (string, error) {
	view, err := buildDocumentView(blueprint, opt)
	if err != nil {
		return "", err
	}

	documentTemplate, err := resolveTemplate(opt)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := documentTemplate.Execute(&out, view); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecuteTemplate, err)
	}

	return ensureTrailingNewline(normalizeLineEndings(out.String())), nil
}

// BuiltinTemplateNames returns all available built-in template names.
func BuiltinTemplateNames() []string {
	names := make([]string, 0, len(builtInTemplateFiles))
	for name := range builtInTemplateFiles {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// BuiltinTemplate returns one built-in template by name.
func BuiltinTemplate(name string) (string, error) {
	name = normalizeTemplateName(name)
	path, ok := builtInTemplateFiles[name]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownBuiltinTemplate, name)
	}

	data, err := templateFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadBuiltinTemplate, err)
	}

	return string(data), nil
}
