// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/blueprintdoc

package blueprintdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ExampleFormatJSON encodes example payload as detailed-schema JSON.
	ExampleFormatJSON ExampleFormat = "json"
	// ExampleFormatYAML encodes example payload as YAML with constructor comments.
	ExampleFormatYAML ExampleFormat = "yaml"
)

// ExampleFormat configures output format for generated example payload.
type ExampleFormat string

const (
	// ExamplePartRedeemer selects validator redeemer.
	ExamplePartRedeemer ExamplePart = "redeemer"
	// ExamplePartDatum selects validator datum.
	ExamplePartDatum ExamplePart = "datum"
)

// ExamplePart selects which validator type an example is generated for.
type ExamplePart string

// ExampleTarget selects the type to build an example for: either a
// definition key, or a validator title plus part.
type ExampleTarget struct {
	Definition string
	Validator  string
	Part       ExamplePart
}

// exampleBuilder converts typed definitions into Plutus data example nodes.
type exampleBuilder struct {
	activeRefs  map[string]int
	definitions Definitions
}

// GenerateExampleJSON returns example Plutus data encoded as pretty JSON.
func GenerateExampleJSON(blueprint Blueprint, target ExampleTarget) ([]byte, error) {
	node, err := buildExampleNode(blueprint, target)
	if err != nil {
		return nil, err
	}

	var value any
	if err := node.Decode(&value); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeExampleJSON, err)
	}

	data, err := marshalExampleJSON(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeExampleJSON, err)
	}

	return data, nil
}

// GenerateExampleYAML returns example Plutus data encoded as YAML.
func GenerateExampleYAML(blueprint Blueprint, target ExampleTarget) ([]byte, error) {
	node, err := buildExampleNode(blueprint, target)
	if err != nil {
		return nil, err
	}

	data, err := marshalExampleYAMLNode(node)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeExampleYAML, err)
	}

	return data, nil
}

// GenerateExample returns example Plutus data encoded in selected format.
func GenerateExample(blueprint Blueprint, target ExampleTarget, format ExampleFormat) ([]byte, error) {
	format, err := normalizeExampleFormat(format)
	if err != nil {
		return nil, err
	}

	switch format {
	case ExampleFormatJSON:
		return GenerateExampleJSON(blueprint, target)
	case ExampleFormatYAML:
		return GenerateExampleYAML(blueprint, target)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownExampleFormat, format)
	}
}

// normalizeExampleFormat validates and normalizes caller format value.
func normalizeExampleFormat(format ExampleFormat) (ExampleFormat, error) {
	normalized := ExampleFormat(strings.ToLower(strings.TrimSpace(string(format))))
	switch normalized {
	case ExampleFormatJSON, ExampleFormatYAML:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownExampleFormat, format)
	}
}

// buildExampleNode selects the target definition and builds its example tree.
func buildExampleNode(blueprint Blueprint, target ExampleTarget) (*yaml.Node, error) {
	builder := exampleBuilder{
		definitions: blueprint.Definitions,
		activeRefs:  make(map[string]int),
	}

	var (
		node *yaml.Node
		ok   bool
		err  error
	)

	if key := strings.TrimSpace(target.Definition); key != "" {
		ref, refErr := ParseReference(key)
		if refErr != nil {
			return nil, refErr
		}

		node, ok, err = builder.buildReference(ref)
	} else {
		definition, selectErr := selectValidatorPart(blueprint, target)
		if selectErr != nil {
			return nil, selectErr
		}

		node, ok, err = builder.buildDefinition(definition)
	}

	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrExampleCycle
	}

	return node, nil
}

// selectValidatorPart returns the redeemer or datum of a validator.
func selectValidatorPart(blueprint Blueprint, target ExampleTarget) (Definition, error) {
	validator, found := blueprint.Validator(target.Validator)
	if !found {
		return nil, fmt.Errorf("%w %q", ErrUnknownValidator, target.Validator)
	}

	switch ExamplePart(strings.ToLower(strings.TrimSpace(string(target.Part)))) {
	case ExamplePartRedeemer, "":
		return validator.Redeemer, nil
	case ExamplePartDatum:
		if validator.Datum == nil {
			return nil, fmt.Errorf("%w: %q", ErrMissingDatum, validator.Title)
		}

		return validator.Datum, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownExamplePart, target.Part)
	}
}

// buildReference follows a reference; ok is false when it re-enters an active definition.
func (builder *exampleBuilder) buildReference(ref Reference) (*yaml.Node, bool, error) {
	key := ref.String()
	definition, found := builder.definitions.Lookup(key)
	if !found {
		return builder.buildPrimitive(ref)
	}

	if _, unsupported := definition.(*Unsupported); unsupported && anchorID(ref.Base) == tupleAnchor {
		return builder.buildPrimitive(ref)
	}

	release, ok := builder.enterReference(key)
	if !ok {
		return nil, false, nil
	}
	defer release()

	return builder.buildDefinition(definition)
}

// buildPrimitive builds values for primitives missing from the definitions table.
func (builder *exampleBuilder) buildPrimitive(ref Reference) (*yaml.Node, bool, error) {
	switch anchorID(ref.Base) {
	case "int", "data":
		return plutusScalarNode("int", "!!int", "0"), true, nil
	case "bytearray":
		return plutusScalarNode("bytes", "!!str", ""), true, nil
	case tupleAnchor:
		items := ref.Args
		if len(items) == 0 {
			items = []Reference{{Base: "Int"}, {Base: "Int"}}
		}

		list := emptySequenceNode()
		for _, item := range items {
			node, ok, err := builder.buildReference(item)
			if err != nil || !ok {
				return nil, ok, err
			}

			list.Content = append(list.Content, node)
		}

		return plutusCollectionNode("list", list), true, nil
	default:
		return nil, false, fmt.Errorf("%w %q", ErrUnknownReference, ref.String())
	}
}

// buildDefinition recursively builds example node for one definition.
func (builder *exampleBuilder) buildDefinition(definition Definition) (*yaml.Node, bool, error) {
	switch typed := definition.(type) {
	case *Pointer:
		return builder.buildReference(typed.Ref)
	case *Sum:
		for _, variant := range typed.Variants {
			node, ok, err := builder.buildDefinition(variant)
			if err != nil {
				return nil, false, err
			}

			if ok {
				return node, true, nil
			}
		}

		return nil, false, nil
	case *Constructor:
		return builder.buildConstructor(typed)
	case *List:
		list := emptySequenceNode()
		item, ok, err := builder.buildReference(typed.Items)
		if err != nil {
			return nil, false, err
		}

		if ok {
			list.Content = append(list.Content, item)
			list.Style = 0
		}

		return plutusCollectionNode("list", list), true, nil
	case *Dictionary:
		return builder.buildDictionary(typed)
	case *Bytes:
		return plutusScalarNode("bytes", "!!str", ""), true, nil
	case *Integer, *OpaqueData:
		return plutusScalarNode("int", "!!int", "0"), true, nil
	case nil:
		return nil, false, fmt.Errorf("%w: missing definition", ErrInvalidDefinition)
	default:
		return nil, false, fmt.Errorf("%w: no example for %T", ErrInvalidDefinition, definition)
	}
}

// buildConstructor builds {"constructor": index, "fields": [...]}.
func (builder *exampleBuilder) buildConstructor(constructor *Constructor) (*yaml.Node, bool, error) {
	fields := emptySequenceNode()
	for _, field := range constructor.Fields {
		node, ok, err := builder.buildReference(field.Ref)
		if err != nil || !ok {
			return nil, ok, err
		}

		if field.Title != "" {
			node.HeadComment = field.Title
		}

		fields.Content = append(fields.Content, node)
	}

	if len(fields.Content) > 0 {
		fields.Style = 0
	}

	index := yamlScalarNode("!!int", strconv.Itoa(constructor.Index))
	index.LineComment = annotationComment(constructor.Annotations)

	return &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
		Content: []*yaml.Node{
			yamlScalarNode("!!str", "constructor"), index,
			yamlScalarNode("!!str", "fields"), fields,
		},
	}, true, nil
}

// buildDictionary builds {"map": [{"k": ..., "v": ...}]}; a cyclic side yields an empty map.
func (builder *exampleBuilder) buildDictionary(dictionary *Dictionary) (*yaml.Node, bool, error) {
	pairs := emptySequenceNode()

	key, keyOK, err := builder.buildReference(dictionary.Keys)
	if err != nil {
		return nil, false, err
	}

	value, valueOK, err := builder.buildReference(dictionary.Values)
	if err != nil {
		return nil, false, err
	}

	if keyOK && valueOK {
		pairs.Style = 0
		pairs.Content = append(pairs.Content, &yaml.Node{
			Kind: yaml.MappingNode,
			Tag:  "!!map",
			Content: []*yaml.Node{
				yamlScalarNode("!!str", "k"), key,
				yamlScalarNode("!!str", "v"), value,
			},
		})
	}

	return plutusCollectionNode("map", pairs), true, nil
}

// enterReference registers active definition key and returns release callback.
func (builder *exampleBuilder) enterReference(key string) (func(), bool) {
	if builder.activeRefs[key] > 0 {
		return nil, false
	}

	builder.activeRefs[key]++
	return func() {
		builder.activeRefs[key]--
		if builder.activeRefs[key] <= 0 {
			delete(builder.activeRefs, key)
		}
	}, true
}

// annotationComment builds a one-line YAML comment from title and description.
func annotationComment(meta Annotations) string {
	title := sanitizeText(meta.Title)
	description := sanitizeText(meta.Description)

	switch {
	case title == "" && description == "":
		return ""
	case title == "":
		return description
	case description == "" || title == description:
		return title
	default:
		return title + ": " + description
	}
}

// marshalExampleJSON serializes example payload as pretty JSON.
func marshalExampleJSON(value any) ([]byte, error) {
	var out bytes.Buffer
	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(value); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// marshalExampleYAMLNode serializes example node tree as YAML.
func marshalExampleYAMLNode(node *yaml.Node) ([]byte, error) {
	document := &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{node},
	}

	var out bytes.Buffer
	encoder := yaml.NewEncoder(&out)
	encoder.SetIndent(2)

	if err := encoder.Encode(document); err != nil {
		return nil, err
	}

	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// plutusScalarNode builds {"<name>": value} for int and bytes data.
func plutusScalarNode(name, tag, value string) *yaml.Node {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
		Content: []*yaml.Node{
			yamlScalarNode("!!str", name),
			yamlScalarNode(tag, value),
		},
	}
}

// plutusCollectionNode builds {"<name>": [...]} for list and map data.
func plutusCollectionNode(name string, items *yaml.Node) *yaml.Node {
	return &yaml.Node{
		Kind:    yaml.MappingNode,
		Tag:     "!!map",
		Content: []*yaml.Node{yamlScalarNode("!!str", name), items},
	}
}

// emptySequenceNode creates a flow-style sequence so empty lists encode as [].
func emptySequenceNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
}

// yamlScalarNode creates one scalar yaml.Node with explicit tag.
func yamlScalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   tag,
		Value: value,
	}
}
