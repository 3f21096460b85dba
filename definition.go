// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/blueprintdoc

package blueprintdoc

import (
	"encoding/json"
	"fmt"
)

const (
	// opaqueDataTitle and opaqueDataDescription identify the "any data" sentinel node.
	opaqueDataTitle       = "Data"
	opaqueDataDescription = "Any Plutus data."
)

// Definition is one schema node. The set of implementations is closed:
// Pointer, Sum, Constructor, List, Dictionary, Bytes, Integer, OpaqueData
// and Unsupported.
type Definition interface {
	Meta() Annotations
	isDefinition()
}

// Annotations carries optional human-readable metadata of a node.
type Annotations struct {
	Title       string
	Description string
}

// Meta returns node title and description.
func (a Annotations) Meta() Annotations { return a }

func (*Pointer) isDefinition()     {}
func (*Sum) isDefinition()         {}
func (*Constructor) isDefinition() {}
func (*List) isDefinition()        {}
func (*Dictionary) isDefinition()  {}
func (*Bytes) isDefinition()       {}
func (*Integer) isDefinition()     {}
func (*OpaqueData) isDefinition()  {}
func (*Unsupported) isDefinition() {}

// Pointer references another definition.
type Pointer struct {
	Annotations
	Ref Reference
}

// Sum is an ordered list of variants ("anyOf").
type Sum struct {
	Annotations
	Variants []Definition
}

// Constructor is a tagged record or positional tuple.
type Constructor struct {
	Annotations
	Index  int
	Fields []Field
}

// Field is one constructor slot.
type Field struct {
	Title string
	Ref   Reference
}

// List wraps one item type.
type List struct {
	Annotations
	Items Reference
}

// Dictionary maps key type to value type.
type Dictionary struct {
	Annotations
	Keys   Reference
	Values Reference
}

// Bytes is a raw byte string.
type Bytes struct {
	Annotations
}

// Integer is an arbitrary precision integer.
type Integer struct {
	Annotations
}

// OpaqueData is any serializable Plutus data.
type OpaqueData struct {
	Annotations
}

// Unsupported keeps a node whose shape is outside the known set.
type Unsupported struct {
	Annotations
	Raw json.RawMessage
}

// Records reports whether constructor fields render as named record fields.
func (constructor *Constructor) Records() bool {
	return len(constructor.Fields) > 0 && constructor.Fields[0].Title != ""
}

// rawDefinition mirrors every keyword a blueprint definition node can carry.
type rawDefinition struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Schema      json.RawMessage   `json:"schema"`
	Ref         *string           `json:"$ref"`
	AnyOf       []json.RawMessage `json:"anyOf"`
	DataType    string            `json:"dataType"`
	Index       int               `json:"index"`
	Fields      []rawField        `json:"fields"`
	Items       json.RawMessage   `json:"items"`
	Keys        *rawPointer       `json:"keys"`
	Values      *rawPointer       `json:"values"`
}

// rawField mirrors one constructor field.
type rawField struct {
	Title string `json:"title"`
	Ref   string `json:"$ref"`
}

// rawPointer mirrors a bare {"$ref": ...} object.
type rawPointer struct {
	Ref string `json:"$ref"`
}

// dataReference is used where the schema omits an item, key or value type.
var dataReference = Reference{Base: opaqueDataTitle}

// decodeDefinition converts one raw JSON node into a typed definition.
func decodeDefinition(data json.RawMessage) (Definition, error) {
	var keywords map[string]json.RawMessage
	if err := json.Unmarshal(data, &keywords); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}

	var raw rawDefinition
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}

	meta := Annotations{Title: raw.Title, Description: raw.Description}
	switch {
	case raw.Schema != nil:
		return decodeSchemaWrapper(meta, raw.Schema)
	case raw.Ref != nil:
		ref, err := ParseReferenceString(*raw.Ref)
		if err != nil {
			return nil, err
		}

		return &Pointer{Annotations: meta, Ref: ref}, nil
	case raw.AnyOf != nil:
		return decodeSum(meta, raw.AnyOf)
	case raw.DataType != "":
		return decodeDataType(meta, raw, data)
	case isOpaqueData(keywords, meta):
		return &OpaqueData{Annotations: meta}, nil
	default:
		return &Unsupported{Annotations: meta, Raw: data}, nil
	}
}

// decodeSchemaWrapper handles {"title": ..., "schema": ...} validator-style nodes.
func decodeSchemaWrapper(meta Annotations, schema json.RawMessage) (Definition, error) {
	inner, err := decodeDefinition(schema)
	if err != nil {
		return nil, err
	}

	pointer, ok := inner.(*Pointer)
	if !ok {
		return inner, nil
	}

	if meta.Title == "" {
		meta.Title = pointer.Title
	}

	if meta.Description == "" {
		meta.Description = pointer.Description
	}

	return &Pointer{Annotations: meta, Ref: pointer.Ref}, nil
}

func decodeSum(meta Annotations, variants []json.RawMessage) (Definition, error) {
	if len(variants) == 0 {
		return nil, fmt.Errorf("%w: anyOf must list at least one variant", ErrInvalidDefinition)
	}

	sum := &Sum{Annotations: meta, Variants: make([]Definition, 0, len(variants))}
	for index, rawVariant := range variants {
		variant, err := decodeDefinition(rawVariant)
		if err != nil {
			return nil, fmt.Errorf("variant %d: %w", index, err)
		}

		sum.Variants = append(sum.Variants, variant)
	}

	return sum, nil
}

// decodeDataType decodes nodes discriminated by the dataType keyword.
func decodeDataType(meta Annotations, raw rawDefinition, data json.RawMessage) (Definition, error) {
	switch raw.DataType {
	case "constructor":
		constructor := &Constructor{Annotations: meta, Index: raw.Index}
		for index, rawField := range raw.Fields {
			if rawField.Ref == "" {
				return nil, fmt.Errorf("%w: field %d has no $ref", ErrInvalidDefinition, index)
			}

			ref, err := ParseReferenceString(rawField.Ref)
			if err != nil {
				return nil, fmt.Errorf("field %d: %w", index, err)
			}

			constructor.Fields = append(constructor.Fields, Field{Title: rawField.Title, Ref: ref})
		}

		return constructor, nil
	case "list":
		return decodeList(meta, raw.Items, data)
	case "map":
		dictionary := &Dictionary{Annotations: meta, Keys: dataReference, Values: dataReference}
		var err error
		if raw.Keys != nil {
			if dictionary.Keys, err = ParseReferenceString(raw.Keys.Ref); err != nil {
				return nil, fmt.Errorf("keys: %w", err)
			}
		}

		if raw.Values != nil {
			if dictionary.Values, err = ParseReferenceString(raw.Values.Ref); err != nil {
				return nil, fmt.Errorf("values: %w", err)
			}
		}

		return dictionary, nil
	case "bytes":
		return &Bytes{Annotations: meta}, nil
	case "integer":
		return &Integer{Annotations: meta}, nil
	default:
		return &Unsupported{Annotations: meta, Raw: data}, nil
	}
}

// decodeList decodes list nodes; positional (tuple) item arrays stay unsupported.
func decodeList(meta Annotations, items json.RawMessage, data json.RawMessage) (Definition, error) {
	if isAbsent(items) {
		return &List{Annotations: meta, Items: dataReference}, nil
	}

	var pointer rawPointer
	if err := json.Unmarshal(items, &pointer); err != nil {
		var tuple []json.RawMessage
		if json.Unmarshal(items, &tuple) == nil {
			return &Unsupported{Annotations: meta, Raw: data}, nil
		}

		return nil, fmt.Errorf("%w: items: %w", ErrInvalidDefinition, err)
	}

	ref, err := ParseReferenceString(pointer.Ref)
	if err != nil {
		return nil, fmt.Errorf("items: %w", err)
	}

	return &List{Annotations: meta, Items: ref}, nil
}

// isOpaqueData reports exact structural equality with the "any data" sentinel.
func isOpaqueData(keywords map[string]json.RawMessage, meta Annotations) bool {
	return len(keywords) == 2 &&
		meta.Title == opaqueDataTitle &&
		meta.Description == opaqueDataDescription
}
