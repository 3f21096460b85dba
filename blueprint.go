// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/blueprintdoc

package blueprintdoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Blueprint is a decoded smart-contract blueprint document.
type Blueprint struct {
	Preamble    Preamble
	Validators  []Validator
	Definitions Definitions
}

// Preamble holds blueprint metadata.
type Preamble struct {
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Version       string   `json:"version,omitempty"`
	PlutusVersion string   `json:"plutusVersion,omitempty"`
	Compiler      Compiler `json:"compiler"`
	License       string   `json:"license,omitempty"`
}

// Compiler names the toolchain that produced the blueprint.
type Compiler struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

// Validator is one on-chain script entry.
type Validator struct {
	// Title is a dot separated namespaced name, for example "vault.spend".
	Title string
	// Datum is nil when the validator takes no datum.
	Datum      Definition
	Redeemer   Definition
	Parameters []Definition
	// CompiledCode and Hash are carried through untouched.
	CompiledCode string
	Hash         string
}

// Definitions is the definitions table in document order.
type Definitions struct {
	keys     []string
	byKey    map[string]Definition
	refs     map[string]Reference
	families map[string]struct{}
}

// rawBlueprint mirrors blueprint JSON before definition decoding.
type rawBlueprint struct {
	Preamble    Preamble         `json:"preamble"`
	Validators  []rawValidator   `json:"validators"`
	Definitions rawDefinitionMap `json:"definitions"`
}

// rawValidator mirrors one validator JSON object.
type rawValidator struct {
	Title        string            `json:"title"`
	Datum        json.RawMessage   `json:"datum"`
	Redeemer     json.RawMessage   `json:"redeemer"`
	Parameters   []json.RawMessage `json:"parameters"`
	CompiledCode string            `json:"compiledCode"`
	Hash         string            `json:"hash"`
}

// rawDefinitionEntry is one definitions table entry with undecoded value.
type rawDefinitionEntry struct {
	Key   string
	Value json.RawMessage
}

// rawDefinitionMap keeps definitions object entries in document order.
type rawDefinitionMap []rawDefinitionEntry

// UnmarshalJSON decodes a JSON object while preserving key order.
func (entries *rawDefinitionMap) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		return err
	}

	if token == nil {
		return nil
	}

	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return errors.New("definitions must be an object")
	}

	seen := make(map[string]struct{})
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return err
		}

		key, ok := keyToken.(string)
		if !ok {
			return fmt.Errorf("unexpected definitions token %v", keyToken)
		}

		if _, exists := seen[key]; exists {
			return fmt.Errorf("duplicate definition key %q", key)
		}
		seen[key] = struct{}{}

		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return fmt.Errorf("definition %q: %w", key, err)
		}

		*entries = append(*entries, rawDefinitionEntry{Key: key, Value: value})
	}

	if _, err := decoder.Token(); err != nil {
		return err
	}

	return nil
}

// ParseFile reads and decodes a blueprint file.
func ParseFile(path string) (Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Blueprint{}, fmt.Errorf("%w: %w", ErrReadBlueprintFile, err)
	}

	return Parse(data)
}

// Parse decodes blueprint JSON into typed validators and definitions.
func Parse(data []byte) (Blueprint, error) {
	var raw rawBlueprint
	if err := json.Unmarshal(data, &raw); err != nil {
		return Blueprint{}, fmt.Errorf("%w: %w", ErrDecodeBlueprint, err)
	}

	blueprint := Blueprint{
		Preamble:    raw.Preamble,
		Validators:  make([]Validator, 0, len(raw.Validators)),
		Definitions: newDefinitions(len(raw.Definitions)),
	}

	for _, entry := range raw.Definitions {
		definition, err := decodeDefinition(entry.Value)
		if err != nil {
			return Blueprint{}, fmt.Errorf("%w: definition %q: %w", ErrDecodeBlueprint, entry.Key, err)
		}

		if err := blueprint.Definitions.add(entry.Key, definition); err != nil {
			return Blueprint{}, fmt.Errorf("%w: %w", ErrDecodeBlueprint, err)
		}
	}

	for _, rawValidator := range raw.Validators {
		validator, err := decodeValidator(rawValidator)
		if err != nil {
			return Blueprint{}, fmt.Errorf("%w: validator %q: %w", ErrDecodeBlueprint, rawValidator.Title, err)
		}

		blueprint.Validators = append(blueprint.Validators, validator)
	}

	return blueprint, nil
}

// Unsupported returns definition keys whose shape is outside the rendered set.
func (blueprint Blueprint) Unsupported() []string {
	var out []string
	for _, key := range blueprint.Definitions.Keys() {
		definition, _ := blueprint.Definitions.Lookup(key)
		if _, ok := definition.(*Unsupported); ok {
			out = append(out, key)
		}
	}

	return out
}

// Validator returns validator by title.
func (blueprint Blueprint) Validator(title string) (Validator, bool) {
	for _, validator := range blueprint.Validators {
		if validator.Title == title {
			return validator, true
		}
	}

	return Validator{}, false
}

// decodeValidator decodes validator parameter, redeemer and datum nodes.
func decodeValidator(raw rawValidator) (Validator, error) {
	validator := Validator{
		Title:        raw.Title,
		CompiledCode: raw.CompiledCode,
		Hash:         raw.Hash,
	}

	var err error
	if !isAbsent(raw.Redeemer) {
		validator.Redeemer, err = decodeDefinition(raw.Redeemer)
		if err != nil {
			return Validator{}, fmt.Errorf("redeemer: %w", err)
		}
	}

	if !isAbsent(raw.Datum) {
		validator.Datum, err = decodeDefinition(raw.Datum)
		if err != nil {
			return Validator{}, fmt.Errorf("datum: %w", err)
		}
	}

	for index, rawParameter := range raw.Parameters {
		parameter, err := decodeDefinition(rawParameter)
		if err != nil {
			return Validator{}, fmt.Errorf("parameter %d: %w", index, err)
		}

		validator.Parameters = append(validator.Parameters, parameter)
	}

	return validator, nil
}

// isAbsent reports whether optional raw JSON value is missing or null.
func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func newDefinitions(capacity int) Definitions {
	return Definitions{
		keys:     make([]string, 0, capacity),
		byKey:    make(map[string]Definition, capacity),
		refs:     make(map[string]Reference, capacity),
		families: make(map[string]struct{}, capacity),
	}
}

// add appends one definition and indexes its generic family.
func (definitions *Definitions) add(key string, definition Definition) error {
	if definitions.byKey == nil {
		*definitions = newDefinitions(0)
	}

	if _, exists := definitions.byKey[key]; exists {
		return fmt.Errorf("duplicate definition key %q", key)
	}

	ref, err := ParseReference(key)
	if err != nil {
		return fmt.Errorf("definition key %q: %w", key, err)
	}

	definitions.keys = append(definitions.keys, key)
	definitions.byKey[key] = definition
	definitions.refs[key] = ref
	definitions.families[ref.Base] = struct{}{}
	return nil
}

// Keys returns definition keys in document order.
func (definitions Definitions) Keys() []string {
	out := make([]string, len(definitions.keys))
	copy(out, definitions.keys)
	return out
}

// Len returns number of definitions.
func (definitions Definitions) Len() int {
	return len(definitions.keys)
}

// Lookup returns definition stored under exact key.
func (definitions Definitions) Lookup(key string) (Definition, bool) {
	definition, ok := definitions.byKey[key]
	return definition, ok
}

// Reference returns the parsed reference of a definition key.
func (definitions Definitions) Reference(key string) (Reference, bool) {
	ref, ok := definitions.refs[key]
	return ref, ok
}

// HasFamily reports whether any key shares the given generic base path.
func (definitions Definitions) HasFamily(base string) bool {
	_, ok := definitions.families[base]
	return ok
}
