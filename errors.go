// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/blueprintdoc

package blueprintdoc

import "errors"

var (
	// ErrReadBlueprintFile is returned when blueprint file loading fails.
	ErrReadBlueprintFile = errors.New("read blueprint file")
	// ErrDecodeBlueprint is returned when blueprint JSON decoding fails.
	ErrDecodeBlueprint = errors.New("decode blueprint")
	// ErrInvalidDefinition is returned when a definition node is malformed.
	ErrInvalidDefinition = errors.New("invalid definition")
	// ErrInvalidReference is returned when a reference string is not a local definitions pointer.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrUnknownReference is returned when a reference names no definition and no primitive.
	ErrUnknownReference = errors.New("unknown reference")
	// ErrTooManyGenerics is returned when a generic reference has more slots than placeholder letters.
	ErrTooManyGenerics = errors.New("too many generic parameters")
	// ErrRedeemerNotReference is returned when a validator redeemer is not a schema/ref pointer.
	ErrRedeemerNotReference = errors.New("redeemer must be a schema/ref")
	// ErrDatumNotReference is returned when a validator datum is present but not a schema/ref pointer.
	ErrDatumNotReference = errors.New("datum must be a schema/ref")
	// ErrParameterNotReference is returned when a validator parameter is not a schema/ref pointer.
	ErrParameterNotReference = errors.New("parameter must be a schema/ref")
	// ErrUnknownBuiltinTemplate is returned when requested built-in template name is not registered.
	ErrUnknownBuiltinTemplate = errors.New("unknown built-in template")
	// ErrReadBuiltinTemplate is returned when built-in template file loading fails.
	ErrReadBuiltinTemplate = errors.New("read built-in template")
	// ErrParseTemplate is returned when document template parsing fails.
	ErrParseTemplate = errors.New("parse document template")
	// ErrExecuteTemplate is returned when document template execution fails.
	ErrExecuteTemplate = errors.New("execute document template")
	// ErrReadPatchFile is returned when patch file loading fails.
	ErrReadPatchFile = errors.New("read patch file")
	// ErrDecodePatch is returned when patch YAML decoding fails.
	ErrDecodePatch = errors.New("decode patch")
	// ErrUnknownValidator is returned when a validator title is not present in blueprint.
	ErrUnknownValidator = errors.New("unknown validator")
	// ErrMissingDatum is returned when a datum is requested from a validator without one.
	ErrMissingDatum = errors.New("validator has no datum")
	// ErrUnknownExampleFormat is returned when example encoding format is not supported.
	ErrUnknownExampleFormat = errors.New("unknown example format")
	// ErrUnknownExamplePart is returned when example target part is not redeemer or datum.
	ErrUnknownExamplePart = errors.New("unknown example part")
	// ErrExampleCycle is returned when no finite example value exists for a definition.
	ErrExampleCycle = errors.New("example definition has no finite value")
	// ErrEncodeExampleJSON is returned when generated example JSON encoding fails.
	ErrEncodeExampleJSON = errors.New("encode example json")
	// ErrEncodeExampleYAML is returned when generated example YAML encoding fails.
	ErrEncodeExampleYAML = errors.New("encode example yaml")
)
