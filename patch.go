// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/blueprintdoc

package blueprintdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Patch rewires validators before rendering: projects that declare shared
// types on helper validators copy them onto the real scripts and drop the
// helpers from the tables.
type Patch struct {
	// Copy entries run in order before exclusions.
	Copy []PatchCopy `yaml:"copy"`
	// Exclude lists validator titles removed from output.
	Exclude []string `yaml:"exclude"`
}

// PatchCopy copies the redeemer and/or datum of one validator to another.
type PatchCopy struct {
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Redeemer bool   `yaml:"redeemer"`
	Datum    bool   `yaml:"datum"`
}

// ParsePatchFile reads and decodes a YAML patch file.
func ParsePatchFile(path string) (Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Patch{}, fmt.Errorf("%w: %w", ErrReadPatchFile, err)
	}

	return ParsePatch(data)
}

// ParsePatch decodes YAML patch text. Unknown keys are rejected.
func ParsePatch(data []byte) (Patch, error) {
	var patch Patch

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&patch); err != nil && !errors.Is(err, io.EOF) {
		return Patch{}, fmt.Errorf("%w: %w", ErrDecodePatch, err)
	}

	for index, entry := range patch.Copy {
		if strings.TrimSpace(entry.From) == "" || strings.TrimSpace(entry.To) == "" {
			return Patch{}, fmt.Errorf("%w: copy entry %d needs from and to", ErrDecodePatch, index)
		}

		if !entry.Redeemer && !entry.Datum {
			return Patch{}, fmt.Errorf("%w: copy entry %d selects neither redeemer nor datum", ErrDecodePatch, index)
		}
	}

	return patch, nil
}

// Apply rewrites blueprint validators in place. The validator slice is
// replaced, never mutated, so other copies of the blueprint are unaffected.
func (patch Patch) Apply(blueprint *Blueprint) error {
	validators := slices.Clone(blueprint.Validators)

	for _, entry := range patch.Copy {
		from := validatorIndex(validators, entry.From)
		if from < 0 {
			return fmt.Errorf("%w %q", ErrUnknownValidator, entry.From)
		}

		to := validatorIndex(validators, entry.To)
		if to < 0 {
			return fmt.Errorf("%w %q", ErrUnknownValidator, entry.To)
		}

		if entry.Redeemer {
			validators[to].Redeemer = validators[from].Redeemer
		}

		if entry.Datum {
			validators[to].Datum = validators[from].Datum
		}
	}

	if len(patch.Exclude) > 0 {
		validators = slices.DeleteFunc(validators, func(validator Validator) bool {
			return slices.Contains(patch.Exclude, validator.Title)
		})
	}

	blueprint.Validators = validators
	return nil
}

// IsZero reports whether patch has no effect.
func (patch Patch) IsZero() bool {
	return len(patch.Copy) == 0 && len(patch.Exclude) == 0
}

func validatorIndex(validators []Validator, title string) int {
	return slices.IndexFunc(validators, func(validator Validator) bool {
		return validator.Title == title
	})
}
