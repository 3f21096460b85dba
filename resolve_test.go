// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/blueprintdoc

package blueprintdoc

import (
	"errors"
	"testing"
)

func TestResolveUseMode(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(loadFixtureBlueprint(t).Definitions)
	cases := []struct {
		path   string
		anchor string
		want   string
	}{
		{path: "Int", anchor: "int", want: "Int"},
		{path: "ByteArray", anchor: "bytearray", want: "ByteArray"},
		{path: "Data", anchor: "data", want: "Data"},
		{path: "Tuple", anchor: "tuple", want: "(Int, Int)"},
		{path: "Tuple$Int_ByteArray", anchor: "tuple-a", want: "(Int, ByteArray)"},
		{path: "vault/types/Action", anchor: "vault-types-action", want: "#link(<vault-types-action>)[vault/types.Action]"},
		{path: "Option$Int", anchor: "option-a", want: `#link(<option-a>)[Option]\<Int\>`},
		{path: "Dict$ByteArray_Int", anchor: "dict-a", want: `#link(<dict-a>)[Dict]\<ByteArray, Int\>`},
		{
			path:   "List$Option$vault/types/Action",
			anchor: "list-a",
			want:   `#link(<list-a>)[List]\<#link(<option-a>)[Option]\<#link(<vault-types-action>)[vault/types.Action]\>\>`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()

			got, err := resolver.ResolvePath(tc.path, false, &GenericContext{})
			if err != nil {
				t.Fatalf("ResolvePath: %v", err)
			}

			if got.Anchor != tc.anchor || got.Display != tc.want {
				t.Fatalf("ResolvePath(%q) = %+v, want anchor %q display %q", tc.path, got, tc.anchor, tc.want)
			}
		})
	}
}

func TestResolveSkeletonMode(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(loadFixtureBlueprint(t).Definitions)
	cases := map[string]string{
		"Option$Int":         `#link(<option-a>)[Option\<a\>]`,
		"Dict$ByteArray_Int": `#link(<dict-a>)[Dict\<a, b\>]`,
		"Tuple$Int_Int":      "(a, b)",
		"vault/types/Action": "#link(<vault-types-action>)[vault/types.Action]",
		"List$Option$Int":    `#link(<list-a>)[List\<a\>]`,
		"Int":                "Int",
	}

	for path, want := range cases {
		got, err := resolver.ResolvePath(path, false, nil)
		if err != nil {
			t.Fatalf("ResolvePath(%q): %v", path, err)
		}

		if got.Display != want {
			t.Errorf("ResolvePath(%q) = %q, want %q", path, got.Display, want)
		}
	}
}

func TestResolvePreprocessesPointerEscapes(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(loadFixtureBlueprint(t).Definitions)
	got, err := resolver.ResolvePath("#/definitions/Option$vault~1types~1VaultDatum", true, &GenericContext{})
	if err != nil {
		t.Fatalf("ResolvePath: %v", err)
	}

	want := `#link(<option-a>)[Option]\<#link(<vault-types-vaultdatum>)[vault/types.VaultDatum]\>`
	if got.Display != want {
		t.Fatalf("display = %q, want %q", got.Display, want)
	}

	if _, err := resolver.ResolvePath("Int", true, nil); !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got: %v", err)
	}
}

func TestResolveSubstitutesBoundArguments(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(loadFixtureBlueprint(t).Definitions)
	key, err := ParseReference("Dict$ByteArray_vault/types/Action")
	if err != nil {
		t.Fatalf("ParseReference: %v", err)
	}

	ctx, err := NewGenericContext(key)
	if err != nil {
		t.Fatalf("NewGenericContext: %v", err)
	}

	cases := map[string]string{
		"ByteArray":                   "a",
		"vault/types/Action":          "b",
		"Int":                         "Int",
		"Option$ByteArray":            `#link(<option-a>)[Option]\<a\>`,
		"Dict$vault/types/Action_Int": `#link(<dict-a>)[Dict]\<b, Int\>`,
	}

	for path, want := range cases {
		got, err := resolver.ResolvePath(path, false, ctx)
		if err != nil {
			t.Fatalf("ResolvePath(%q): %v", path, err)
		}

		if got.Display != want {
			t.Errorf("ResolvePath(%q) = %q, want %q", path, got.Display, want)
		}
	}
}

func TestResolveUnknownReference(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(loadFixtureBlueprint(t).Definitions)
	for _, path := range []string{"vault/types/Missing", "Option$vault/types/Missing", "Result$Int"} {
		if _, err := resolver.ResolvePath(path, false, &GenericContext{}); !errors.Is(err, ErrUnknownReference) {
			t.Errorf("ResolvePath(%q): expected ErrUnknownReference, got: %v", path, err)
		}
	}
}
