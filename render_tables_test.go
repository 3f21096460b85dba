// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/blueprintdoc

package blueprintdoc

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildFixtureTables(t *testing.T) {
	t.Parallel()

	blueprint := loadFixtureBlueprint(t)
	resolver := NewResolver(blueprint.Definitions)

	parameters, err := buildParameterTable(blueprint.Validators, resolver)
	if err != nil {
		t.Fatalf("buildParameterTable: %v", err)
	}

	redeemers, err := buildRedeemerTable(blueprint.Validators, resolver)
	if err != nil {
		t.Fatalf("buildRedeemerTable: %v", err)
	}

	datums, err := buildDatumTable(blueprint.Validators, resolver)
	if err != nil {
		t.Fatalf("buildDatumTable: %v", err)
	}

	want := []tableView{
		{Heading: "Parameters", Rows: []rowView{
			{Name: "Vault $arrow.r$ Spend", Value: "`OwnerKey`: ByteArray,#linebreak()"},
			{Name: "PriceFeed $arrow.r$ MintFeed", Value: ""},
		}},
		{Heading: "Redeemer", Rows: []rowView{
			{Name: "Vault $arrow.r$ Spend", Value: "#link(<vault-types-action>)[vault/types.Action]"},
			{Name: "PriceFeed $arrow.r$ MintFeed", Value: `#link(<option-a>)[Option]\<Int\>`},
		}},
		{Heading: "Datum", Rows: []rowView{
			{Name: "Vault $arrow.r$ Spend", Value: "#link(<vault-types-vaultdatum>)[vault/types.VaultDatum]"},
		}},
	}

	if diff := cmp.Diff(want, []tableView{parameters, redeemers, datums}); diff != "" {
		t.Fatalf("tables mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildParameterTableJoinsParameters(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(loadFixtureBlueprint(t).Definitions)
	table, err := buildParameterTable([]Validator{{
		Title: "oracle.publish",
		Parameters: []Definition{
			&Pointer{Annotations: Annotations{Title: "config.max_fee"}, Ref: Reference{Base: "Int"}},
			&Pointer{Annotations: Annotations{Title: "feeds"}, Ref: Reference{Base: "List", Generic: true, Args: []Reference{{Base: "Int"}}}},
		},
	}}, resolver)
	if err != nil {
		t.Fatalf("buildParameterTable: %v", err)
	}

	want := "`Config.MaxFee`: Int,#linebreak()`Feeds`: #link(<list-a>)[List]\\<Int\\>,#linebreak()"
	if got := table.Rows[0].Value; got != want {
		t.Fatalf("parameter cell = %q, want %q", got, want)
	}
}

func TestBuildTablesRejectInlineSchemas(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(loadFixtureBlueprint(t).Definitions)
	pointer := &Pointer{Ref: Reference{Base: "Int"}}

	cases := []struct {
		name      string
		build     func([]Validator, *Resolver) (tableView, error)
		validator Validator
		want      error
	}{
		{
			name:      "parameter",
			build:     buildParameterTable,
			validator: Validator{Title: "a.b", Redeemer: pointer, Parameters: []Definition{&Integer{}}},
			want:      ErrParameterNotReference,
		},
		{
			name:      "missing redeemer",
			build:     buildRedeemerTable,
			validator: Validator{Title: "a.b"},
			want:      ErrRedeemerNotReference,
		},
		{
			name:      "inline redeemer",
			build:     buildRedeemerTable,
			validator: Validator{Title: "a.b", Redeemer: &Bytes{}},
			want:      ErrRedeemerNotReference,
		},
		{
			name:      "inline datum checked with redeemer",
			build:     buildRedeemerTable,
			validator: Validator{Title: "a.b", Redeemer: pointer, Datum: &Integer{}},
			want:      ErrDatumNotReference,
		},
		{
			name:      "inline datum",
			build:     buildDatumTable,
			validator: Validator{Title: "a.b", Redeemer: pointer, Datum: &Integer{}},
			want:      ErrDatumNotReference,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := tc.build([]Validator{tc.validator}, resolver)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got: %v", tc.want, err)
			}
		})
	}
}

func TestBuildDatumTableSkipsValidatorsWithoutDatum(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(loadFixtureBlueprint(t).Definitions)
	table, err := buildDatumTable([]Validator{
		{Title: "a.mint", Redeemer: &Pointer{Ref: Reference{Base: "Int"}}},
	}, resolver)
	if err != nil {
		t.Fatalf("buildDatumTable: %v", err)
	}

	if len(table.Rows) != 0 {
		t.Fatalf("unexpected rows: %+v", table.Rows)
	}
}

func TestValidatorDisplayTitle(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"vault.spend":              "Vault $arrow.r$ Spend",
		"price_feed.mint_feed":     "PriceFeed $arrow.r$ MintFeed",
		"multi.part.name_x":        "Multi $arrow.r$ Part $arrow.r$ NameX",
		"single":                   "Single",
		"double__underscore.else_": "DoubleUnderscore $arrow.r$ Else",
	}

	for input, want := range cases {
		if got := validatorDisplayTitle(input); got != want {
			t.Errorf("validatorDisplayTitle(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSnakeToPascalCase(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":          "",
		"owner_key": "OwnerKey",
		"UPPER":     "Upper",
		"a_b_c":     "ABC",
		"_lead":     "Lead",
	}

	for input, want := range cases {
		if got := snakeToPascalCase(input); got != want {
			t.Errorf("snakeToPascalCase(%q) = %q, want %q", input, got, want)
		}
	}
}
