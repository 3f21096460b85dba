// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/blueprintdoc

/*
Package blueprintdoc renders Typst reference documentation from smart-contract
blueprints (plutus.json).

A blueprint lists validator scripts with their parameters, redeemers and
datums, plus a definitions table of every data type those scripts use. The
package produces three summary tables (parameters, redeemers, datums) and a
cross-referenced glossary with one entry per type family. Generic
instantiations such as "Option$Int" and "Option$ByteArray" share one
glossary entry rendered as Option<a>, and every reference links to it.

Render from file:

	doc, err := blueprintdoc.RenderFile("plutus.json", blueprintdoc.Options{})
	if err != nil {
		return err
	}

	fmt.Print(doc)

Patch validators before rendering:

	bp, err := blueprintdoc.ParseFile("plutus.json")
	if err != nil {
		return err
	}

	patch, err := blueprintdoc.ParsePatchFile("blueprint.patch.yaml")
	if err != nil {
		return err
	}

	if err := patch.Apply(&bp); err != nil {
		return err
	}

	doc, err := blueprintdoc.RenderBlueprint(bp, blueprintdoc.Options{
		TemplateName: "glossary",
		Binding:      "types",
	})

Resolve one reference:

	resolver := blueprintdoc.NewResolver(bp.Definitions)
	resolved, err := resolver.ResolvePath("#/definitions/Option$Int", true, &blueprintdoc.GenericContext{})
	// resolved.Display == `#link(<option-a>)[Option]\<Int\>`

Generate example redeemer data:

	data, err := blueprintdoc.GenerateExample(bp, blueprintdoc.ExampleTarget{
		Validator: "vault.spend",
		Part:      blueprintdoc.ExamplePartRedeemer,
	}, blueprintdoc.ExampleFormatJSON)
*/
package blueprintdoc
