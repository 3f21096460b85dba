// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/blueprintdoc

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var fixturePath = filepath.Join("..", "..", "testdata", "plutus.fixture.json")

func TestRunRenderWritesTypstToStdout(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"render", fixturePath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stdout.String(), "#let blueprint_appendix = [")
	assertContains(t, stdout.String(), "== Validator Definitions")
	assertContains(t, stderr.String(), "level=warning")
	assertContains(t, stderr.String(), "Tuple$Int_Int")
	assertNotContains(t, stderr.String(), "level=debug")
}

func TestRunRenderGlossaryToOutputFile(t *testing.T) {
	t.Parallel()

	outputPath := filepath.Join(t.TempDir(), "types.typ")
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"render", "-t", "glossary", "--binding", "vault_types", fixturePath, outputPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	if stdout.Len() != 0 {
		t.Fatalf("stdout should be empty when output file is set: %s", stdout.String())
	}

	got := readFile(t, outputPath)
	assertContains(t, got, "#let vault_types = [")
	assertContains(t, got, "/ #link(<option-a>)[Option\\<a\\>] <option-a>:")
	assertNotContains(t, got, "#table(")
}

func TestRunRenderFromStdin(t *testing.T) {
	t.Parallel()

	stdin := strings.NewReader(`{
  "preamble": {"title": "stdin"},
  "validators": [
    {"title": "gate.mint", "redeemer": {"title": "r", "schema": {"$ref": "#/definitions/Int"}}}
  ],
  "definitions": {"Int": {"dataType": "integer"}}
}`)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := runWithIO([]string{"render", "-"}, stdin, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stdout.String(), "// stdin")
	assertContains(t, stdout.String(), "[Gate $arrow.r$ Mint], [Int],")
}

func TestRunRenderEmptyStdin(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := runWithIO([]string{"render", "-"}, strings.NewReader(" \n"), &stdout, &stderr)
	if code != 1 {
		t.Fatalf("run exit code = %d, want 1", code)
	}

	assertContains(t, stderr.String(), "empty input")
}

func TestRunRenderDefaultInputMissing(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"render"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("run exit code = %d, want 1", code)
	}

	assertContains(t, stderr.String(), "plutus.json")
}

func TestRunRenderWithPatch(t *testing.T) {
	t.Parallel()

	patchPath := filepath.Join("..", "..", "testdata", "patch.fixture.yaml")
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"render", "--patch", patchPath, "--verbose", fixturePath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	assertNotContains(t, stdout.String(), "PriceFeed")
	assertContains(t, stdout.String(), "[Vault $arrow.r$ Spend], [#link(<option-a>)[Option]\\<Int\\>],")
	assertContains(t, stderr.String(), "level=debug")
	assertContains(t, stderr.String(), "applied patch")
}

func TestRunRenderWithBrokenPatch(t *testing.T) {
	t.Parallel()

	patchPath := filepath.Join(t.TempDir(), "patch.yaml")
	writeFile(t, patchPath, "copy:\n  - from: missing.spend\n    to: vault.spend\n    datum: true\n")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"render", "-p", patchPath, fixturePath}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("run exit code = %d, want 1", code)
	}

	assertContains(t, stderr.String(), `unknown validator "missing.spend"`)
}

func TestRunRenderWithTemplateFile(t *testing.T) {
	t.Parallel()

	templatePath := filepath.Join(t.TempDir(), "custom.gotmpl")
	writeFile(t, templatePath, "{{ .Binding }}:{{ len .Definitions }}\n")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"render", "--template-file", templatePath, fixturePath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	if got := stdout.String(); got != "blueprint_appendix:6\n" {
		t.Fatalf("custom template output = %q", got)
	}
}

func TestRunExampleValidatorDatumJSON(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"example", "--validator", "vault.spend", "--part", "datum", fixturePath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	var got map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal example: %v\n%s", err, stdout.String())
	}

	if got["constructor"] != float64(0) {
		t.Fatalf("unexpected example: %v", got)
	}
}

func TestRunExampleDefinitionYAMLToOutputFile(t *testing.T) {
	t.Parallel()

	outputPath := filepath.Join(t.TempDir(), "action.yaml")
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"example", "-d", "vault/types/Action", "-F", "yaml", "-o", outputPath, fixturePath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	got := readFile(t, outputPath)
	assertContains(t, got, "constructor: 0 # Deposit")
	assertContains(t, got, "# amount")
}

func TestRunExampleRequiresOneTarget(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{"example", fixturePath},
		{"example", "-d", "Int", "-V", "vault.spend", fixturePath},
	} {
		var stdout bytes.Buffer
		var stderr bytes.Buffer
		code := run(args, &stdout, &stderr)
		if code != 1 {
			t.Fatalf("run %v exit code = %d, want 1", args, code)
		}

		assertContains(t, stderr.String(), "select exactly one of --definition or --validator")
	}
}

func TestRunExampleMissingDatum(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"example", "-V", "price_feed.mint_feed", "--part", "datum", fixturePath}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("run exit code = %d, want 1", code)
	}

	assertContains(t, stderr.String(), "validator has no datum")
}

func TestRunTemplateStdout(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"template"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stdout.String(), `{{ template "table" .Parameters }}`)
}

func TestRunTemplateToOutputFile(t *testing.T) {
	t.Parallel()

	outputPath := filepath.Join(t.TempDir(), "glossary.gotmpl")
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"template", "-t", "glossary", outputPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	got := readFile(t, outputPath)
	assertContains(t, got, "{{ range .Definitions }}")
	assertNotContains(t, got, "#table(")
}

func TestRunVersion(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"version"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stdout.String(), "version:  dev")
	assertContains(t, stdout.String(), URL)
}

func TestRunHelpExitsZero(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"render", "--help"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stdout.String(), "Usage:")
	assertContains(t, stdout.String(), "--template-file")
}

func TestRunFlagErrorsExitTwo(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{"render", "--unknown"},
		{"render", "-t", "markdown", fixturePath},
		{"example", "--format", "toml", "-d", "Int", fixturePath},
		{"missing-command"},
		{},
	} {
		var stdout bytes.Buffer
		var stderr bytes.Buffer
		if code := run(args, &stdout, &stderr); code != 2 {
			t.Fatalf("run %v exit code = %d, want 2", args, code)
		}

		if stderr.Len() == 0 {
			t.Fatalf("run %v wrote no diagnostics", args)
		}
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	return string(data)
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if !strings.Contains(haystack, needle) {
		t.Fatalf("missing substring %q in:\n%s", needle, haystack)
	}
}

func assertNotContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if strings.Contains(haystack, needle) {
		t.Fatalf("unexpected substring %q in:\n%s", needle, haystack)
	}
}
