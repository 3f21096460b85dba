// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/blueprintdoc

// blueprintdoc generates Typst reference docs from smart-contract blueprints.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/woozymasta/blueprintdoc"
)

const (
	// defaultBlueprintPath is the well-known blueprint location in a project root.
	defaultBlueprintPath = "plutus.json"
	// stdinPath selects stdin as blueprint input.
	stdinPath = "-"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/blueprintdoc"
	_buildTime string
)

// cliOptions describes blueprintdoc CLI flags and subcommands.
type cliOptions struct {
	Version  versionCommand  `command:"version" description:"Print version information"`
	Template templateCommand `command:"template" description:"Print built-in Typst template"`
	Render   renderCommand   `command:"render" description:"Render blueprint to Typst"`
	Example  exampleCommand  `command:"example" description:"Generate example Plutus data for a blueprint type"`
}

// blueprintInputFlags groups blueprint loading flags.
type blueprintInputFlags struct {
	PatchPath string `short:"p" long:"patch" description:"YAML patch applied to validators before use"`
	Verbose   bool   `short:"v" long:"verbose" description:"Print debug diagnostics to stderr"`
}

// typstRenderFlags groups Typst rendering flags.
type typstRenderFlags struct {
	TemplatePath string `short:"f" long:"template-file" description:"Path to custom Typst template (.gotmpl)"`
	Binding      string `short:"b" long:"binding" description:"Typst variable name wrapping rendered content" default:"blueprint_appendix"`
}

// templateSelectFlags groups built-in template selection flags.
type templateSelectFlags struct {
	TemplateName string `short:"t" long:"template" description:"Built-in template style" choice:"appendix" choice:"glossary" default:"appendix"`
}

// renderCommand converts blueprint JSON to Typst.
type renderCommand struct {
	runner *cliRunner
	Args   struct {
		Input  string `positional-arg-name:"input" description:"Blueprint file path (default plutus.json; - for stdin)"`
		Output string `positional-arg-name:"output" description:"Output Typst file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	InputFlags    blueprintInputFlags `group:"Blueprint Input"`
	TemplateFlags templateSelectFlags `group:"Template Select"`
	RenderFlags   typstRenderFlags    `group:"Typst Render"`
}

// Execute runs render subcommand.
func (command *renderCommand) Execute(_ []string) error {
	return command.runner.runRender(
		command.InputFlags,
		command.TemplateFlags.TemplateName,
		command.RenderFlags,
		command.Args.Input,
		command.Args.Output,
	)
}

// exampleCommand generates example Plutus data for one blueprint type.
type exampleCommand struct {
	runner *cliRunner
	Args   struct {
		Input string `positional-arg-name:"input" description:"Blueprint file path (default plutus.json; - for stdin)"`
	} `positional-args:"yes"`

	InputFlags blueprintInputFlags `group:"Blueprint Input"`

	Definition string `short:"d" long:"definition" description:"Definition key (for example: aiken/transaction/credential/Credential)"`
	Validator  string `short:"V" long:"validator" description:"Validator title (for example: vault.spend)"`
	Part       string `long:"part" description:"Validator type to build" choice:"redeemer" choice:"datum" default:"redeemer"`
	Format     string `short:"F" long:"format" description:"Example encoding" choice:"json" choice:"yaml" default:"json"`
	Output     string `short:"o" long:"output" description:"Output file path (optional; stdout when omitted)"`
}

// Execute runs example subcommand.
func (command *exampleCommand) Execute(_ []string) error {
	return command.runner.runExample(
		command.InputFlags,
		blueprintdoc.ExampleTarget{
			Definition: command.Definition,
			Validator:  command.Validator,
			Part:       blueprintdoc.ExamplePart(command.Part),
		},
		blueprintdoc.ExampleFormat(command.Format),
		command.Args.Input,
		command.Output,
	)
}

// templateCommand exports built-in Typst template.
type templateCommand struct {
	runner *cliRunner
	Args   struct {
		Output string `positional-arg-name:"output" description:"Output template file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	TemplateFlags templateSelectFlags `group:"Template Select"`
}

// Execute runs template subcommand.
func (command *templateCommand) Execute(_ []string) error {
	return command.runner.runTemplate(command.TemplateFlags.TemplateName, command.Args.Output)
}

// versionCommand prints version information.
type versionCommand struct {
	runner *cliRunner
}

// Execute runs version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	printVersionInfo(command.runner.stdout)
	return nil
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	programName string
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	return runWithIO(args, os.Stdin, stdout, stderr)
}

// runWithIO executes CLI logic with custom stdin, for tests.
func runWithIO(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "blueprintdoc"
	}

	programName = filepath.Base(programName)
	runner := cliRunner{
		programName: programName,
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
	}

	return runner.run(args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := parseCLIArgs(args, runner)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	writeCLIError(runner.stderr, err)
	return 1
}

// newLogger creates diagnostics logger writing to runner stderr.
func (runner *cliRunner) newLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(runner.stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})

	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}

// runRender executes blueprint-to-Typst flow and writes result to stdout or file.
func (runner *cliRunner) runRender(inputFlags blueprintInputFlags, templateName string, renderFlags typstRenderFlags, inputPath, outputPath string) error {
	logger := runner.newLogger(inputFlags.Verbose)

	blueprint, err := runner.loadBlueprint(logger, inputFlags, inputPath)
	if err != nil {
		return err
	}

	renderOptions := blueprintdoc.Options{
		TemplateName: templateName,
		Binding:      renderFlags.Binding,
	}

	if renderFlags.TemplatePath != "" {
		customTemplate, err := os.ReadFile(renderFlags.TemplatePath)
		if err != nil {
			return fmt.Errorf("read template file %q: %w", renderFlags.TemplatePath, err)
		}

		renderOptions.TemplateText = string(customTemplate)
		logger.WithField("path", renderFlags.TemplatePath).Debug("using custom template")
	}

	rendered, err := blueprintdoc.RenderBlueprint(blueprint, renderOptions)
	if err != nil {
		return fmt.Errorf("render typst: %w", err)
	}

	logger.WithField("bytes", len(rendered)).Debug("rendered document")
	return runner.writeOutput(outputPath, []byte(rendered), "typst")
}

// runExample generates example data for selected type and writes result to stdout or file.
func (runner *cliRunner) runExample(inputFlags blueprintInputFlags, target blueprintdoc.ExampleTarget, format blueprintdoc.ExampleFormat, inputPath, outputPath string) error {
	hasDefinition := strings.TrimSpace(target.Definition) != ""
	hasValidator := strings.TrimSpace(target.Validator) != ""
	if hasDefinition == hasValidator {
		return errors.New("select exactly one of --definition or --validator")
	}

	logger := runner.newLogger(inputFlags.Verbose)

	blueprint, err := runner.loadBlueprint(logger, inputFlags, inputPath)
	if err != nil {
		return err
	}

	data, err := blueprintdoc.GenerateExample(blueprint, target, format)
	if err != nil {
		return fmt.Errorf("generate example: %w", err)
	}

	return runner.writeOutput(outputPath, data, "example")
}

// runTemplate writes selected built-in template to stdout or file.
func (runner *cliRunner) runTemplate(templateName, outputPath string) error {
	tpl, err := blueprintdoc.BuiltinTemplate(templateName)
	if err != nil {
		return fmt.Errorf("load built-in template %q: %w", templateName, err)
	}

	return runner.writeOutput(outputPath, []byte(tpl), "template")
}

// loadBlueprint reads, decodes and optionally patches the blueprint.
func (runner *cliRunner) loadBlueprint(logger *logrus.Logger, inputFlags blueprintInputFlags, inputPath string) (blueprintdoc.Blueprint, error) {
	data, sourcePath, err := runner.readBlueprintInput(inputPath)
	if err != nil {
		return blueprintdoc.Blueprint{}, fmt.Errorf("read blueprint input: %w", err)
	}

	blueprint, err := blueprintdoc.Parse(data)
	if err != nil {
		return blueprintdoc.Blueprint{}, fmt.Errorf("parse blueprint %s: %w", sourcePath, err)
	}

	logger.WithFields(logrus.Fields{
		"source":      sourcePath,
		"validators":  len(blueprint.Validators),
		"definitions": blueprint.Definitions.Len(),
	}).Debug("loaded blueprint")

	for _, key := range blueprint.Unsupported() {
		logger.WithField("definition", key).Warn("unsupported definition shape; rendered without body")
	}

	if strings.TrimSpace(inputFlags.PatchPath) == "" {
		return blueprint, nil
	}

	patch, err := blueprintdoc.ParsePatchFile(inputFlags.PatchPath)
	if err != nil {
		return blueprintdoc.Blueprint{}, fmt.Errorf("load patch %q: %w", inputFlags.PatchPath, err)
	}

	if patch.IsZero() {
		logger.WithField("path", inputFlags.PatchPath).Warn("patch file has no copy or exclude entries")
		return blueprint, nil
	}

	if err := patch.Apply(&blueprint); err != nil {
		return blueprintdoc.Blueprint{}, fmt.Errorf("apply patch %q: %w", inputFlags.PatchPath, err)
	}

	logger.WithFields(logrus.Fields{
		"path":       inputFlags.PatchPath,
		"copies":     len(patch.Copy),
		"validators": len(blueprint.Validators),
	}).Debug("applied patch")

	return blueprint, nil
}

// readBlueprintInput reads blueprint from file path or stdin and returns source marker.
func (runner *cliRunner) readBlueprintInput(path string) ([]byte, string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultBlueprintPath
	}

	if path != stdinPath {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("read blueprint file %q: %w", path, err)
		}

		return data, path, nil
	}

	data, err := io.ReadAll(runner.stdin)
	if err != nil {
		return nil, "", fmt.Errorf("read blueprint from stdin: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, "", errors.New("read blueprint from stdin: empty input")
	}

	return data, "(stdin)", nil
}

// writeOutput writes payload to stdout or to file when path is set.
func (runner *cliRunner) writeOutput(outputPath string, payload []byte, kind string) error {
	if strings.TrimSpace(outputPath) == "" {
		if _, err := runner.stdout.Write(payload); err != nil {
			return fmt.Errorf("write %s to stdout: %w", kind, err)
		}

		return nil
	}

	if err := os.WriteFile(outputPath, payload, 0o600); err != nil {
		return fmt.Errorf("write %s file %q: %w", kind, outputPath, err)
	}

	return nil
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	//nolint:gosec // CLI writes plain-text diagnostics to terminal streams, not HTTP responses.
	_, _ = fmt.Fprintln(output, err.Error())
}

// parseCLIArgs parses CLI arguments and triggers selected subcommand execution.
func parseCLIArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	options.Version.runner = runner
	options.Template.runner = runner
	options.Render.runner = runner
	options.Example.runner = runner

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	applyCommandLongDescriptions(parser, runner.programName)

	_, err := parser.ParseArgs(args)
	if err != nil {
		return err
	}

	return nil
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	descriptions := map[string]string{
		"render": strings.TrimSpace(fmt.Sprintf(`
Render blueprint validators and definitions as Typst markup.
Reads plutus.json from the current directory unless an input path is given.

Examples:
> $ %s render > blueprint.typ
> $ %s render --patch blueprint.patch.yaml plutus.json docs/blueprint.typ
`, programName, programName)),
		"example": strings.TrimSpace(fmt.Sprintf(`
Generate example Plutus data (detailed schema JSON or commented YAML)
for a definition key or a validator redeemer/datum.

Examples:
> $ %s example --validator vault.spend --part datum
> $ %s example --definition 'Option$Int' --format yaml
`, programName, programName)),
		"template": strings.TrimSpace(fmt.Sprintf(`
Print built-in Typst template text (`+"`appendix` or `glossary`"+`).
Use it as a starting point for a custom template file.

Examples:
> $ %s template > appendix.gotmpl
> $ %s template -t glossary templates/glossary.gotmpl
`, programName, programName)),
	}

	for commandName, description := range descriptions {
		command := parser.Find(commandName)
		if command == nil {
			continue
		}

		command.LongDescription = description
	}
}

func printVersionInfo(output io.Writer) {
	_, _ = fmt.Fprintf(output, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, os.Args[0], Version, Commit, BuildTime)
}
