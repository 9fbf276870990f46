package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/erraggy/oasforge"
	"github.com/erraggy/oasforge/encoder"
	"github.com/erraggy/oasforge/encoder/wire"
	"github.com/erraggy/oasforge/internal/mcpserver"
	"github.com/erraggy/oasforge/rules"
	"github.com/erraggy/oasforge/schema"
	"github.com/erraggy/oasforge/srcscan"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasforge v%s\n", oasforge.Version())
	case "help", "-h", "--help":
		printUsage()
	case "scan":
		if err := handleScan(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "convert":
		if err := handleConvert(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "rules":
		if err := handleRules(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := mcpserver.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// scanFlags contains flags for the scan command
type scanFlags struct {
	dir     string
	version string
	output  string
}

func setupScanFlags() (*flag.FlagSet, *scanFlags) {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	flags := &scanFlags{}

	fs.StringVar(&flags.dir, "d", ".", "directory to resolve package patterns from")
	fs.StringVar(&flags.version, "t", "3.1.2", "target OpenAPI version")
	fs.StringVar(&flags.output, "o", "", "output file (defaults to stdout)")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: oasforge scan [flags] [packages]\n\n")
		_, _ = fmt.Fprintf(output, "Scan Go packages and synthesize component schemas for their exported\n")
		_, _ = fmt.Fprintf(output, "struct types from struct tags, doc comments, and validation rules.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  oasforge scan ./models\n")
		_, _ = fmt.Fprintf(output, "  oasforge scan -d ~/src/api -t 3.0.3 -o components.json ./...\n")
	}

	return fs, flags
}

func handleScan(args []string) error {
	fs, flags := setupScanFlags()
	if err := fs.Parse(args); err != nil {
		return err
	}

	version, ok := schema.ParseVersion(flags.version)
	if !ok {
		return fmt.Errorf("unsupported target version %q", flags.version)
	}

	comps, err := srcscan.Synthesize(flags.dir, fs.Args())
	if err != nil {
		return err
	}

	schemas := wire.NewObject()
	for _, name := range comps.SchemaNames() {
		encoded, err := encoder.Encode(comps.Schema(name), version)
		if err != nil {
			return err
		}
		schemas.Set(name, encoded)
	}
	components := wire.NewObject()
	components.Set("schemas", schemas)
	doc := wire.NewObject()
	doc.Set("openapi", version.String())
	doc.Set("components", components)

	out, err := doc.MarshalJSONIndent("", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')

	if flags.output != "" {
		return os.WriteFile(flags.output, out, 0o644)
	}
	_, err = os.Stdout.Write(out)
	return err
}

// convertFlags contains flags for the convert command
type convertFlags struct {
	source string
	target string
	output string
}

func setupConvertFlags() (*flag.FlagSet, *convertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	flags := &convertFlags{}

	fs.StringVar(&flags.source, "s", "", "source OpenAPI version the input schema is written for (defaults to target)")
	fs.StringVar(&flags.target, "t", "3.1.2", "target OpenAPI version")
	fs.StringVar(&flags.output, "o", "", "output file (defaults to stdout)")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: oasforge convert [flags] <schema.json>\n\n")
		_, _ = fmt.Fprintf(output, "Re-encode a schema object for a different OpenAPI version.\n")
		_, _ = fmt.Fprintf(output, "The 3.1 family renders nullability as type arrays; 3.0.x uses the nullable keyword.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  oasforge convert -t 3.0.3 schema.json\n")
		_, _ = fmt.Fprintf(output, "  oasforge convert -s 3.0 -t 3.1 -o out.json schema.json\n")
	}

	return fs, flags
}

func handleConvert(args []string) error {
	fs, flags := setupConvertFlags()
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected exactly one schema file, got %d", fs.NArg())
	}

	target, ok := schema.ParseVersion(flags.target)
	if !ok {
		return fmt.Errorf("unsupported target version %q", flags.target)
	}
	source := target
	if flags.source != "" {
		source, ok = schema.ParseVersion(flags.source)
		if !ok {
			return fmt.Errorf("unsupported source version %q", flags.source)
		}
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("reading schema file: %w", err)
	}
	obj, err := wire.ParseJSON(data)
	if err != nil {
		return fmt.Errorf("parsing schema: %w", err)
	}
	node, err := encoder.Decode(obj, source)
	if err != nil {
		return err
	}
	encoded, err := encoder.Encode(node, target)
	if err != nil {
		return err
	}
	out, err := encoded.MarshalJSONIndent("", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')

	if flags.output != "" {
		return os.WriteFile(flags.output, out, 0o644)
	}
	_, err = os.Stdout.Write(out)
	return err
}

// rulesFlags contains flags for the rules command
type rulesFlags struct {
	version string
}

func setupRulesFlags() (*flag.FlagSet, *rulesFlags) {
	fs := flag.NewFlagSet("rules", flag.ContinueOnError)
	flags := &rulesFlags{}

	fs.StringVar(&flags.version, "t", "3.1.2", "target OpenAPI version for the output schema")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: oasforge rules [flags] <rule-string>\n\n")
		_, _ = fmt.Fprintf(output, "Parse a validation rule string into the schema constraints it implies.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  oasforge rules 'required|string|min:3|max:64'\n")
		_, _ = fmt.Fprintf(output, "  oasforge rules -t 3.0.3 'required,email'\n")
	}

	return fs, flags
}

func handleRules(args []string) error {
	fs, flags := setupRulesFlags()
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected exactly one rule string, got %d", fs.NArg())
	}

	version, ok := schema.ParseVersion(flags.version)
	if !ok {
		return fmt.Errorf("unsupported version %q", flags.version)
	}

	node, required := rules.Parse(fs.Arg(0))
	encoded, err := encoder.Encode(node, version)
	if err != nil {
		return err
	}
	out, err := encoded.MarshalJSONIndent("", "  ")
	if err != nil {
		return err
	}

	fmt.Printf("required: %v\n%s\n", required, strings.TrimSpace(string(out)))
	return nil
}

func printUsage() {
	fmt.Println(`oasforge - OpenAPI schema synthesis

Usage:
  oasforge <command> [options]

Commands:
  scan        Synthesize component schemas from Go package source
  convert     Re-encode a schema object for a different OpenAPI version
  rules       Parse a validation rule string into schema constraints
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  oasforge scan -o components.json ./models
  oasforge convert -t 3.0.3 schema.json
  oasforge convert -s 3.0 -t 3.1 -o out.json schema.json
  oasforge rules 'required|string|min:3|max:64'
  oasforge mcp

Run 'oasforge <command> --help' for more information on a command.`)
}
