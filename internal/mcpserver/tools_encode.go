package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasforge/encoder"
	"github.com/erraggy/oasforge/encoder/wire"
	"github.com/erraggy/oasforge/schema"
)

type encodeSchemaInput struct {
	Schema        string `json:"schema"                   jsonschema:"The schema object as a JSON string"`
	SourceVersion string `json:"source_version,omitempty" jsonschema:"OpenAPI version the input schema is written for. Defaults to the target version."`
	Version       string `json:"version,omitempty"        jsonschema:"Target OpenAPI version (e.g. 3.0.3\\, 3.1.0\\, or the 3.0/3.1 shorthands). Defaults to OASFORGE_DEFAULT_VERSION."`
}

type encodeSchemaOutput struct {
	SourceVersion string `json:"source_version"`
	TargetVersion string `json:"target_version"`
	Schema        string `json:"schema"`
}

func handleEncodeSchema(_ context.Context, _ *mcp.CallToolRequest, input encodeSchemaInput) (*mcp.CallToolResult, encodeSchemaOutput, error) {
	if strings.TrimSpace(input.Schema) == "" {
		return errResult(fmt.Errorf("schema is required")), encodeSchemaOutput{}, nil
	}

	target, err := resolveVersion(input.Version)
	if err != nil {
		return errResult(err), encodeSchemaOutput{}, nil
	}
	source := target
	if input.SourceVersion != "" {
		source, err = resolveVersion(input.SourceVersion)
		if err != nil {
			return errResult(err), encodeSchemaOutput{}, nil
		}
	}

	obj, err := wire.ParseJSON([]byte(input.Schema))
	if err != nil {
		return errResult(fmt.Errorf("parsing schema: %w", err)), encodeSchemaOutput{}, nil
	}
	node, err := encoder.Decode(obj, source)
	if err != nil {
		return errResult(err), encodeSchemaOutput{}, nil
	}

	encoded, err := encoder.Encode(node, target)
	if err != nil {
		return errResult(err), encodeSchemaOutput{}, nil
	}
	data, err := encoded.MarshalJSONIndent("", strings.Repeat(" ", cfg.Indent))
	if err != nil {
		return errResult(err), encodeSchemaOutput{}, nil
	}

	return nil, encodeSchemaOutput{
		SourceVersion: source.String(),
		TargetVersion: target.String(),
		Schema:        string(data),
	}, nil
}

// resolveVersion parses a version string, falling back to the configured
// default when empty.
func resolveVersion(s string) (schema.Version, error) {
	if s == "" {
		return cfg.DefaultVersion, nil
	}
	version, ok := schema.ParseVersion(s)
	if !ok {
		return schema.VersionUnknown, fmt.Errorf("unsupported version %q", s)
	}
	return version, nil
}
