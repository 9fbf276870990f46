package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasforge/encoder"
	"github.com/erraggy/oasforge/rules"
)

type parseRulesInput struct {
	Rule    string `json:"rule"              jsonschema:"The validation rule string\\, pipe or comma separated (e.g. required|string|min:3)"`
	Version string `json:"version,omitempty" jsonschema:"Target OpenAPI version for the output schema. Defaults to OASFORGE_DEFAULT_VERSION."`
}

type parseRulesOutput struct {
	Required bool   `json:"required"`
	Version  string `json:"version"`
	Schema   string `json:"schema"`
}

func handleParseRules(_ context.Context, _ *mcp.CallToolRequest, input parseRulesInput) (*mcp.CallToolResult, parseRulesOutput, error) {
	if strings.TrimSpace(input.Rule) == "" {
		return errResult(fmt.Errorf("rule is required")), parseRulesOutput{}, nil
	}

	version, err := resolveVersion(input.Version)
	if err != nil {
		return errResult(err), parseRulesOutput{}, nil
	}

	node, required := rules.Parse(input.Rule)
	encoded, err := encoder.Encode(node, version)
	if err != nil {
		return errResult(err), parseRulesOutput{}, nil
	}
	data, err := encoded.MarshalJSONIndent("", strings.Repeat(" ", cfg.Indent))
	if err != nil {
		return errResult(err), parseRulesOutput{}, nil
	}

	return nil, parseRulesOutput{
		Required: required,
		Version:  version.String(),
		Schema:   string(data),
	}, nil
}
