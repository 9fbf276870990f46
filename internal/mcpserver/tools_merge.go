package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasforge/encoder"
	"github.com/erraggy/oasforge/encoder/wire"
	"github.com/erraggy/oasforge/merge"
)

type fragmentInput struct {
	Tier   string `json:"tier"             jsonschema:"Precedence tier: annotation\\, structure\\, type-info\\, rule\\, or fallback"`
	Schema string `json:"schema"           jsonschema:"The partial schema object as a JSON string"`
	Source string `json:"source,omitempty" jsonschema:"Label identifying where the fragment came from\\, used in conflict warnings"`
}

type mergeFragmentsInput struct {
	Fragments []fragmentInput `json:"fragments"         jsonschema:"Fragments to merge\\, at least one"`
	Version   string          `json:"version,omitempty" jsonschema:"Target OpenAPI version for the merged output. Defaults to OASFORGE_DEFAULT_VERSION."`
}

type mergeFragmentsOutput struct {
	FragmentCount int    `json:"fragment_count"`
	Version       string `json:"version"`
	Schema        string `json:"schema"`
}

func handleMergeFragments(_ context.Context, _ *mcp.CallToolRequest, input mergeFragmentsInput) (*mcp.CallToolResult, mergeFragmentsOutput, error) {
	if len(input.Fragments) == 0 {
		return errResult(fmt.Errorf("at least one fragment is required")), mergeFragmentsOutput{}, nil
	}

	version, err := resolveVersion(input.Version)
	if err != nil {
		return errResult(err), mergeFragmentsOutput{}, nil
	}

	fragments := makeSlice[merge.Fragment](len(input.Fragments))
	for i, in := range input.Fragments {
		tier, ok := merge.ParseTier(in.Tier)
		if !ok {
			return errResult(fmt.Errorf("fragment %d: unknown tier %q", i, in.Tier)), mergeFragmentsOutput{}, nil
		}
		obj, err := wire.ParseJSON([]byte(in.Schema))
		if err != nil {
			return errResult(fmt.Errorf("fragment %d: parsing schema: %w", i, err)), mergeFragmentsOutput{}, nil
		}
		node, err := encoder.Decode(obj, version)
		if err != nil {
			return errResult(fmt.Errorf("fragment %d: %w", i, err)), mergeFragmentsOutput{}, nil
		}
		fragments = append(fragments, merge.Fragment{
			Tier:   tier,
			Node:   node,
			Source: in.Source,
		})
	}

	merged := merge.Resolve(fragments...)
	encoded, err := encoder.Encode(merged, version)
	if err != nil {
		return errResult(err), mergeFragmentsOutput{}, nil
	}
	data, err := encoded.MarshalJSONIndent("", strings.Repeat(" ", cfg.Indent))
	if err != nil {
		return errResult(err), mergeFragmentsOutput{}, nil
	}

	return nil, mergeFragmentsOutput{
		FragmentCount: len(input.Fragments),
		Version:       version.String(),
		Schema:        string(data),
	}, nil
}
