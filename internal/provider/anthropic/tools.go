package anthropic

import (
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	ai "github.com/spetersoncode/gitscribe"
)

const defaultToolName = "json_response"

func buildJSONTool(schema *ai.ResponseSchema) (anthropic.ToolUnionParam, anthropic.ToolChoiceUnionParam, error) {
	var m map[string]any
	if err := json.Unmarshal(schema.Schema, &m); err != nil {
		return anthropic.ToolUnionParam{}, anthropic.ToolChoiceUnionParam{}, fmt.Errorf("anthropic: invalid response schema: %w", err)
	}

	name := schema.Name
	if name == "" {
		name = defaultToolName
	}
	description := schema.Description
	if description == "" {
		description = "Output the response as structured JSON"
	}

	var required []string
	if req, ok := m["required"].([]any); ok {
		for _, r := range req {
			if s, ok := r.(string); ok {
				required = append(required, s)
			}
		}
	}

	tool := anthropic.ToolUnionParam{
		OfTool: &anthropic.ToolParam{
			Name:        name,
			Description: anthropic.String(description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: m["properties"],
				Required:   required,
			},
		},
	}
	choice := anthropic.ToolChoiceUnionParam{
		OfTool: &anthropic.ToolChoiceToolParam{Name: name},
	}
	return tool, choice, nil
}
