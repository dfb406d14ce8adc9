package adapter

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SearchArgs are the arguments of the search tool exposed to models and MCP clients.
type SearchArgs struct {
	Query string `json:"query" jsonschema:"description=The web search query"`
}

// ExecuteArgs are the arguments of the raw command tool.
type ExecuteArgs struct {
	Action string `json:"action" jsonschema:"description=Adapter action to run. Supported: search"`
	Query  string `json:"query,omitempty" jsonschema:"description=Search query used by the search action"`
}

// ToolParameters reflects a JSON schema for a tool argument struct.
func ToolParameters(args any) (json.RawMessage, error) {
	reflector := &jsonschema.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		ExpandedStruct:            true,
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(args)
	schema.Version = ""

	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal tool schema: %w", err)
	}
	return data, nil
}

// ToolInputSchema is ToolParameters decoded into a generic map.
func ToolInputSchema(args any) (map[string]any, error) {
	data, err := ToolParameters(args)
	if err != nil {
		return nil, err
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("decode tool schema: %w", err)
	}
	return schema, nil
}
