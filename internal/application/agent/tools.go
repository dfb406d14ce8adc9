package agent

import (
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/janhq/search-agent/internal/domain/adapter"
)

// SearchToolName is the function name offered to the model.
const SearchToolName = "mcp_search"

// SearchTool builds the function definition for web search.
func SearchTool() (openai.Tool, error) {
	params, err := adapter.ToolParameters(&adapter.SearchArgs{})
	if err != nil {
		return openai.Tool{}, err
	}
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        SearchToolName,
			Description: "Search the web via Serper/Google. Returns up to 5 results with title, url, content and source.",
			Parameters:  params,
		},
	}, nil
}

// commandForToolCall turns a model tool call into an adapter command.
// Unknown tool names map to an action the dispatcher will reject.
func commandForToolCall(call openai.ToolCall) (adapter.Command, error) {
	cmd := adapter.Command{}
	if call.Function.Name == SearchToolName {
		cmd["action"] = string(adapter.ActionSearch)
	} else {
		cmd["action"] = call.Function.Name
	}

	if call.Function.Arguments == "" {
		return cmd, nil
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return nil, fmt.Errorf("invalid arguments for %s: %w", call.Function.Name, err)
	}
	for k, v := range args {
		if k == "action" {
			continue
		}
		cmd[k] = v
	}
	return cmd, nil
}
