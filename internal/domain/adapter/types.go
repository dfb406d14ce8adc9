package adapter

import (
	"encoding/json"
	"fmt"
)

const (
	// SchemaVersion identifies the shape of NormalizedResult for downstream consumers.
	SchemaVersion = "1.0"

	// SourceSerperGoogle is the provenance label stamped on every result item.
	SourceSerperGoogle = "Serper/Google"
)

// Action names the operation a Command asks for.
type Action string

const (
	// ActionSearch runs a web search through the configured backend.
	ActionSearch Action = "search"
)

// Command is a structured request issued by a calling agent, e.g.
// {"action": "search", "query": "rust ownership"}.
type Command map[string]any

// NewSearchCommand builds a search command for the given query.
func NewSearchCommand(query string) Command {
	return Command{
		"action": string(ActionSearch),
		"query":  query,
	}
}

// Action returns the action field when it is present and a string.
func (c Command) Action() (Action, bool) {
	raw, ok := c["action"]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	return Action(s), true
}

// Field returns the textual form of an action-specific field.
// A missing key or a JSON null reports ok=false; an empty string is a present value.
func (c Command) Field(key string) (string, bool) {
	raw, ok := c[key]
	if !ok || raw == nil {
		return "", false
	}
	switch v := raw.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	default:
		return fmt.Sprint(v), true
	}
}

// Response is what Execute hands back: either *NormalizedResult or *ErrorResult.
type Response interface {
	isResponse()
}

// NormalizedResult is the versioned success payload.
type NormalizedResult struct {
	MCPVersion string       `json:"mcp_version"`
	Results    []ResultItem `json:"results"`
}

// ResultItem is one normalized search hit. Nil fields were absent upstream.
type ResultItem struct {
	Title   *string `json:"title"`
	URL     *string `json:"url"`
	Content *string `json:"content"`
	Source  string  `json:"source"`
}

// ErrorResult is the error payload returned instead of a NormalizedResult.
type ErrorResult struct {
	Error string `json:"error"`
}

func (*NormalizedResult) isResponse() {}
func (*ErrorResult) isResponse()      {}

// NewErrorResult builds an ErrorResult with a formatted message.
func NewErrorResult(format string, args ...any) *ErrorResult {
	return &ErrorResult{Error: fmt.Sprintf(format, args...)}
}

// IsError reports whether the response is an ErrorResult.
func IsError(resp Response) bool {
	_, ok := resp.(*ErrorResult)
	return ok
}

// DecodeResponse parses a serialized Response. Payloads carrying an "error" key
// decode to *ErrorResult, everything else to *NormalizedResult.
func DecodeResponse(data []byte) (Response, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if _, ok := fields["error"]; ok {
		var errResult ErrorResult
		if err := json.Unmarshal(data, &errResult); err != nil {
			return nil, fmt.Errorf("decode error response: %w", err)
		}
		return &errResult, nil
	}
	var result NormalizedResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode normalized result: %w", err)
	}
	if result.Results == nil {
		result.Results = []ResultItem{}
	}
	return &result, nil
}
