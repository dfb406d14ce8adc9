package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolInputSchema(t *testing.T) {
	schema, err := ToolInputSchema(&SearchArgs{})
	require.NoError(t, err)

	assert.Equal(t, "object", schema["type"])
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	query, ok := props["query"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", query["type"])
	assert.Equal(t, "The web search query", query["description"])
	assert.NotContains(t, schema, "$schema")
}

func TestToolInputSchema_ExecuteArgsAllowsAnyAction(t *testing.T) {
	schema, err := ToolInputSchema(&ExecuteArgs{})
	require.NoError(t, err)

	props := schema["properties"].(map[string]any)
	action := props["action"].(map[string]any)
	assert.NotContains(t, action, "enum")
	assert.Equal(t, []any{"action"}, schema["required"])
}
