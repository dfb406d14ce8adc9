package adapter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_Action(t *testing.T) {
	action, ok := NewSearchCommand("q").Action()
	assert.True(t, ok)
	assert.Equal(t, ActionSearch, action)

	_, ok = Command{}.Action()
	assert.False(t, ok)

	_, ok = Command{"action": 7}.Action()
	assert.False(t, ok)
}

func TestCommand_Field(t *testing.T) {
	tests := []struct {
		name   string
		cmd    Command
		want   string
		wantOK bool
	}{
		{"string", Command{"query": "rust"}, "rust", true},
		{"empty string", Command{"query": ""}, "", true},
		{"missing", Command{}, "", false},
		{"null", Command{"query": nil}, "", false},
		{"integer", Command{"query": 42}, "42", true},
		{"json number", Command{"query": json.Number("3.14")}, "3.14", true},
		{"bool", Command{"query": true}, "true", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.cmd.Field("query")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeResponse(t *testing.T) {
	resp, err := DecodeResponse([]byte(`{"error":"Unsupported MCP action"}`))
	require.NoError(t, err)
	assert.Equal(t, &ErrorResult{Error: "Unsupported MCP action"}, resp)
	assert.True(t, IsError(resp))

	resp, err = DecodeResponse([]byte(`{"mcp_version":"1.0","results":[{"title":"T","url":null,"content":"S","source":"Serper/Google"}]}`))
	require.NoError(t, err)
	result, ok := resp.(*NormalizedResult)
	require.True(t, ok)
	assert.False(t, IsError(resp))
	require.Len(t, result.Results, 1)
	assert.Nil(t, result.Results[0].URL)
	assert.Equal(t, "T", *result.Results[0].Title)

	resp, err = DecodeResponse([]byte(`{"mcp_version":"1.0"}`))
	require.NoError(t, err)
	assert.NotNil(t, resp.(*NormalizedResult).Results)

	_, err = DecodeResponse([]byte(`not json`))
	assert.Error(t, err)
}

func TestTransportError_Message(t *testing.T) {
	err := &TransportError{StatusCode: 500, Body: "boom"}
	assert.Equal(t, "search API error (status 500): boom", err.Error())
	assert.Nil(t, err.Unwrap())
}
