package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.env")
	second := filepath.Join(dir, "second.env")
	require.NoError(t, os.WriteFile(first, []byte("SEARCH_AGENT_TEST_SHELL=one\nSEARCH_AGENT_TEST_FILE=one\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("SEARCH_AGENT_TEST_FILE=two\nSEARCH_AGENT_TEST_ONLY_SECOND=two\n"), 0o600))

	t.Setenv("SEARCH_AGENT_TEST_SHELL", "shell")
	t.Cleanup(func() {
		_ = os.Unsetenv("SEARCH_AGENT_TEST_FILE")
		_ = os.Unsetenv("SEARCH_AGENT_TEST_ONLY_SECOND")
	})
	loadEnvFiles(first, filepath.Join(dir, "missing.env"), second)

	assert.Equal(t, "shell", os.Getenv("SEARCH_AGENT_TEST_SHELL"))
	assert.Equal(t, "one", os.Getenv("SEARCH_AGENT_TEST_FILE"))
	assert.Equal(t, "two", os.Getenv("SEARCH_AGENT_TEST_ONLY_SECOND"))
}

func TestSearchCommand(t *testing.T) {
	var gotBody map[string]any
	serper := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"organic":[{"title":"Rust","link":"https://rust-lang.org","snippet":"Ownership"}]}`))
	}))
	defer serper.Close()

	t.Setenv("SERPER_API_KEY", "test-key")
	t.Setenv("SERPER_BASE_URL", serper.URL)
	t.Setenv("MCP_SERVER_URL", "")
	t.Setenv("OTEL_ENABLED", "false")
	t.Setenv("AUTH_ENABLED", "false")

	run := func(args ...string) map[string]any {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&bytes.Buffer{})
		rootCmd.SetArgs(args)
		require.NoError(t, rootCmd.Execute())

		var resp map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
		return resp
	}

	resp := run("search", "rust", "ownership")
	assert.Equal(t, "rust ownership", gotBody["q"])
	assert.EqualValues(t, 5, gotBody["num"])
	assert.Equal(t, "1.0", resp["mcp_version"])
	results := resp["results"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, "Serper/Google", results[0].(map[string]any)["source"])

	resp = run("search", "--action", "browse", "x")
	assert.Equal(t, map[string]any{"error": "Unsupported MCP action"}, resp)
}
