package agent

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultInstructions = `MCP Research Protocol:
1. Use mcp_search for all queries
2. Validate across multiple results
3. Format with MCP-standard markdown
4. Include source metadata
5. Maintain session context`

// Profile describes the persona and output preferences of the agent.
type Profile struct {
	Name          string `yaml:"name"`
	Role          string `yaml:"role"`
	Instructions  string `yaml:"instructions"`
	Markdown      bool   `yaml:"markdown"`
	ShowToolCalls bool   `yaml:"show_tool_calls"`
}

// DefaultProfile is the web research persona.
func DefaultProfile() Profile {
	return Profile{
		Name:          "Web Agent",
		Role:          "Search the web for information",
		Instructions:  defaultInstructions,
		Markdown:      true,
		ShowToolCalls: true,
	}
}

// LoadProfile reads a YAML profile. Keys missing from the file keep their default.
// An empty path returns DefaultProfile.
func LoadProfile(path string) (Profile, error) {
	profile := DefaultProfile()
	if strings.TrimSpace(path) == "" {
		return profile, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read agent profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return Profile{}, fmt.Errorf("parse agent profile %s: %w", path, err)
	}
	return profile, nil
}

// SystemPrompt renders the profile as the system message.
func (p Profile) SystemPrompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s. Your role: %s.\n\n", p.Name, p.Role)
	b.WriteString(strings.TrimSpace(p.Instructions))
	if p.Markdown {
		b.WriteString("\n\nUse markdown to format your answers.")
	}
	return b.String()
}
