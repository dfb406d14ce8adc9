package routes

import (
	"github.com/google/wire"

	"github.com/janhq/search-agent/internal/infrastructure/config"
	"github.com/janhq/search-agent/internal/interfaces/httpserver/routes/mcp"
)

// RoutesProvider provides all route dependencies
var RoutesProvider = wire.NewSet(
	mcp.NewAdapterMCP,
	ProvideMCPRoute,
	NewCommandRoute,
)

// ProvideMCPRoute builds the MCP route reporting the configured version
func ProvideMCPRoute(adapterMCP *mcp.AdapterMCP, cfg *config.Config) (*mcp.MCPRoute, error) {
	return mcp.NewMCPRoute(adapterMCP, cfg.Version)
}
