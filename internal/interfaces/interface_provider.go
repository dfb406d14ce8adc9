package interfaces

import (
	"github.com/google/wire"

	"github.com/janhq/search-agent/internal/interfaces/httpserver"
	"github.com/janhq/search-agent/internal/interfaces/httpserver/routes"
)

// InterfacesProvider provides all interface layer dependencies
var InterfacesProvider = wire.NewSet(
	routes.RoutesProvider,
	httpserver.NewHTTPServer,
)
