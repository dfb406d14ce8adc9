package domain

import (
	"github.com/google/wire"

	"github.com/janhq/search-agent/internal/domain/adapter"
)

// DomainProvider provides the in-process session over the command dispatcher
var DomainProvider = wire.NewSet(
	adapter.NewLocalSession,
	wire.Bind(new(adapter.Session), new(*adapter.LocalSession)),
)
