//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/janhq/search-agent/internal/domain"
	"github.com/janhq/search-agent/internal/infrastructure"
	"github.com/janhq/search-agent/internal/interfaces"
)

func CreateApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		domain.DomainProvider,
		infrastructure.InfrastructureProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}

func CreateRuntime(ctx context.Context) (*Runtime, error) {
	wire.Build(
		domain.DomainProvider,
		infrastructure.InfrastructureProvider,
		wire.Struct(new(Runtime), "*"),
	)
	return nil, nil
}
