package mocks

import (
	"context"
	"meetroom/infras/otel"
)

// noopOtel hands out no-op scopes so services can be tested without an exporter.
type noopOtel struct{}

func (noopOtel) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func (noopOtel) Shutdown(context.Context) error {
	return nil
}

func NewOtel() otel.Otel {
	return noopOtel{}
}
