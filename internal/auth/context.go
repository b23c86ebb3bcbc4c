package auth

import (
	"context"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
)

type ctxKey struct{}

// WithActor returns a context carrying the request principal.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, actor)
}

// ActorFromContext returns the request principal, or the anonymous actor.
func ActorFromContext(ctx context.Context) domain.Actor {
	actor, _ := ctx.Value(ctxKey{}).(domain.Actor)
	return actor
}
