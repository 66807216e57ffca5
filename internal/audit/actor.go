package audit

import "context"

type actorKey struct{}

type Actor struct {
	ID    string
	Email string
}

// WithActor tags ctx with the identity performing the request.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

func ActorFrom(ctx context.Context) Actor {
	a, _ := ctx.Value(actorKey{}).(Actor)
	return a
}
