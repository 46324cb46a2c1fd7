package auth

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

// SystemActor is recorded in audit columns when no token was presented.
const SystemActor = "system"

// Principal is the verified bearer of a request.
type Principal struct {
	Subject string
	Name    string
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}

// Actor returns the identity recorded in audit columns for writes made
// under ctx.
func Actor(ctx context.Context) string {
	p, ok := PrincipalFrom(ctx)
	switch {
	case !ok:
		return SystemActor
	case p.Name != "":
		return p.Name
	case p.Subject != "":
		return p.Subject
	}
	return SystemActor
}

// SubjectID returns the principal's subject as a uuid, or uuid.Nil when
// there is none or it is not a uuid.
func SubjectID(ctx context.Context) uuid.UUID {
	p, ok := PrincipalFrom(ctx)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(p.Subject)
	if err != nil {
		return uuid.Nil
	}
	return id
}
