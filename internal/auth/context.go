package auth

import (
	"context"

	"quiz-system/internal/quiz"
)

type ctxKey struct{}

var ctxKeyPrincipal = ctxKey{}

func WithPrincipal(ctx context.Context, p quiz.Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

// PrincipalFromContext returns the verified principal attached by
// JWTMiddleware. The zero value means no authenticated caller.
func PrincipalFromContext(ctx context.Context) quiz.Principal {
	if v := ctx.Value(ctxKeyPrincipal); v != nil {
		if p, ok := v.(quiz.Principal); ok {
			return p
		}
	}
	return quiz.Principal{}
}
