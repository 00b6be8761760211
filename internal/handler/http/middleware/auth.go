package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type actorKey struct{}

// AuthRequired must run after jwtauth.Verifier. It accepts access tokens bound
// to an employee and stores the resulting actor in the request context.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != "access" {
			response.HandleError(w, auth.ErrWrongTokenType)
			return
		}

		employeeID, _ := claims["employee_id"].(string)
		if employeeID == "" {
			response.HandleError(w, auth.ErrMissingEmployee)
			return
		}
		role, _ := claims["role"].(string)

		actor := &user.Actor{EmployeeID: employeeID, Role: user.Role(role)}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	}
	return http.HandlerFunc(hfn)
}

func WithActor(ctx context.Context, actor *user.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns nil for unauthenticated requests
func ActorFromContext(ctx context.Context) *user.Actor {
	actor, _ := ctx.Value(actorKey{}).(*user.Actor)
	return actor
}
