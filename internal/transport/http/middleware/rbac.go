package middleware

import (
	"context"
	"net/http"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/domain"
)

// RoleReader loads the roles currently held by a user from the source of
// truth. Roles live on the user record, not in the token, so revoking the
// admin role takes effect on the next request.
type RoleReader interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
}

// RequireRole is the single authorization gate for the admin surface:
// every handler behind it runs only for callers holding the named role.
// Assumes Auth() has already injected the identity into context.
func RequireRole(users RoleReader, role string, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				// middleware ordering issue (Auth not applied) or context missing
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			u, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if domain.Is(err, "user_not_found") {
					writeErr(w, r, domain.ErrSessionInvalid())
					return
				}
				writeErr(w, r, err)
				return
			}

			if !u.HasRole(role) {
				writeErr(w, r, domain.ErrInsufficientRole(role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
