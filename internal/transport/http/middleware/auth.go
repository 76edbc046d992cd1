package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/admin-service/internal/infrastructure/security"
)

type TokenVerifier interface {
	VerifyAccessToken(token string) (security.TokenClaims, error)
}

// SessionReader resolves a browser session cookie to a user id.
type SessionReader interface {
	GetUserID(ctx context.Context, token string) (string, error)
}

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// Auth resolves the requesting identity from either Authorization: Bearer
// <access_token> or the session cookie, and injects the user id into the
// request context. It does not check roles; RequireRole does.
func Auth(verifier TokenVerifier, sessions SessionReader, cookieName string, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if h := r.Header.Get("Authorization"); h != "" {
				parts := strings.SplitN(h, " ", 2)
				if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
					writeErr(w, r, domain.ErrTokenInvalid())
					return
				}

				raw := strings.TrimSpace(parts[1])
				if raw == "" {
					writeErr(w, r, domain.ErrTokenInvalid())
					return
				}

				claims, err := verifier.VerifyAccessToken(raw)
				if err != nil {
					writeErr(w, r, err)
					return
				}
				if strings.TrimSpace(claims.UserID) == "" {
					writeErr(w, r, domain.ErrTokenInvalid())
					return
				}

				next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), claims.UserID)))
				return
			}

			if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
				if sessions == nil {
					writeErr(w, r, domain.ErrSessionInvalid())
					return
				}
				uid, err := sessions.GetUserID(r.Context(), c.Value)
				if err != nil {
					writeErr(w, r, err)
					return
				}
				next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), uid)))
				return
			}

			writeErr(w, r, domain.ErrTokenMissing())
		})
	}
}
