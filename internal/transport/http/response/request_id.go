package response

import (
	"net/http"

	appctx "github.com/baechuer/real-time-ressys/services/admin-service/internal/pkg/context"
)

// RequestIDFromContext extracts the request id set by the middleware, if any.
func RequestIDFromContext(r *http.Request) string {
	id, _ := appctx.RequestID(r.Context())
	return id
}
