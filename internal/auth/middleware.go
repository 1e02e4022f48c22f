package auth

import (
	"net/http"

	"github.com/ar-copilot/ar-copilot/internal/platform/httpx"
	"github.com/ar-copilot/ar-copilot/internal/shared"
)

// RequireAuth guards a route subtree. A session with a user ID puts the
// owner scope into context; anything else gets the uniform 401 envelope.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		userID := sess.User()
		if userID == "" {
			httpx.Fail(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := shared.ContextWithScope(r.Context(), shared.Scope{OwnerID: userID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
