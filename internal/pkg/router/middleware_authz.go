package router

import (
	"log/slog"
	"net/http"

	"github.com/casbin/casbin/v3"

	"github.com/dailyvegies/api/internal/pkg/jwt"
)

// middlewareAuthorization enforces role-based access on authenticated routes.
// Requests without claims passed the public-endpoint check and are not
// subject to role policies.
func middlewareAuthorization(enforcer *casbin.Enforcer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if enforcer == nil {
				next.ServeHTTP(w, r)
				return
			}

			claims := jwt.GetAuth(r.Context())
			if claims == nil {
				next.ServeHTTP(w, r)
				return
			}

			allowed, err := enforcer.Enforce(claims.UserRole, matchedRoutePath(r), r.Method)
			if err != nil {
				slog.ErrorContext(r.Context(), "authorization check failed", "error", err, "role", claims.UserRole)
				writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
				return
			}
			if !allowed {
				writeJSON(w, errorResponse{Message: "You are not allowed to perform this action"}, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
