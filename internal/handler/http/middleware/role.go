package middleware

import (
	"net/http"

	"github.com/clockwise-org/planning-service-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

const (
	RoleManager = "MANAGER"
	RoleAdmin   = "ADMIN"
)

// RequireManager gates the manager surface: publish, revert, confirmation,
// modification, and the review queue.
func RequireManager(next http.Handler) http.Handler {
	return requireRole(next, RoleManager, RoleAdmin)
}

// RequireAdmin gates the administrative surface: archive and cancel.
func RequireAdmin(next http.Handler) http.Handler {
	return requireRole(next, RoleAdmin)
}

func requireRole(next http.Handler, allowed ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, ErrInvalidToken.Error())
			return
		}

		role, ok := claims["role"].(string)
		if !ok {
			response.Forbidden(w, "Role claim missing")
			return
		}

		for _, a := range allowed {
			if role == a {
				next.ServeHTTP(w, r)
				return
			}
		}

		response.Forbidden(w, "Insufficient role")
	})
}
