package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/clockwise-org/planning-service-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

var ErrInvalidToken = errors.New("invalid or missing token")

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, ErrInvalidToken.Error())
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// UserID extracts the caller's identity from the verified token. The token
// is issued by the identity service; this service never parses credentials
// beyond the resolved claims.
func UserID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", ErrInvalidToken
	}

	if id, ok := claims["user_id"].(string); ok && id != "" {
		return id, nil
	}
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub, nil
	}

	return "", ErrInvalidToken
}
