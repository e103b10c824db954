package middleware

import (
	"context"
	"net/http"

	"github.com/corehr/hr-backend-go/internal/domain/auth"
	"github.com/corehr/hr-backend-go/internal/domain/user"
	"github.com/corehr/hr-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// Principal extracts the authenticated actor from the request context.
// Valid only below AuthRequired.
func Principal(ctx context.Context) (user.Principal, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Principal{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Principal{}, auth.ErrInvalidToken
	}
	isAdmin, _ := claims["is_admin"].(bool)

	return user.Principal{UserID: userID, IsAdmin: isAdmin}, nil
}
