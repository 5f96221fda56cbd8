package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workstead/hr-backend-go/internal/domain/auth"
	"github.com/workstead/hr-backend-go/internal/handler/http/response"
	"github.com/workstead/hr-backend-go/internal/pkg/jwt"
)

func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
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

			// Logged-out tokens stay on the revocation list until expiry.
			if jwtService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// UserID pulls the authenticated user's ID out of the request claims.
func UserID(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	id, _ := claims["user_id"].(string)
	return id
}

// EmployeeID pulls the authenticated user's employee profile ID, nil when the
// user has no profile yet.
func EmployeeID(r *http.Request) *string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return nil
	}
	id, ok := claims["employee_id"].(string)
	if !ok || id == "" {
		return nil
	}
	return &id
}
