package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/paydesk/payroll-backend-go/internal/domain/auth"
	"github.com/paydesk/payroll-backend-go/internal/handler/http/response"
)

// Principal resolves the caller identity for the request. A client that
// sends "X-Guest-User: true" gets a guest principal without presenting a
// token; otherwise a valid access token is required and its claims become
// the principal. Everything downstream reads the identity from the
// request context.
func Principal(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Guest-User") == "true" {
				ctx := auth.WithPrincipal(r.Context(), auth.GuestPrincipal())
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			userID, _ := claims["user_id"].(string)
			name, _ := claims["name"].(string)
			email, _ := claims["email"].(string)
			role, _ := claims["role"].(string)
			if userID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			principal := auth.Principal{
				UserID: userID,
				Name:   name,
				Email:  email,
				Role:   auth.Role(role),
			}
			ctx := auth.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
