package middleware

import (
	"net/http"

	"github.com/ez-programmer4/darulkubra-sub003/internal/handler/http/response"
	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AdminOnly guards the payroll configuration and record-entry endpoints.
// The main school-management application issues tokens with a role claim;
// "admin" and "controller" may write payroll data.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, jwt.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || (role != "admin" && role != "controller") {
			response.HandleError(w, jwt.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
