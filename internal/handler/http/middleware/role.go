package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/heakbomb/resto-backend-go/internal/domain/user"
	"github.com/heakbomb/resto-backend-go/internal/handler/http/response"
)

// RequireOwner requires owner role
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrOwnerAccessRequired)
			return
		}

		role, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrOwnerAccessRequired)
			return
		}

		if role != string(user.RoleOwner) {
			response.HandleError(w, user.ErrOwnerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireEmployee requires employee or owner role
func RequireEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrEmployeeAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrEmployeeAccessRequired)
			return
		}

		role := user.Role(roleStr)
		if role != user.RoleEmployee && role != user.RoleOwner {
			response.HandleError(w, user.ErrEmployeeAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireStoreAccess verifies the claimed store membership against the
// {storeID} path parameter. Admins bypass the check.
func RequireStoreAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrStoreAccessDenied)
			return
		}

		if role, ok := claims["role"].(string); ok && role == string(user.RoleAdmin) {
			next.ServeHTTP(w, r)
			return
		}

		storeID := chi.URLParam(r, "storeID")
		if storeID == "" {
			response.HandleError(w, user.ErrStoreAccessDenied)
			return
		}

		// jwx decodes JSON arrays as []interface{}
		rawStoreIDs, ok := claims["store_ids"].([]interface{})
		if !ok {
			response.HandleError(w, user.ErrStoreAccessDenied)
			return
		}
		for _, raw := range rawStoreIDs {
			if id, ok := raw.(string); ok && id == storeID {
				next.ServeHTTP(w, r)
				return
			}
		}

		response.HandleError(w, user.ErrStoreAccessDenied)
	})
}
