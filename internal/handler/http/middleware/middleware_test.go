package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/heakbomb/resto-backend-go/internal/domain/user"
	"github.com/heakbomb/resto-backend-go/internal/handler/http/middleware"
	"github.com/heakbomb/resto-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(jwtService jwt.Service) *chi.Mux {
	ok := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
		r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

		r.Get("/ping", ok)
		r.With(middleware.RequireOwner).Get("/owner", ok)
		r.With(middleware.RequireEmployee).Get("/employee", ok)
		r.Route("/stores/{storeID}", func(r chi.Router) {
			r.Use(middleware.RequireStoreAccess)
			r.Get("/ping", ok)
		})
	})
	return r
}

func accessToken(t *testing.T, jwtService jwt.Service, role user.Role, storeIDs []string) string {
	t.Helper()
	employeeID := "emp-1"
	token, _, err := jwtService.GenerateAccessToken("user-1", &employeeID, storeIDs, role)
	require.NoError(t, err)
	return token
}

func get(router *chi.Mux, path string, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired_AllowsAccessToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "1h")
	router := newTestRouter(jwtService)
	token := accessToken(t, jwtService, user.RoleOwner, []string{"store-1"})

	rec := get(router, "/ping", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRequired_RejectsMissingToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "1h")
	router := newTestRouter(jwtService)

	rec := get(router, "/ping", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_RejectsForeignToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "1h")
	router := newTestRouter(jwtService)

	other := jwt.NewJWTService("other-secret", "1h")
	token := accessToken(t, other, user.RoleOwner, []string{"store-1"})

	rec := get(router, "/ping", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireOwner(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "1h")
	router := newTestRouter(jwtService)

	owner := accessToken(t, jwtService, user.RoleOwner, []string{"store-1"})
	assert.Equal(t, http.StatusOK, get(router, "/owner", owner).Code)

	emp := accessToken(t, jwtService, user.RoleEmployee, []string{"store-1"})
	assert.Equal(t, http.StatusForbidden, get(router, "/owner", emp).Code)
}

func TestRequireEmployee_AcceptsEmployeeAndOwner(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "1h")
	router := newTestRouter(jwtService)

	emp := accessToken(t, jwtService, user.RoleEmployee, []string{"store-1"})
	assert.Equal(t, http.StatusOK, get(router, "/employee", emp).Code)

	owner := accessToken(t, jwtService, user.RoleOwner, []string{"store-1"})
	assert.Equal(t, http.StatusOK, get(router, "/employee", owner).Code)
}

func TestRequireStoreAccess(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "1h")
	router := newTestRouter(jwtService)

	token := accessToken(t, jwtService, user.RoleOwner, []string{"store-1", "store-3"})
	assert.Equal(t, http.StatusOK, get(router, "/stores/store-1/ping", token).Code)
	assert.Equal(t, http.StatusForbidden, get(router, "/stores/store-2/ping", token).Code)

	// Admins bypass membership.
	admin := accessToken(t, jwtService, user.RoleAdmin, nil)
	assert.Equal(t, http.StatusOK, get(router, "/stores/store-2/ping", admin).Code)
}
