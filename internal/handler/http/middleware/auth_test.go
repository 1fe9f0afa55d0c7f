package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestRouter(ja *jwtauth.JWTAuth) http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(ja))
	r.Use(AuthRequired(ja))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func bearerRequest(t *testing.T, ja *jwtauth.JWTAuth, claims map[string]interface{}) *http.Request {
	t.Helper()
	_, tokenString, err := ja.Encode(claims)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	return req
}

func TestAuthRequiredAcceptsAccessToken(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("secret"), nil)
	rec := httptest.NewRecorder()

	authTestRouter(ja).ServeHTTP(rec, bearerRequest(t, ja, map[string]interface{}{
		"type": "access", "user_id": "u1", "role": "admin",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRequiredRejectsNonAccessToken(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("secret"), nil)
	rec := httptest.NewRecorder()

	authTestRouter(ja).ServeHTTP(rec, bearerRequest(t, ja, map[string]interface{}{
		"type": "refresh", "user_id": "u1",
	}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("secret"), nil)
	rec := httptest.NewRecorder()

	authTestRouter(ja).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
