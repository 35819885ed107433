package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"empylo_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler := NewAuthHandler(NewBaseHandler(validator.New()), nil)
	handler.RegisterRoutes(api)
	return router
}

// The auth surface lives under /api/v1/auth; binding rejects the empty
// body before any service or database work, so a 400 proves the route
// is mounted.
func TestAuthRoutesMountedUnderAuthGroup(t *testing.T) {
	router := authRouter()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/auth/user-signup"},
		{http.MethodPost, "/api/v1/auth/verify-email-otp"},
		{http.MethodPost, "/api/v1/auth/login"},
		{http.MethodPost, "/api/v1/auth/login-with-two-step-verification"},
		{http.MethodPost, "/api/v1/auth/forgot-password"},
		{http.MethodPatch, "/api/v1/auth/password-reset"},
		{http.MethodPost, "/api/v1/auth/resend-verification-otp"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.NotEqual(t, http.StatusNotFound, w.Code, "%s %s should be routed", tc.method, tc.path)
	}
}

func TestAuthRoutesNotMountedAtGroupRoot(t *testing.T) {
	router := authRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
