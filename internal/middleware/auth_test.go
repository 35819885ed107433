package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"empylo_backend/internal/auth"
	"empylo_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/secure")
	group.Use(AuthMiddleware())
	group.Use(extra...)
	group.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": GetUserID(c)})
	})
	return router
}

func bearerFor(t *testing.T, user models.User) string {
	t.Helper()
	require.NoError(t, auth.Init("middleware-test-secret"))
	token, err := auth.GenerateToken(user, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	router := protectedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	require.NoError(t, auth.Init("middleware-test-secret"))
	router := protectedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	user := models.User{Email: "mw@example.com"}
	user.ID = 11
	header := bearerFor(t, user)

	router := protectedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", header)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":11`)
}

func TestRequireCompanyAccount(t *testing.T) {
	personal := models.User{Email: "personal@example.com", AccountType: models.AccountTypePersonal}
	personal.ID = 1
	company := models.User{Email: "company@example.com", AccountType: models.AccountTypeCompany}
	company.ID = 2

	router := protectedRouter(RequireCompanyAccount())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", bearerFor(t, personal))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", bearerFor(t, company))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
