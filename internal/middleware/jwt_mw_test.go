package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/model"
	"storefront/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(jwtUtil *utils.JWTUtil, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuthMiddleware(jwtUtil)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user": c.GetString(AuthUserKey),
			"role": c.GetString(AuthRoleKey),
		})
	})
	router.GET("/protected", handlers...)
	return router
}

func issueToken(t *testing.T, jwtUtil *utils.JWTUtil, role string) string {
	t.Helper()
	token, err := jwtUtil.GenerateToken(&model.User{
		ID:    "user-1",
		Email: "test@example.com",
		Name:  "Test",
		Role:  role,
	})
	require.NoError(t, err)
	return token
}

func TestJWTAuthMiddleware_NoToken(t *testing.T) {
	router := newProtectedRouter(utils.NewJWTUtil("secret"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_CookieToken(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret")
	router := newProtectedRouter(jwtUtil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: issueToken(t, jwtUtil, model.RoleCustomer)})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestJWTAuthMiddleware_BearerToken(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret")
	router := newProtectedRouter(jwtUtil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, jwtUtil, model.RoleCustomer))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_TamperedToken(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret")
	router := newProtectedRouter(jwtUtil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: issueToken(t, utils.NewJWTUtil("other-secret"), model.RoleCustomer)})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMiddleware(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret")
	router := newProtectedRouter(jwtUtil, AdminMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: issueToken(t, jwtUtil, model.RoleCustomer)})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code, "a customer is authenticated but not permitted")

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: issueToken(t, jwtUtil, model.RoleAdmin)})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
