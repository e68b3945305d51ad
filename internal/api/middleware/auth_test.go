package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palpita/lottery-api/internal/pkg/jwthelper"
)

func newAuthRouter(signingKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", NewAuthenticator(signingKey).VerifyJWT(), func(ctx *gin.Context) {
		userID := ctx.GetUint(ContextUserIDKey)
		ctx.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	return router
}

func TestVerifyJWT(t *testing.T) {
	const signingKey = "test-signing-key"

	router := newAuthRouter(signingKey)

	token, err := jwthelper.GenerateToken([]byte(signingKey), 7, "go-test")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"user_id":7}`, resp.Body.String())
}

func TestVerifyJWT_MissingHeader(t *testing.T) {
	router := newAuthRouter("test-signing-key")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestVerifyJWT_WrongKey(t *testing.T) {
	router := newAuthRouter("test-signing-key")

	token, err := jwthelper.GenerateToken([]byte("another-key"), 7, "go-test")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
