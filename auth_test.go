package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := hashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, checkPassword("secret123", hash))
	assert.False(t, checkPassword("secret124", hash))
}

func TestTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	user := &User{ID: "user-1", Role: RoleVendor}

	t.Run("Testcase #1: round trip", func(t *testing.T) {
		token, err := issuer.GenerateToken(user)
		require.NoError(t, err)

		caller, err := issuer.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, Caller{ID: "user-1", Role: RoleVendor}, caller)
	})

	t.Run("Testcase #2: wrong secret", func(t *testing.T) {
		token, err := NewTokenIssuer("other-secret", time.Hour).GenerateToken(user)
		require.NoError(t, err)
		_, err = issuer.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("Testcase #3: expired", func(t *testing.T) {
		old := NewTokenIssuer("test-secret", time.Hour)
		old.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := old.GenerateToken(user)
		require.NoError(t, err)
		_, err = issuer.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("Testcase #4: signing method other than HMAC", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-1", UserType: RoleVendor})
		raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = issuer.ParseToken(raw)
		assert.Error(t, err)
	})

	t.Run("Testcase #5: missing role claim", func(t *testing.T) {
		token, err := issuer.GenerateToken(&User{ID: "user-1"})
		require.NoError(t, err)
		_, err = issuer.ParseToken(token)
		assert.Error(t, err)
	})
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer := NewTokenIssuer("test-secret", time.Hour)
	token, err := issuer.GenerateToken(&User{ID: "user-1", Role: RoleOrganizer})
	require.NoError(t, err)

	newEngine := func(mw gin.HandlerFunc) *gin.Engine {
		r := gin.New()
		r.GET("/whoami", mw, func(c *gin.Context) {
			caller, ok := callerFromContext(c)
			c.JSON(http.StatusOK, gin.H{"authenticated": ok, "id": caller.ID})
		})
		return r
	}
	do := func(r *gin.Engine, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	strict := newEngine(AuthMiddleware(issuer))
	t.Run("Testcase #1: valid bearer token", func(t *testing.T) {
		w := do(strict, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"user-1"`)
	})
	t.Run("Testcase #2: missing header", func(t *testing.T) {
		w := do(strict, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"unauthorized"`)
	})
	t.Run("Testcase #3: wrong scheme", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(strict, "Token "+token).Code)
	})
	t.Run("Testcase #4: garbage token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(strict, "Bearer nope").Code)
	})

	optional := newEngine(OptionalAuth(issuer))
	t.Run("Testcase #5: optional auth lets anonymous through", func(t *testing.T) {
		w := do(optional, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"authenticated":false`)
	})
	t.Run("Testcase #6: optional auth attaches a valid caller", func(t *testing.T) {
		w := do(optional, "Bearer "+token)
		assert.Contains(t, w.Body.String(), `"authenticated":true`)
	})
}
