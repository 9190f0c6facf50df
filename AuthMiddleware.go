package main

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// AuthMiddleware rejects the request unless it carries a valid Bearer token.
func AuthMiddleware(tokens *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, unauthorized("missing Authorization header"))
			return
		}

		// Expect: "Bearer token"
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortWithError(c, unauthorized("invalid token format"))
			return
		}

		caller, err := tokens.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			abortWithError(c, unauthorized("invalid token"))
			return
		}

		c.Set(callerKey, caller)
		c.Set("user_id", caller.ID)
		c.Set("user_type", caller.Role)
		c.Next()
	}
}

// OptionalAuth attaches the caller when a valid token is present and lets
// anonymous requests through otherwise.
func OptionalAuth(tokens *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			if caller, err := tokens.ParseToken(strings.TrimPrefix(authHeader, "Bearer ")); err == nil {
				c.Set(callerKey, caller)
				c.Set("user_id", caller.ID)
				c.Set("user_type", caller.Role)
			}
		}
		c.Next()
	}
}

func callerFromContext(c *gin.Context) (Caller, bool) {
	v, exists := c.Get(callerKey)
	if !exists {
		return Caller{}, false
	}
	caller, ok := v.(Caller)
	return caller, ok
}
