package middleware

import (
	"net/http"
	"strings"

	"inkwell/pkg/cache"
	"inkwell/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// AuthRequired rejects requests without a valid, non-revoked bearer token and
// stores the caller's identity on the gin context.
func AuthRequired(jwtService *jwt.Service, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := resolveToken(c, jwtService, redisClient)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// AuthOptional resolves the caller's identity when a valid token is present and
// leaves the request anonymous otherwise. Read endpoints use it so that
// per-viewer fields can be computed without requiring login.
func AuthOptional(jwtService *jwt.Service, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := resolveToken(c, jwtService, redisClient); ok {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

func resolveToken(c *gin.Context, jwtService *jwt.Service, redisClient *redis.Client) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := jwtService.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}

	// A token that was logged out stays invalid until it expires.
	if redisClient != nil {
		exists, err := redisClient.Exists(c.Request.Context(), cache.RevokedTokenKey(claims.ID)).Result()
		if err == nil && exists > 0 {
			return nil, false
		}
	}

	return claims, true
}

func setIdentity(c *gin.Context, claims *jwt.Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("token_id", claims.ID)
	c.Set("token_expires_at", claims.ExpiresAt.Time)
}
