package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/viamoe/haady-business-sub003/internal/infrastructure/auth"
	"github.com/viamoe/haady-business-sub003/internal/infrastructure/logger"
)

// JWT context keys
const (
	JWTClaimsKey     = "jwt_claims"
	JWTMerchantIDKey = "jwt_merchant_id"
	JWTStoreIDKey    = "jwt_store_id"
	AuthHeaderKey    = "Authorization"
	BearerPrefix     = "Bearer "
)

// JWTAuthMiddleware validates the dashboard bearer token and puts the
// merchant and store identity on the context
func JWTAuthMiddleware(verifier *auth.JWTVerifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Missing or malformed authorization header")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := verifier.ValidateAccessToken(tokenString)
		if err != nil {
			if log != nil {
				log.Warn("token validation failed",
					zap.String("path", c.Request.URL.Path),
					zap.Error(err))
			}
			abortUnauthorized(c, "Authentication required")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTMerchantIDKey, claims.MerchantID)
		c.Set(JWTStoreIDKey, claims.StoreID)

		// Also tag the request-scoped logger with the store identity
		ctx := c.Request.Context()
		ctx, _ = logger.WithStoreID(ctx, logger.FromContext(ctx), claims.StoreID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}

// GetMerchantID retrieves the authenticated merchant's UUID from the context
func GetMerchantID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(JWTMerchantIDKey)
	if !exists {
		return uuid.Nil, false
	}
	s, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetStoreID retrieves the authenticated store's UUID from the context
func GetStoreID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(JWTStoreIDKey)
	if !exists {
		return uuid.Nil, false
	}
	s, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
