package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/viamoe/haady-business-sub003/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrExpiredToken      = errors.New("token has expired")
	ErrTokenNotYetValid  = errors.New("token is not yet valid")
	ErrInvalidClaims     = errors.New("invalid token claims")
	ErrMissingMerchantID = errors.New("missing merchant_id in claims")
	ErrMissingStoreID    = errors.New("missing store_id in claims")
)

// Claims carries the merchant and store identity the auth service embeds in
// dashboard access tokens
type Claims struct {
	jwt.RegisteredClaims
	MerchantID string `json:"merchant_id"`
	StoreID    string `json:"store_id"`
}

// GetMerchantUUID extracts and parses the merchant ID from claims
func (c *Claims) GetMerchantUUID() (uuid.UUID, error) {
	return uuid.Parse(c.MerchantID)
}

// GetStoreUUID extracts and parses the store ID from claims
func (c *Claims) GetStoreUUID() (uuid.UUID, error) {
	return uuid.Parse(c.StoreID)
}

// JWTVerifier validates bearer tokens issued by the auth service. This
// backend never issues tokens itself; login and refresh live elsewhere.
type JWTVerifier struct {
	secret []byte
	issuer string
}

// NewJWTVerifier creates a new verifier
func NewJWTVerifier(cfg config.JWTConfig) *JWTVerifier {
	return &JWTVerifier{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
	}
}

// ValidateAccessToken validates a token and returns its claims
func (v *JWTVerifier) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if v.issuer != "" && claims.Issuer != v.issuer {
		return nil, ErrInvalidClaims
	}
	if claims.MerchantID == "" {
		return nil, ErrMissingMerchantID
	}
	if claims.StoreID == "" {
		return nil, ErrMissingStoreID
	}

	return claims, nil
}

// SignToken signs a token for the given identity. Used by tests and local
// tooling; production tokens come from the auth service.
func (v *JWTVerifier) SignToken(merchantID, storeID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    v.issuer,
			Subject:   merchantID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		MerchantID: merchantID.String(),
		StoreID:    storeID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
