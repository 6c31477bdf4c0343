package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viamoe/haady-business-sub003/internal/infrastructure/config"
)

func testVerifier() *JWTVerifier {
	return NewJWTVerifier(config.JWTConfig{
		Secret: "test-secret-key",
		Issuer: "haady-auth",
	})
}

func TestJWTVerifier_RoundTrip(t *testing.T) {
	verifier := testVerifier()
	merchantID := uuid.New()
	storeID := uuid.New()

	token, err := verifier.SignToken(merchantID, storeID, time.Hour)
	require.NoError(t, err)

	claims, err := verifier.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, merchantID.String(), claims.MerchantID)
	assert.Equal(t, storeID.String(), claims.StoreID)

	gotMerchant, err := claims.GetMerchantUUID()
	require.NoError(t, err)
	assert.Equal(t, merchantID, gotMerchant)
	gotStore, err := claims.GetStoreUUID()
	require.NoError(t, err)
	assert.Equal(t, storeID, gotStore)
}

func TestJWTVerifier_RejectsExpired(t *testing.T) {
	verifier := testVerifier()

	token, err := verifier.SignToken(uuid.New(), uuid.New(), -time.Minute)
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTVerifier_RejectsWrongSecret(t *testing.T) {
	other := NewJWTVerifier(config.JWTConfig{Secret: "other-secret", Issuer: "haady-auth"})
	token, err := other.SignToken(uuid.New(), uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = testVerifier().ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifier_RejectsWrongIssuer(t *testing.T) {
	other := NewJWTVerifier(config.JWTConfig{Secret: "test-secret-key", Issuer: "someone-else"})
	token, err := other.SignToken(uuid.New(), uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = testVerifier().ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestJWTVerifier_RejectsGarbage(t *testing.T) {
	_, err := testVerifier().ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
