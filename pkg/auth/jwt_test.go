package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func newTestValidator(t *testing.T, issuer string) *JWTValidator {
	t.Helper()
	validator, err := NewJWTValidator(JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     testSecret,
		Issuer:        issuer,
	})
	require.NoError(t, err)
	return validator
}

func newTestGenerator(t *testing.T, secret, issuer string, expiry time.Duration) *JWTGenerator {
	t.Helper()
	generator, err := NewJWTGenerator(JWTGeneratorConfig{
		SecretKey:  secret,
		Issuer:     issuer,
		ExpiryTime: expiry,
	})
	require.NoError(t, err)
	return generator
}

func TestValidateToken_AcceptsGeneratedToken(t *testing.T) {
	// Arrange
	generator := newTestGenerator(t, testSecret, "flashcard-backend", time.Hour)
	validator := newTestValidator(t, "flashcard-backend")

	token, err := generator.GenerateToken("user-123", "user@example.com", []string{"premium"})
	require.NoError(t, err)

	// Act
	claims, err := validator.ValidateToken("Bearer " + token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, []string{"premium"}, claims.Roles)
}

func TestValidateToken_RejectsExpiredToken(t *testing.T) {
	// Arrange
	generator := newTestGenerator(t, testSecret, "flashcard-backend", -time.Minute)
	validator := newTestValidator(t, "flashcard-backend")

	token, err := generator.GenerateToken("user-123", "user@example.com", nil)
	require.NoError(t, err)

	// Act
	_, err = validator.ValidateToken(token)

	// Assert
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_RejectsWrongSecret(t *testing.T) {
	// Arrange
	generator := newTestGenerator(t, "some-other-secret", "flashcard-backend", time.Hour)
	validator := newTestValidator(t, "flashcard-backend")

	token, err := generator.GenerateToken("user-123", "user@example.com", nil)
	require.NoError(t, err)

	// Act
	_, err = validator.ValidateToken(token)

	// Assert
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidateToken_RejectsWrongIssuer(t *testing.T) {
	// Arrange
	generator := newTestGenerator(t, testSecret, "someone-else", time.Hour)
	validator := newTestValidator(t, "flashcard-backend")

	token, err := generator.GenerateToken("user-123", "user@example.com", nil)
	require.NoError(t, err)

	// Act
	_, err = validator.ValidateToken(token)

	// Assert
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestValidateToken_RejectsEmptyToken(t *testing.T) {
	// Arrange
	validator := newTestValidator(t, "flashcard-backend")

	// Act
	_, err := validator.ValidateToken("")

	// Assert
	assert.ErrorIs(t, err, ErrMissingToken)
}
