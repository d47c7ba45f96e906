package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DevelopmentDefaultsTableName(t *testing.T) {
	// Arrange
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("TABLE_NAME", "")

	// Act
	cfg, err := LoadConfig()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "flashcards", cfg.DynamoDBTable)
}

func TestLoadConfig_ProductionRequiresTableName(t *testing.T) {
	// Arrange
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("TABLE_NAME", "")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("OPENROUTER_API_KEY", "key")

	// Act
	_, err := LoadConfig()

	// Assert
	assert.ErrorContains(t, err, "TABLE_NAME is required")
}

func TestLoadConfig_ProductionRequiresJWTSecret(t *testing.T) {
	// Arrange
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("TABLE_NAME", "flashcards-prod")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("OPENROUTER_API_KEY", "key")

	// Act
	_, err := LoadConfig()

	// Assert
	assert.ErrorContains(t, err, "JWT_SECRET is required")
}
