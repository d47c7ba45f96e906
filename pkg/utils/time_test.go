package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime_RoundTrips(t *testing.T) {
	// Arrange
	original := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	// Act
	stored := FormatTime(original)
	parsed := ParseTime(stored)

	// Assert
	assert.Equal(t, "2026-03-14T09:26:53Z", stored)
	assert.True(t, original.Equal(parsed))
}

func TestParseTime_DamagedValueYieldsZeroTime(t *testing.T) {
	// Act
	parsed := ParseTime("not-a-timestamp")

	// Assert
	assert.True(t, parsed.IsZero())
}

func TestNowFormatted_IsParseable(t *testing.T) {
	// Act
	stored := NowFormatted()
	parsed := ParseTime(stored)

	// Assert
	require.False(t, parsed.IsZero())
	assert.WithinDuration(t, time.Now(), parsed, 2*time.Second)
}
