// Copyright (c) 2026 CityInfo API. All rights reserved.

package sec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("Abc123!")
	require.NoError(t, err)

	assert.NotEqual(t, "Abc123!", hash)
	assert.True(t, CheckPasswordHash("Abc123!", hash))
	assert.False(t, CheckPasswordHash("Abc123?", hash))
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := HashPassword("Abc123!")
	require.NoError(t, err)

	second, err := HashPassword("Abc123!")
	require.NoError(t, err)

	// bcrypt embeds a random salt, so identical inputs produce distinct hashes.
	assert.NotEqual(t, first, second)
}
