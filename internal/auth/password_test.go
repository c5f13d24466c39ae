package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("s3cret-Pass", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-Pass", hash)

	assert.NoError(t, ComparePassword(hash, "s3cret-Pass"))
	assert.Error(t, ComparePassword(hash, "wrong-pass"))
}
