package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	UseMinCost()

	hash, err := Hash("motdepasse")
	require.NoError(t, err)
	assert.NotEqual(t, "motdepasse", hash)
	assert.True(t, Verify("motdepasse", hash))
	assert.False(t, Verify("autre", hash))
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.Len(t, HashToken("abc"), 64)
}

func TestValidatePassword(t *testing.T) {
	assert.False(t, ValidatePassword("abc"))
	assert.True(t, ValidatePassword("éàçèùô"))
}
