package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	h := Hasher{Cost: bcrypt.MinCost}

	hashed, err := h.Hash("p")
	require.NoError(t, err)
	assert.NotEqual(t, "p", hashed)

	assert.True(t, h.Verify("p", hashed))
	assert.False(t, h.Verify("q", hashed))
	assert.False(t, h.Verify("p", "not-a-hash"))
}

func TestHash_TooLong(t *testing.T) {
	t.Parallel()

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}

	_, err := Hasher{Cost: bcrypt.MinCost}.Hash(string(long))
	assert.Error(t, err)
}
