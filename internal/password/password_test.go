package password

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	hash, err := Hash("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)

	require.True(t, Verify("s3cret", hash))
	require.False(t, Verify("wrong", hash))
}

func TestHashIsSalted(t *testing.T) {
	t.Parallel()

	first, err := Hash("same-input")
	require.NoError(t, err)
	second, err := Hash("same-input")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, Verify("same-input", first))
	require.True(t, Verify("same-input", second))
}

func TestVerifyRejectsGarbageHash(t *testing.T) {
	t.Parallel()

	require.False(t, Verify("anything", "not-a-bcrypt-hash"))
}
