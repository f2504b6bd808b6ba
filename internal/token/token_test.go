package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := NewCodec("super-secret", "HS256", 10)
	require.NoError(t, err)
	return codec
}

func TestIssueAndDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	subject := uuid.New()

	raw, err := codec.Issue(subject, TypeAccess, time.Hour)
	require.NoError(t, err)

	claims, err := codec.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, subject.String(), claims.Subject)
	require.Equal(t, TypeAccess, claims.Type)
	require.Len(t, claims.Nonce, 10)
}

func TestDecode_Expired(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)

	raw, err := codec.Issue(uuid.New(), TypeAccess, -1*time.Second)
	require.NoError(t, err)

	_, err = codec.Decode(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecode_WrongSecret(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	other, err := NewCodec("different-secret", "HS256", 10)
	require.NoError(t, err)

	raw, err := codec.Issue(uuid.New(), TypeAccess, time.Hour)
	require.NoError(t, err)

	_, err = other.Decode(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)

	_, err := codec.Decode("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_TypeConfusion(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	subject := uuid.New()

	access, err := codec.Issue(subject, TypeAccess, time.Hour)
	require.NoError(t, err)
	refresh, err := codec.Issue(subject, TypeRefresh, time.Hour)
	require.NoError(t, err)

	// Matching types resolve the subject.
	got, err := codec.Verify(access, TypeAccess)
	require.NoError(t, err)
	require.Equal(t, subject, got)

	// Cross-type presentation always fails.
	_, err = codec.Verify(access, TypeRefresh)
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = codec.Verify(refresh, TypeAccess)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNonceVariesPerIssue(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	subject := uuid.New()

	first, err := codec.Issue(subject, TypeAccess, time.Hour)
	require.NoError(t, err)
	second, err := codec.Issue(subject, TypeAccess, time.Hour)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestNewCodec_RejectsNonHMAC(t *testing.T) {
	t.Parallel()

	_, err := NewCodec("secret", "RS256", 10)
	require.Error(t, err)

	_, err = NewCodec("secret", "bogus", 10)
	require.Error(t, err)
}
