package services

import (
	"testing"
	"time"

	"github.com/emrekzl/trackly-backend/internal/dto"
	"github.com/emrekzl/trackly-backend/internal/models"
	"github.com/emrekzl/trackly-backend/internal/token"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)

	resp, err := svc.Register(&dto.RegisterRequest{Email: "alice@local.host", Password: "alicepw"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, "alice@local.host", resp.User.Email)

	user, err := svc.Authenticate(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "alice@local.host", user.Email)
	require.NotEqual(t, "alicepw", user.Password)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)

	_, err := svc.Register(&dto.RegisterRequest{Email: "bob@local.host", Password: "bobpw"})
	require.NoError(t, err)

	// Same email always conflicts, regardless of password.
	_, err = svc.Register(&dto.RegisterRequest{Email: "bob@local.host", Password: "other"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)

	_, err := svc.Register(&dto.RegisterRequest{Email: "carol@local.host", Password: "carolpw"})
	require.NoError(t, err)

	resp, err := svc.Login(&dto.LoginRequest{Email: "carol@local.host", Password: "carolpw"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	// Wrong password and unknown email are indistinguishable.
	_, err = svc.Login(&dto.LoginRequest{Email: "carol@local.host", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@local.host", Password: "carolpw"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RotatesPair(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)

	resp, err := svc.Register(&dto.RegisterRequest{Email: "dave@local.host", Password: "davepw"})
	require.NoError(t, err)

	pair, err := svc.Refresh(resp.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, resp.AccessToken, pair.AccessToken)
	require.NotEqual(t, resp.RefreshToken, pair.RefreshToken)

	user, err := svc.Authenticate(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "dave@local.host", user.Email)
}

func TestTokenTypeConfusionFails(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)

	resp, err := svc.Register(&dto.RegisterRequest{Email: "erin@local.host", Password: "erinpw"})
	require.NoError(t, err)

	// Access tokens cannot refresh; refresh tokens cannot authenticate.
	_, err = svc.Refresh(resp.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.Authenticate(resp.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)

	_, err := svc.Authenticate("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)

	resp, err := svc.Register(&dto.RegisterRequest{Email: "frank@local.host", Password: "frankpw"})
	require.NoError(t, err)

	require.NoError(t, db.Where("email = ?", "frank@local.host").Delete(&models.User{}).Error)

	// The still-unexpired token no longer resolves to an identity.
	_, err = svc.Authenticate(resp.AccessToken)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthenticate_ExpiredAccessToken(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	cfg.JWTAccessExpiry = -1 * time.Second
	codec, err := token.NewCodec(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenNonceLength)
	require.NoError(t, err)
	svc := NewAuthService(db, cfg, codec)

	resp, err := svc.Register(&dto.RegisterRequest{Email: "gina@local.host", Password: "ginapw"})
	require.NoError(t, err)

	_, err = svc.Authenticate(resp.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}
