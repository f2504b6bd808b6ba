package services

import (
	"errors"
	"fmt"

	"github.com/emrekzl/trackly-backend/internal/config"
	"github.com/emrekzl/trackly-backend/internal/dto"
	"github.com/emrekzl/trackly-backend/internal/models"
	"github.com/emrekzl/trackly-backend/internal/password"
	"github.com/emrekzl/trackly-backend/internal/token"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials deliberately does not distinguish an unknown
	// email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = token.ErrInvalidToken
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	db    *gorm.DB
	cfg   *config.Config
	codec *token.Codec
}

func NewAuthService(db *gorm.DB, cfg *config.Config, codec *token.Codec) *AuthService {
	return &AuthService{db: db, cfg: cfg, codec: codec}
}

// Register creates a user with a hashed password and issues the initial
// token pair. The email must not already exist (exact, case-sensitive match).
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: hash,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.authResponse(&user)
}

// Login verifies the credentials and issues a fresh token pair.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(&user)
}

// Refresh exchanges a valid refresh token for a brand-new pair. Nothing is
// persisted server-side, so the previous refresh token stays decodable until
// it expires.
func (s *AuthService) Refresh(refreshToken string) (*dto.TokenPair, error) {
	subject, err := s.codec.Verify(refreshToken, token.TypeRefresh)
	if err != nil {
		return nil, err
	}
	return s.issueTokenPair(subject)
}

// Authenticate resolves an access token to its user. Codec failures and
// wrong-type tokens surface as ErrInvalidToken; a subject that no longer
// resolves to a row (deleted account) as ErrUserNotFound.
func (s *AuthService) Authenticate(accessToken string) (*models.User, error) {
	subject, err := s.codec.Verify(accessToken, token.TypeAccess)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", subject).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *AuthService) issueTokenPair(subject uuid.UUID) (*dto.TokenPair, error) {
	accessToken, err := s.codec.Issue(subject, token.TypeAccess, s.cfg.JWTAccessExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.codec.Issue(subject, token.TypeRefresh, s.cfg.JWTRefreshExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return &dto.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) authResponse(user *models.User) (*dto.AuthResponse, error) {
	pair, err := s.issueTokenPair(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User: dto.UserResponse{
			ID:    user.ID,
			Email: user.Email,
		},
	}, nil
}
