package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"komfovent_gateway/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = time.Hour

// AuthConfig configures token signing and registration.
type AuthConfig struct {
	SigningKey  string        `mapstructure:"signing_key"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	AllowSignUp bool          `mapstructure:"allow_sign_up"`
}

// Domain errors for auth flows.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrSignUpDisabled  = errors.New("sign-up is disabled")
	ErrNoSigningKey    = errors.New("no signing key configured")
)

// AuthService handles operator accounts and JWT issuance.
type AuthService struct {
	authRepo repository.Authorization
	cfg      AuthConfig
}

func NewAuthService(repo repository.Authorization, cfg AuthConfig) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	return &AuthService{authRepo: repo, cfg: cfg}
}

// SignUp hashes password and creates a new user. With sign-up disabled only
// the first account can be created.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (int, error) {
	if strings.TrimSpace(username) == "" {
		return 0, errors.New("username is empty")
	}
	if !s.cfg.AllowSignUp {
		n, err := s.authRepo.Count(ctx)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return 0, ErrSignUpDisabled
		}
	}
	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}
	return s.authRepo.Create(ctx, username, hash)
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// GenerateToken validates credentials and returns JWT
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	u, err := s.authRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidPassword
	}

	return s.issueToken(u.ID)
}

// ParseToken parses JWT and returns userID
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	if s.cfg.SigningKey == "" {
		return 0, ErrNoSigningKey
	}
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SigningKey), nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) issueToken(userID int) (string, error) {
	if s.cfg.SigningKey == "" {
		return "", ErrNoSigningKey
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString([]byte(s.cfg.SigningKey))
}
