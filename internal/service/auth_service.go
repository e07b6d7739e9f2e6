package service

import (
	"context"
	"errors"
	"time"

	"github.com/Geraghw1/defaero-deal-tracker/internal/config"
	"github.com/Geraghw1/defaero-deal-tracker/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is deliberately identical for unknown user and
// wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// CredentialStore resolves a username to its bcrypt password hash. Injected
// at construction so the service holds no global user state.
type CredentialStore interface {
	Lookup(username string) (passwordHash string, ok bool)
}

// StaticCredentials is a CredentialStore backed by a fixed map, typically
// parsed from the APP_USERS config entry.
type StaticCredentials map[string]string

func (s StaticCredentials) Lookup(username string) (string, bool) {
	hash, ok := s[username]
	return hash, ok
}

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	creds CredentialStore
	cfg   *config.Config
}

func NewAuthService(creds CredentialStore, cfg *config.Config) AuthService {
	return &authService{creds: creds, cfg: cfg}
}

func (s *authService) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	hash, ok := s.creds.Lookup(req.Username)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiry := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	claims := jwt.MapClaims{
		"username": req.Username,
		"exp":      time.Now().Add(expiry).Unix(),
		"iat":      time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User:        dto.UserResponse{Username: req.Username},
	}, nil
}
