package usecase

import (
	"context"
	"crypto/subtle"
	"errors"

	"portfolio/internal/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthUsecase interface {
	Login(ctx context.Context, in LoginInput) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

// Auth authenticates the single inbox administrator configured through the
// environment.
type Auth struct {
	username     string
	passwordHash []byte
	jwt          jwt.Service
}

func NewAuthUsecase(username, passwordHash string, jwtSvc jwt.Service) *Auth {
	return &Auth{username: username, passwordHash: []byte(passwordHash), jwt: jwtSvc}
}

func (u *Auth) Login(ctx context.Context, in LoginInput) (TokenPair, error) {
	if in.Username == "" || in.Password == "" {
		return TokenPair{}, ErrInvalidInput
	}

	userOK := subtle.ConstantTimeCompare([]byte(in.Username), []byte(u.username)) == 1
	// The hash is checked even for an unknown username so both paths cost
	// the same.
	pwErr := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(in.Password))
	if !userOK || pwErr != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	return u.issue(u.username)
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenPair{}, ErrRefreshTokenExpired
		}
		return TokenPair{}, ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) || claims.Subject != u.username {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	return u.issue(claims.Subject)
}

func (u *Auth) issue(subject string) (TokenPair, error) {
	access, err := u.jwt.GenerateAccessToken(subject)
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(subject)
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
