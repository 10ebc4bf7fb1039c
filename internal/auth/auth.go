package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/akozhamseitov/weather-api/internal/config"
)

// Sentinel errors for the HTTP layer to inspect:
var (
	// returned when the username/password pair does not match the configured admin account
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// returned on any signature, format or expiration failure
	ErrInvalidToken = errors.New("could not validate credentials")

	// returned when a well-signed token carries no subject claim
	ErrMissingSubject = errors.New("token missing subject")
)

// Service issues and validates HS256 bearer tokens against a single
// configured credential pair. Tokens are self-contained; there is no
// server-side session state and no revocation.
type Service struct {
	secret   []byte
	username string
	password string
	tokenTTL time.Duration
	now      func() time.Time
}

// NewService wires token settings from configuration.
func NewService(cfg *config.Config) *Service {
	return &Service{
		secret:   []byte(cfg.JWTSecret),
		username: cfg.AdminUser,
		password: cfg.AdminPassword,
		tokenTTL: cfg.TokenTTL,
		now:      time.Now,
	}
}

// IssueToken checks the credential pair and mints a signed token with the
// username as subject, expiring after the configured TTL.
func (s *Service) IssueToken(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies signature and expiration and returns the subject.
func (s *Service) ValidateToken(tokenStr string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}
