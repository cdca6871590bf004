package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrUnauthorized is returned for a wrong operator password or a bad token
var ErrUnauthorized = errors.New("unauthorized")

const (
	operatorSubject = "operator"
	tokenTTL        = 24 * time.Hour
)

// Authenticator issues and checks operator tokens
type Authenticator struct {
	passwordHash []byte
	secret       []byte
	now          func() time.Time
}

// NewAuthenticator creates an authenticator for a bcrypt password hash and a JWT signing secret
func NewAuthenticator(passwordHash, secret string) *Authenticator {
	return &Authenticator{passwordHash: []byte(passwordHash), secret: []byte(secret), now: time.Now}
}

// Login checks the operator password and returns a signed token
func (a *Authenticator) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return "", ErrUnauthorized
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   operatorSubject,
		IssuedAt:  jwt.NewNumericDate(a.now()),
		ExpiresAt: jwt.NewNumericDate(a.now().Add(tokenTTL)),
	})
	tokenString, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// Verify validates a token issued by Login
func (a *Authenticator) Verify(tokenString string) error {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil || !token.Valid {
		return ErrUnauthorized
	}
	if claims.Subject != operatorSubject {
		return ErrUnauthorized
	}
	return nil
}
