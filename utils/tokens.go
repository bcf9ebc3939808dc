package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EmailTokenTTL is how long a verification link stays valid.
const EmailTokenTTL = time.Hour

// emailTokenAudience binds tokens to the email-confirmation context so they
// cannot be replayed against any other signed-token use of the same key.
const emailTokenAudience = "email-confirm"

var (
	ErrTokenExpired = errors.New("verification token expired")
	ErrTokenInvalid = errors.New("verification token invalid")
)

// IssueEmailToken produces an opaque signed string embedding the email address
// and an expiry of now + ttl. Tokens are stateless: nothing is persisted.
func IssueEmailToken(email string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   email,
		Audience:  jwt.ClaimStrings{emailTokenAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return token.SignedString(secret)
}

// ValidateEmailToken returns the embedded email address, ErrTokenExpired when
// the token has outlived its window, or ErrTokenInvalid for any tampering or
// structural problem.
func ValidateEmailToken(tokenString string, secret []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithAudience(emailTokenAudience), jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
