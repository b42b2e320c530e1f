package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiresAt reads the exp claim of a JWT for display. The signature is not
// checked; the backend remains the authority on whether a token is valid.
// Tokens that are not JWTs, or carry no exp, report false.
func ExpiresAt(token string) (time.Time, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether token carries an exp claim that lies before now.
func Expired(token string, now time.Time) bool {
	exp, ok := ExpiresAt(token)
	return ok && !now.Before(exp)
}
