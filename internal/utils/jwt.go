package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired is returned by CheckTokenStatus for a token whose exp claim
// is in the past.
var ErrTokenExpired = errors.New("session token expired")

// CheckTokenStatus inspects the session JWT's expiry claim without verifying
// the signature. The server remains the sole validator of the token; this
// check only lets the client prompt for re-login before burning a round trip
// on a request that would come back 401.
//
// Returns the expiry time, ErrTokenExpired if it has passed, or another error
// if the token cannot be parsed or carries no exp claim.
func CheckTokenStatus(tokenString string, now time.Time) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return time.Time{}, errors.New("invalid token claims")
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if expiry == nil {
		return time.Time{}, errors.New("token has no expiry claim")
	}

	if now.After(expiry.Time) {
		return expiry.Time, ErrTokenExpired
	}

	return expiry.Time, nil
}
