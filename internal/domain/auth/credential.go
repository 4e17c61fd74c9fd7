package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CredentialExpiry returns the exp claim of a JWT credential when present. The
// signature is not verified; the API remains the authority on validity.
func CredentialExpiry(credential string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// CredentialExpired reports whether credential carries an exp claim at or before
// now. Opaque or unparsable credentials are never considered expired.
func CredentialExpired(credential string, now time.Time) bool {
	exp, ok := CredentialExpiry(credential)
	return ok && !now.Before(exp)
}
