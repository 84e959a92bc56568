package auth

import (
	"errors"

	"innerventory/internal/handlers/httperr"
)

// ErrGenAccessToken is returned when we cannot create a JWT.
var ErrGenAccessToken = errors.New("failed to generate access token")

// ErrUnsupportedJWTAlg is returned when the configured signing algorithm is unknown.
var ErrUnsupportedJWTAlg = errors.New("unsupported JWT algorithm")

// ErrHashPassword is returned when the bcrypt primitive itself fails.
// A plain credential mismatch is never reported through this error.
var ErrHashPassword = errors.New("failed to process password")

// ErrInvalidCredentials masks both unknown-email and wrong-password cases.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidTokenMissingUserID is returned for tokens without a user_id claim.
var ErrInvalidTokenMissingUserID = errors.New("invalid token: missing user_id claim")

// ErrInvalidTokenMissingEmail is returned for tokens without an email claim.
var ErrInvalidTokenMissingEmail = errors.New("invalid token: missing email claim")

// ErrUnauthorized wraps a middleware failure into the standard 401 envelope.
func ErrUnauthorized(err error) error {
	return httperr.Fail(httperr.E{
		Status:  401,
		Message: "Unauthorized: " + err.Error(),
	})
}
