package domain

import "errors"

var (
	// ErrValidation marks missing or malformed input. Callers wrap it with the
	// specific reason: fmt.Errorf("%w: invalid date format", ErrValidation).
	ErrValidation = errors.New("validation failed")

	ErrUserExists         = errors.New("username or email already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username/email or password")

	// ErrInvalidToken is returned for bearer tokens and encrypted identifiers
	// that fail verification.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidDownloadLink is returned when the encrypted user id of a
	// download link cannot be decoded.
	ErrInvalidDownloadLink = errors.New("invalid encrypted user_id")

	ErrArtifactNotFound = errors.New("report artifact not found")
)
