package errors

import "net/http"

// Authentication-specific error types
const (
	ErrorTypeInvalidCredentials  ErrorType = "invalid_credentials"
	ErrorTypeTokenInvalid        ErrorType = "token_invalid"
	ErrorTypeSpotifyAuthRequired ErrorType = "spotify_auth_required"
)

// NewInvalidCredentialsError creates an error for invalid login credentials.
// The message does not reveal whether the email or password was wrong.
func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidCredentials,
		Message: "Invalid email or password",
		Code:    http.StatusUnauthorized,
	}
}

// NewTokenInvalidError creates an error for a missing or unverifiable bearer token
func NewTokenInvalidError(details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    ErrorTypeTokenInvalid,
		Message: "Invalid or expired token",
		Code:    http.StatusUnauthorized,
		Details: detail,
	}
}

// NewSpotifyAuthRequiredError creates an error for a user whose Spotify link
// is missing or can no longer be refreshed. Callers surface this as an
// authentication-required response rather than a generic server fault.
func NewSpotifyAuthRequiredError(details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    ErrorTypeSpotifyAuthRequired,
		Message: "Spotify authorization required",
		Code:    http.StatusUnauthorized,
		Details: detail,
	}
}

// IsSpotifyAuthRequired checks if the error requires the user to re-link Spotify
func IsSpotifyAuthRequired(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeSpotifyAuthRequired
}
