package errors

import (
	"errors"
	"net/http"
)

// Error messages double as the user-facing `msg` field, so they are full
// sentences. Invalid-credentials deliberately covers both unknown email and
// wrong password, and every Google verification failure collapses into
// ErrInvalidGoogleToken; callers must not reveal which check failed.
var (
	// ErrEmailPasswordRequired is returned when email or password is missing.
	ErrEmailPasswordRequired = errors.New("Email and password required.")
	// ErrDuplicateAccount is returned when registering an email that already has an account.
	ErrDuplicateAccount = errors.New("User already exists.")
	// ErrInvalidCredentials is returned for unknown email or wrong password alike.
	ErrInvalidCredentials = errors.New("Invalid credentials.")
	// ErrGoogleAccountOnly is returned on local login against a Google-provisioned account.
	ErrGoogleAccountOnly = errors.New("Use Google login for this account.")
	// ErrInvalidGoogleToken is returned for any Google ID token verification failure.
	ErrInvalidGoogleToken = errors.New("Invalid Google token.")
	// ErrInvalidToken is returned when a bearer token fails verification.
	ErrInvalidToken = errors.New("Invalid token.")
	// ErrProductNotFound is returned when a product id does not exist.
	ErrProductNotFound = errors.New("Product not found.")
)

// ErrorResponse is the wire shape of every error body. Clients display Msg
// verbatim and must not rely on any other field being present.
type ErrorResponse struct {
	Msg string `json:"msg"`
}

// HTTPError pairs a status code with a user-facing message.
type HTTPError struct {
	StatusCode int
	Msg        string
}

func (e *HTTPError) Error() string {
	return e.Msg
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, msg string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Msg: msg}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Msg: e.Msg}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything outside the
// taxonomy becomes a generic 500 with no internal detail.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailPasswordRequired),
		errors.Is(err, ErrDuplicateAccount),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrGoogleAccountOnly),
		errors.Is(err, ErrInvalidGoogleToken):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrProductNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "Server error.")
	}
}
