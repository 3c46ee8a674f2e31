package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when pseudo or password is incorrect.
	// The same error covers both cases so login cannot be used to enumerate users.
	ErrInvalidCredentials = errors.New("incorrect pseudo or password")
	// ErrPseudoTaken is returned when the requested pseudo already belongs to a user.
	ErrPseudoTaken = errors.New("this pseudo is already taken")
	// ErrAccountBlocked is returned when the acting user has been blocked by an admin.
	ErrAccountBlocked = errors.New("your account has been blocked by an administrator")
	// ErrAdminRequired is returned when a non-admin calls an admin route.
	ErrAdminRequired = errors.New("access denied: administrator role required")
	// ErrUserNotFound is returned when a user record is missing.
	ErrUserNotFound = errors.New("user not found")
	// ErrDiveNotFound is returned when a dive is missing or owned by someone else.
	ErrDiveNotFound = errors.New("dive not found")
	// ErrSpeciesAlreadyAdded is returned when a species is already linked to the dive.
	ErrSpeciesAlreadyAdded = errors.New("this species is already added to this dive")
	// ErrWrongPassword is returned when a password confirmation fails.
	ErrWrongPassword = errors.New("incorrect password")
	// ErrSelfDelete is returned when an admin tries to delete their own account.
	ErrSelfDelete = errors.New("you cannot delete your own account")
	// ErrNothingToUpdate is returned when a profile update carries no fields.
	ErrNothingToUpdate = errors.New("no fields to update")
	// ErrLookupUnavailable is returned when the external species lookup fails.
	ErrLookupUnavailable = errors.New("species lookup service unavailable")
	// ErrFishNotFound is returned when the external catalog knows no such spec code.
	ErrFishNotFound = errors.New("fish not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. This is the single place
// where an error kind becomes a status code.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrWrongPassword):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "WRONG_PASSWORD")
	case errors.Is(err, ErrPseudoTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "PSEUDO_TAKEN")
	case errors.Is(err, ErrAccountBlocked):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCOUNT_BLOCKED")
	case errors.Is(err, ErrAdminRequired):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ADMIN_REQUIRED")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrDiveNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "DIVE_NOT_FOUND")
	case errors.Is(err, ErrFishNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "FISH_NOT_FOUND")
	case errors.Is(err, ErrSpeciesAlreadyAdded):
		return NewHTTPError(http.StatusConflict, err.Error(), "SPECIES_ALREADY_ADDED")
	case errors.Is(err, ErrSelfDelete):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_DELETE")
	case errors.Is(err, ErrNothingToUpdate):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NOTHING_TO_UPDATE")
	case errors.Is(err, ErrLookupUnavailable):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "LOOKUP_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
