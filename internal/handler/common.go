package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"divelog/internal/auth"
	apperrors "divelog/internal/errors"
)

// respondError is the single translator from an error kind to an HTTP
// response. Handlers never map status codes themselves.
func respondError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// HTTPErrorHandler renders every error echo sees, including bind and
// validation failures and the JWT middleware's rejections, in the same
// {error, code} shape respondError uses.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		resp := apperrors.ErrorResponse{
			Error: fmt.Sprintf("%v", echoErr.Message),
			Code:  codeForStatus(echoErr.Code),
		}
		_ = c.JSON(echoErr.Code, resp)
		return
	}
	httpErr := apperrors.MapErrorToHTTP(err)
	_ = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return "INTERNAL_ERROR"
	}
}

// callerID extracts the authenticated user's id from the verified claims.
func callerID(c echo.Context) (uuid.UUID, error) {
	claims, ok := auth.FromContext(c)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return id, nil
}

// parseDate accepts a bare ISO date or a full RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
