package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fkedem/portfolio-backend/internal/core/domain"
)

// envelope is the canonical response body for all API replies.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

const (
	msgSubmissionThanks = "Thank you for your submission!"
	msgContactDuplicate = "A similar message was already submitted recently. Please wait 24 hours before submitting again."
	msgTestimonialDup   = "A testimonial from this name was already submitted recently. Please wait 30 days before submitting another."
	msgInvalidStatus    = "Invalid status. Must be: unread, read, or replied"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders validation failures with the full ordered field-error list.
//   - Renders honeypot trips as a success-shaped 200 so bots learn nothing.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, envelope) {
	// Honeypot trip: indistinguishable from success on the wire.
	if errors.Is(err, domain.ErrSpamDetected) {
		return http.StatusOK, envelope{Success: true, Message: msgSubmissionThanks}
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, envelope{
			Success: false,
			Message: "Validation failed",
			Errors:  verr.Fields,
		}
	}

	var dup *domain.DuplicateError
	if errors.As(err, &dup) {
		msg := msgContactDuplicate
		if dup.Kind == "testimonial" {
			msg = msgTestimonialDup
		}
		return http.StatusTooManyRequests, envelope{Success: false, Message: msg}
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, envelope{Success: false, Message: fmt.Sprintf("%v", he.Message)}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, envelope{Success: false, Message: msgInvalidStatus}
	case errors.Is(err, domain.ErrContactNotFound):
		return http.StatusNotFound, envelope{Success: false, Message: "Contact message not found"}
	case errors.Is(err, domain.ErrTestimonialNotFound):
		return http.StatusNotFound, envelope{Success: false, Message: "Testimonial not found"}
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound, envelope{Success: false, Message: "Project not found"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, envelope{Success: false, Message: "Invalid credentials"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, envelope{Success: false, Message: "User not found"}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, envelope{Success: false, Message: "User already exists"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, envelope{Success: false, Message: "Internal server error"}
}
