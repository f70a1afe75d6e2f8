package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fkedem/portfolio-backend/internal/core/domain"
)

func render(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_SpamLooksLikeSuccess(t *testing.T) {
	code, body := render(t, domain.ErrSpamDetected)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["success"] != true {
		t.Fatalf("spam response must be success-shaped: %v", body)
	}
	if body["message"] != "Thank you for your submission!" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	if _, present := body["errors"]; present {
		t.Fatalf("spam response must not carry errors")
	}
}

func TestErrorHandler_ValidationListsAllFields(t *testing.T) {
	code, body := render(t, &domain.ValidationError{Fields: []domain.FieldError{
		{Field: "firstName", Message: "First name must be at least 2 characters", Code: "too_small"},
		{Field: "email", Message: "Please provide a valid email address", Code: "invalid_string"},
	}})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if body["success"] != false {
		t.Fatalf("expected failure envelope: %v", body)
	}
	fieldErrs, ok := body["errors"].([]any)
	if !ok || len(fieldErrs) != 2 {
		t.Fatalf("expected 2 field errors, got %v", body["errors"])
	}
	first := fieldErrs[0].(map[string]any)
	if first["field"] != "firstName" || first["code"] != "too_small" {
		t.Fatalf("unexpected first field error: %v", first)
	}
}

func TestErrorHandler_DuplicateMessages(t *testing.T) {
	code, body := render(t, &domain.DuplicateError{Kind: "contact", ExistingID: 7, Window: 24 * time.Hour})
	if code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
	if body["message"] != "A similar message was already submitted recently. Please wait 24 hours before submitting again." {
		t.Fatalf("unexpected contact duplicate message: %v", body["message"])
	}

	_, body = render(t, &domain.DuplicateError{Kind: "testimonial", ExistingID: 3, Window: 30 * 24 * time.Hour})
	if body["message"] != "A testimonial from this name was already submitted recently. Please wait 30 days before submitting another." {
		t.Fatalf("unexpected testimonial duplicate message: %v", body["message"])
	}
}

func TestErrorHandler_InvalidStatus(t *testing.T) {
	code, body := render(t, domain.ErrInvalidStatus)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if body["message"] != "Invalid status. Must be: unread, read, or replied" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestErrorHandler_DomainErrorCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrContactNotFound, http.StatusNotFound},
		{domain.ErrTestimonialNotFound, http.StatusNotFound},
		{domain.ErrProjectNotFound, http.StatusNotFound},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if code, _ := render(t, tc.err); code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
	}
}

func TestErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	code, body := render(t, echo.NewHTTPError(http.StatusUnauthorized, "invalid token"))
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if body["message"] != "invalid token" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}
