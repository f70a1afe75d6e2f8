package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fkedem/portfolio-backend/internal/core/domain"
	"github.com/fkedem/portfolio-backend/internal/core/ports"
)

type stubContactService struct {
	submitFn       func(ctx context.Context, in ports.ContactSubmission) (*ports.SubmitResult, error)
	listFn         func(ctx context.Context, filter ports.ContactListFilter) (*ports.ContactListResult, error)
	updateStatusFn func(ctx context.Context, id int64, status, actor string) (*domain.Contact, error)
}

func (s *stubContactService) Submit(ctx context.Context, in ports.ContactSubmission) (*ports.SubmitResult, error) {
	return s.submitFn(ctx, in)
}

func (s *stubContactService) List(ctx context.Context, filter ports.ContactListFilter) (*ports.ContactListResult, error) {
	return s.listFn(ctx, filter)
}

func (s *stubContactService) UpdateStatus(ctx context.Context, id int64, status, actor string) (*domain.Contact, error) {
	return s.updateStatusFn(ctx, id, status, actor)
}

func (s *stubContactService) Summary(ctx context.Context) (*domain.ContactSummary, error) {
	return &domain.ContactSummary{}, nil
}

func TestContactHandler_Submit_Success(t *testing.T) {
	e := echo.New()
	submitted := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubContactService{
		submitFn: func(_ context.Context, in ports.ContactSubmission) (*ports.SubmitResult, error) {
			if in.FirstName != "John" || in.Email != "john@x.com" {
				t.Fatalf("payload not mapped: %+v", in)
			}
			if in.Website != "" {
				t.Fatalf("honeypot should be empty, got %q", in.Website)
			}
			if in.Meta.UserAgent != "test-agent" {
				t.Fatalf("request meta not captured: %+v", in.Meta)
			}
			return &ports.SubmitResult{ID: 42, SubmittedAt: submitted}, nil
		},
	}
	h := NewContactHandler(stub)

	body := strings.NewReader(`{"firstName":"John","lastName":"Doe","email":"john@x.com","purpose":"web-development","message":"I need a new portfolio site built."}`)
	req := httptest.NewRequest(http.MethodPost, "/api/contact", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("User-Agent", "test-agent")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success envelope: %v", resp)
	}
	data, ok := resp["data"].(map[string]any)
	if !ok || data["id"] != float64(42) {
		t.Fatalf("unexpected data: %v", resp["data"])
	}
}

func TestContactHandler_Submit_HoneypotForwarded(t *testing.T) {
	e := echo.New()
	stub := &stubContactService{
		submitFn: func(_ context.Context, in ports.ContactSubmission) (*ports.SubmitResult, error) {
			if in.Website != "https://spam.example" {
				t.Fatalf("honeypot value not forwarded: %q", in.Website)
			}
			return nil, domain.ErrSpamDetected
		},
	}
	h := NewContactHandler(stub)

	body := strings.NewReader(`{"firstName":"John","website":"https://spam.example"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/contact", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// The sentinel flows back to the central error handler untouched.
	if err := h.Submit(c); err != domain.ErrSpamDetected {
		t.Fatalf("expected ErrSpamDetected, got %v", err)
	}
}

func TestContactHandler_List_QueryParams(t *testing.T) {
	e := echo.New()
	stub := &stubContactService{
		listFn: func(_ context.Context, filter ports.ContactListFilter) (*ports.ContactListResult, error) {
			if filter.Status != "unread" || filter.Page != 2 || filter.Limit != 5 {
				t.Fatalf("query params not mapped: %+v", filter)
			}
			return &ports.ContactListResult{Page: 2, Limit: 5, Total: 11, Pages: 3}, nil
		},
	}
	h := NewContactHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/contact?status=unread&page=2&limit=5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	pagination := resp["data"].(map[string]any)["pagination"].(map[string]any)
	if pagination["pages"] != float64(3) || pagination["total"] != float64(11) {
		t.Fatalf("unexpected pagination: %v", pagination)
	}
}

func TestContactHandler_UpdateStatus_RecordsActor(t *testing.T) {
	e := echo.New()
	stub := &stubContactService{
		updateStatusFn: func(_ context.Context, id int64, status, actor string) (*domain.Contact, error) {
			if id != 7 || status != "read" || actor != "admin@x.com" {
				t.Fatalf("unexpected args: %d %q %q", id, status, actor)
			}
			return &domain.Contact{ID: 7, Status: domain.ContactRead}, nil
		},
	}
	h := NewContactHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/api/contact/7/status", strings.NewReader(`{"status":"read"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	c.Set("email", "admin@x.com")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestContactHandler_UpdateStatus_MissingClaims(t *testing.T) {
	e := echo.New()
	h := NewContactHandler(&stubContactService{})

	req := httptest.NewRequest(http.MethodPut, "/api/contact/7/status", strings.NewReader(`{"status":"read"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	err := h.UpdateStatus(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
