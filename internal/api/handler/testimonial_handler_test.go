package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fkedem/portfolio-backend/internal/core/domain"
	"github.com/fkedem/portfolio-backend/internal/core/ports"
)

type stubTestimonialService struct {
	submitFn         func(ctx context.Context, in ports.TestimonialSubmission) (*ports.SubmitResult, error)
	listApprovedFn   func(ctx context.Context, featuredOnly bool, limit int) ([]*domain.Testimonial, error)
	updateApprovalFn func(ctx context.Context, id int64, update ports.ApprovalUpdate) (*domain.Testimonial, error)
	deleteFn         func(ctx context.Context, id int64, actor string) error
}

func (s *stubTestimonialService) Submit(ctx context.Context, in ports.TestimonialSubmission) (*ports.SubmitResult, error) {
	return s.submitFn(ctx, in)
}

func (s *stubTestimonialService) ListApproved(ctx context.Context, featuredOnly bool, limit int) ([]*domain.Testimonial, error) {
	return s.listApprovedFn(ctx, featuredOnly, limit)
}

func (s *stubTestimonialService) List(ctx context.Context, filter ports.TestimonialListFilter) (*ports.TestimonialListResult, error) {
	return &ports.TestimonialListResult{}, nil
}

func (s *stubTestimonialService) UpdateApproval(ctx context.Context, id int64, update ports.ApprovalUpdate) (*domain.Testimonial, error) {
	return s.updateApprovalFn(ctx, id, update)
}

func (s *stubTestimonialService) Delete(ctx context.Context, id int64, actor string) error {
	return s.deleteFn(ctx, id, actor)
}

func (s *stubTestimonialService) Summary(ctx context.Context) (*domain.TestimonialSummary, error) {
	return &domain.TestimonialSummary{}, nil
}

func TestTestimonialHandler_ListPublic_HidesModerationState(t *testing.T) {
	e := echo.New()
	stub := &stubTestimonialService{
		listApprovedFn: func(_ context.Context, featuredOnly bool, limit int) ([]*domain.Testimonial, error) {
			if !featuredOnly {
				t.Fatalf("featured query param not parsed")
			}
			if limit != 10 {
				t.Fatalf("expected default limit 10, got %d", limit)
			}
			return []*domain.Testimonial{
				{ID: 1, ClientName: "Jane Smith", Rating: 5, Approved: true, Featured: true},
			}, nil
		},
	}
	h := NewTestimonialHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/testimonials?featured=true", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListPublic(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	items := resp["data"].([]any)
	item := items[0].(map[string]any)
	if _, present := item["approved"]; present {
		t.Fatalf("public response must not expose approval state: %v", item)
	}
	if _, present := item["updatedAt"]; present {
		t.Fatalf("public response must not expose updatedAt: %v", item)
	}
	if item["clientName"] != "Jane Smith" {
		t.Fatalf("unexpected item: %v", item)
	}
}

func TestTestimonialHandler_UpdateApproval_FeaturedOptional(t *testing.T) {
	e := echo.New()
	stub := &stubTestimonialService{
		updateApprovalFn: func(_ context.Context, id int64, update ports.ApprovalUpdate) (*domain.Testimonial, error) {
			if !update.Approved {
				t.Fatalf("approved not mapped")
			}
			if update.Featured != nil {
				t.Fatalf("absent featured field must stay nil, got %v", *update.Featured)
			}
			if update.Actor != "admin@x.com" {
				t.Fatalf("actor not recorded: %q", update.Actor)
			}
			return &domain.Testimonial{ID: id, Approved: true}, nil
		},
	}
	h := NewTestimonialHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/api/testimonials/3/approval", strings.NewReader(`{"approved":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")
	c.Set("email", "admin@x.com")

	if err := h.UpdateApproval(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTestimonialHandler_Delete_NotFoundPropagates(t *testing.T) {
	e := echo.New()
	stub := &stubTestimonialService{
		deleteFn: func(_ context.Context, id int64, actor string) error {
			return domain.ErrTestimonialNotFound
		},
	}
	h := NewTestimonialHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/testimonials/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")
	c.Set("email", "admin@x.com")

	if err := h.Delete(c); err != domain.ErrTestimonialNotFound {
		t.Fatalf("expected ErrTestimonialNotFound, got %v", err)
	}
}
