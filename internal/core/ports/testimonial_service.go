package ports

import (
	"context"

	"github.com/fkedem/portfolio-backend/internal/core/domain"
)

// TestimonialSubmission is the raw testimonial payload handed to the intake
// pipeline. Website is the honeypot field. Rating is bound as float64 so a
// fractional value produces a field error naming rating instead of a bind
// failure.
type TestimonialSubmission struct {
	ClientName  string  `form:"clientName"  validate:"required,min=2,max=100,person_name"`
	Company     string  `form:"company"     validate:"omitempty,max=100"`
	Role        string  `form:"role"        validate:"required,min=2,max=100"`
	ProjectType string  `form:"projectType" validate:"required,project_type"`
	Rating      float64 `form:"rating"      validate:"required,whole,min=1,max=5"`
	Testimonial string  `form:"testimonial" validate:"required,min=20,max=1000"`
	Website     string  `form:"-"`
	Meta        RequestMeta
}

// ApprovalUpdate carries the admin moderation payload for a testimonial.
// Featured is applied only when explicitly present in the request.
type ApprovalUpdate struct {
	Approved bool
	Featured *bool
	Actor    string
}

// TestimonialService defines use-case operations for testimonials.
type TestimonialService interface {
	Submit(ctx context.Context, in TestimonialSubmission) (*SubmitResult, error)
	// ListApproved is the public listing: approved records only, featured
	// first, newest first.
	ListApproved(ctx context.Context, featuredOnly bool, limit int) ([]*domain.Testimonial, error)
	List(ctx context.Context, filter TestimonialListFilter) (*TestimonialListResult, error)
	UpdateApproval(ctx context.Context, id int64, update ApprovalUpdate) (*domain.Testimonial, error)
	Delete(ctx context.Context, id int64, actor string) error
	Summary(ctx context.Context) (*domain.TestimonialSummary, error)
}

// TestimonialListResult is a page of testimonials with pagination metadata.
type TestimonialListResult struct {
	Items []*domain.Testimonial
	Total int64
	Page  int
	Limit int
	Pages int
}
