package ports

import (
	"context"
	"time"

	"github.com/fkedem/portfolio-backend/internal/core/domain"
)

// TestimonialListFilter carries query parameters for the admin testimonial
// listing. Approved is a tri-state: nil means no filter.
type TestimonialListFilter struct {
	Approved *bool
	Page     int
	Limit    int
}

// TestimonialRepository defines persistence operations for testimonials.
type TestimonialRepository interface {
	Create(ctx context.Context, t *domain.Testimonial) error
	// FindRecentByClientName returns a prior submission under the same client
	// name created at or after since, or domain.ErrTestimonialNotFound.
	// Message similarity is deliberately not compared for testimonials.
	FindRecentByClientName(ctx context.Context, clientName string, since time.Time) (*domain.Testimonial, error)
	// ListApproved returns approved testimonials only, featured first then
	// newest first, capped at limit. Unapproved records never appear here.
	ListApproved(ctx context.Context, featuredOnly bool, limit int) ([]*domain.Testimonial, error)
	List(ctx context.Context, filter TestimonialListFilter) ([]*domain.Testimonial, int64, error)
	// UpdateApproval sets approved, and featured only when non-nil, refreshing
	// updated_at. Returns the updated record.
	UpdateApproval(ctx context.Context, id int64, approved bool, featured *bool) (*domain.Testimonial, error)
	Delete(ctx context.Context, id int64) error
	Summary(ctx context.Context) (*domain.TestimonialSummary, error)
}
