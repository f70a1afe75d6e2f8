package ports

import (
	"context"
	"time"

	"github.com/fkedem/portfolio-backend/internal/core/domain"
)

// RequestMeta carries requester metadata attached to operational log and
// audit entries. It never influences the outcome of a submission.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// ContactSubmission is the raw contact-form payload handed to the intake
// pipeline. Website is the honeypot field: hidden from real users, so any
// non-empty trimmed value marks the submission as spam.
type ContactSubmission struct {
	FirstName string `form:"firstName" validate:"required,min=2,max=50,alpha_space"`
	LastName  string `form:"lastName"  validate:"required,min=2,max=50,alpha_space"`
	Email     string `form:"email"     validate:"required,email,max=100"`
	Purpose   string `form:"purpose"   validate:"required,purpose"`
	Message   string `form:"message"   validate:"required,min=10,max=2000"`
	Website   string `form:"-"`
	Meta      RequestMeta
}

// SubmitResult is returned on the success path of the intake pipeline.
type SubmitResult struct {
	ID          int64
	SubmittedAt time.Time
}

// ContactService defines use-case operations for contact messages.
type ContactService interface {
	// Submit runs the intake pipeline: honeypot, validation, duplicate guard,
	// then a single persistence write. Rejection paths perform no write.
	Submit(ctx context.Context, in ContactSubmission) (*SubmitResult, error)
	List(ctx context.Context, filter ContactListFilter) (*ContactListResult, error)
	// UpdateStatus transitions the moderation state. Values outside
	// {unread, read, replied} are rejected before any store mutation.
	UpdateStatus(ctx context.Context, id int64, status string, actor string) (*domain.Contact, error)
	Summary(ctx context.Context) (*domain.ContactSummary, error)
}

// ContactListResult is a page of contacts with pagination metadata.
type ContactListResult struct {
	Items []*domain.Contact
	Total int64
	Page  int
	Limit int
	Pages int
}
