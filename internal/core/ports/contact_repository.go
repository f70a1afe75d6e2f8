package ports

import (
	"context"
	"time"

	"github.com/fkedem/portfolio-backend/internal/core/domain"
)

// ContactListFilter carries query parameters for the admin contact listing.
type ContactListFilter struct {
	Status string // optional: filter by moderation status
	Page   int    // 1-based
	Limit  int    // rows per page
}

// ContactRepository defines persistence operations for contact messages.
type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) error
	// FindRecent returns a prior submission from the same email created at or
	// after since whose stored message contains messagePrefix, or
	// domain.ErrContactNotFound when no such record exists. It backs the
	// duplicate guard; the prefix match is intentionally approximate.
	FindRecent(ctx context.Context, email string, since time.Time, messagePrefix string) (*domain.Contact, error)
	// List returns a page of contacts matching filter, newest first, plus the
	// total count.
	List(ctx context.Context, filter ContactListFilter) ([]*domain.Contact, int64, error)
	// UpdateStatus sets the moderation status and refreshes updated_at,
	// returning the updated record.
	UpdateStatus(ctx context.Context, id int64, status domain.ContactStatus) (*domain.Contact, error)
	Summary(ctx context.Context) (*domain.ContactSummary, error)
}
