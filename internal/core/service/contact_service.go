package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/fkedem/portfolio-backend/internal/api/metrics"
	"github.com/fkedem/portfolio-backend/internal/core/domain"
	"github.com/fkedem/portfolio-backend/internal/core/ports"
)

type ContactService struct {
	repo   ports.ContactRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewContactService(repo ports.ContactRepository, audit ports.AuditRecorder, logger zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, audit: audit, logger: logger}
}

// Submit runs the intake pipeline in strict order: sanitization, honeypot,
// validation, duplicate guard, persistence. The ordering matters: the spam
// check runs before validation so bot traffic never sees field-level error
// detail, and validation runs before the duplicate guard so malformed input
// costs no store query. Exactly one write happens on the success path, none
// on any rejection path.
func (s *ContactService) Submit(ctx context.Context, in ports.ContactSubmission) (*ports.SubmitResult, error) {
	normalizeContact(&in)
	if honeypotTripped(in.Website) {
		s.logger.Warn().
			Str("honeypot", in.Website).
			Str("ip", in.Meta.IP).
			Str("user_agent", in.Meta.UserAgent).
			Msg("spam attempt detected on contact form")
		metrics.SubmissionsTotal.WithLabelValues("contact", "spam").Inc()
		s.audit.Record(domain.AuditEvent{
			Kind:      "contact",
			Action:    domain.AuditSpamDetected,
			Detail:    in.Meta.IP,
			Timestamp: time.Now().UTC(),
		})
		return nil, domain.ErrSpamDetected
	}

	if verr := runValidation(in); verr != nil {
		// Field errors are too frequent to log individually above debug.
		s.logger.Debug().Int("fields", len(verr.Fields)).Msg("contact validation failed")
		metrics.SubmissionsTotal.WithLabelValues("contact", "invalid").Inc()
		return nil, verr
	}

	since := time.Now().UTC().Add(-contactDuplicateWindow)
	existing, err := s.repo.FindRecent(ctx, in.Email, since, messagePrefix(in.Message))
	if err != nil && !errors.Is(err, domain.ErrContactNotFound) {
		s.logger.Error().Err(err).Msg("contact duplicate check failed")
		return nil, err
	}
	if existing != nil {
		s.logger.Warn().
			Str("email", in.Email).
			Str("ip", in.Meta.IP).
			Int64("existing_id", existing.ID).
			Msg("duplicate contact submission attempt")
		metrics.SubmissionsTotal.WithLabelValues("contact", "duplicate").Inc()
		s.audit.Record(domain.AuditEvent{
			Kind:         "contact",
			Action:       domain.AuditDuplicateRejected,
			SubmissionID: existing.ID,
			Detail:       in.Meta.IP,
			Timestamp:    time.Now().UTC(),
		})
		return nil, &domain.DuplicateError{Kind: "contact", ExistingID: existing.ID, Window: contactDuplicateWindow}
	}

	now := time.Now().UTC()
	contact := &domain.Contact{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Purpose:   in.Purpose,
		Message:   in.Message,
		Status:    domain.ContactUnread,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		s.logger.Error().Err(err).Msg("failed to create contact")
		return nil, err
	}

	s.logger.Info().
		Int64("id", contact.ID).
		Str("email", contact.Email).
		Str("purpose", contact.Purpose).
		Str("ip", in.Meta.IP).
		Msg("new contact submission")
	metrics.SubmissionsTotal.WithLabelValues("contact", "accepted").Inc()
	s.audit.Record(domain.AuditEvent{
		Kind:         "contact",
		Action:       domain.AuditSubmissionAccepted,
		SubmissionID: contact.ID,
		Detail:       in.Meta.IP,
		Timestamp:    now,
	})

	return &ports.SubmitResult{ID: contact.ID, SubmittedAt: contact.CreatedAt}, nil
}

// normalizeContact strips markup from and trims all user-supplied strings,
// the honeypot included. Re-normalizing a normalized submission yields the
// same record (idempotent normalization).
func normalizeContact(in *ports.ContactSubmission) {
	in.FirstName = sanitizeField(in.FirstName)
	in.LastName = sanitizeField(in.LastName)
	in.Email = sanitizeField(in.Email)
	in.Purpose = sanitizeField(in.Purpose)
	in.Message = sanitizeField(in.Message)
	in.Website = sanitizeField(in.Website)
}

func (s *ContactService) List(ctx context.Context, filter ports.ContactListFilter) (*ports.ContactListResult, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list contacts")
		return nil, err
	}

	return &ports.ContactListResult{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
		Pages: totalPages(total, filter.Limit),
	}, nil
}

// UpdateStatus sets the moderation state. Any of the three statuses may
// replace any other; values outside the set are rejected before the store is
// touched.
func (s *ContactService) UpdateStatus(ctx context.Context, id int64, status string, actor string) (*domain.Contact, error) {
	next := domain.ContactStatus(status)
	if !next.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	contact, err := s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("id", contact.ID).
		Str("status", status).
		Str("updated_by", actor).
		Msg("contact status updated")
	metrics.ModerationUpdatesTotal.WithLabelValues("contact").Inc()
	s.audit.Record(domain.AuditEvent{
		Kind:         "contact",
		Action:       domain.AuditStatusUpdated,
		SubmissionID: contact.ID,
		Actor:        actor,
		Detail:       status,
		Timestamp:    time.Now().UTC(),
	})

	return contact, nil
}

func (s *ContactService) Summary(ctx context.Context) (*domain.ContactSummary, error) {
	summary, err := s.repo.Summary(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch contact summary")
		return nil, err
	}
	return summary, nil
}

// totalPages computes ceil(total/limit) for pagination metadata.
func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
