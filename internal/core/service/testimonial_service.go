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

type TestimonialService struct {
	repo   ports.TestimonialRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewTestimonialService(repo ports.TestimonialRepository, audit ports.AuditRecorder, logger zerolog.Logger) *TestimonialService {
	return &TestimonialService{repo: repo, audit: audit, logger: logger}
}

// Submit runs the same intake pipeline as contacts, sanitization first. The
// duplicate guard for testimonials matches on client name alone within a
// 30-day window; message similarity is deliberately not compared.
func (s *TestimonialService) Submit(ctx context.Context, in ports.TestimonialSubmission) (*ports.SubmitResult, error) {
	normalizeTestimonial(&in)
	if honeypotTripped(in.Website) {
		s.logger.Warn().
			Str("honeypot", in.Website).
			Str("ip", in.Meta.IP).
			Str("user_agent", in.Meta.UserAgent).
			Msg("spam attempt detected on testimonial form")
		metrics.SubmissionsTotal.WithLabelValues("testimonial", "spam").Inc()
		s.audit.Record(domain.AuditEvent{
			Kind:      "testimonial",
			Action:    domain.AuditSpamDetected,
			Detail:    in.Meta.IP,
			Timestamp: time.Now().UTC(),
		})
		return nil, domain.ErrSpamDetected
	}

	if verr := runValidation(in); verr != nil {
		s.logger.Debug().Int("fields", len(verr.Fields)).Msg("testimonial validation failed")
		metrics.SubmissionsTotal.WithLabelValues("testimonial", "invalid").Inc()
		return nil, verr
	}

	since := time.Now().UTC().Add(-testimonialDuplicateWindow)
	existing, err := s.repo.FindRecentByClientName(ctx, in.ClientName, since)
	if err != nil && !errors.Is(err, domain.ErrTestimonialNotFound) {
		s.logger.Error().Err(err).Msg("testimonial duplicate check failed")
		return nil, err
	}
	if existing != nil {
		s.logger.Warn().
			Str("client_name", in.ClientName).
			Str("ip", in.Meta.IP).
			Int64("existing_id", existing.ID).
			Msg("duplicate testimonial submission attempt")
		metrics.SubmissionsTotal.WithLabelValues("testimonial", "duplicate").Inc()
		s.audit.Record(domain.AuditEvent{
			Kind:         "testimonial",
			Action:       domain.AuditDuplicateRejected,
			SubmissionID: existing.ID,
			Detail:       in.Meta.IP,
			Timestamp:    time.Now().UTC(),
		})
		return nil, &domain.DuplicateError{Kind: "testimonial", ExistingID: existing.ID, Window: testimonialDuplicateWindow}
	}

	now := time.Now().UTC()
	testimonial := &domain.Testimonial{
		ClientName:  in.ClientName,
		Company:     in.Company,
		Role:        in.Role,
		ProjectType: in.ProjectType,
		Rating:      int(in.Rating),
		Testimonial: in.Testimonial,
		Approved:    false, // requires admin approval
		Featured:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, testimonial); err != nil {
		s.logger.Error().Err(err).Msg("failed to create testimonial")
		return nil, err
	}

	s.logger.Info().
		Int64("id", testimonial.ID).
		Str("client_name", testimonial.ClientName).
		Int("rating", testimonial.Rating).
		Str("ip", in.Meta.IP).
		Msg("new testimonial submission")
	metrics.SubmissionsTotal.WithLabelValues("testimonial", "accepted").Inc()
	s.audit.Record(domain.AuditEvent{
		Kind:         "testimonial",
		Action:       domain.AuditSubmissionAccepted,
		SubmissionID: testimonial.ID,
		Detail:       in.Meta.IP,
		Timestamp:    now,
	})

	return &ports.SubmitResult{ID: testimonial.ID, SubmittedAt: testimonial.CreatedAt}, nil
}

func normalizeTestimonial(in *ports.TestimonialSubmission) {
	in.ClientName = sanitizeField(in.ClientName)
	in.Company = sanitizeField(in.Company)
	in.Role = sanitizeField(in.Role)
	in.ProjectType = sanitizeField(in.ProjectType)
	in.Testimonial = sanitizeField(in.Testimonial)
	in.Website = sanitizeField(in.Website)
}

// ListApproved is the public listing. The repository only ever returns
// approved records here, so an unapproved testimonial stays invisible even
// when featured.
func (s *TestimonialService) ListApproved(ctx context.Context, featuredOnly bool, limit int) ([]*domain.Testimonial, error) {
	if limit <= 0 {
		limit = 10
	}
	items, err := s.repo.ListApproved(ctx, featuredOnly, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list approved testimonials")
		return nil, err
	}
	return items, nil
}

func (s *TestimonialService) List(ctx context.Context, filter ports.TestimonialListFilter) (*ports.TestimonialListResult, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list testimonials")
		return nil, err
	}

	return &ports.TestimonialListResult{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
		Pages: totalPages(total, filter.Limit),
	}, nil
}

// UpdateApproval toggles the approved flag and, only when present in the
// request, the featured flag. The flags are independent: featuring an
// unapproved testimonial is allowed and simply has no public effect until it
// is approved.
func (s *TestimonialService) UpdateApproval(ctx context.Context, id int64, update ports.ApprovalUpdate) (*domain.Testimonial, error) {
	testimonial, err := s.repo.UpdateApproval(ctx, id, update.Approved, update.Featured)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("id", testimonial.ID).
		Bool("approved", testimonial.Approved).
		Bool("featured", testimonial.Featured).
		Str("updated_by", update.Actor).
		Msg("testimonial approval updated")
	metrics.ModerationUpdatesTotal.WithLabelValues("testimonial").Inc()
	s.audit.Record(domain.AuditEvent{
		Kind:         "testimonial",
		Action:       domain.AuditApprovalUpdated,
		SubmissionID: testimonial.ID,
		Actor:        update.Actor,
		Timestamp:    time.Now().UTC(),
	})

	return testimonial, nil
}

func (s *TestimonialService) Delete(ctx context.Context, id int64, actor string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("id", id).Str("deleted_by", actor).Msg("testimonial deleted")
	s.audit.Record(domain.AuditEvent{
		Kind:         "testimonial",
		Action:       domain.AuditRecordDeleted,
		SubmissionID: id,
		Actor:        actor,
		Timestamp:    time.Now().UTC(),
	})
	return nil
}

func (s *TestimonialService) Summary(ctx context.Context) (*domain.TestimonialSummary, error) {
	summary, err := s.repo.Summary(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch testimonial summary")
		return nil, err
	}
	return summary, nil
}
