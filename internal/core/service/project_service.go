package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fkedem/portfolio-backend/internal/api/metrics"
	"github.com/fkedem/portfolio-backend/internal/core/domain"
	"github.com/fkedem/portfolio-backend/internal/core/ports"
)

type ProjectService struct {
	repo   ports.ProjectRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, audit ports.AuditRecorder, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, audit: audit, logger: logger}
}

func (s *ProjectService) Create(ctx context.Context, in ports.ProjectInput, actor string) (*domain.Project, error) {
	normalizeProject(&in)
	if verr := runValidation(in); verr != nil {
		return nil, verr
	}

	now := time.Now().UTC()
	project := &domain.Project{
		Title:        in.Title,
		Subtitle:     in.Subtitle,
		Description:  in.Description,
		Features:     in.Features,
		TechStack:    in.TechStack,
		Technologies: in.Technologies,
		ImageURL:     in.ImageURL,
		LiveURL:      in.LiveURL,
		GitHubURL:    in.GitHubURL,
		Visible:      in.Visible,
		Featured:     in.Featured,
		Order:        in.Order,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, project); err != nil {
		s.logger.Error().Err(err).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().
		Int64("id", project.ID).
		Str("title", project.Title).
		Str("created_by", actor).
		Msg("project created")
	metrics.ProjectMutationsTotal.WithLabelValues("create").Inc()
	s.audit.Record(domain.AuditEvent{
		Kind:         "project",
		Action:       domain.AuditRecordCreated,
		SubmissionID: project.ID,
		Actor:        actor,
		Timestamp:    now,
	})

	return project, nil
}

func normalizeProject(in *ports.ProjectInput) {
	in.Title = strings.TrimSpace(in.Title)
	in.Subtitle = strings.TrimSpace(in.Subtitle)
	in.Description = strings.TrimSpace(in.Description)
}

// GetVisible serves the public detail endpoint. Hidden projects are reported
// as not found so visibility cannot be probed.
func (s *ProjectService) GetVisible(ctx context.Context, id int64) (*domain.Project, error) {
	return s.repo.FindVisibleByID(ctx, id)
}

func (s *ProjectService) ListVisible(ctx context.Context, featuredOnly bool) ([]*domain.Project, error) {
	items, err := s.repo.ListVisible(ctx, featuredOnly)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list public projects")
		return nil, err
	}
	return items, nil
}

func (s *ProjectService) List(ctx context.Context, filter ports.ProjectListFilter) (*ports.ProjectListResult, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list projects")
		return nil, err
	}

	return &ports.ProjectListResult{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
		Pages: totalPages(total, filter.Limit),
	}, nil
}

func (s *ProjectService) Update(ctx context.Context, id int64, update ports.ProjectUpdate, actor string) (*domain.Project, error) {
	if verr := runValidation(update); verr != nil {
		return nil, verr
	}

	project, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("id", project.ID).
		Str("title", project.Title).
		Str("updated_by", actor).
		Msg("project updated")
	metrics.ProjectMutationsTotal.WithLabelValues("update").Inc()
	s.audit.Record(domain.AuditEvent{
		Kind:         "project",
		Action:       domain.AuditRecordUpdated,
		SubmissionID: project.ID,
		Actor:        actor,
		Timestamp:    time.Now().UTC(),
	})

	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id int64, actor string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("id", id).Str("deleted_by", actor).Msg("project deleted")
	metrics.ProjectMutationsTotal.WithLabelValues("delete").Inc()
	s.audit.Record(domain.AuditEvent{
		Kind:         "project",
		Action:       domain.AuditRecordDeleted,
		SubmissionID: id,
		Actor:        actor,
		Timestamp:    time.Now().UTC(),
	})
	return nil
}

func (s *ProjectService) Summary(ctx context.Context) (*domain.ProjectSummary, error) {
	summary, err := s.repo.Summary(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch project summary")
		return nil, err
	}
	return summary, nil
}
