package ports

import (
	"context"

	"github.com/fkedem/portfolio-backend/internal/core/domain"
)

// ProjectListFilter carries query parameters for the admin project listing.
// Visible is a tri-state: nil means no filter.
type ProjectListFilter struct {
	Visible *bool
	Page    int
	Limit   int
}

// ProjectUpdate is a partial update: nil fields are left untouched.
type ProjectUpdate struct {
	Title        *string              `form:"title"        validate:"omitempty,min=2,max=100"`
	Subtitle     *string              `form:"subtitle"     validate:"omitempty,min=5,max=200"`
	Description  *string              `form:"description"  validate:"omitempty,min=50,max=2000"`
	Features     []string             `form:"features"     validate:"omitempty,min=1,max=20,dive,min=5"`
	TechStack    map[string][]string  `form:"techStack"    validate:"omitempty,min=1"`
	Technologies []string             `form:"technologies" validate:"omitempty,min=1,max=30,dive,min=1"`
	ImageURL     *string              `form:"imageUrl"     validate:"omitempty,url"`
	LiveURL      *string              `form:"liveUrl"      validate:"omitempty,url"`
	GitHubURL    *string              `form:"githubUrl"    validate:"omitempty,url"`
	Visible      *bool                `form:"visible"`
	Featured     *bool                `form:"featured"`
	Order        *int                 `form:"order"        validate:"omitempty,min=0"`
}

// ProjectRepository defines persistence operations for portfolio projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	// FindVisibleByID returns the project only when visible; hidden projects
	// are indistinguishable from missing ones for public callers.
	FindVisibleByID(ctx context.Context, id int64) (*domain.Project, error)
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
	// ListVisible returns visible projects: featured first, then by explicit
	// order, then newest first.
	ListVisible(ctx context.Context, featuredOnly bool) ([]*domain.Project, error)
	List(ctx context.Context, filter ProjectListFilter) ([]*domain.Project, int64, error)
	Update(ctx context.Context, id int64, update ProjectUpdate) (*domain.Project, error)
	Delete(ctx context.Context, id int64) error
	Summary(ctx context.Context) (*domain.ProjectSummary, error)
}
