package ports

import (
	"context"

	"github.com/fkedem/portfolio-backend/internal/core/domain"
)

// ProjectInput carries all data for creating a project. Visible defaults to
// true and Order to 0 at the transport layer.
type ProjectInput struct {
	Title        string              `form:"title"        validate:"required,min=2,max=100"`
	Subtitle     string              `form:"subtitle"     validate:"required,min=5,max=200"`
	Description  string              `form:"description"  validate:"required,min=50,max=2000"`
	Features     []string            `form:"features"     validate:"required,min=1,max=20,dive,min=5"`
	TechStack    map[string][]string `form:"techStack"    validate:"required,min=1"`
	Technologies []string            `form:"technologies" validate:"required,min=1,max=30,dive,min=1"`
	ImageURL     string              `form:"imageUrl"     validate:"omitempty,url"`
	LiveURL      string              `form:"liveUrl"      validate:"omitempty,url"`
	GitHubURL    string              `form:"githubUrl"    validate:"omitempty,url"`
	Visible      bool                `form:"visible"`
	Featured     bool                `form:"featured"`
	Order        int                 `form:"order"        validate:"min=0"`
}

// ProjectService defines use-case operations for portfolio projects.
type ProjectService interface {
	Create(ctx context.Context, in ProjectInput, actor string) (*domain.Project, error)
	GetVisible(ctx context.Context, id int64) (*domain.Project, error)
	ListVisible(ctx context.Context, featuredOnly bool) ([]*domain.Project, error)
	List(ctx context.Context, filter ProjectListFilter) (*ProjectListResult, error)
	Update(ctx context.Context, id int64, update ProjectUpdate, actor string) (*domain.Project, error)
	Delete(ctx context.Context, id int64, actor string) error
	Summary(ctx context.Context) (*domain.ProjectSummary, error)
}

// ProjectListResult is a page of projects with pagination metadata.
type ProjectListResult struct {
	Items []*domain.Project
	Total int64
	Page  int
	Limit int
	Pages int
}
