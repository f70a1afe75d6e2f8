package handler

import (
	"time"

	"github.com/fkedem/portfolio-backend/internal/core/domain"
	"github.com/fkedem/portfolio-backend/internal/core/ports"
)

// --- Request / Response types ---

type createProjectRequest struct {
	Title        string              `json:"title"`
	Subtitle     string              `json:"subtitle"`
	Description  string              `json:"description"`
	Features     []string            `json:"features"`
	TechStack    map[string][]string `json:"techStack"`
	Technologies []string            `json:"technologies"`
	ImageURL     string              `json:"imageUrl"`
	LiveURL      string              `json:"liveUrl"`
	GitHubURL    string              `json:"githubUrl"`
	Visible      *bool               `json:"visible"`
	Featured     bool                `json:"featured"`
	Order        int                 `json:"order"`
}

type updateProjectRequest struct {
	Title        *string             `json:"title"`
	Subtitle     *string             `json:"subtitle"`
	Description  *string             `json:"description"`
	Features     []string            `json:"features"`
	TechStack    map[string][]string `json:"techStack"`
	Technologies []string            `json:"technologies"`
	ImageURL     *string             `json:"imageUrl"`
	LiveURL      *string             `json:"liveUrl"`
	GitHubURL    *string             `json:"githubUrl"`
	Visible      *bool               `json:"visible"`
	Featured     *bool               `json:"featured"`
	Order        *int                `json:"order"`
}

// publicProjectResponse is the shape served to anonymous visitors. Admin
// flags and timestamps are withheld.
type publicProjectResponse struct {
	ID           int64               `json:"id"`
	Title        string              `json:"title"`
	Subtitle     string              `json:"subtitle"`
	Description  string              `json:"description"`
	Features     []string            `json:"features"`
	TechStack    map[string][]string `json:"techStack"`
	Technologies []string            `json:"technologies"`
	ImageURL     string              `json:"imageUrl,omitempty"`
	LiveURL      string              `json:"liveUrl,omitempty"`
	GitHubURL    string              `json:"githubUrl,omitempty"`
}

// adminProjectResponse is the full shape served to the admin dashboard.
type adminProjectResponse struct {
	ID           int64               `json:"id"`
	Title        string              `json:"title"`
	Subtitle     string              `json:"subtitle"`
	Description  string              `json:"description"`
	Features     []string            `json:"features"`
	TechStack    map[string][]string `json:"techStack"`
	Technologies []string            `json:"technologies"`
	ImageURL     string              `json:"imageUrl,omitempty"`
	LiveURL      string              `json:"liveUrl,omitempty"`
	GitHubURL    string              `json:"githubUrl,omitempty"`
	Visible      bool                `json:"visible"`
	Featured     bool                `json:"featured"`
	Order        int                 `json:"order"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

type listProjectsResponse struct {
	Items      []adminProjectResponse `json:"items"`
	Pagination paginationResponse     `json:"pagination"`
}

type projectSummaryResponse struct {
	Total    int64                  `json:"total"`
	Visible  int64                  `json:"visible"`
	Featured int64                  `json:"featured"`
	Hidden   int64                  `json:"hidden"`
	Recent   []adminProjectResponse `json:"recent"`
}

// --- Request → Service input ---

func toProjectInput(req createProjectRequest) ports.ProjectInput {
	// Visible defaults to true when the field is omitted.
	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}
	return ports.ProjectInput{
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Description:  req.Description,
		Features:     req.Features,
		TechStack:    req.TechStack,
		Technologies: req.Technologies,
		ImageURL:     req.ImageURL,
		LiveURL:      req.LiveURL,
		GitHubURL:    req.GitHubURL,
		Visible:      visible,
		Featured:     req.Featured,
		Order:        req.Order,
	}
}

func toProjectUpdate(req updateProjectRequest) ports.ProjectUpdate {
	return ports.ProjectUpdate{
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Description:  req.Description,
		Features:     req.Features,
		TechStack:    req.TechStack,
		Technologies: req.Technologies,
		ImageURL:     req.ImageURL,
		LiveURL:      req.LiveURL,
		GitHubURL:    req.GitHubURL,
		Visible:      req.Visible,
		Featured:     req.Featured,
		Order:        req.Order,
	}
}

// --- Service result → HTTP response ---

func toPublicProjectResponse(p *domain.Project) publicProjectResponse {
	return publicProjectResponse{
		ID:           p.ID,
		Title:        p.Title,
		Subtitle:     p.Subtitle,
		Description:  p.Description,
		Features:     p.Features,
		TechStack:    p.TechStack,
		Technologies: p.Technologies,
		ImageURL:     p.ImageURL,
		LiveURL:      p.LiveURL,
		GitHubURL:    p.GitHubURL,
	}
}

func toAdminProjectResponse(p *domain.Project) adminProjectResponse {
	return adminProjectResponse{
		ID:           p.ID,
		Title:        p.Title,
		Subtitle:     p.Subtitle,
		Description:  p.Description,
		Features:     p.Features,
		TechStack:    p.TechStack,
		Technologies: p.Technologies,
		ImageURL:     p.ImageURL,
		LiveURL:      p.LiveURL,
		GitHubURL:    p.GitHubURL,
		Visible:      p.Visible,
		Featured:     p.Featured,
		Order:        p.Order,
		CreatedAt:    p.CreatedAt.UTC(),
		UpdatedAt:    p.UpdatedAt.UTC(),
	}
}

func toProjectListResponse(r *ports.ProjectListResult) listProjectsResponse {
	items := make([]adminProjectResponse, len(r.Items))
	for i, p := range r.Items {
		items[i] = toAdminProjectResponse(p)
	}
	return listProjectsResponse{
		Items: items,
		Pagination: paginationResponse{
			Total: r.Total,
			Page:  r.Page,
			Limit: r.Limit,
			Pages: r.Pages,
		},
	}
}

func toProjectSummaryResponse(s *domain.ProjectSummary) projectSummaryResponse {
	recent := make([]adminProjectResponse, len(s.Recent))
	for i, p := range s.Recent {
		recent[i] = toAdminProjectResponse(p)
	}
	return projectSummaryResponse{
		Total:    s.Total,
		Visible:  s.Visible,
		Featured: s.Featured,
		Hidden:   s.Hidden,
		Recent:   recent,
	}
}
