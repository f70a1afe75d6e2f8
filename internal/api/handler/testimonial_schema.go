package handler

import (
	"time"

	"github.com/fkedem/portfolio-backend/internal/core/domain"
	"github.com/fkedem/portfolio-backend/internal/core/ports"
)

// --- Request / Response types ---

type submitTestimonialRequest struct {
	ClientName  string  `json:"clientName"`
	Company     string  `json:"company"`
	Role        string  `json:"role"`
	ProjectType string  `json:"projectType"`
	Rating      float64 `json:"rating"`
	Testimonial string  `json:"testimonial"`
	// Website is the honeypot field; real users never see it.
	Website string `json:"website"`
}

type updateApprovalRequest struct {
	Approved bool  `json:"approved"`
	Featured *bool `json:"featured"`
}

// publicTestimonialResponse is the shape served to anonymous visitors.
// Moderation state and update timestamps are withheld.
type publicTestimonialResponse struct {
	ID          int64     `json:"id"`
	ClientName  string    `json:"clientName"`
	Company     string    `json:"company,omitempty"`
	Role        string    `json:"role"`
	ProjectType string    `json:"projectType"`
	Rating      int       `json:"rating"`
	Testimonial string    `json:"testimonial"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
}

// adminTestimonialResponse is the full shape served to moderators.
type adminTestimonialResponse struct {
	ID          int64     `json:"id"`
	ClientName  string    `json:"clientName"`
	Company     string    `json:"company,omitempty"`
	Role        string    `json:"role"`
	ProjectType string    `json:"projectType"`
	Rating      int       `json:"rating"`
	Testimonial string    `json:"testimonial"`
	Approved    bool      `json:"approved"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type listTestimonialsResponse struct {
	Items      []adminTestimonialResponse `json:"items"`
	Pagination paginationResponse         `json:"pagination"`
}

type testimonialSummaryResponse struct {
	Total         int64                      `json:"total"`
	Approved      int64                      `json:"approved"`
	Pending       int64                      `json:"pending"`
	Featured      int64                      `json:"featured"`
	AverageRating float64                    `json:"averageRating"`
	Recent        []adminTestimonialResponse `json:"recent"`
}

// --- Request → Service input ---

func toTestimonialSubmission(req submitTestimonialRequest, meta ports.RequestMeta) ports.TestimonialSubmission {
	return ports.TestimonialSubmission{
		ClientName:  req.ClientName,
		Company:     req.Company,
		Role:        req.Role,
		ProjectType: req.ProjectType,
		Rating:      req.Rating,
		Testimonial: req.Testimonial,
		Website:     req.Website,
		Meta:        meta,
	}
}

// --- Service result → HTTP response ---

func toPublicTestimonialResponse(t *domain.Testimonial) publicTestimonialResponse {
	return publicTestimonialResponse{
		ID:          t.ID,
		ClientName:  t.ClientName,
		Company:     t.Company,
		Role:        t.Role,
		ProjectType: t.ProjectType,
		Rating:      t.Rating,
		Testimonial: t.Testimonial,
		Featured:    t.Featured,
		CreatedAt:   t.CreatedAt.UTC(),
	}
}

func toAdminTestimonialResponse(t *domain.Testimonial) adminTestimonialResponse {
	return adminTestimonialResponse{
		ID:          t.ID,
		ClientName:  t.ClientName,
		Company:     t.Company,
		Role:        t.Role,
		ProjectType: t.ProjectType,
		Rating:      t.Rating,
		Testimonial: t.Testimonial,
		Approved:    t.Approved,
		Featured:    t.Featured,
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}

func toTestimonialListResponse(r *ports.TestimonialListResult) listTestimonialsResponse {
	items := make([]adminTestimonialResponse, len(r.Items))
	for i, t := range r.Items {
		items[i] = toAdminTestimonialResponse(t)
	}
	return listTestimonialsResponse{
		Items: items,
		Pagination: paginationResponse{
			Total: r.Total,
			Page:  r.Page,
			Limit: r.Limit,
			Pages: r.Pages,
		},
	}
}

func toTestimonialSummaryResponse(s *domain.TestimonialSummary) testimonialSummaryResponse {
	recent := make([]adminTestimonialResponse, len(s.Recent))
	for i, t := range s.Recent {
		recent[i] = toAdminTestimonialResponse(t)
	}
	return testimonialSummaryResponse{
		Total:         s.Total,
		Approved:      s.Approved,
		Pending:       s.Pending,
		Featured:      s.Featured,
		AverageRating: s.AverageRating,
		Recent:        recent,
	}
}
