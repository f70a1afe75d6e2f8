package handler

import (
	"time"

	"github.com/fkedem/portfolio-backend/internal/core/domain"
	"github.com/fkedem/portfolio-backend/internal/core/ports"
)

// --- Request / Response types ---

type submitContactRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Purpose   string `json:"purpose"`
	Message   string `json:"message"`
	// Website is the honeypot field; real users never see it.
	Website string `json:"website"`
}

type submitResponse struct {
	ID          int64     `json:"id"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type updateContactStatusRequest struct {
	Status string `json:"status"`
}

type contactResponse struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Purpose   string    `json:"purpose"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type listContactsResponse struct {
	Items      []contactResponse  `json:"items"`
	Pagination paginationResponse `json:"pagination"`
}

type contactSummaryResponse struct {
	Total   int64             `json:"total"`
	Unread  int64             `json:"unread"`
	Read    int64             `json:"read"`
	Replied int64             `json:"replied"`
	Recent  []contactResponse `json:"recent"`
}

// --- Request → Service input ---

func toContactSubmission(req submitContactRequest, meta ports.RequestMeta) ports.ContactSubmission {
	return ports.ContactSubmission{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Purpose:   req.Purpose,
		Message:   req.Message,
		Website:   req.Website,
		Meta:      meta,
	}
}

// --- Service result → HTTP response ---

func toContactResponse(c *domain.Contact) contactResponse {
	return contactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Purpose:   c.Purpose,
		Message:   c.Message,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
}

func toContactListResponse(r *ports.ContactListResult) listContactsResponse {
	items := make([]contactResponse, len(r.Items))
	for i, c := range r.Items {
		items[i] = toContactResponse(c)
	}
	return listContactsResponse{
		Items: items,
		Pagination: paginationResponse{
			Total: r.Total,
			Page:  r.Page,
			Limit: r.Limit,
			Pages: r.Pages,
		},
	}
}

func toContactSummaryResponse(s *domain.ContactSummary) contactSummaryResponse {
	recent := make([]contactResponse, len(s.Recent))
	for i, c := range s.Recent {
		recent[i] = toContactResponse(c)
	}
	return contactSummaryResponse{
		Total:   s.Total,
		Unread:  s.Unread,
		Read:    s.Read,
		Replied: s.Replied,
		Recent:  recent,
	}
}
