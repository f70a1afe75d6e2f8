package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fkedem/portfolio-backend/internal/core/ports"
)

// ContactHandler handles HTTP requests for contact form operations.
type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit handles POST /api/contact.
//
// @Summary      Submit a contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      submitContactRequest  true  "Contact form payload"
// @Success      201   {object}  apiResponse
// @Failure      400   {object}  apiResponse
// @Failure      429   {object}  apiResponse
// @Router       /api/contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req submitContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Submit(c.Request().Context(), toContactSubmission(req, requestMeta(c)))
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "Thank you for your submission!", submitResponse{
		ID:          result.ID,
		SubmittedAt: result.SubmittedAt.UTC(),
	})
}

// List handles GET /api/contact (admin).
//
// @Summary      List contact messages
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status (unread, read, replied)"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 20)"
// @Success      200     {object}  apiResponse
// @Failure      401     {object}  apiResponse
// @Router       /api/contact [get]
func (h *ContactHandler) List(c echo.Context) error {
	filter := ports.ContactListFilter{
		Status: c.QueryParam("status"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
	}

	result, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", toContactListResponse(result))
}

// UpdateStatus handles PUT /api/contact/:id/status (admin).
//
// @Summary      Update a contact message's moderation status
// @Tags         contact
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                         true  "Contact message id"
// @Param        body  body      updateContactStatusRequest  true  "New status"
// @Success      200   {object}  apiResponse
// @Failure      400   {object}  apiResponse
// @Failure      404   {object}  apiResponse
// @Router       /api/contact/{id}/status [put]
func (h *ContactHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateContactStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	contact, err := h.service.UpdateStatus(c.Request().Context(), id, req.Status, actor)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Status updated", toContactResponse(contact))
}

// Summary handles GET /api/contact/summary (admin).
//
// @Summary      Contact dashboard summary
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  apiResponse
// @Router       /api/contact/summary [get]
func (h *ContactHandler) Summary(c echo.Context) error {
	summary, err := h.service.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", toContactSummaryResponse(summary))
}

// queryInt parses an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
