package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fkedem/portfolio-backend/internal/core/ports"
)

// TestimonialHandler handles HTTP requests for testimonial operations.
type TestimonialHandler struct {
	service ports.TestimonialService
}

func NewTestimonialHandler(service ports.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{service: service}
}

// Submit handles POST /api/testimonials.
//
// @Summary      Submit a testimonial
// @Tags         testimonials
// @Accept       json
// @Produce      json
// @Param        body  body      submitTestimonialRequest  true  "Testimonial payload"
// @Success      201   {object}  apiResponse
// @Failure      400   {object}  apiResponse
// @Failure      429   {object}  apiResponse
// @Router       /api/testimonials [post]
func (h *TestimonialHandler) Submit(c echo.Context) error {
	var req submitTestimonialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Submit(c.Request().Context(), toTestimonialSubmission(req, requestMeta(c)))
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "Thank you for your testimonial!", submitResponse{
		ID:          result.ID,
		SubmittedAt: result.SubmittedAt.UTC(),
	})
}

// ListPublic handles GET /api/testimonials. Only approved testimonials are
// served, featured first.
//
// @Summary      List approved testimonials
// @Tags         testimonials
// @Produce      json
// @Param        featured  query     bool  false  "Featured testimonials only"
// @Param        limit     query     int   false  "Maximum results (default 10)"
// @Success      200       {object}  apiResponse
// @Router       /api/testimonials [get]
func (h *TestimonialHandler) ListPublic(c echo.Context) error {
	featuredOnly := c.QueryParam("featured") == "true"
	limit := queryInt(c, "limit", 10)

	items, err := h.service.ListApproved(c.Request().Context(), featuredOnly, limit)
	if err != nil {
		return err
	}

	out := make([]publicTestimonialResponse, len(items))
	for i, t := range items {
		out[i] = toPublicTestimonialResponse(t)
	}
	return respond(c, http.StatusOK, "", out)
}

// ListAll handles GET /api/testimonials/all (admin).
//
// @Summary      List all testimonials
// @Tags         testimonials
// @Produce      json
// @Security     BearerAuth
// @Param        approved  query     bool  false  "Filter by approval state"
// @Param        page      query     int   false  "Page number (default 1)"
// @Param        limit     query     int   false  "Page size (default 20)"
// @Success      200       {object}  apiResponse
// @Router       /api/testimonials/all [get]
func (h *TestimonialHandler) ListAll(c echo.Context) error {
	filter := ports.TestimonialListFilter{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 20),
	}
	if raw := c.QueryParam("approved"); raw != "" {
		approved := raw == "true"
		filter.Approved = &approved
	}

	result, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", toTestimonialListResponse(result))
}

// UpdateApproval handles PUT /api/testimonials/:id/approval (admin).
//
// @Summary      Update a testimonial's approval state
// @Tags         testimonials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Testimonial id"
// @Param        body  body      updateApprovalRequest  true  "Approval payload"
// @Success      200   {object}  apiResponse
// @Failure      404   {object}  apiResponse
// @Router       /api/testimonials/{id}/approval [put]
func (h *TestimonialHandler) UpdateApproval(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateApprovalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	testimonial, err := h.service.UpdateApproval(c.Request().Context(), id, ports.ApprovalUpdate{
		Approved: req.Approved,
		Featured: req.Featured,
		Actor:    actor,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Approval updated", toAdminTestimonialResponse(testimonial))
}

// Delete handles DELETE /api/testimonials/:id (admin).
//
// @Summary      Delete a testimonial
// @Tags         testimonials
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Testimonial id"
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  apiResponse
// @Router       /api/testimonials/{id} [delete]
func (h *TestimonialHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id, actor); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Testimonial deleted", nil)
}

// Summary handles GET /api/testimonials/summary (admin).
//
// @Summary      Testimonial dashboard summary
// @Tags         testimonials
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  apiResponse
// @Router       /api/testimonials/summary [get]
func (h *TestimonialHandler) Summary(c echo.Context) error {
	summary, err := h.service.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", toTestimonialSummaryResponse(summary))
}
