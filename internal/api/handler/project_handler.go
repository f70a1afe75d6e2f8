package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fkedem/portfolio-backend/internal/core/ports"
)

// ProjectHandler handles HTTP requests for portfolio project operations.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// ListPublic handles GET /api/projects. Only visible projects are served:
// featured first, then by explicit order, then newest.
//
// @Summary      List visible projects
// @Tags         projects
// @Produce      json
// @Param        featured  query     bool  false  "Featured projects only"
// @Success      200       {object}  apiResponse
// @Router       /api/projects [get]
func (h *ProjectHandler) ListPublic(c echo.Context) error {
	featuredOnly := c.QueryParam("featured") == "true"

	items, err := h.service.ListVisible(c.Request().Context(), featuredOnly)
	if err != nil {
		return err
	}

	out := make([]publicProjectResponse, len(items))
	for i, p := range items {
		out[i] = toPublicProjectResponse(p)
	}
	return respond(c, http.StatusOK, "", out)
}

// GetPublic handles GET /api/projects/:id. Hidden projects read as 404.
//
// @Summary      Get a visible project
// @Tags         projects
// @Produce      json
// @Param        id  path      int  true  "Project id"
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  apiResponse
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) GetPublic(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	project, err := h.service.GetVisible(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", toPublicProjectResponse(project))
}

// ListAll handles GET /api/projects/all (admin).
//
// @Summary      List all projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        visible  query     bool  false  "Filter by visibility"
// @Param        page     query     int   false  "Page number (default 1)"
// @Param        limit    query     int   false  "Page size (default 20)"
// @Success      200      {object}  apiResponse
// @Router       /api/projects/all [get]
func (h *ProjectHandler) ListAll(c echo.Context) error {
	filter := ports.ProjectListFilter{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 20),
	}
	if raw := c.QueryParam("visible"); raw != "" {
		visible := raw == "true"
		filter.Visible = &visible
	}

	result, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", toProjectListResponse(result))
}

// Create handles POST /api/projects (admin).
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project payload"
// @Success      201   {object}  apiResponse
// @Failure      400   {object}  apiResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	project, err := h.service.Create(c.Request().Context(), toProjectInput(req), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Project created", toAdminProjectResponse(project))
}

// Update handles PUT /api/projects/:id (admin). Only fields present in the
// payload are modified.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Project id"
// @Param        body  body      updateProjectRequest  true  "Fields to update"
// @Success      200   {object}  apiResponse
// @Failure      404   {object}  apiResponse
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	project, err := h.service.Update(c.Request().Context(), id, toProjectUpdate(req), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Project updated", toAdminProjectResponse(project))
}

// Delete handles DELETE /api/projects/:id (admin).
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Project id"
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  apiResponse
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
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
	return respond(c, http.StatusOK, "Project deleted", nil)
}

// Summary handles GET /api/projects/summary (admin).
//
// @Summary      Project dashboard summary
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  apiResponse
// @Router       /api/projects/summary [get]
func (h *ProjectHandler) Summary(c echo.Context) error {
	summary, err := h.service.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", toProjectSummaryResponse(summary))
}
