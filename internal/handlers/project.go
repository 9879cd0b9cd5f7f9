package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tasklyhq/project-management-api/internal/dto"
	apierrors "github.com/tasklyhq/project-management-api/internal/errors"
	"github.com/tasklyhq/project-management-api/internal/middleware"
	"github.com/tasklyhq/project-management-api/internal/services"
	"github.com/tasklyhq/project-management-api/internal/utils"
	"github.com/tasklyhq/project-management-api/pkg/logger"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type createProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type addContributorRequest struct {
	Email    string `json:"email" binding:"required,email"`
	IsEditor bool   `json:"is_editor"`
}

type updateContributorRequest struct {
	IsEditor *bool `json:"is_editor" binding:"required"`
}

// ListProjects returns projects the user authored or contributes to
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	projects, total, err := h.projectService.ListProjects(middleware.GetUserID(c), params.Offset, params.Limit)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Projects fetched successfully",
		dto.ToProjectListResponse(projects, params.Page, params.Limit, total))
}

// GetProject returns a single project with author, contributors and tasks
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(projectID, middleware.GetUserID(c))
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Project fetched successfully", dto.ToProjectDTO(*project))
}

// CreateProject creates a project owned by the current user
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntity(c, err.Error())
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		AuthorID:    middleware.GetUserID(c),
	})
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	apierrors.OK(c, http.StatusCreated, "Project created successfully", dto.ToProjectDTO(*project))
}

// UpdateProject updates a project, author only
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntity(c, err.Error())
		return
	}

	project, err := h.projectService.UpdateProject(projectID, middleware.GetUserID(c), services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Project updated successfully", dto.ToProjectDTO(*project))
}

// DeleteProject deletes a project and everything under it, author only
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(projectID, middleware.GetUserID(c)); err != nil {
		h.respondProjectError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Project deleted successfully", nil)
}

// ListContributors lists a project's contributors
func (h *ProjectHandler) ListContributors(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	contributors, err := h.projectService.ListContributors(projectID, middleware.GetUserID(c))
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Contributors fetched successfully", dto.ToContributorDTOs(contributors))
}

// AddContributor adds a user to a project by email, author only
func (h *ProjectHandler) AddContributor(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req addContributorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntity(c, err.Error())
		return
	}

	contributor, err := h.projectService.AddContributor(services.AddContributorInput{
		ProjectID: projectID,
		ActorID:   middleware.GetUserID(c),
		Email:     req.Email,
		IsEditor:  req.IsEditor,
	})
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	apierrors.OK(c, http.StatusCreated, "Contributor added successfully", dto.ToContributorDTO(*contributor))
}

// UpdateContributor changes a contributor's editor flag, author only
func (h *ProjectHandler) UpdateContributor(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	contributorUserID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	var req updateContributorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntity(c, err.Error())
		return
	}

	contributor, err := h.projectService.UpdateContributor(projectID, middleware.GetUserID(c), contributorUserID, *req.IsEditor)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Contributor updated successfully", dto.ToContributorDTO(*contributor))
}

// RemoveContributor removes a contributor from a project, author only
func (h *ProjectHandler) RemoveContributor(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	contributorUserID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.projectService.RemoveContributor(projectID, middleware.GetUserID(c), contributorUserID); err != nil {
		h.respondProjectError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Contributor removed successfully", nil)
}

func (h *ProjectHandler) respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrContributorNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrNotProjectViewer),
		errors.Is(err, services.ErrNotProjectAuthorUpdate),
		errors.Is(err, services.ErrNotProjectAuthorDelete),
		errors.Is(err, services.ErrNotProjectAuthorAddUser),
		errors.Is(err, services.ErrNotContributorViewer),
		errors.Is(err, services.ErrNotProjectAuthorUpdPerms),
		errors.Is(err, services.ErrNotProjectAuthorRemove),
		errors.Is(err, services.ErrOwnContributorID):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrCannotAddSelf),
		errors.Is(err, services.ErrAlreadyContributor):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrProjectNameRequired):
		apierrors.UnprocessableEntity(c, err.Error())
	default:
		logger.Error().Err(err).Msg("project request failed")
		apierrors.InternalError(c, "")
	}
}
