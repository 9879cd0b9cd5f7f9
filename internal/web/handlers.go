// Package web is the browser-facing adapter. It authenticates with a session
// cookie instead of a bearer token and returns page-data payloads for the
// frontend to render. All decisions go through the same services as the API.
package web

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

type Handler struct {
	authService       *services.AuthService
	projectService    *services.ProjectService
	taskService       *services.TaskService
	commentService    *services.CommentService
	assignmentService *services.AssignmentService
	metricsService    *services.MetricsService
}

func NewHandler(
	authService *services.AuthService,
	projectService *services.ProjectService,
	taskService *services.TaskService,
	commentService *services.CommentService,
	assignmentService *services.AssignmentService,
	metricsService *services.MetricsService,
) *Handler {
	return &Handler{
		authService:       authService,
		projectService:    projectService,
		taskService:       taskService,
		commentService:    commentService,
		assignmentService: assignmentService,
		metricsService:    metricsService,
	}
}

type loginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Login verifies credentials and starts a session
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.UnprocessableEntity(c, err.Error())
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.Unauthorized(c, err.Error())
			return
		}
		logger.Error().Err(err).Msg("web login failed")
		apierrors.InternalError(c, "")
		return
	}

	if err := middleware.SignInSession(c, user.ID); err != nil {
		logger.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to save session")
		apierrors.InternalError(c, "")
		return
	}

	apierrors.OK(c, http.StatusOK, "Logged in successfully", dto.ToUserDetailDTO(*user))
}

// Logout clears the session
func (h *Handler) Logout(c *gin.Context) {
	if err := middleware.SignOutSession(c); err != nil {
		logger.Error().Err(err).Msg("failed to clear session")
		apierrors.InternalError(c, "")
		return
	}

	apierrors.OK(c, http.StatusOK, "Logged out successfully", nil)
}

// Dashboard returns the signed-in user's metrics and due task lists
func (h *Handler) Dashboard(c *gin.Context) {
	userID := middleware.GetUserID(c)

	metrics, err := h.metricsService.Dashboard(userID)
	if err != nil {
		h.respondWebError(c, err)
		return
	}
	dueToday, err := h.metricsService.TasksDueToday(userID)
	if err != nil {
		h.respondWebError(c, err)
		return
	}
	pastDue, err := h.metricsService.TasksPastDue(userID)
	if err != nil {
		h.respondWebError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Dashboard fetched successfully", gin.H{
		"metrics":         metrics,
		"tasks_due_today": taskItems(dueToday),
		"tasks_past_due":  taskItems(pastDue),
	})
}

// ProjectIndex lists the user's projects
func (h *Handler) ProjectIndex(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	projects, total, err := h.projectService.ListProjects(middleware.GetUserID(c), params.Offset, params.Limit)
	if err != nil {
		h.respondWebError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Projects fetched successfully",
		dto.ToProjectListResponse(projects, params.Page, params.Limit, total))
}

// ProjectShow returns one project with its contributors and tasks
func (h *Handler) ProjectShow(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(projectID, middleware.GetUserID(c))
	if err != nil {
		h.respondWebError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Project fetched successfully", dto.ToProjectDTO(*project))
}

// Contributors returns a project's contributor page data
func (h *Handler) Contributors(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	contributors, err := h.projectService.ListContributors(projectID, middleware.GetUserID(c))
	if err != nil {
		h.respondWebError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Contributors fetched successfully", dto.ToContributorDTOs(contributors))
}

// TaskShow returns one task with its comments and assignments
func (h *Handler) TaskShow(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(c)

	task, err := h.taskService.GetTask(taskID, userID)
	if err != nil {
		h.respondWebError(c, err)
		return
	}

	comments, _, err := h.commentService.ListComments(taskID, userID, 0, 100)
	if err != nil {
		h.respondWebError(c, err)
		return
	}

	items := make([]dto.CommentDTO, len(comments))
	for i, comment := range comments {
		items[i] = dto.ToCommentDTO(comment)
	}

	apierrors.OK(c, http.StatusOK, "Task fetched successfully", gin.H{
		"task":     dto.ToTaskDTO(*task),
		"comments": items,
	})
}

// respondWebError maps service errors onto page-level aborts
func (h *Handler) respondWebError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrContributorNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotProjectViewer),
		errors.Is(err, services.ErrNotContributorViewer),
		errors.Is(err, services.ErrNotTaskViewer),
		errors.Is(err, services.ErrNotTaskListViewer),
		errors.Is(err, services.ErrNotCommentListViewer):
		apierrors.Forbidden(c, err.Error())
	default:
		logger.Error().Err(err).Msg("web request failed")
		apierrors.InternalError(c, "")
	}
}
