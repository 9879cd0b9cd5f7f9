package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tasklyhq/project-management-api/internal/dto"
	apierrors "github.com/tasklyhq/project-management-api/internal/errors"
	"github.com/tasklyhq/project-management-api/internal/middleware"
	"github.com/tasklyhq/project-management-api/internal/services"
	"github.com/tasklyhq/project-management-api/pkg/logger"
)

type AssignmentHandler struct {
	assignmentService *services.AssignmentService
}

func NewAssignmentHandler(assignmentService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

type assignRequest struct {
	UserID uint64 `json:"user_id" binding:"required"`
}

// Assign assigns a user to a task
func (h *AssignmentHandler) Assign(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntity(c, err.Error())
		return
	}

	assignment, err := h.assignmentService.Assign(taskID, middleware.GetUserID(c), req.UserID)
	if err != nil {
		h.respondAssignmentError(c, err)
		return
	}

	apierrors.OK(c, http.StatusCreated, "User assigned to task successfully.", dto.ToTaskAssignmentDTO(*assignment))
}

// Unassign removes a user's assignment from a task
func (h *AssignmentHandler) Unassign(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.assignmentService.Unassign(taskID, middleware.GetUserID(c), userID); err != nil {
		h.respondAssignmentError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "User unassigned from task successfully.", nil)
}

// TaskAssignments lists the assignments of a task
func (h *AssignmentHandler) TaskAssignments(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	assignments, err := h.assignmentService.TaskAssignments(taskID, middleware.GetUserID(c))
	if err != nil {
		h.respondAssignmentError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Task assignments fetched successfully", dto.ToTaskAssignmentDTOs(assignments))
}

// MyAssignments lists the current user's assignments across all projects
func (h *AssignmentHandler) MyAssignments(c *gin.Context) {
	assignments, err := h.assignmentService.MyAssignments(middleware.GetUserID(c))
	if err != nil {
		h.respondAssignmentError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "My assignments fetched successfully", dto.ToAssignedTaskDTOs(assignments))
}

func (h *AssignmentHandler) respondAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrAssigneeNotFound),
		errors.Is(err, services.ErrNotAssigned):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCannotAssign),
		errors.Is(err, services.ErrCannotUnassign),
		errors.Is(err, services.ErrNotTaskViewer):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAlreadyAssigned):
		apierrors.UnprocessableEntity(c, err.Error())
	default:
		logger.Error().Err(err).Msg("assignment request failed")
		apierrors.InternalError(c, "")
	}
}
