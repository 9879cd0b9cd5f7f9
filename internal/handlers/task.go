package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tasklyhq/project-management-api/internal/dto"
	apierrors "github.com/tasklyhq/project-management-api/internal/errors"
	"github.com/tasklyhq/project-management-api/internal/middleware"
	"github.com/tasklyhq/project-management-api/internal/models"
	"github.com/tasklyhq/project-management-api/internal/services"
	"github.com/tasklyhq/project-management-api/internal/utils"
	"github.com/tasklyhq/project-management-api/pkg/logger"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type createTaskRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Importance  string     `json:"importance"`
	DueDate     *time.Time `json:"due_date"`
}

type updateTaskRequest struct {
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status"`
	Importance   *string    `json:"importance"`
	DueDate      *time.Time `json:"due_date"`
	ClearDueDate bool       `json:"clear_due_date"`
}

// ListTasks returns the tasks of a project
func (h *TaskHandler) ListTasks(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListTasks(projectID, middleware.GetUserID(c), params.Offset, params.Limit)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Tasks fetched successfully",
		dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns a single task with author and assignments
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID, middleware.GetUserID(c))
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Task fetched successfully", dto.ToTaskDTO(*task))
}

// CreateTask creates a task inside a project
func (h *TaskHandler) CreateTask(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntity(c, err.Error())
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		ProjectID:   projectID,
		ActorID:     middleware.GetUserID(c),
		Name:        req.Name,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
		Importance:  models.TaskImportance(req.Importance),
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	apierrors.OK(c, http.StatusCreated, "Task created successfully", dto.ToTaskDTO(*task))
}

// UpdateTask updates a task's fields
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntity(c, err.Error())
		return
	}

	input := services.UpdateTaskInput{
		Name:         req.Name,
		Description:  req.Description,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Importance != nil {
		importance := models.TaskImportance(*req.Importance)
		input.Importance = &importance
	}

	task, err := h.taskService.UpdateTask(taskID, middleware.GetUserID(c), input)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Task updated successfully", dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task and its comments and assignments
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID, middleware.GetUserID(c)); err != nil {
		h.respondTaskError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Task deleted successfully", nil)
}

func (h *TaskHandler) respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotTaskListViewer),
		errors.Is(err, services.ErrNotTaskViewer),
		errors.Is(err, services.ErrNotTaskCreator),
		errors.Is(err, services.ErrNotTaskEditor),
		errors.Is(err, services.ErrNotTaskDeleter):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTaskNameRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidImportance):
		apierrors.UnprocessableEntity(c, err.Error())
	default:
		logger.Error().Err(err).Msg("task request failed")
		apierrors.InternalError(c, "")
	}
}
