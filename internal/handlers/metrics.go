package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tasklyhq/project-management-api/internal/dto"
	apierrors "github.com/tasklyhq/project-management-api/internal/errors"
	"github.com/tasklyhq/project-management-api/internal/middleware"
	"github.com/tasklyhq/project-management-api/internal/models"
	"github.com/tasklyhq/project-management-api/internal/services"
	"github.com/tasklyhq/project-management-api/pkg/logger"
)

type MetricsHandler struct {
	metricsService *services.MetricsService
}

func NewMetricsHandler(metricsService *services.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

// Dashboard returns the aggregate metrics for the current user
func (h *MetricsHandler) Dashboard(c *gin.Context) {
	metrics, err := h.metricsService.Dashboard(middleware.GetUserID(c))
	if err != nil {
		logger.Error().Err(err).Msg("metrics request failed")
		apierrors.InternalError(c, "")
		return
	}

	apierrors.OK(c, http.StatusOK, "Metrics fetched successfully", metrics)
}

// TasksDueToday lists the user's open tasks due today
func (h *MetricsHandler) TasksDueToday(c *gin.Context) {
	tasks, err := h.metricsService.TasksDueToday(middleware.GetUserID(c))
	if err != nil {
		logger.Error().Err(err).Msg("metrics request failed")
		apierrors.InternalError(c, "")
		return
	}

	apierrors.OK(c, http.StatusOK, "Tasks due today fetched successfully", taskItems(tasks))
}

// TasksDueIn7Days lists the user's open tasks due within seven days
func (h *MetricsHandler) TasksDueIn7Days(c *gin.Context) {
	tasks, err := h.metricsService.TasksDueIn7Days(middleware.GetUserID(c))
	if err != nil {
		logger.Error().Err(err).Msg("metrics request failed")
		apierrors.InternalError(c, "")
		return
	}

	apierrors.OK(c, http.StatusOK, "Tasks due in 7 days fetched successfully", taskItems(tasks))
}

// TasksPastDue lists the user's open tasks past their due date
func (h *MetricsHandler) TasksPastDue(c *gin.Context) {
	tasks, err := h.metricsService.TasksPastDue(middleware.GetUserID(c))
	if err != nil {
		logger.Error().Err(err).Msg("metrics request failed")
		apierrors.InternalError(c, "")
		return
	}

	apierrors.OK(c, http.StatusOK, "Tasks past due fetched successfully", taskItems(tasks))
}

func taskItems(tasks []models.Task) []dto.TaskListItemDTO {
	items := make([]dto.TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = dto.ToTaskListItemDTO(task)
	}
	return items
}
