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

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type commentRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListComments returns the comments of a task, oldest first
func (h *CommentHandler) ListComments(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	comments, total, err := h.commentService.ListComments(taskID, middleware.GetUserID(c), params.Offset, params.Limit)
	if err != nil {
		h.respondCommentError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Comments fetched successfully",
		dto.ToCommentListResponse(comments, params.Page, params.Limit, total))
}

// GetComment returns a single comment
func (h *CommentHandler) GetComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comment, err := h.commentService.GetComment(commentID, middleware.GetUserID(c))
	if err != nil {
		h.respondCommentError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Comment fetched successfully", dto.ToCommentDTO(*comment))
}

// CreateComment adds a comment to a task
func (h *CommentHandler) CreateComment(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntity(c, err.Error())
		return
	}

	comment, err := h.commentService.CreateComment(services.CreateCommentInput{
		TaskID:  taskID,
		ActorID: middleware.GetUserID(c),
		Name:    req.Name,
	})
	if err != nil {
		h.respondCommentError(c, err)
		return
	}

	apierrors.OK(c, http.StatusCreated, "Comment created successfully", dto.ToCommentDTO(*comment))
}

// UpdateComment changes a comment's body
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntity(c, err.Error())
		return
	}

	comment, err := h.commentService.UpdateComment(commentID, middleware.GetUserID(c), req.Name)
	if err != nil {
		h.respondCommentError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Comment updated successfully", dto.ToCommentDTO(*comment))
}

// DeleteComment removes a comment
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(commentID, middleware.GetUserID(c)); err != nil {
		h.respondCommentError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Comment deleted successfully", nil)
}

func (h *CommentHandler) respondCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotCommentListViewer),
		errors.Is(err, services.ErrNotCommentViewer),
		errors.Is(err, services.ErrNotCommentCreator),
		errors.Is(err, services.ErrNotCommentUpdater),
		errors.Is(err, services.ErrNotCommentDeleter):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrCommentBodyRequired):
		apierrors.UnprocessableEntity(c, err.Error())
	default:
		logger.Error().Err(err).Msg("comment request failed")
		apierrors.InternalError(c, "")
	}
}
