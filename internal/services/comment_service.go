package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tasklyhq/project-management-api/internal/authz"
	"github.com/tasklyhq/project-management-api/internal/models"
	"github.com/tasklyhq/project-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound     = errors.New("Comment not found")
	ErrCommentBodyRequired = errors.New("comment body is required")

	ErrNotCommentListViewer = errors.New("Only the project author or a contributor can view comments.")
	ErrNotCommentViewer     = errors.New("Only the project author or a contributor can view this comment.")
	ErrNotCommentCreator    = errors.New("Only the project author or a contributor can create comments.")
	ErrNotCommentUpdater    = errors.New("Only the project author or the comment author can update this comment.")
	ErrNotCommentDeleter    = errors.New("Only the project author or the comment author can delete this comment.")
)

// CommentService provides comment lifecycle operations.
type CommentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// resolveTaskChain loads a comment's parent task and project.
func (s *CommentService) resolveTaskChain(taskID uint64) (*models.Task, *models.Project, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTaskNotFound
		}
		return nil, nil, fmt.Errorf("failed to find task: %w", err)
	}

	project, err := s.projectRepo.FindByID(task.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProjectNotFound
		}
		return nil, nil, fmt.Errorf("failed to find project: %w", err)
	}

	return task, project, nil
}

// ListComments returns comments of a task, project author or any contributor.
func (s *CommentService) ListComments(taskID, actorID uint64, offset, limit int) ([]models.Comment, int64, error) {
	_, project, err := s.resolveTaskChain(taskID)
	if err != nil {
		return nil, 0, err
	}

	member, err := membership(s.projectRepo, project.ID, actorID)
	if err != nil {
		return nil, 0, err
	}
	if !authz.CanViewProject(actorID, project, member) {
		return nil, 0, ErrNotCommentListViewer
	}

	comments, total, err := s.commentRepo.ListByTask(taskID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, total, nil
}

// GetComment returns a single comment.
func (s *CommentService) GetComment(commentID, actorID uint64) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	_, project, err := s.resolveTaskChain(comment.TaskID)
	if err != nil {
		return nil, err
	}

	member, err := membership(s.projectRepo, project.ID, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewProject(actorID, project, member) {
		return nil, ErrNotCommentViewer
	}

	return comment, nil
}

// CreateCommentInput represents input for creating a comment. The author is
// the acting user.
type CreateCommentInput struct {
	TaskID  uint64
	ActorID uint64
	Name    string
}

// CreateComment adds a comment to a task. Project author or any contributor,
// editor or not.
func (s *CommentService) CreateComment(input CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrCommentBodyRequired
	}

	_, project, err := s.resolveTaskChain(input.TaskID)
	if err != nil {
		return nil, err
	}

	member, err := membership(s.projectRepo, project.ID, input.ActorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanCreateComment(input.ActorID, project, member) {
		return nil, ErrNotCommentCreator
	}

	comment := &models.Comment{
		Name:     input.Name,
		AuthorID: input.ActorID,
		TaskID:   input.TaskID,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// UpdateComment changes a comment's body. Project author or comment author.
func (s *CommentService) UpdateComment(commentID, actorID uint64, name string) (*models.Comment, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrCommentBodyRequired
	}

	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	_, project, err := s.resolveTaskChain(comment.TaskID)
	if err != nil {
		return nil, err
	}

	if !authz.CanModifyComment(actorID, project, comment) {
		return nil, ErrNotCommentUpdater
	}

	comment.Name = name
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

// DeleteComment removes a comment. Project author or comment author.
func (s *CommentService) DeleteComment(commentID, actorID uint64) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to find comment: %w", err)
	}

	_, project, err := s.resolveTaskChain(comment.TaskID)
	if err != nil {
		return err
	}

	if !authz.CanModifyComment(actorID, project, comment) {
		return ErrNotCommentDeleter
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}
