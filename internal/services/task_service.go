package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tasklyhq/project-management-api/internal/authz"
	"github.com/tasklyhq/project-management-api/internal/models"
	"github.com/tasklyhq/project-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("Task not found")
	ErrTaskNameRequired  = errors.New("task name is required")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrInvalidImportance = errors.New("invalid task importance")

	ErrNotTaskListViewer = errors.New("Only the project author or a contributor can view tasks.")
	ErrNotTaskViewer     = errors.New("Only the project author or a contributor can view this task.")
	ErrNotTaskCreator    = errors.New("Only the project author or an editor contributor can create tasks.")
	ErrNotTaskEditor     = errors.New("Only the project author or an editor contributor can edit tasks.")
	ErrNotTaskDeleter    = errors.New("Only the project author or an editor contributor can delete tasks.")
)

// TaskService provides task lifecycle operations.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// ListTasks returns tasks of a project, author or any contributor.
func (s *TaskService) ListTasks(projectID, actorID uint64, offset, limit int) ([]models.Task, int64, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrProjectNotFound
		}
		return nil, 0, fmt.Errorf("failed to find project: %w", err)
	}

	member, err := membership(s.projectRepo, projectID, actorID)
	if err != nil {
		return nil, 0, err
	}
	if !authz.CanViewProject(actorID, project, member) {
		return nil, 0, ErrNotTaskListViewer
	}

	tasks, total, err := s.taskRepo.ListByProject(projectID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task with its author and assignments.
func (s *TaskService) GetTask(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Author", "Assignments.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	project, err := s.projectRepo.FindByID(task.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	member, err := membership(s.projectRepo, project.ID, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewProject(actorID, project, member) {
		return nil, ErrNotTaskViewer
	}

	return task, nil
}

// CreateTaskInput represents input for creating a task. The author is always
// the acting user, never caller-supplied.
type CreateTaskInput struct {
	ProjectID   uint64
	ActorID     uint64
	Name        string
	Description string
	Status      models.TaskStatus
	Importance  models.TaskImportance
	DueDate     *time.Time
}

// CreateTask creates a task inside a project. Project author or editor
// contributor only.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTaskNameRequired
	}

	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}
	if !models.ValidStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	if input.Importance == "" {
		input.Importance = models.ImportanceMedium
	}
	if !models.ValidImportance(input.Importance) {
		return nil, ErrInvalidImportance
	}

	project, err := s.projectRepo.FindByID(input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	member, err := membership(s.projectRepo, project.ID, input.ActorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditTasks(input.ActorID, project, member) {
		return nil, ErrNotTaskCreator
	}

	task := &models.Task{
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		Importance:  input.Importance,
		DueDate:     input.DueDate,
		AuthorID:    input.ActorID,
		ProjectID:   input.ProjectID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTaskInput represents input for updating a task.
type UpdateTaskInput struct {
	Name         *string
	Description  *string
	Status       *models.TaskStatus
	Importance   *models.TaskImportance
	DueDate      *time.Time
	ClearDueDate bool
}

// UpdateTask updates an existing task. Any of the five statuses may be set
// directly; there is no transition graph.
func (s *TaskService) UpdateTask(taskID, actorID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	project, err := s.projectRepo.FindByID(task.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	member, err := membership(s.projectRepo, project.ID, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditTasks(actorID, project, member) {
		return nil, ErrNotTaskEditor
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrTaskNameRequired
		}
		task.Name = *input.Name
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.Importance != nil {
		if !models.ValidImportance(*input.Importance) {
			return nil, ErrInvalidImportance
		}
		task.Importance = *input.Importance
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task and cascades to its comments and assignments.
func (s *TaskService) DeleteTask(taskID, actorID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	project, err := s.projectRepo.FindByID(task.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	member, err := membership(s.projectRepo, project.ID, actorID)
	if err != nil {
		return err
	}
	if !authz.CanEditTasks(actorID, project, member) {
		return ErrNotTaskDeleter
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
