package services

import (
	"errors"
	"fmt"

	"github.com/tasklyhq/project-management-api/internal/authz"
	"github.com/tasklyhq/project-management-api/internal/models"
	"github.com/tasklyhq/project-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCannotAssign     = errors.New("You do not have permission to assign users to this task.")
	ErrCannotUnassign   = errors.New("You do not have permission to unassign users from this task.")
	ErrAlreadyAssigned  = errors.New("User is already assigned to this task.")
	ErrNotAssigned      = errors.New("User is not assigned to this task.")
	ErrAssigneeNotFound = errors.New("User not found")
)

// AssignmentService provides task assignment operations.
type AssignmentService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *AssignmentService {
	return &AssignmentService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

func (s *AssignmentService) resolveTask(taskID uint64) (*models.Task, *models.Project, error) {
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

// Assign assigns a user to a task. Task author, project author or an editor
// contributor. Assigning the same user twice is a conflict.
func (s *AssignmentService) Assign(taskID, actorID, userID uint64) (*models.TaskAssignment, error) {
	task, project, err := s.resolveTask(taskID)
	if err != nil {
		return nil, err
	}

	// Absence and the duplicate conflict take precedence over denial
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.taskRepo.FindAssignment(taskID, userID); err == nil {
		return nil, ErrAlreadyAssigned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check assignment: %w", err)
	}

	member, err := membership(s.projectRepo, project.ID, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAssign(actorID, task, project, member) {
		return nil, ErrCannotAssign
	}

	assignment := &models.TaskAssignment{
		TaskID:     taskID,
		UserID:     userID,
		AssignedBy: actorID,
	}

	if err := s.taskRepo.CreateAssignment(assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	return assignment, nil
}

// Unassign removes a user's assignment from a task. Anyone who can assign may
// unassign, and a user may always remove their own assignment.
func (s *AssignmentService) Unassign(taskID, actorID, userID uint64) error {
	task, project, err := s.resolveTask(taskID)
	if err != nil {
		return err
	}

	assignment, err := s.taskRepo.FindAssignment(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAssigned
		}
		return fmt.Errorf("failed to find assignment: %w", err)
	}

	member, err := membership(s.projectRepo, project.ID, actorID)
	if err != nil {
		return err
	}
	if !authz.CanUnassign(actorID, task, project, member, assignment) {
		return ErrCannotUnassign
	}

	if err := s.taskRepo.DeleteAssignment(assignment.ID); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	return nil
}

// TaskAssignments lists all assignments of a task, project author or any
// contributor.
func (s *AssignmentService) TaskAssignments(taskID, actorID uint64) ([]models.TaskAssignment, error) {
	_, project, err := s.resolveTask(taskID)
	if err != nil {
		return nil, err
	}

	member, err := membership(s.projectRepo, project.ID, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewProject(actorID, project, member) {
		return nil, ErrNotTaskViewer
	}

	assignments, err := s.taskRepo.ListAssignments(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	return assignments, nil
}

// MyAssignments lists every assignment held by the acting user across all
// projects.
func (s *AssignmentService) MyAssignments(userID uint64) ([]models.TaskAssignment, error) {
	assignments, err := s.taskRepo.ListAssignmentsForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	return assignments, nil
}
