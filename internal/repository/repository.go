package repository

import (
	"github.com/tasklyhq/project-management-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// ProjectRepository defines the interface for project and contributor data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// ListForUser lists projects the user authored or contributes to
	ListForUser(userID uint64, offset, limit int) ([]models.Project, int64, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete removes a project and all dependent rows in one transaction
	Delete(id uint64) error

	// AddContributor adds a contributor to a project
	AddContributor(contributor *models.Contributor) error

	// FindContributor finds a contributor row by (project, user) pair
	FindContributor(projectID, userID uint64) (*models.Contributor, error)

	// UpdateContributor updates a contributor row
	UpdateContributor(contributor *models.Contributor) error

	// RemoveContributor removes a contributor row by its own ID
	RemoveContributor(id uint64) error

	// ListContributors lists all contributors of a project
	ListContributors(projectID uint64) ([]models.Contributor, error)
}

// TaskRepository defines the interface for task and assignment data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByProject lists tasks of a project with pagination
	ListByProject(projectID uint64, offset, limit int) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes a task, its comments and its assignments in one transaction
	Delete(id uint64) error

	// CreateAssignment assigns a user to a task
	CreateAssignment(assignment *models.TaskAssignment) error

	// FindAssignment finds an assignment by (task, user) pair
	FindAssignment(taskID, userID uint64) (*models.TaskAssignment, error)

	// DeleteAssignment removes an assignment by its own ID
	DeleteAssignment(id uint64) error

	// ListAssignments lists all assignments of a task
	ListAssignments(taskID uint64) ([]models.TaskAssignment, error)

	// ListAssignmentsForUser lists all assignments held by a user
	ListAssignmentsForUser(userID uint64) ([]models.TaskAssignment, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID
	FindByID(id uint64) (*models.Comment, error)

	// ListByTask lists comments of a task with pagination
	ListByTask(taskID uint64, offset, limit int) ([]models.Comment, int64, error)

	// Update updates a comment
	Update(comment *models.Comment) error

	// Delete removes a comment
	Delete(id uint64) error
}
