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
	ErrProjectNotFound     = errors.New("Project not found")
	ErrContributorNotFound = errors.New("Contributor not found")
	ErrProjectNameRequired = errors.New("project name is required")

	ErrNotProjectViewer         = errors.New("Only the project author or a contributor can view this project.")
	ErrNotProjectAuthorUpdate   = errors.New("Only the project author can update this project.")
	ErrNotProjectAuthorDelete   = errors.New("Only the project author can delete this project.")
	ErrNotProjectAuthorAddUser  = errors.New("Only the project author can add contributors.")
	ErrNotContributorViewer     = errors.New("Only the project author or a contributor can view the contributors.")
	ErrNotProjectAuthorUpdPerms = errors.New("Only the project author can update contributor permissions.")
	ErrNotProjectAuthorRemove   = errors.New("Only the project author can remove contributors.")

	ErrCannotAddSelf      = errors.New("You cannot add yourself as a contributor")
	ErrOwnContributorID   = errors.New("Error: You provided your own id as the contributor id!")
	ErrAlreadyContributor = errors.New("User is already a contributor")
)

// ProjectService provides project and contributor lifecycle operations. Every
// mutating call resolves the target first, then consults the authorization
// policy, then mutates; absence always wins over denial.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	AuthorID    uint64
}

// CreateProject creates a new project owned by the acting user.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrProjectNameRequired
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		AuthorID:    input.AuthorID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListProjects returns projects the user authored or contributes to.
func (s *ProjectService) ListProjects(userID uint64, offset, limit int) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.ListForUser(userID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// GetProject returns a project with its author, contributors and tasks.
func (s *ProjectService) GetProject(projectID, actorID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID, "Author", "Contributors.User", "Tasks.Author")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	member, err := membership(s.projectRepo, projectID, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewProject(actorID, project, member) {
		return nil, ErrNotProjectViewer
	}

	return project, nil
}

// UpdateProjectInput represents updatable project fields.
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// UpdateProject updates a project's name or description. Author only.
func (s *ProjectService) UpdateProject(projectID, actorID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !authz.CanManageProject(actorID, project) {
		return nil, ErrNotProjectAuthorUpdate
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrProjectNameRequired
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes a project and cascades to its tasks, their comments
// and assignments, and its contributor rows, atomically.
func (s *ProjectService) DeleteProject(projectID, actorID uint64) error {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if !authz.CanManageProject(actorID, project) {
		return ErrNotProjectAuthorDelete
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// AddContributorInput represents parameters to add a contributor by email.
type AddContributorInput struct {
	ProjectID uint64
	ActorID   uint64
	Email     string
	IsEditor  bool
}

// AddContributor adds a user to a project by email. Author only; the author
// cannot add themself, and a user is added at most once per project.
func (s *ProjectService) AddContributor(input AddContributorInput) (*models.Contributor, error) {
	project, err := s.projectRepo.FindByID(input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !authz.CanManageProject(input.ActorID, project) {
		return nil, ErrNotProjectAuthorAddUser
	}

	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.ID == input.ActorID {
		return nil, ErrCannotAddSelf
	}

	if _, err := s.projectRepo.FindContributor(input.ProjectID, user.ID); err == nil {
		return nil, ErrAlreadyContributor
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check contributor: %w", err)
	}

	contributor := &models.Contributor{
		ProjectID:     input.ProjectID,
		ContributorID: user.ID,
		IsEditor:      input.IsEditor,
	}

	if err := s.projectRepo.AddContributor(contributor); err != nil {
		return nil, fmt.Errorf("failed to add contributor: %w", err)
	}

	return contributor, nil
}

// ListContributors returns the contributor rows of a project.
func (s *ProjectService) ListContributors(projectID, actorID uint64) ([]models.Contributor, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	member, err := membership(s.projectRepo, projectID, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewProject(actorID, project, member) {
		return nil, ErrNotContributorViewer
	}

	contributors, err := s.projectRepo.ListContributors(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributors: %w", err)
	}

	return contributors, nil
}

// UpdateContributor changes a contributor's is_editor flag. Author only; the
// actor's own id is rejected as the contributor argument before any check.
func (s *ProjectService) UpdateContributor(projectID, actorID, contributorUserID uint64, isEditor bool) (*models.Contributor, error) {
	if contributorUserID == actorID {
		return nil, ErrOwnContributorID
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !authz.CanManageProject(actorID, project) {
		return nil, ErrNotProjectAuthorUpdPerms
	}

	contributor, err := s.projectRepo.FindContributor(projectID, contributorUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContributorNotFound
		}
		return nil, fmt.Errorf("failed to find contributor: %w", err)
	}

	contributor.IsEditor = isEditor
	if err := s.projectRepo.UpdateContributor(contributor); err != nil {
		return nil, fmt.Errorf("failed to update contributor: %w", err)
	}

	return contributor, nil
}

// RemoveContributor removes a contributor identified by (project, user) pair.
func (s *ProjectService) RemoveContributor(projectID, actorID, contributorUserID uint64) error {
	if contributorUserID == actorID {
		return ErrOwnContributorID
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if !authz.CanManageProject(actorID, project) {
		return ErrNotProjectAuthorRemove
	}

	contributor, err := s.projectRepo.FindContributor(projectID, contributorUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContributorNotFound
		}
		return fmt.Errorf("failed to find contributor: %w", err)
	}

	if err := s.projectRepo.RemoveContributor(contributor.ID); err != nil {
		return fmt.Errorf("failed to remove contributor: %w", err)
	}

	return nil
}
