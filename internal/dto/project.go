package dto

import (
	"time"

	"github.com/tasklyhq/project-management-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// ContributorDTO represents a project contributor in API responses
type ContributorDTO struct {
	ID        uint64    `json:"id"`
	ProjectID uint64    `json:"project_id"`
	User      UserDTO   `json:"user"`
	IsEditor  bool      `json:"is_editor"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID           uint64            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	AuthorID     uint64            `json:"author_id"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	Author       *UserDTO          `json:"author,omitempty"`
	Contributors []ContributorDTO  `json:"contributors,omitempty"`
	Tasks        []TaskListItemDTO `json:"tasks,omitempty"`
}

// ProjectListItemDTO represents a project in list responses (minimal data)
type ProjectListItemDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AuthorID    uint64    `json:"author_id"`
	Author      *UserDTO  `json:"author,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects   []ProjectListItemDTO `json:"projects"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalCount int64                `json:"total_count"`
	TotalPages int                  `json:"total_pages"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:   user.ID,
		Name: user.Name,
	}
}

// ToUserDetailDTO converts a User model to UserDTO including the email
func ToUserDetailDTO(user models.User) UserDTO {
	dto := ToUserDTO(user)
	dto.Email = user.Email
	return dto
}

// ToContributorDTO converts a Contributor model to ContributorDTO
func ToContributorDTO(contributor models.Contributor) ContributorDTO {
	return ContributorDTO{
		ID:        contributor.ID,
		ProjectID: contributor.ProjectID,
		User:      ToUserDTO(contributor.User),
		IsEditor:  contributor.IsEditor,
		CreatedAt: contributor.CreatedAt,
	}
}

// ToContributorDTOs converts a slice of contributors
func ToContributorDTOs(contributors []models.Contributor) []ContributorDTO {
	dtos := make([]ContributorDTO, len(contributors))
	for i, contributor := range contributors {
		dtos[i] = ToContributorDTO(contributor)
	}
	return dtos
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		AuthorID:    project.AuthorID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	// Include author if preloaded
	if project.Author.ID != 0 {
		author := ToUserDTO(project.Author)
		dto.Author = &author
	}

	// Include contributors if preloaded
	if len(project.Contributors) > 0 {
		dto.Contributors = ToContributorDTOs(project.Contributors)
	}

	// Include tasks if preloaded
	if len(project.Tasks) > 0 {
		dto.Tasks = make([]TaskListItemDTO, len(project.Tasks))
		for i, task := range project.Tasks {
			dto.Tasks[i] = ToTaskListItemDTO(task)
		}
	}

	return dto
}

// ToProjectListItemDTO converts a Project model to ProjectListItemDTO
func ToProjectListItemDTO(project models.Project) ProjectListItemDTO {
	dto := ProjectListItemDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		AuthorID:    project.AuthorID,
		CreatedAt:   project.CreatedAt,
	}

	if project.Author.ID != 0 {
		author := ToUserDTO(project.Author)
		dto.Author = &author
	}

	return dto
}

// ToProjectListResponse converts a slice of projects to ProjectListResponse
func ToProjectListResponse(projects []models.Project, page, pageSize int, totalCount int64) ProjectListResponse {
	items := make([]ProjectListItemDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectListItemDTO(project)
	}

	return ProjectListResponse{
		Projects:   items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, pageSize),
	}
}
