package repository

import (
	"github.com/tasklyhq/project-management-api/internal/database"
	"github.com/tasklyhq/project-management-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// ListForUser lists projects the user authored or contributes to
func (r *GormProjectRepository) ListForUser(userID uint64, offset, limit int) ([]models.Project, int64, error) {
	contributed := r.db.Model(&models.Contributor{}).
		Select("project_id").
		Where("contributor_id = ?", userID)

	query := r.db.Model(&models.Project{}).
		Where("author_id = ? OR id IN (?)", userID, contributed)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	if err := query.
		Preload("Author").
		Preload("Contributors.User").
		Order("projects.created_at DESC").
		Scopes(database.Paginate(offset, limit)).
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project and all dependent rows in one transaction.
// Order: comments of the project's tasks, assignments of those tasks, the
// tasks, the contributor rows, then the project itself.
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("project_id = ?", id)

		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Contributor{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// AddContributor adds a contributor to a project
func (r *GormProjectRepository) AddContributor(contributor *models.Contributor) error {
	return r.db.Create(contributor).Error
}

// FindContributor finds a contributor row by (project, user) pair
func (r *GormProjectRepository) FindContributor(projectID, userID uint64) (*models.Contributor, error) {
	var contributor models.Contributor
	if err := r.db.Where("project_id = ? AND contributor_id = ?", projectID, userID).
		First(&contributor).Error; err != nil {
		return nil, err
	}
	return &contributor, nil
}

// UpdateContributor updates a contributor row
func (r *GormProjectRepository) UpdateContributor(contributor *models.Contributor) error {
	return r.db.Save(contributor).Error
}

// RemoveContributor removes a contributor row by its own ID
func (r *GormProjectRepository) RemoveContributor(id uint64) error {
	return r.db.Delete(&models.Contributor{}, id).Error
}

// ListContributors lists all contributors of a project
func (r *GormProjectRepository) ListContributors(projectID uint64) ([]models.Contributor, error) {
	var contributors []models.Contributor
	if err := r.db.Preload("User").
		Where("project_id = ?", projectID).
		Find(&contributors).Error; err != nil {
		return nil, err
	}
	return contributors, nil
}
