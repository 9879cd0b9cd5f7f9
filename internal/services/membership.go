package services

import (
	"errors"
	"fmt"

	"github.com/tasklyhq/project-management-api/internal/models"
	"github.com/tasklyhq/project-management-api/internal/repository"
	"gorm.io/gorm"
)

// membership resolves the actor's contributor row for a project. A missing
// row is not an error: it returns nil, meaning the actor is no contributor.
func membership(projects repository.ProjectRepository, projectID, userID uint64) (*models.Contributor, error) {
	contributor, err := projects.FindContributor(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check contributor: %w", err)
	}
	return contributor, nil
}
