package models

import (
	"time"
)

// Contributor grants a user access to a project. A user appears at most once
// per project, and the project author never has a contributor row. Rows are
// removed outright rather than soft deleted so a removed user can be added
// back later without tripping the unique index.
type Contributor struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	ProjectID     uint64    `gorm:"not null;uniqueIndex:idx_contributors_project_user" json:"project_id"`
	ContributorID uint64    `gorm:"not null;uniqueIndex:idx_contributors_project_user" json:"contributor_id"`
	IsEditor      bool      `gorm:"not null;default:false" json:"is_editor"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:ContributorID" json:"user,omitempty"`
}
