package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusInReview   TaskStatus = "in_review"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// ValidStatus reports whether s is one of the five task states. There is no
// transition graph: an authorized editor may set any state at any time.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusInReview,
		TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

type TaskImportance string

const (
	ImportanceLow      TaskImportance = "low"
	ImportanceMedium   TaskImportance = "medium"
	ImportanceHigh     TaskImportance = "high"
	ImportanceCritical TaskImportance = "critical"
)

// ValidImportance reports whether i is a known importance level.
func ValidImportance(i TaskImportance) bool {
	switch i {
	case ImportanceLow, ImportanceMedium, ImportanceHigh, ImportanceCritical:
		return true
	}
	return false
}

type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Status      TaskStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Importance  TaskImportance `gorm:"type:varchar(20);not null;default:'medium'" json:"importance"`
	DueDate     *time.Time     `json:"due_date"`
	AuthorID    uint64         `gorm:"not null;index" json:"author_id"`
	ProjectID   uint64         `gorm:"not null;index" json:"project_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Author      User             `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Project     Project          `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Comments    []Comment        `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}
