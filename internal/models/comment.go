package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a note on a task. Name carries the comment body.
type Comment struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:text;not null" json:"name"`
	AuthorID  uint64         `gorm:"not null;index" json:"author_id"`
	TaskID    uint64         `gorm:"not null;index" json:"task_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Task   Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
