package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds the lookup indexes the permission checks and list queries
// lean on. AutoMigrate covers the unique pairs; these are the plain ones.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"projects", "idx_projects_author_id", "author_id"},

		{"contributors", "idx_contributors_project_id", "project_id"},
		{"contributors", "idx_contributors_contributor_id", "contributor_id"},

		{"tasks", "idx_tasks_project_id", "project_id"},
		{"tasks", "idx_tasks_author_id", "author_id"},
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_due_date", "due_date"},

		{"comments", "idx_comments_task_id", "task_id"},
		{"comments", "idx_comments_author_id", "author_id"},

		{"task_assignments", "idx_task_assignments_task_id", "task_id"},
		{"task_assignments", "idx_task_assignments_user_id", "user_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
