package services

import (
	"fmt"
	"time"

	"github.com/tasklyhq/project-management-api/internal/models"
	"gorm.io/gorm"
)

// DashboardMetrics is the aggregate payload of the metrics dashboard. Counts
// scoped to a user cover tasks they authored plus tasks assigned to them.
type DashboardMetrics struct {
	TotalProjects                 int64           `json:"total_projects"`
	TotalContributors             int64           `json:"total_contributors"`
	TotalComments                 int64           `json:"total_comments"`
	TotalTaskAssignments          int64           `json:"total_task_assignments"`
	TotalTasksNoAssignee          int64           `json:"total_tasks_no_assignee"`
	ProjectWithMostTasks          *models.Project `json:"project_with_most_tasks"`
	ProjectWithMostContributors   *models.Project `json:"project_with_most_contributors"`
	ProjectsWithAllTasksCompleted int64           `json:"projects_with_all_tasks_completed"`

	TotalTasks      int64 `json:"total_tasks"`
	TasksDueToday   int64 `json:"tasks_due_today"`
	TasksDueIn7Days int64 `json:"tasks_due_in_7_days"`
	TasksPastDue    int64 `json:"tasks_past_due"`

	TasksPending    int64 `json:"tasks_pending"`
	TasksInProgress int64 `json:"tasks_in_progress"`
	TasksInReview   int64 `json:"tasks_in_review"`
	TasksCompleted  int64 `json:"tasks_completed"`
	TasksCancelled  int64 `json:"tasks_cancelled"`

	TasksLowImportance      int64 `json:"tasks_low_importance"`
	TasksMediumImportance   int64 `json:"tasks_medium_importance"`
	TasksHighImportance     int64 `json:"tasks_high_importance"`
	TasksCriticalImportance int64 `json:"tasks_critical_importance"`
}

// MetricsService computes dashboard aggregates. It queries the database
// directly since the numbers cut across every entity and none of the
// repository interfaces fit.
type MetricsService struct {
	db *gorm.DB

	// now is stubbed in tests
	now func() time.Time
}

// NewMetricsService creates a new MetricsService.
func NewMetricsService(db *gorm.DB) *MetricsService {
	return &MetricsService{db: db, now: time.Now}
}

// startOfDay truncates the current time to midnight local time.
func (s *MetricsService) startOfDay() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// assignedTaskIDs is a subquery selecting IDs of tasks assigned to the user.
func (s *MetricsService) assignedTaskIDs(userID uint64) *gorm.DB {
	return s.db.Model(&models.TaskAssignment{}).Select("task_id").Where("user_id = ?", userID)
}

// countUserTasks counts tasks the user authored plus tasks assigned to them,
// narrowed by scope. A task the user both authored and holds counts twice,
// matching how the dashboard has always summed the two groups.
func (s *MetricsService) countUserTasks(userID uint64, scope func(*gorm.DB) *gorm.DB) (int64, error) {
	var asAuthor, asAssignee int64

	if err := scope(s.db.Model(&models.Task{}).Where("author_id = ?", userID)).Count(&asAuthor).Error; err != nil {
		return 0, err
	}
	if err := scope(s.db.Model(&models.Task{}).Where("id IN (?)", s.assignedTaskIDs(userID))).Count(&asAssignee).Error; err != nil {
		return 0, err
	}

	return asAuthor + asAssignee, nil
}

func statusScope(status models.TaskStatus) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB { return q.Where("status = ?", status) }
}

func importanceScope(importance models.TaskImportance) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB { return q.Where("importance = ?", importance) }
}

// Dashboard assembles the full metrics payload for a user.
func (s *MetricsService) Dashboard(userID uint64) (*DashboardMetrics, error) {
	m := &DashboardMetrics{}

	if err := s.db.Model(&models.Project{}).Count(&m.TotalProjects).Error; err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}
	if err := s.db.Model(&models.Contributor{}).Where("contributor_id = ?", userID).Count(&m.TotalContributors).Error; err != nil {
		return nil, fmt.Errorf("failed to count contributors: %w", err)
	}
	if err := s.db.Model(&models.Comment{}).Where("author_id = ?", userID).Count(&m.TotalComments).Error; err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}
	if err := s.db.Model(&models.TaskAssignment{}).Where("user_id = ?", userID).Count(&m.TotalTaskAssignments).Error; err != nil {
		return nil, fmt.Errorf("failed to count assignments: %w", err)
	}

	assigned := s.db.Model(&models.TaskAssignment{}).Select("task_id")
	if err := s.db.Model(&models.Task{}).Where("id NOT IN (?)", assigned).Count(&m.TotalTasksNoAssignee).Error; err != nil {
		return nil, fmt.Errorf("failed to count unassigned tasks: %w", err)
	}

	var err error
	if m.ProjectWithMostTasks, err = s.topProject("tasks",
		"LEFT JOIN tasks ON tasks.project_id = projects.id AND tasks.deleted_at IS NULL"); err != nil {
		return nil, err
	}
	if m.ProjectWithMostContributors, err = s.topProject("contributors",
		"LEFT JOIN contributors ON contributors.project_id = projects.id"); err != nil {
		return nil, err
	}

	tasksExist := "EXISTS (SELECT 1 FROM tasks WHERE tasks.project_id = projects.id AND tasks.deleted_at IS NULL)"
	noneOpen := "NOT EXISTS (SELECT 1 FROM tasks WHERE tasks.project_id = projects.id AND tasks.deleted_at IS NULL AND tasks.status <> ?)"
	if err := s.db.Model(&models.Project{}).
		Where(tasksExist).
		Where(noneOpen, models.TaskStatusCompleted).
		Count(&m.ProjectsWithAllTasksCompleted).Error; err != nil {
		return nil, fmt.Errorf("failed to count completed projects: %w", err)
	}

	if err := s.db.Model(&models.Task{}).Where("author_id = ?", userID).Count(&m.TotalTasks).Error; err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	today := s.startOfDay()
	tomorrow := today.AddDate(0, 0, 1)
	weekOut := today.AddDate(0, 0, 8)

	counts := []struct {
		dst   *int64
		scope func(*gorm.DB) *gorm.DB
	}{
		{&m.TasksDueToday, func(q *gorm.DB) *gorm.DB {
			return q.Where("due_date >= ? AND due_date < ?", today, tomorrow)
		}},
		{&m.TasksDueIn7Days, func(q *gorm.DB) *gorm.DB {
			return q.Where("due_date >= ? AND due_date < ?", today, weekOut)
		}},
		{&m.TasksPastDue, func(q *gorm.DB) *gorm.DB {
			return q.Where("due_date < ?", today).
				Where("status NOT IN ?", []models.TaskStatus{models.TaskStatusCompleted, models.TaskStatusCancelled})
		}},
		{&m.TasksPending, statusScope(models.TaskStatusPending)},
		{&m.TasksInProgress, statusScope(models.TaskStatusInProgress)},
		{&m.TasksInReview, statusScope(models.TaskStatusInReview)},
		{&m.TasksCompleted, statusScope(models.TaskStatusCompleted)},
		{&m.TasksCancelled, statusScope(models.TaskStatusCancelled)},
		{&m.TasksLowImportance, importanceScope(models.ImportanceLow)},
		{&m.TasksMediumImportance, importanceScope(models.ImportanceMedium)},
		{&m.TasksHighImportance, importanceScope(models.ImportanceHigh)},
		{&m.TasksCriticalImportance, importanceScope(models.ImportanceCritical)},
	}
	for _, c := range counts {
		n, err := s.countUserTasks(userID, c.scope)
		if err != nil {
			return nil, fmt.Errorf("failed to count tasks: %w", err)
		}
		*c.dst = n
	}

	return m, nil
}

// topProject returns the project with the most rows in the given child table,
// or nil when no projects exist.
func (s *MetricsService) topProject(table, join string) (*models.Project, error) {
	var projects []models.Project

	order := fmt.Sprintf("COUNT(%s.id) DESC", table)
	err := s.db.Model(&models.Project{}).
		Joins(join).
		Group("projects.id").
		Order(order).
		Limit(1).
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank projects by %s: %w", table, err)
	}
	if len(projects) == 0 {
		return nil, nil
	}

	return &projects[0], nil
}

// userTasksDue lists open tasks the user authored or holds, narrowed by the
// due date window. Completed and cancelled tasks are excluded.
func (s *MetricsService) userTasksDue(userID uint64, window func(*gorm.DB) *gorm.DB) ([]models.Task, error) {
	var tasks []models.Task

	q := s.db.Model(&models.Task{}).
		Preload("Project").
		Where("author_id = ? OR id IN (?)", userID, s.assignedTaskIDs(userID)).
		Where("status NOT IN ?", []models.TaskStatus{models.TaskStatusCompleted, models.TaskStatusCancelled})
	if err := window(q).Order("due_date ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list due tasks: %w", err)
	}

	return tasks, nil
}

// TasksDueToday lists the user's open tasks due today.
func (s *MetricsService) TasksDueToday(userID uint64) ([]models.Task, error) {
	today := s.startOfDay()
	tomorrow := today.AddDate(0, 0, 1)
	return s.userTasksDue(userID, func(q *gorm.DB) *gorm.DB {
		return q.Where("due_date >= ? AND due_date < ?", today, tomorrow)
	})
}

// TasksDueIn7Days lists the user's open tasks due within the next seven days.
func (s *MetricsService) TasksDueIn7Days(userID uint64) ([]models.Task, error) {
	today := s.startOfDay()
	weekOut := today.AddDate(0, 0, 8)
	return s.userTasksDue(userID, func(q *gorm.DB) *gorm.DB {
		return q.Where("due_date >= ? AND due_date < ?", today, weekOut)
	})
}

// TasksPastDue lists the user's open tasks whose due date has passed.
func (s *MetricsService) TasksPastDue(userID uint64) ([]models.Task, error) {
	today := s.startOfDay()
	return s.userTasksDue(userID, func(q *gorm.DB) *gorm.DB {
		return q.Where("due_date < ?", today)
	})
}
