package dto

import (
	"time"

	"github.com/tasklyhq/project-management-api/internal/models"
)

// TaskAssignmentDTO represents a task assignment in API responses
type TaskAssignmentDTO struct {
	ID         uint64    `json:"id"`
	TaskID     uint64    `json:"task_id"`
	User       UserDTO   `json:"user"`
	AssignedBy uint64    `json:"assigned_by"`
	Assigner   *UserDTO  `json:"assigner,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AssignedTaskDTO represents an assignment with its task, used on the
// "my assignments" listing
type AssignedTaskDTO struct {
	ID         uint64           `json:"id"`
	Task       *TaskListItemDTO `json:"task,omitempty"`
	AssignedBy uint64           `json:"assigned_by"`
	Assigner   *UserDTO         `json:"assigner,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	TaskID    uint64    `json:"task_id"`
	AuthorID  uint64    `json:"author_id"`
	Author    *UserDTO  `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Status      models.TaskStatus     `json:"status"`
	Importance  models.TaskImportance `json:"importance"`
	DueDate     *time.Time            `json:"due_date"`
	AuthorID    uint64                `json:"author_id"`
	ProjectID   uint64                `json:"project_id"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
	Author      *UserDTO              `json:"author,omitempty"`
	Assignments []TaskAssignmentDTO   `json:"assignments,omitempty"`
}

// TaskListItemDTO represents a task in list responses (minimal data)
type TaskListItemDTO struct {
	ID          uint64                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Status      models.TaskStatus     `json:"status"`
	Importance  models.TaskImportance `json:"importance"`
	DueDate     *time.Time            `json:"due_date"`
	AuthorID    uint64                `json:"author_id"`
	ProjectID   uint64                `json:"project_id"`
	Author      *UserDTO              `json:"author,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskListItemDTO `json:"tasks"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
	TotalPages int               `json:"total_pages"`
}

// CommentListResponse represents a paginated list of comments
type CommentListResponse struct {
	Comments   []CommentDTO `json:"comments"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalCount int64        `json:"total_count"`
	TotalPages int          `json:"total_pages"`
}

// Conversion functions

// ToTaskAssignmentDTO converts a TaskAssignment model to TaskAssignmentDTO
func ToTaskAssignmentDTO(assignment models.TaskAssignment) TaskAssignmentDTO {
	dto := TaskAssignmentDTO{
		ID:         assignment.ID,
		TaskID:     assignment.TaskID,
		User:       ToUserDTO(assignment.User),
		AssignedBy: assignment.AssignedBy,
		CreatedAt:  assignment.CreatedAt,
	}

	if assignment.Assigner.ID != 0 {
		assigner := ToUserDTO(assignment.Assigner)
		dto.Assigner = &assigner
	}

	return dto
}

// ToTaskAssignmentDTOs converts a slice of assignments
func ToTaskAssignmentDTOs(assignments []models.TaskAssignment) []TaskAssignmentDTO {
	dtos := make([]TaskAssignmentDTO, len(assignments))
	for i, assignment := range assignments {
		dtos[i] = ToTaskAssignmentDTO(assignment)
	}
	return dtos
}

// ToAssignedTaskDTO converts an assignment with its preloaded task
func ToAssignedTaskDTO(assignment models.TaskAssignment) AssignedTaskDTO {
	dto := AssignedTaskDTO{
		ID:         assignment.ID,
		AssignedBy: assignment.AssignedBy,
		CreatedAt:  assignment.CreatedAt,
	}

	if assignment.Task.ID != 0 {
		task := ToTaskListItemDTO(assignment.Task)
		dto.Task = &task
	}
	if assignment.Assigner.ID != 0 {
		assigner := ToUserDTO(assignment.Assigner)
		dto.Assigner = &assigner
	}

	return dto
}

// ToAssignedTaskDTOs converts a slice of assignments with tasks
func ToAssignedTaskDTOs(assignments []models.TaskAssignment) []AssignedTaskDTO {
	dtos := make([]AssignedTaskDTO, len(assignments))
	for i, assignment := range assignments {
		dtos[i] = ToAssignedTaskDTO(assignment)
	}
	return dtos
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	dto := CommentDTO{
		ID:        comment.ID,
		Name:      comment.Name,
		TaskID:    comment.TaskID,
		AuthorID:  comment.AuthorID,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}

	if comment.Author.ID != 0 {
		author := ToUserDTO(comment.Author)
		dto.Author = &author
	}

	return dto
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Status:      task.Status,
		Importance:  task.Importance,
		DueDate:     task.DueDate,
		AuthorID:    task.AuthorID,
		ProjectID:   task.ProjectID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include author if preloaded
	if task.Author.ID != 0 {
		author := ToUserDTO(task.Author)
		dto.Author = &author
	}

	// Include assignments if preloaded
	if len(task.Assignments) > 0 {
		dto.Assignments = ToTaskAssignmentDTOs(task.Assignments)
	}

	return dto
}

// ToTaskListItemDTO converts a Task model to TaskListItemDTO
func ToTaskListItemDTO(task models.Task) TaskListItemDTO {
	dto := TaskListItemDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Status:      task.Status,
		Importance:  task.Importance,
		DueDate:     task.DueDate,
		AuthorID:    task.AuthorID,
		ProjectID:   task.ProjectID,
		CreatedAt:   task.CreatedAt,
	}

	if task.Author.ID != 0 {
		author := ToUserDTO(task.Author)
		dto.Author = &author
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskListItemDTO(task)
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, pageSize),
	}
}

// ToCommentListResponse converts a slice of comments to CommentListResponse
func ToCommentListResponse(comments []models.Comment, page, pageSize int, totalCount int64) CommentListResponse {
	items := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		items[i] = ToCommentDTO(comment)
	}

	return CommentListResponse{
		Comments:   items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, pageSize),
	}
}

func totalPages(totalCount int64, pageSize int) int {
	pages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		pages++
	}
	return pages
}
