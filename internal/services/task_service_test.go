package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/tasklyhq/project-management-api/internal/models"
	"github.com/tasklyhq/project-management-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type TaskServiceTestSuite struct {
	suite.Suite
	db             *gorm.DB
	taskService    *TaskService
	projectService *ProjectService

	author  *models.User
	editor  *models.User
	viewer  *models.User
	outside *models.User
	project *models.Project
}

func (suite *TaskServiceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Contributor{},
		&models.Task{},
		&models.Comment{},
		&models.TaskAssignment{},
	)
	suite.Require().NoError(err)

	suite.db = db
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	suite.projectService = NewProjectService(projectRepo, userRepo)
	suite.taskService = NewTaskService(taskRepo, projectRepo)

	suite.author = suite.createUser("alice", "alice@example.com")
	suite.editor = suite.createUser("bob", "bob@example.com")
	suite.viewer = suite.createUser("carol", "carol@example.com")
	suite.outside = suite.createUser("dave", "dave@example.com")

	project, err := suite.projectService.CreateProject(CreateProjectInput{
		Name:     "Launch",
		AuthorID: suite.author.ID,
	})
	suite.Require().NoError(err)
	suite.project = project

	_, err = suite.projectService.AddContributor(AddContributorInput{
		ProjectID: project.ID,
		ActorID:   suite.author.ID,
		Email:     suite.editor.Email,
		IsEditor:  true,
	})
	suite.Require().NoError(err)

	_, err = suite.projectService.AddContributor(AddContributorInput{
		ProjectID: project.ID,
		ActorID:   suite.author.ID,
		Email:     suite.viewer.Email,
		IsEditor:  false,
	})
	suite.Require().NoError(err)
}

func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskServiceTestSuite) createUser(name, email string) *models.User {
	user := &models.User{Name: name, Email: email, PasswordHash: "hashed"}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *TaskServiceTestSuite) createTask(actorID uint64, name string) *models.Task {
	task, err := suite.taskService.CreateTask(CreateTaskInput{
		ProjectID: suite.project.ID,
		ActorID:   actorID,
		Name:      name,
	})
	suite.Require().NoError(err)
	return task
}

func (suite *TaskServiceTestSuite) TestCreateTask_Defaults() {
	task := suite.createTask(suite.author.ID, "Ship it")

	suite.Equal(models.TaskStatusPending, task.Status)
	suite.Equal(models.ImportanceMedium, task.Importance)
	suite.Equal(suite.author.ID, task.AuthorID)
	suite.Nil(task.DueDate)
}

func (suite *TaskServiceTestSuite) TestCreateTask_EditorAllowedViewerDenied() {
	_, err := suite.taskService.CreateTask(CreateTaskInput{
		ProjectID: suite.project.ID,
		ActorID:   suite.editor.ID,
		Name:      "Editor task",
	})
	suite.NoError(err)

	_, err = suite.taskService.CreateTask(CreateTaskInput{
		ProjectID: suite.project.ID,
		ActorID:   suite.viewer.ID,
		Name:      "Viewer task",
	})
	suite.ErrorIs(err, ErrNotTaskCreator)
}

func (suite *TaskServiceTestSuite) TestCreateTask_InvalidEnums() {
	_, err := suite.taskService.CreateTask(CreateTaskInput{
		ProjectID: suite.project.ID,
		ActorID:   suite.author.ID,
		Name:      "Bad status",
		Status:    "archived",
	})
	suite.ErrorIs(err, ErrInvalidStatus)

	_, err = suite.taskService.CreateTask(CreateTaskInput{
		ProjectID:  suite.project.ID,
		ActorID:    suite.author.ID,
		Name:       "Bad importance",
		Importance: "urgent",
	})
	suite.ErrorIs(err, ErrInvalidImportance)
}

func (suite *TaskServiceTestSuite) TestListTasks_ViewerAllowedStrangerDenied() {
	suite.createTask(suite.author.ID, "Ship it")

	tasks, total, err := suite.taskService.ListTasks(suite.project.ID, suite.viewer.ID, 0, 10)
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Len(tasks, 1)

	_, _, err = suite.taskService.ListTasks(suite.project.ID, suite.outside.ID, 0, 10)
	suite.ErrorIs(err, ErrNotTaskListViewer)
}

func (suite *TaskServiceTestSuite) TestGetTask_StrangerDenied() {
	task := suite.createTask(suite.author.ID, "Ship it")

	_, err := suite.taskService.GetTask(task.ID, suite.viewer.ID)
	suite.NoError(err)

	_, err = suite.taskService.GetTask(task.ID, suite.outside.ID)
	suite.ErrorIs(err, ErrNotTaskViewer)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_StatusFreeOrder() {
	task := suite.createTask(suite.author.ID, "Ship it")

	// Any state may be set directly, including backwards moves
	for _, status := range []models.TaskStatus{
		models.TaskStatusCompleted,
		models.TaskStatusPending,
		models.TaskStatusCancelled,
		models.TaskStatusInReview,
	} {
		s := status
		updated, err := suite.taskService.UpdateTask(task.ID, suite.editor.ID, UpdateTaskInput{Status: &s})
		suite.Require().NoError(err)
		suite.Equal(status, updated.Status)
	}
}

func (suite *TaskServiceTestSuite) TestUpdateTask_ViewerDenied() {
	task := suite.createTask(suite.author.ID, "Ship it")

	name := "Renamed"
	_, err := suite.taskService.UpdateTask(task.ID, suite.viewer.ID, UpdateTaskInput{Name: &name})
	suite.ErrorIs(err, ErrNotTaskEditor)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_DueDate() {
	task := suite.createTask(suite.author.ID, "Ship it")

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	updated, err := suite.taskService.UpdateTask(task.ID, suite.author.ID, UpdateTaskInput{DueDate: &due})
	suite.Require().NoError(err)
	suite.Require().NotNil(updated.DueDate)
	suite.True(updated.DueDate.Equal(due))

	cleared, err := suite.taskService.UpdateTask(task.ID, suite.author.ID, UpdateTaskInput{ClearDueDate: true})
	suite.Require().NoError(err)
	suite.Nil(cleared.DueDate)
}

func (suite *TaskServiceTestSuite) TestDeleteTask_EditorAllowedViewerDenied() {
	task := suite.createTask(suite.author.ID, "Ship it")

	err := suite.taskService.DeleteTask(task.ID, suite.viewer.ID)
	suite.ErrorIs(err, ErrNotTaskDeleter)

	suite.Require().NoError(suite.taskService.DeleteTask(task.ID, suite.editor.ID))

	_, err = suite.taskService.GetTask(task.ID, suite.author.ID)
	suite.ErrorIs(err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestTaskNotFound() {
	_, err := suite.taskService.GetTask(999, suite.author.ID)
	suite.ErrorIs(err, ErrTaskNotFound)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
