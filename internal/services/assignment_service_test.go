package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tasklyhq/project-management-api/internal/models"
	"github.com/tasklyhq/project-management-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type AssignmentServiceTestSuite struct {
	suite.Suite
	db                *gorm.DB
	assignmentService *AssignmentService
	taskService       *TaskService
	projectService    *ProjectService

	author  *models.User
	editor  *models.User
	viewer  *models.User
	outside *models.User
	project *models.Project
	task    *models.Task
}

func (suite *AssignmentServiceTestSuite) SetupTest() {
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
	suite.assignmentService = NewAssignmentService(taskRepo, projectRepo, userRepo)

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
	})
	suite.Require().NoError(err)

	task, err := suite.taskService.CreateTask(CreateTaskInput{
		ProjectID: project.ID,
		ActorID:   suite.author.ID,
		Name:      "Ship it",
	})
	suite.Require().NoError(err)
	suite.task = task
}

func (suite *AssignmentServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AssignmentServiceTestSuite) createUser(name, email string) *models.User {
	user := &models.User{Name: name, Email: email, PasswordHash: "hashed"}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *AssignmentServiceTestSuite) TestAssign_EditorAllowed() {
	assignment, err := suite.assignmentService.Assign(suite.task.ID, suite.editor.ID, suite.viewer.ID)
	suite.Require().NoError(err)
	suite.Equal(suite.viewer.ID, assignment.UserID)
	suite.Equal(suite.editor.ID, assignment.AssignedBy)
}

func (suite *AssignmentServiceTestSuite) TestAssign_ViewerDenied() {
	_, err := suite.assignmentService.Assign(suite.task.ID, suite.viewer.ID, suite.editor.ID)
	suite.ErrorIs(err, ErrCannotAssign)
}

func (suite *AssignmentServiceTestSuite) TestAssign_DuplicateRejected() {
	_, err := suite.assignmentService.Assign(suite.task.ID, suite.author.ID, suite.viewer.ID)
	suite.Require().NoError(err)

	_, err = suite.assignmentService.Assign(suite.task.ID, suite.author.ID, suite.viewer.ID)
	suite.ErrorIs(err, ErrAlreadyAssigned)
}

func (suite *AssignmentServiceTestSuite) TestAssign_UnknownUser() {
	_, err := suite.assignmentService.Assign(suite.task.ID, suite.author.ID, 999)
	suite.ErrorIs(err, ErrAssigneeNotFound)
}

func (suite *AssignmentServiceTestSuite) TestAssign_UnknownUserBeforeDenial() {
	// An unknown assignee reports not-found even when the actor lacks rights
	_, err := suite.assignmentService.Assign(suite.task.ID, suite.viewer.ID, 999)
	suite.ErrorIs(err, ErrAssigneeNotFound)
}

func (suite *AssignmentServiceTestSuite) TestAssign_DuplicateBeforeDenial() {
	_, err := suite.assignmentService.Assign(suite.task.ID, suite.author.ID, suite.editor.ID)
	suite.Require().NoError(err)

	_, err = suite.assignmentService.Assign(suite.task.ID, suite.viewer.ID, suite.editor.ID)
	suite.ErrorIs(err, ErrAlreadyAssigned)
}

func (suite *AssignmentServiceTestSuite) TestAssign_TaskNotFound() {
	_, err := suite.assignmentService.Assign(999, suite.author.ID, suite.viewer.ID)
	suite.ErrorIs(err, ErrTaskNotFound)
}

func (suite *AssignmentServiceTestSuite) TestUnassign_SelfRemovalAllowed() {
	_, err := suite.assignmentService.Assign(suite.task.ID, suite.author.ID, suite.viewer.ID)
	suite.Require().NoError(err)

	// The assignee may remove their own assignment even without editor rights
	suite.NoError(suite.assignmentService.Unassign(suite.task.ID, suite.viewer.ID, suite.viewer.ID))
}

func (suite *AssignmentServiceTestSuite) TestUnassign_ViewerCannotRemoveOthers() {
	_, err := suite.assignmentService.Assign(suite.task.ID, suite.author.ID, suite.editor.ID)
	suite.Require().NoError(err)

	err = suite.assignmentService.Unassign(suite.task.ID, suite.viewer.ID, suite.editor.ID)
	suite.ErrorIs(err, ErrCannotUnassign)
}

func (suite *AssignmentServiceTestSuite) TestUnassign_EditorCanRemoveOthers() {
	_, err := suite.assignmentService.Assign(suite.task.ID, suite.author.ID, suite.viewer.ID)
	suite.Require().NoError(err)

	suite.NoError(suite.assignmentService.Unassign(suite.task.ID, suite.editor.ID, suite.viewer.ID))
}

func (suite *AssignmentServiceTestSuite) TestUnassign_StrangerDenied() {
	_, err := suite.assignmentService.Assign(suite.task.ID, suite.author.ID, suite.viewer.ID)
	suite.Require().NoError(err)

	err = suite.assignmentService.Unassign(suite.task.ID, suite.outside.ID, suite.viewer.ID)
	suite.ErrorIs(err, ErrCannotUnassign)
}

func (suite *AssignmentServiceTestSuite) TestUnassign_NotAssigned() {
	err := suite.assignmentService.Unassign(suite.task.ID, suite.author.ID, suite.viewer.ID)
	suite.ErrorIs(err, ErrNotAssigned)
}

func (suite *AssignmentServiceTestSuite) TestTaskAssignments_ViewerAllowedStrangerDenied() {
	_, err := suite.assignmentService.Assign(suite.task.ID, suite.author.ID, suite.viewer.ID)
	suite.Require().NoError(err)

	assignments, err := suite.assignmentService.TaskAssignments(suite.task.ID, suite.viewer.ID)
	suite.Require().NoError(err)
	suite.Len(assignments, 1)

	_, err = suite.assignmentService.TaskAssignments(suite.task.ID, suite.outside.ID)
	suite.ErrorIs(err, ErrNotTaskViewer)
}

func (suite *AssignmentServiceTestSuite) TestMyAssignments() {
	_, err := suite.assignmentService.Assign(suite.task.ID, suite.author.ID, suite.viewer.ID)
	suite.Require().NoError(err)

	mine, err := suite.assignmentService.MyAssignments(suite.viewer.ID)
	suite.Require().NoError(err)
	suite.Require().Len(mine, 1)
	suite.Equal(suite.task.ID, mine[0].TaskID)

	none, err := suite.assignmentService.MyAssignments(suite.outside.ID)
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *AssignmentServiceTestSuite) TestReassignAfterUnassign() {
	_, err := suite.assignmentService.Assign(suite.task.ID, suite.author.ID, suite.viewer.ID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.assignmentService.Unassign(suite.task.ID, suite.author.ID, suite.viewer.ID))

	// The pair is free again once the assignment is removed
	_, err = suite.assignmentService.Assign(suite.task.ID, suite.author.ID, suite.viewer.ID)
	suite.NoError(err)
}

func TestAssignmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentServiceTestSuite))
}
