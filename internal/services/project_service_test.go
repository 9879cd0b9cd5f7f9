package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tasklyhq/project-management-api/internal/models"
	"github.com/tasklyhq/project-management-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type ProjectServiceTestSuite struct {
	suite.Suite
	db             *gorm.DB
	projectService *ProjectService
	taskService    *TaskService
	commentService *CommentService
}

func (suite *ProjectServiceTestSuite) SetupTest() {
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
	commentRepo := repository.NewCommentRepository(db)
	suite.projectService = NewProjectService(projectRepo, userRepo)
	suite.taskService = NewTaskService(taskRepo, projectRepo)
	suite.commentService = NewCommentService(commentRepo, taskRepo, projectRepo)
}

func (suite *ProjectServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ProjectServiceTestSuite) createUser(name, email string) *models.User {
	user := &models.User{Name: name, Email: email, PasswordHash: "hashed"}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *ProjectServiceTestSuite) createProject(name string, authorID uint64) *models.Project {
	project, err := suite.projectService.CreateProject(CreateProjectInput{
		Name:     name,
		AuthorID: authorID,
	})
	suite.Require().NoError(err)
	return project
}

func (suite *ProjectServiceTestSuite) addContributor(projectID, actorID uint64, email string, isEditor bool) *models.Contributor {
	contributor, err := suite.projectService.AddContributor(AddContributorInput{
		ProjectID: projectID,
		ActorID:   actorID,
		Email:     email,
		IsEditor:  isEditor,
	})
	suite.Require().NoError(err)
	return contributor
}

func (suite *ProjectServiceTestSuite) TestCreateProject_RequiresName() {
	author := suite.createUser("alice", "alice@example.com")

	_, err := suite.projectService.CreateProject(CreateProjectInput{Name: "  ", AuthorID: author.ID})
	suite.ErrorIs(err, ErrProjectNameRequired)
}

func (suite *ProjectServiceTestSuite) TestGetProject_AuthorAndContributorOnly() {
	author := suite.createUser("alice", "alice@example.com")
	viewer := suite.createUser("bob", "bob@example.com")
	stranger := suite.createUser("carol", "carol@example.com")
	project := suite.createProject("Launch", author.ID)
	suite.addContributor(project.ID, author.ID, viewer.Email, false)

	_, err := suite.projectService.GetProject(project.ID, author.ID)
	suite.NoError(err)

	_, err = suite.projectService.GetProject(project.ID, viewer.ID)
	suite.NoError(err)

	_, err = suite.projectService.GetProject(project.ID, stranger.ID)
	suite.ErrorIs(err, ErrNotProjectViewer)
}

func (suite *ProjectServiceTestSuite) TestGetProject_NotFound() {
	author := suite.createUser("alice", "alice@example.com")

	_, err := suite.projectService.GetProject(999, author.ID)
	suite.ErrorIs(err, ErrProjectNotFound)
}

func (suite *ProjectServiceTestSuite) TestListProjects_IncludesContributed() {
	author := suite.createUser("alice", "alice@example.com")
	member := suite.createUser("bob", "bob@example.com")
	suite.createProject("Mine", member.ID)
	shared := suite.createProject("Shared", author.ID)
	suite.createProject("Hidden", author.ID)
	suite.addContributor(shared.ID, author.ID, member.Email, false)

	projects, total, err := suite.projectService.ListProjects(member.ID, 0, 10)
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)

	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	suite.ElementsMatch([]string{"Mine", "Shared"}, names)
}

func (suite *ProjectServiceTestSuite) TestUpdateProject_AuthorOnly() {
	author := suite.createUser("alice", "alice@example.com")
	editor := suite.createUser("bob", "bob@example.com")
	project := suite.createProject("Launch", author.ID)
	suite.addContributor(project.ID, author.ID, editor.Email, true)

	name := "Renamed"
	_, err := suite.projectService.UpdateProject(project.ID, editor.ID, UpdateProjectInput{Name: &name})
	suite.ErrorIs(err, ErrNotProjectAuthorUpdate)

	updated, err := suite.projectService.UpdateProject(project.ID, author.ID, UpdateProjectInput{Name: &name})
	suite.Require().NoError(err)
	suite.Equal("Renamed", updated.Name)
}

func (suite *ProjectServiceTestSuite) TestDeleteProject_AuthorOnly() {
	author := suite.createUser("alice", "alice@example.com")
	editor := suite.createUser("bob", "bob@example.com")
	project := suite.createProject("Launch", author.ID)
	suite.addContributor(project.ID, author.ID, editor.Email, true)

	err := suite.projectService.DeleteProject(project.ID, editor.ID)
	suite.ErrorIs(err, ErrNotProjectAuthorDelete)

	suite.Require().NoError(suite.projectService.DeleteProject(project.ID, author.ID))

	_, err = suite.projectService.GetProject(project.ID, author.ID)
	suite.ErrorIs(err, ErrProjectNotFound)
}

func (suite *ProjectServiceTestSuite) TestDeleteProject_CascadesToChildren() {
	author := suite.createUser("alice", "alice@example.com")
	editor := suite.createUser("bob", "bob@example.com")
	project := suite.createProject("Launch", author.ID)
	suite.addContributor(project.ID, author.ID, editor.Email, true)

	task, err := suite.taskService.CreateTask(CreateTaskInput{
		ProjectID: project.ID,
		ActorID:   editor.ID,
		Name:      "Ship it",
	})
	suite.Require().NoError(err)

	_, err = suite.commentService.CreateComment(CreateCommentInput{
		TaskID:  task.ID,
		ActorID: editor.ID,
		Name:    "On it",
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.projectService.DeleteProject(project.ID, author.ID))

	var tasks, comments, contributors int64
	suite.db.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&tasks)
	suite.db.Model(&models.Comment{}).Where("task_id = ?", task.ID).Count(&comments)
	suite.db.Model(&models.Contributor{}).Where("project_id = ?", project.ID).Count(&contributors)
	suite.Zero(tasks)
	suite.Zero(comments)
	suite.Zero(contributors)
}

func (suite *ProjectServiceTestSuite) TestAddContributor_AuthorOnly() {
	author := suite.createUser("alice", "alice@example.com")
	member := suite.createUser("bob", "bob@example.com")
	other := suite.createUser("carol", "carol@example.com")
	project := suite.createProject("Launch", author.ID)
	suite.addContributor(project.ID, author.ID, member.Email, false)

	_, err := suite.projectService.AddContributor(AddContributorInput{
		ProjectID: project.ID,
		ActorID:   member.ID,
		Email:     other.Email,
	})
	suite.ErrorIs(err, ErrNotProjectAuthorAddUser)
}

func (suite *ProjectServiceTestSuite) TestAddContributor_SelfRejected() {
	author := suite.createUser("alice", "alice@example.com")
	project := suite.createProject("Launch", author.ID)

	_, err := suite.projectService.AddContributor(AddContributorInput{
		ProjectID: project.ID,
		ActorID:   author.ID,
		Email:     author.Email,
	})
	suite.ErrorIs(err, ErrCannotAddSelf)
}

func (suite *ProjectServiceTestSuite) TestAddContributor_DuplicateRejected() {
	author := suite.createUser("alice", "alice@example.com")
	member := suite.createUser("bob", "bob@example.com")
	project := suite.createProject("Launch", author.ID)
	suite.addContributor(project.ID, author.ID, member.Email, false)

	_, err := suite.projectService.AddContributor(AddContributorInput{
		ProjectID: project.ID,
		ActorID:   author.ID,
		Email:     member.Email,
	})
	suite.ErrorIs(err, ErrAlreadyContributor)
}

func (suite *ProjectServiceTestSuite) TestAddContributor_UnknownEmail() {
	author := suite.createUser("alice", "alice@example.com")
	project := suite.createProject("Launch", author.ID)

	_, err := suite.projectService.AddContributor(AddContributorInput{
		ProjectID: project.ID,
		ActorID:   author.ID,
		Email:     "nobody@example.com",
	})
	suite.ErrorIs(err, ErrUserNotFound)
}

func (suite *ProjectServiceTestSuite) TestUpdateContributor_OwnIDRejected() {
	author := suite.createUser("alice", "alice@example.com")
	member := suite.createUser("bob", "bob@example.com")
	project := suite.createProject("Launch", author.ID)
	suite.addContributor(project.ID, author.ID, member.Email, false)

	_, err := suite.projectService.UpdateContributor(project.ID, author.ID, author.ID, true)
	suite.ErrorIs(err, ErrOwnContributorID)
}

func (suite *ProjectServiceTestSuite) TestUpdateContributor_PromotesToEditor() {
	author := suite.createUser("alice", "alice@example.com")
	member := suite.createUser("bob", "bob@example.com")
	project := suite.createProject("Launch", author.ID)
	suite.addContributor(project.ID, author.ID, member.Email, false)

	contributor, err := suite.projectService.UpdateContributor(project.ID, author.ID, member.ID, true)
	suite.Require().NoError(err)
	suite.True(contributor.IsEditor)

	// Promotion takes effect immediately
	_, err = suite.taskService.CreateTask(CreateTaskInput{
		ProjectID: project.ID,
		ActorID:   member.ID,
		Name:      "Now allowed",
	})
	suite.NoError(err)
}

func (suite *ProjectServiceTestSuite) TestRemoveContributor_RevokesAccess() {
	author := suite.createUser("alice", "alice@example.com")
	member := suite.createUser("bob", "bob@example.com")
	other := suite.createUser("carol", "carol@example.com")
	project := suite.createProject("Launch", author.ID)
	suite.addContributor(project.ID, author.ID, member.Email, true)

	err := suite.projectService.RemoveContributor(project.ID, other.ID, member.ID)
	suite.ErrorIs(err, ErrNotProjectAuthorRemove)

	suite.Require().NoError(suite.projectService.RemoveContributor(project.ID, author.ID, member.ID))

	_, err = suite.projectService.GetProject(project.ID, member.ID)
	suite.ErrorIs(err, ErrNotProjectViewer)
}

func (suite *ProjectServiceTestSuite) TestRemoveContributor_OwnIDRejected() {
	author := suite.createUser("alice", "alice@example.com")
	member := suite.createUser("bob", "bob@example.com")
	project := suite.createProject("Launch", author.ID)
	suite.addContributor(project.ID, author.ID, member.Email, true)

	// Passing your own id as the contributor id fails before the policy runs
	err := suite.projectService.RemoveContributor(project.ID, member.ID, member.ID)
	suite.ErrorIs(err, ErrOwnContributorID)
}

func (suite *ProjectServiceTestSuite) TestListContributors_ViewersOnly() {
	author := suite.createUser("alice", "alice@example.com")
	member := suite.createUser("bob", "bob@example.com")
	stranger := suite.createUser("carol", "carol@example.com")
	project := suite.createProject("Launch", author.ID)
	suite.addContributor(project.ID, author.ID, member.Email, false)

	contributors, err := suite.projectService.ListContributors(project.ID, member.ID)
	suite.Require().NoError(err)
	suite.Len(contributors, 1)

	_, err = suite.projectService.ListContributors(project.ID, stranger.ID)
	suite.ErrorIs(err, ErrNotContributorViewer)
}

func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
