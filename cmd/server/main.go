package main

import (
	"flag"
	"net/http"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/tasklyhq/project-management-api/internal/config"
	"github.com/tasklyhq/project-management-api/internal/database"
	"github.com/tasklyhq/project-management-api/internal/handlers"
	"github.com/tasklyhq/project-management-api/internal/middleware"
	"github.com/tasklyhq/project-management-api/internal/repository"
	"github.com/tasklyhq/project-management-api/internal/services"
	"github.com/tasklyhq/project-management-api/internal/utils"
	"github.com/tasklyhq/project-management-api/internal/web"
	"github.com/tasklyhq/project-management-api/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.Log.Level)
	gin.SetMode(cfg.Server.Mode)
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := database.Connect(cfg); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		logger.Fatalf("Failed to create indexes: %v", err)
	}

	// Repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)
	commentService := services.NewCommentService(commentRepo, taskRepo, projectRepo)
	assignmentService := services.NewAssignmentService(taskRepo, projectRepo, userRepo)
	metricsService := services.NewMetricsService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.JWT.ExpireHours)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	commentHandler := handlers.NewCommentHandler(commentService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	metricsHandler := handlers.NewMetricsHandler(metricsService)
	webHandler := web.NewHandler(authService, projectService, taskService, commentService, assignmentService, metricsService)

	r := gin.New()
	r.Use(logger.GinLogger(), logger.GinRecovery(), middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes (bearer token)
	api := r.Group("/api")
	{
		api.GET("/ping", handlers.Ping)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		projects := api.Group("/projects")
		projects.Use(middleware.AuthRequired())
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)

			projects.GET("/:id/contributors", projectHandler.ListContributors)
			projects.POST("/:id/contributors", projectHandler.AddContributor)
			projects.PUT("/:id/contributors/:user_id", projectHandler.UpdateContributor)
			projects.DELETE("/:id/contributors/:user_id", projectHandler.RemoveContributor)

			projects.GET("/:id/tasks", taskHandler.ListTasks)
			projects.POST("/:id/tasks", taskHandler.CreateTask)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.AuthRequired())
		{
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)

			tasks.GET("/:id/comments", commentHandler.ListComments)
			tasks.POST("/:id/comments", commentHandler.CreateComment)

			tasks.GET("/:id/assignments", assignmentHandler.TaskAssignments)
			tasks.POST("/:id/assignments", assignmentHandler.Assign)
			tasks.DELETE("/:id/assignments/:user_id", assignmentHandler.Unassign)
		}

		comments := api.Group("/comments")
		comments.Use(middleware.AuthRequired())
		{
			comments.GET("/:id", commentHandler.GetComment)
			comments.PUT("/:id", commentHandler.UpdateComment)
			comments.DELETE("/:id", commentHandler.DeleteComment)
		}

		assignments := api.Group("/assignments")
		assignments.Use(middleware.AuthRequired())
		{
			assignments.GET("/mine", assignmentHandler.MyAssignments)
		}

		metrics := api.Group("/metrics")
		metrics.Use(middleware.AuthRequired())
		{
			metrics.GET("", metricsHandler.Dashboard)
			metrics.GET("/tasks/due-today", metricsHandler.TasksDueToday)
			metrics.GET("/tasks/due-in-7-days", metricsHandler.TasksDueIn7Days)
			metrics.GET("/tasks/past-due", metricsHandler.TasksPastDue)
		}
	}

	// Web routes (session cookie via Redis)
	store, err := redisStore.NewStore(
		10,
		"tcp",
		cfg.Redis.Host+":"+cfg.Redis.Port,
		"",
		"",
		[]byte(cfg.Session.Secret),
	)
	if err != nil {
		logger.Fatalf("Failed to create Redis store: %v", err)
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   cfg.Server.Mode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})

	webGroup := r.Group("/web")
	webGroup.Use(sessions.Sessions("project_session", store))
	{
		webGroup.POST("/login", webHandler.Login)
		webGroup.POST("/logout", webHandler.Logout)

		pages := webGroup.Group("")
		pages.Use(middleware.SessionAuthRequired())
		{
			pages.GET("/dashboard", webHandler.Dashboard)
			pages.GET("/projects", webHandler.ProjectIndex)
			pages.GET("/projects/:id", webHandler.ProjectShow)
			pages.GET("/projects/:id/contributors", webHandler.Contributors)
			pages.GET("/tasks/:id", webHandler.TaskShow)
		}
	}

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Infof("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
