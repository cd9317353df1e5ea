package handlers

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/project-estimation-api/internal/estimation"
	"github.com/yukikurage/project-estimation-api/internal/middleware"
	"github.com/yukikurage/project-estimation-api/internal/repository"
	"github.com/yukikurage/project-estimation-api/internal/services"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the router wires into handlers
type Dependencies struct {
	DB             *gorm.DB
	Log            *slog.Logger
	AllowedOrigins []string
	// AIService is optional; stage suggestions answer 503 without it.
	AIService *services.AIService
}

// NewRouter builds the gin engine with every route registered
func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(deps.Log),
		middleware.Metrics(),
		cors.New(corsConfig(deps.AllowedOrigins)),
	)

	// Repositories
	programmerRepo := repository.NewProgrammerRepository(deps.DB)
	taskRepo := repository.NewTaskRepository(deps.DB)
	projectRepo := repository.NewProjectRepository(deps.DB)
	stageRepo := repository.NewStageRepository(deps.DB)
	projectTaskRepo := repository.NewProjectTaskRepository(deps.DB)

	// Services
	aggregator := estimation.NewAggregator(projectRepo)
	programmerService := services.NewProgrammerService(programmerRepo)
	taskService := services.NewTaskService(taskRepo)
	projectService := services.NewProjectService(projectRepo, programmerRepo, taskRepo, aggregator)
	stageService := services.NewStageService(stageRepo, projectRepo, programmerRepo, taskRepo)
	projectTaskService := services.NewProjectTaskService(projectTaskRepo, stageRepo, programmerRepo, taskRepo)
	planningService := services.NewPlanningService(taskRepo, deps.AIService)

	// Handlers
	healthHandler := NewHealthHandler(deps.DB)
	programmerHandler := NewProgrammerHandler(programmerService, deps.Log)
	taskHandler := NewTaskHandler(taskService, deps.Log)
	projectHandler := NewProjectHandler(projectService, planningService, deps.Log)
	stageHandler := NewStageHandler(stageService, deps.Log)
	projectTaskHandler := NewProjectTaskHandler(projectTaskService, deps.Log)

	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		programmers := api.Group("/programmers")
		{
			programmers.POST("", programmerHandler.CreateProgrammer)
			programmers.GET("", programmerHandler.ListProgrammers)
			programmers.GET("/:id", programmerHandler.GetProgrammer)
			programmers.PUT("/:id", programmerHandler.UpdateProgrammer)
			programmers.DELETE("/:id", programmerHandler.DeleteProgrammer)
		}

		tasks := api.Group("/tasks")
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		projects := api.Group("/projects")
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.POST("/suggest", projectHandler.SuggestStages)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
		}

		stages := api.Group("/stages")
		{
			stages.POST("", stageHandler.CreateStage)
			stages.GET("", stageHandler.ListStages)
			stages.GET("/:id", stageHandler.GetStage)
			stages.PUT("/:id", stageHandler.UpdateStage)
			stages.DELETE("/:id", stageHandler.DeleteStage)
		}

		projectTasks := api.Group("/project-tasks")
		{
			projectTasks.POST("", projectTaskHandler.CreateProjectTask)
			projectTasks.GET("/:id", projectTaskHandler.GetProjectTask)
			projectTasks.PUT("/:id", projectTaskHandler.UpdateProjectTask)
			projectTasks.DELETE("/:id", projectTaskHandler.DeleteProjectTask)
		}
	}

	return r
}

// corsConfig allows credentialed requests from the listed origins, or any
// origin without credentials when none are listed.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
