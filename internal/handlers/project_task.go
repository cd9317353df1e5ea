package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-estimation-api/internal/dto"
	"github.com/yukikurage/project-estimation-api/internal/services"
)

type ProjectTaskHandler struct {
	projectTaskService *services.ProjectTaskService
	log                *slog.Logger
}

func NewProjectTaskHandler(projectTaskService *services.ProjectTaskService, log *slog.Logger) *ProjectTaskHandler {
	return &ProjectTaskHandler{
		projectTaskService: projectTaskService,
		log:                log,
	}
}

type createProjectTaskRequest struct {
	StageID      uint64  `json:"stage_id" validate:"required,gt=0"`
	TaskID       uint64  `json:"task_id" validate:"required,gt=0"`
	ProgrammerID *uint64 `json:"programmer_id" validate:"omitempty,gt=0"`
	Status       string  `json:"status" validate:"omitempty,notblank,max=50"`
}

type updateProjectTaskRequest struct {
	ProgrammerID *uint64 `json:"programmer_id" validate:"omitempty,gt=0"`
	Status       *string `json:"status" validate:"omitempty,notblank,max=50"`
}

// CreateProjectTask assigns a task template to a stage
func (h *ProjectTaskHandler) CreateProjectTask(c *gin.Context) {
	var req createProjectTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	projectTask, err := h.projectTaskService.CreateProjectTask(c.Request.Context(), services.CreateProjectTaskInput{
		StageID: req.StageID,
		ProjectTaskInput: services.ProjectTaskInput{
			TaskID:       req.TaskID,
			ProgrammerID: req.ProgrammerID,
			Status:       req.Status,
		},
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectTaskDTO(*projectTask))
}

// GetProjectTask returns an assignment with its effort
func (h *ProjectTaskHandler) GetProjectTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	projectTask, err := h.projectTaskService.GetProjectTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectTaskDTO(*projectTask))
}

// UpdateProjectTask changes the programmer and/or status of an assignment
func (h *ProjectTaskHandler) UpdateProjectTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateProjectTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	projectTask, err := h.projectTaskService.UpdateProjectTask(c.Request.Context(), id, services.UpdateProjectTaskInput{
		ProgrammerID: req.ProgrammerID,
		Status:       req.Status,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectTaskDTO(*projectTask))
}

// DeleteProjectTask deletes an assignment
func (h *ProjectTaskHandler) DeleteProjectTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.projectTaskService.DeleteProjectTask(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project task deleted successfully",
	})
}
