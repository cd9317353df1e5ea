package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yukikurage/project-estimation-api/internal/dto"
	"github.com/yukikurage/project-estimation-api/internal/services"
	"github.com/yukikurage/project-estimation-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
	log         *slog.Logger
}

func NewTaskHandler(taskService *services.TaskService, log *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         log,
	}
}

type taskRequest struct {
	Name          string           `json:"name" validate:"required,notblank,max=255"`
	Description   string           `json:"description"`
	Type          string           `json:"type" validate:"required,notblank,max=50"`
	BaseTimeHours *decimal.Decimal `json:"base_time_hours" validate:"required,decimal_scale=2,decimal_gte=0,decimal_lte=999.99"`
}

func (r taskRequest) input() services.TaskInput {
	return services.TaskInput{
		Name:          r.Name,
		Description:   r.Description,
		Type:          r.Type,
		BaseTimeHours: *r.BaseTimeHours,
	}
}

// CreateTask creates a new task template
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req taskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListTasks returns a page of task templates
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context(), utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	items := make([]dto.TaskDTO, len(tasks))
	for i, t := range tasks {
		items[i] = dto.ToTaskDTO(t)
	}

	c.JSON(http.StatusOK, items)
}

// GetTask returns a task template by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask replaces a task template's fields
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req taskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task template no assignment uses
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}
