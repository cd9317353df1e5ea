package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-estimation-api/internal/dto"
	"github.com/yukikurage/project-estimation-api/internal/services"
	"github.com/yukikurage/project-estimation-api/internal/utils"
)

type StageHandler struct {
	stageService *services.StageService
	log          *slog.Logger
}

func NewStageHandler(stageService *services.StageService, log *slog.Logger) *StageHandler {
	return &StageHandler{
		stageService: stageService,
		log:          log,
	}
}

type createStageRequest struct {
	ProjectID    uint64                   `json:"project_id" validate:"required,gt=0"`
	Name         string                   `json:"name" validate:"required,notblank,max=255"`
	Description  string                   `json:"description"`
	OrderIndex   int                      `json:"order_index" validate:"gte=0"`
	ProjectTasks []projectTaskTreeRequest `json:"project_tasks" validate:"dive"`
}

type updateStageRequest struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=255"`
	Description *string `json:"description"`
	OrderIndex  *int    `json:"order_index" validate:"omitempty,gte=0"`
}

// CreateStage creates a stage of an existing project
func (h *StageHandler) CreateStage(c *gin.Context) {
	var req createStageRequest
	if !bindJSON(c, &req) {
		return
	}

	input := services.CreateStageInput{
		ProjectID: req.ProjectID,
		StageInput: stageTreeRequest{
			Name:         req.Name,
			Description:  req.Description,
			OrderIndex:   req.OrderIndex,
			ProjectTasks: req.ProjectTasks,
		}.input(),
	}

	stage, err := h.stageService.CreateStage(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToStageDTO(*stage))
}

// ListStages returns a page of stages
func (h *StageHandler) ListStages(c *gin.Context) {
	stages, err := h.stageService.ListStages(c.Request.Context(), utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	items := make([]dto.StageDTO, len(stages))
	for i, s := range stages {
		items[i] = dto.ToStageDTO(s)
	}

	c.JSON(http.StatusOK, items)
}

// GetStage returns a stage with its assignments
func (h *StageHandler) GetStage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	stage, err := h.stageService.GetStage(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStageDTO(*stage))
}

// UpdateStage applies the provided fields
func (h *StageHandler) UpdateStage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateStageRequest
	if !bindJSON(c, &req) {
		return
	}

	stage, err := h.stageService.UpdateStage(c.Request.Context(), id, services.UpdateStageInput{
		Name:        req.Name,
		Description: req.Description,
		OrderIndex:  req.OrderIndex,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStageDTO(*stage))
}

// DeleteStage deletes a stage with its assignments
func (h *StageHandler) DeleteStage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.stageService.DeleteStage(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stage deleted successfully",
	})
}
